package models

import "strings"

// NoExport is the sentinel export code marking a rule that organizes items
// into a partition without producing an output artifact.
const NoExport = "NO EXPORT"

// OrphanPartition is the fixed sink for monitored items matched by no rule.
const OrphanPartition = "QC"

// Special partition names. These bypass pattern matching and use
// category/keyword classification instead (see core/classify).
const (
	PartitionElectrical = "Electrical"
	PartitionStructural = "Structure"
	PartitionCleanroom  = "Cleanroom Partition"
	PartitionFoundation = "Foundation"
)

// SpecialPartitions returns the four classifier-driven partition names.
func SpecialPartitions() []string {
	return []string{
		PartitionElectrical,
		PartitionStructural,
		PartitionCleanroom,
		PartitionFoundation,
	}
}

// Rule is one configuration row: a pattern or category intent mapped to a
// target partition and an export code. Rules are immutable after load and
// processed in file order.
type Rule struct {
	TargetPartition string
	SourcePattern   string
	Description     string
	ExportCode      string
}

// HasPattern reports whether the rule carries a usable source pattern.
// Empty and "-" patterns route to partition-name matching instead.
func (r Rule) HasPattern() bool {
	p := strings.TrimSpace(r.SourcePattern)
	return p != "" && p != "-"
}

// Exportable reports whether the rule participates in export.
func (r Rule) Exportable() bool {
	return !strings.EqualFold(strings.TrimSpace(r.ExportCode), NoExport)
}

// Usable reports whether the rule satisfies the load-time invariant:
// a target partition plus either a pattern or the NO EXPORT sentinel.
func (r Rule) Usable() bool {
	if strings.TrimSpace(r.TargetPartition) == "" {
		return false
	}
	return strings.TrimSpace(r.SourcePattern) != "" || !r.Exportable()
}

// SamePartition compares partition names the way the model store does:
// case-insensitively.
func SamePartition(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
