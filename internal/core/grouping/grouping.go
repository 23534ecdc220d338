// Package grouping normalizes export codes, builds deterministic output
// file names, and assigns sequential part numbers. Pure functions over the
// package-group index.
package grouping

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/example/worksort/internal/models"
)

// OrphanExportCode is the reserved code for an explicitly requested export
// of the orphan partition.
const OrphanExportCode = "QC"

// NumberingMode selects the part-numbering policy.
type NumberingMode string

const (
	// ModePackage exports one artifact per normalized code, part fixed at 001.
	ModePackage NumberingMode = "package"
	// ModePartition exports every partition individually; same-code
	// partitions receive sequential part numbers in sorted order.
	ModePartition NumberingMode = "partition"
)

// NormalizeCode reduces a raw export code to its grouping key: digits, the
// literal character 'x', and whitespace are stripped. The NO EXPORT
// sentinel passes through unchanged.
func NormalizeCode(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, models.NoExport) {
		return models.NoExport
	}
	var b strings.Builder
	for _, r := range trimmed {
		if unicode.IsDigit(r) || unicode.IsSpace(r) || r == 'x' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FileNaming carries the fixed pieces of an output file name.
type FileNaming struct {
	ProjectPrefix string
	Suffix        string
	Tag           string
	Extension     string // without leading dot; empty means no extension
}

// FileName builds {prefix}_{code}_{suffix}_Part_{NNN}_{tag}[.ext].
func (n FileNaming) FileName(code string, part int) string {
	name := fmt.Sprintf("%s_%s_%s_Part_%03d_%s", n.ProjectPrefix, code, n.Suffix, part, n.Tag)
	if n.Extension != "" {
		name += "." + n.Extension
	}
	return name
}

// Job is one planned export: the items of one artifact plus its file name.
type Job struct {
	Code       string
	Part       int
	FileName   string
	Partitions map[string][]models.ItemID
}

// Items returns the job's membership in deterministic order.
func (j Job) Items() []models.ItemID {
	var ids []models.ItemID
	for _, members := range j.Partitions {
		ids = append(ids, members...)
	}
	sort.Slice(ids, func(i, k int) bool { return ids[i] < ids[k] })
	return ids
}

// Plan turns the group index into an ordered job list. Empty groups and
// the NO EXPORT sentinel are excluded; the caller is expected to have
// logged the drops. In partition mode, partitions are ordered
// case-insensitively and same-code collisions numbered sequentially.
func Plan(index models.GroupIndex, mode NumberingMode, naming FileNaming) []Job {
	if mode == ModePartition {
		return planByPartition(index, naming)
	}
	return planByPackage(index, naming)
}

func planByPackage(index models.GroupIndex, naming FileNaming) []Job {
	var jobs []Job
	for _, code := range index.Codes() {
		group := index[code]
		if code == models.NoExport || group.Len() == 0 {
			continue
		}
		jobs = append(jobs, Job{
			Code:       code,
			Part:       1,
			FileName:   naming.FileName(code, 1),
			Partitions: group.Partitions,
		})
	}
	return jobs
}

func planByPartition(index models.GroupIndex, naming FileNaming) []Job {
	type slice struct {
		partition string
		code      string
		ids       []models.ItemID
	}

	var slices []slice
	for code, group := range index {
		if code == models.NoExport {
			continue
		}
		for partition, ids := range group.Partitions {
			if len(ids) == 0 {
				continue
			}
			slices = append(slices, slice{partition: partition, code: code, ids: ids})
		}
	}

	sort.Slice(slices, func(i, j int) bool {
		a, b := strings.ToLower(slices[i].partition), strings.ToLower(slices[j].partition)
		if a != b {
			return a < b
		}
		return slices[i].partition < slices[j].partition
	})

	// Sequential part numbers per code, in partition sort order.
	parts := make(map[string]int)
	jobs := make([]Job, 0, len(slices))
	for _, s := range slices {
		parts[s.code]++
		part := parts[s.code]
		jobs = append(jobs, Job{
			Code:       s.code,
			Part:       part,
			FileName:   naming.FileName(s.code, part),
			Partitions: map[string][]models.ItemID{s.partition: s.ids},
		})
	}
	return jobs
}

// DeriveCode produces the export code for a partition no rule references:
// the normalized partition name.
func DeriveCode(partition string) string {
	return NormalizeCode(partition)
}
