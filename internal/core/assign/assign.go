// Package assign contains the pure bookkeeping for the three-phase
// assignment run: the phase state machine, the settled-item ledger, and
// the partition-name fallback matcher used by pattern-less rules.
package assign

import (
	"strings"

	"github.com/example/worksort/internal/models"
)

// Phase identifies one step of the preserve/apply/orphan state machine.
// Transitions are strictly sequential with no re-entry.
type Phase int

// Run phases in execution order.
const (
	PhasePreserve Phase = iota
	PhaseApply
	PhaseOrphan
	PhaseDone
)

// Next returns the succeeding phase. Done is terminal.
func (p Phase) Next() Phase {
	if p >= PhaseDone {
		return PhaseDone
	}
	return p + 1
}

func (p Phase) String() string {
	switch p {
	case PhasePreserve:
		return "preserve"
	case PhaseApply:
		return "apply"
	case PhaseOrphan:
		return "orphan"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

// Ledger tracks which items are settled for the current run and
// accumulates the package-group index. It holds no store handles; the
// orchestrator feeds it decisions.
type Ledger struct {
	settled map[models.ItemID]bool
	groups  models.GroupIndex
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		settled: make(map[models.ItemID]bool),
		groups:  make(models.GroupIndex),
	}
}

// Settle marks an item as decided for this run. Settling twice is a no-op.
func (l *Ledger) Settle(id models.ItemID) {
	l.settled[id] = true
}

// Settled reports whether the item has already been decided.
func (l *Ledger) Settled(id models.ItemID) bool {
	return l.settled[id]
}

// SettledCount returns how many items have been decided.
func (l *Ledger) SettledCount() int {
	return len(l.settled)
}

// Group adds an item to the package group for code under its originating
// partition and settles it.
func (l *Ledger) Group(code, partition string, id models.ItemID) {
	l.groups.Add(code, partition, id)
	l.Settle(id)
}

// Groups returns the accumulated package-group index.
func (l *Ledger) Groups() models.GroupIndex {
	return l.groups
}

// prefix tokens are separated by underscores; the first token is a project
// qualifier and is stripped before name matching.
func stripPrefixToken(partition string) string {
	if i := strings.Index(partition, "_"); i >= 0 && i+1 < len(partition) {
		return partition[i+1:]
	}
	return partition
}

// minFallbackWordLen bounds the description words considered by the
// fallback so articles and unit tags do not match everything.
const minFallbackWordLen = 3

// NameFallbackMatch decides pattern-less rules: the partition's own name
// (with its prefix token stripped) and the rule description's longer words
// are tried as case-insensitive substrings of each candidate attribute.
func NameFallbackMatch(partition, description string, candidates []string) bool {
	name := strings.TrimSpace(stripPrefixToken(partition))

	var needles []string
	if name != "" {
		needles = append(needles, strings.ToLower(name))
	}
	for _, word := range strings.Fields(description) {
		if len(word) > minFallbackWordLen {
			needles = append(needles, strings.ToLower(word))
		}
	}
	if len(needles) == 0 {
		return false
	}

	for _, c := range candidates {
		lower := strings.ToLower(c)
		if lower == "" {
			continue
		}
		for _, needle := range needles {
			if strings.Contains(lower, needle) {
				return true
			}
		}
	}
	return false
}
