package models

import "fmt"

// SkipReason categorizes why an item was dropped during transfer pre-filtering.
type SkipReason string

// Pre-filter skip reasons.
const (
	SkipInvalidID       SkipReason = "invalid_id"
	SkipTypeDefinition  SkipReason = "type_definition"
	SkipViewScoped      SkipReason = "view_scoped"
	SkipNoCategory      SkipReason = "no_category"
	SkipNonTransferable SkipReason = "non_transferable_category"
	SkipAggregateSystem SkipReason = "aggregate_system"
)

// FailureUnknown buckets transfer failures whose category cannot be
// determined from the returned error.
const FailureUnknown = "Unknown"

// TransferError is the error surface the model store uses to report a
// per-item or per-batch copy failure with enough detail to categorize it.
type TransferError struct {
	ID       ItemID
	Category Category
	Reason   string
}

func (e *TransferError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("transfer of item %d (%s) failed: %s", e.ID, e.Category, e.Reason)
	}
	return fmt.Sprintf("transfer of item %d failed: %s", e.ID, e.Reason)
}

// TransferResult summarizes one package group's export.
type TransferResult struct {
	Code          string
	Requested     int
	Transferred   int
	Skipped       map[SkipReason]int
	Failed        map[string]int // failure category -> count
	ArtifactPath  string
	Saved         bool
	FailureReason string
}

// NewTransferResult returns an empty result for the given group code.
func NewTransferResult(code string) *TransferResult {
	return &TransferResult{
		Code:    code,
		Skipped: make(map[SkipReason]int),
		Failed:  make(map[string]int),
	}
}

// SkipCount returns total pre-filter drops.
func (r *TransferResult) SkipCount() int {
	n := 0
	for _, c := range r.Skipped {
		n += c
	}
	return n
}

// FailCount returns total per-item transfer failures.
func (r *TransferResult) FailCount() int {
	n := 0
	for _, c := range r.Failed {
		n += c
	}
	return n
}

// AssignmentStats summarizes the three classification phases.
type AssignmentStats struct {
	Preserved int // settled during the preserve phase
	Assigned  int // newly matched during the apply phase
	Orphaned  int // routed to the orphan sink
	RuleCount int // usable rules processed
}

// RunResult is the overall outcome of a classify+export run.
type RunResult struct {
	RunID      string
	Success    bool
	LastError  string
	Stats      AssignmentStats
	Groups     []*TransferResult
	LogPath    string
	WithErrors bool // true when some groups failed but the run succeeded
}

// ExportedCount returns the number of groups whose artifact saved.
func (r *RunResult) ExportedCount() int {
	n := 0
	for _, g := range r.Groups {
		if g.Saved {
			n++
		}
	}
	return n
}
