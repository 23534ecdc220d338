package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/worksort/internal/core/assign"
	"github.com/example/worksort/internal/core/classify"
	"github.com/example/worksort/internal/core/grouping"
	"github.com/example/worksort/internal/core/pattern"
	"github.com/example/worksort/internal/models"
	"github.com/example/worksort/internal/ports/primary"
	"github.com/example/worksort/internal/ports/secondary"
)

// AssignmentServiceImpl implements the primary.AssignmentService interface.
// It owns the preserve/apply/orphan state machine and is single-use per
// Classify call: the whole run happens inside one exclusive store
// transaction and no phase re-enters.
type AssignmentServiceImpl struct {
	store  secondary.ModelStore
	rules  secondary.RuleSource
	runlog secondary.RunLog
	logger *zap.Logger
}

// NewAssignmentService creates a new AssignmentService with injected
// dependencies.
func NewAssignmentService(store secondary.ModelStore, rules secondary.RuleSource, runlog secondary.RunLog, logger *zap.Logger) *AssignmentServiceImpl {
	return &AssignmentServiceImpl{
		store:  store,
		rules:  rules,
		runlog: runlog,
		logger: logger,
	}
}

// classifyRun carries the mutable state of one Classify call.
type classifyRun struct {
	rules        []models.Rule
	orphan       string
	groupOrphans bool
	ledger       *assign.Ledger
	monitored    []*secondary.ItemRecord
	stats        models.AssignmentStats
	ruleErrors   []string
}

// Classify runs the three phases and returns the package-group index.
// A rule-source failure aborts before any store mutation; per-rule and
// per-item failures are logged and narrowed to the rule or item involved.
func (s *AssignmentServiceImpl) Classify(ctx context.Context, opts primary.ClassifyOptions) (*primary.ClassifyOutcome, error) {
	rules, warnings, err := s.rules.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	for _, w := range warnings {
		s.runlog.Warnf("rule source: %s", w)
	}

	usable := make([]models.Rule, 0, len(rules))
	for _, r := range rules {
		if r.Usable() {
			usable = append(usable, r)
			continue
		}
		s.runlog.Warnf("dropping unusable rule for partition %q", r.TargetPartition)
	}

	run := &classifyRun{
		rules:        usable,
		orphan:       opts.OrphanPartition,
		groupOrphans: opts.GroupOrphans,
		ledger:       assign.NewLedger(),
	}
	if run.orphan == "" {
		run.orphan = models.OrphanPartition
	}
	run.stats.RuleCount = len(usable)

	err = s.store.RunExclusive(ctx, func(ctx context.Context) error {
		items, err := s.store.MonitoredItems(ctx)
		if err != nil {
			return fmt.Errorf("failed to enumerate monitored items: %w", err)
		}
		run.monitored = items

		for phase := assign.PhasePreserve; phase != assign.PhaseDone; {
			var next assign.Phase
			switch phase {
			case assign.PhasePreserve:
				next = s.runPreserve(ctx, run)
			case assign.PhaseApply:
				next = s.runApply(ctx, run)
			case assign.PhaseOrphan:
				next = s.runOrphan(ctx, run)
			default:
				next = assign.PhaseDone
			}
			if next <= phase {
				return fmt.Errorf("phase %s attempted to re-enter %s", phase, next)
			}
			phase = next
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.runlog.Printf("classification done: %d preserved, %d assigned, %d orphaned (%d rules)",
		run.stats.Preserved, run.stats.Assigned, run.stats.Orphaned, run.stats.RuleCount)

	return &primary.ClassifyOutcome{
		Stats:      run.stats,
		Groups:     run.ledger.Groups(),
		RuleErrors: run.ruleErrors,
	}, nil
}

// preservedPartition is one partition whose current membership survives
// untouched into this run.
type preservedPartition struct {
	name   string
	code   string
	orphan bool
}

// preserveList builds the partitions Phase P reads: every rule target in
// file order, then the special partitions no rule referenced, then the
// orphan sink.
func (s *AssignmentServiceImpl) preserveList(run *classifyRun) []preservedPartition {
	var list []preservedPartition
	seen := map[string]bool{}

	add := func(name, code string, orphan bool) {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		list = append(list, preservedPartition{name: name, code: code, orphan: orphan})
	}

	for _, r := range run.rules {
		add(r.TargetPartition, grouping.NormalizeCode(r.ExportCode), false)
	}
	for _, name := range models.SpecialPartitions() {
		add(name, grouping.DeriveCode(name), false)
	}
	add(run.orphan, grouping.OrphanExportCode, true)

	return list
}

// runPreserve settles every item already resident in a partition this run
// cares about. Preserved orphan-sink members are settled without being
// grouped; orphan export is an explicit request handled at export time.
func (s *AssignmentServiceImpl) runPreserve(ctx context.Context, run *classifyRun) assign.Phase {
	for _, p := range s.preserveList(run) {
		members, err := s.store.PartitionMembers(ctx, p.name)
		if err != nil {
			s.runlog.Warnf("preserve: failed to read partition %q: %v", p.name, err)
			continue
		}
		for _, id := range members {
			if run.ledger.Settled(id) {
				continue
			}
			if p.orphan && !run.groupOrphans {
				run.ledger.Settle(id)
			} else {
				run.ledger.Group(p.code, p.name, id)
			}
			run.stats.Preserved++
		}
	}
	s.runlog.Printf("preserve phase settled %d items", run.stats.Preserved)
	return assign.PhaseApply
}

// runApply walks the rules in file order over the unsettled items.
func (s *AssignmentServiceImpl) runApply(ctx context.Context, run *classifyRun) assign.Phase {
	for _, rule := range run.rules {
		if err := s.store.EnsurePartition(ctx, rule.TargetPartition); err != nil {
			// Abort only this rule; its would-be matches fall through to
			// the orphan phase.
			msg := fmt.Sprintf("rule %q: failed to create partition: %v", rule.TargetPartition, err)
			run.ruleErrors = append(run.ruleErrors, msg)
			s.runlog.Warnf("apply: %s", msg)
			continue
		}
		if !rule.Exportable() {
			// NO EXPORT rules organize without export: the partition now
			// exists, but no matching is performed for it.
			s.runlog.Printf("apply: rule %q is NO EXPORT, partition ensured only", rule.TargetPartition)
			continue
		}

		code := grouping.NormalizeCode(rule.ExportCode)
		matched := 0
		for _, item := range run.monitored {
			if run.ledger.Settled(item.ID) {
				continue
			}
			if !s.ruleMatches(ctx, rule, item) {
				continue
			}
			if err := s.store.SetPartition(ctx, item.ID, rule.TargetPartition); err != nil {
				s.runlog.Warnf("apply: item %d: failed to set partition %q: %v", item.ID, rule.TargetPartition, err)
				continue
			}
			run.ledger.Group(code, rule.TargetPartition, item.ID)
			run.stats.Assigned++
			matched++
		}
		s.runlog.Printf("apply: rule %q matched %d items", rule.TargetPartition, matched)
	}
	return assign.PhaseOrphan
}

// runOrphan reassigns every still-unsettled monitored item to the orphan
// sink. By default orphans are not added to any package group here; the
// group-orphans option mirrors the rule path and groups them under the
// reserved orphan code.
func (s *AssignmentServiceImpl) runOrphan(ctx context.Context, run *classifyRun) assign.Phase {
	if err := s.store.EnsurePartition(ctx, run.orphan); err != nil {
		s.runlog.Warnf("orphan: failed to create partition %q: %v", run.orphan, err)
		return assign.PhaseDone
	}
	for _, item := range run.monitored {
		if run.ledger.Settled(item.ID) {
			continue
		}
		if err := s.store.SetPartition(ctx, item.ID, run.orphan); err != nil {
			s.runlog.Warnf("orphan: item %d: failed to set partition: %v", item.ID, err)
			run.ledger.Settle(item.ID)
			continue
		}
		run.stats.Orphaned++
		if run.groupOrphans {
			run.ledger.Group(grouping.OrphanExportCode, run.orphan, item.ID)
		} else {
			run.ledger.Settle(item.ID)
		}
	}
	s.runlog.Printf("orphan phase routed %d items to %q", run.stats.Orphaned, run.orphan)
	return assign.PhaseDone
}

// ruleMatches decides one rule against one unsettled item.
func (s *AssignmentServiceImpl) ruleMatches(ctx context.Context, rule models.Rule, item *secondary.ItemRecord) bool {
	if predicate, ok := classify.For(rule.TargetPartition); ok {
		return predicate(s.subjectFor(ctx, item))
	}
	candidates := s.matchCandidates(ctx, item)
	if !rule.HasPattern() {
		return assign.NameFallbackMatch(rule.TargetPartition, rule.Description, candidates)
	}
	for _, c := range candidates {
		if pattern.Match(rule.SourcePattern, c) {
			return true
		}
	}
	return false
}

// subjectFor pre-reads the classifier inputs for one item. Attribute read
// failures degrade to absence; the item is then simply non-matching.
func (s *AssignmentServiceImpl) subjectFor(ctx context.Context, item *secondary.ItemRecord) classify.Subject {
	subject := classify.Subject{
		Category:        item.Category,
		TypeDisplayName: item.TypeName,
	}
	if text, ok, err := s.store.ItemText(ctx, item.ID, classify.WorksetAttr); err != nil {
		s.logger.Debug("item attribute read failed", zap.Int64("item", int64(item.ID)), zap.Error(err))
	} else if ok {
		subject.ItemText, subject.HasItemText = text, true
	}
	if text, ok, err := s.store.TypeText(ctx, item.ID, classify.WorksetAttr); err != nil {
		s.logger.Debug("type attribute read failed", zap.Int64("item", int64(item.ID)), zap.Error(err))
	} else if ok {
		subject.TypeText, subject.HasTypeText = text, true
	}
	return subject
}

// matchCandidates collects the attribute values a pattern is tried
// against: classification name, abbreviation, type name, and the declared
// system name for duct- and pipe-like items.
func (s *AssignmentServiceImpl) matchCandidates(ctx context.Context, item *secondary.ItemRecord) []string {
	var candidates []string

	read := func(attr string) {
		text, ok, err := s.store.ItemText(ctx, item.ID, attr)
		if err != nil {
			s.logger.Debug("candidate read failed",
				zap.Int64("item", int64(item.ID)), zap.String("attr", attr), zap.Error(err))
			return
		}
		if ok && text != "" {
			candidates = append(candidates, text)
		}
	}

	read(secondary.AttrClassification)
	read(secondary.AttrAbbreviation)
	if item.TypeName != "" {
		candidates = append(candidates, item.TypeName)
	}
	if item.Category.HasSystemName() {
		read(secondary.AttrSystemName)
	}
	return candidates
}
