// Package classify contains the category and keyword heuristics for the
// special partitions (electrical, structural, cleanroom partition,
// foundation). Predicates are pure functions over a pre-read Subject so
// they can be evaluated without touching the model store.
package classify

import (
	"strings"

	"github.com/example/worksort/internal/models"
)

// WorksetAttr is the free-text attribute the keyword heuristics read.
const WorksetAttr = "Workset"

// Subject carries the classification inputs for one item, pre-read from
// the model store: the item-level and type-level free-text attribute plus
// the family/type display name.
type Subject struct {
	Category        models.Category
	ItemText        string
	HasItemText     bool
	TypeText        string
	HasTypeText     bool
	TypeDisplayName string
}

// text returns the free-text attribute, item first then type.
func (s Subject) text() (string, bool) {
	if s.HasItemText {
		return s.ItemText, true
	}
	if s.HasTypeText {
		return s.TypeText, true
	}
	return "", false
}

// Predicate decides whether a subject belongs to one special partition.
type Predicate func(Subject) bool

// table is keyed by canonical special-partition name. Kept as data rather
// than a conditional chain so new heuristics slot in without touching the
// orchestrator.
var table = map[string]Predicate{
	models.PartitionElectrical: IsElectrical,
	models.PartitionStructural: IsStructural,
	models.PartitionCleanroom:  IsCleanroomPartition,
	models.PartitionFoundation: IsFoundation,
}

// For returns the predicate for a partition name, matched case-insensitively.
// The second return is false for non-special partitions.
func For(partition string) (Predicate, bool) {
	for name, p := range table {
		if models.SamePartition(name, partition) {
			return p, true
		}
	}
	return nil, false
}

// IsSpecial reports whether the partition is classifier-driven.
func IsSpecial(partition string) bool {
	_, ok := For(partition)
	return ok
}

var electricalCategories = map[models.Category]bool{
	models.CategoryCableRoute:          true,
	models.CategoryCableRouteFitting:   true,
	models.CategoryConduit:             true,
	models.CategoryConduitFitting:      true,
	models.CategoryElectricalEquipment: true,
	models.CategoryElectricalFixture:   true,
	models.CategoryLightingFixture:     true,
}

// electricalExclusions knock cable routes claimed by other trades out of
// the electrical partition.
var electricalExclusions = []string{"Fire", "HVAC", "Plumbing", "NOT ELECTRICAL"}

// IsElectrical reports whether the subject belongs to the electrical
// partition. Cable-route categories honor exclusion keywords on the
// type-level text attribute; absence of the attribute keeps them electrical.
func IsElectrical(s Subject) bool {
	if !electricalCategories[s.Category] {
		return false
	}
	if s.Category == models.CategoryCableRoute || s.Category == models.CategoryCableRouteFitting {
		if s.HasTypeText && containsAny(s.TypeText, electricalExclusions) {
			return false
		}
	}
	return true
}

var pureStructuralCategories = map[models.Category]bool{
	models.CategoryStructuralFraming:    true,
	models.CategoryStructuralColumn:     true,
	models.CategoryStructuralTruss:      true,
	models.CategoryStructuralStiffener:  true,
	models.CategoryStructuralFoundation: true,
}

var structuralKeywords = []string{"Steel", "Structure", "Structural", "STB", "Frame", "Column", "Beam", "Foundation"}

// IsStructural reports whether the subject belongs to the structural
// partition. Pure-structural categories default to true when no text
// attribute exists; generic items need a keyword hit on the attribute or
// on the family/type display name.
func IsStructural(s Subject) bool {
	if pureStructuralCategories[s.Category] {
		text, ok := s.text()
		if !ok {
			return true
		}
		return containsAny(text, structuralKeywords)
	}
	if s.Category == models.CategoryGeneric || s.Category == "" {
		if text, ok := s.text(); ok && containsAny(text, structuralKeywords) {
			return true
		}
		return containsAny(s.TypeDisplayName, structuralKeywords)
	}
	return false
}

var cleanroomCategories = map[models.Category]bool{
	models.CategoryWall:    true,
	models.CategoryGeneric: true,
	models.CategoryDoor:    true,
	models.CategoryWindow:  true,
}

var cleanroomKeywords = []string{"Cleanroom", "Partition", "RR", "Clean Room", "Wall"}

// IsCleanroomPartition reports whether the subject belongs to the
// cleanroom-partition bucket.
func IsCleanroomPartition(s Subject) bool {
	if !cleanroomCategories[s.Category] {
		return false
	}
	text, ok := s.text()
	return ok && containsAny(text, cleanroomKeywords)
}

var foundationCategories = map[models.Category]bool{
	models.CategoryStructuralFoundation: true,
	models.CategoryGeneric:              true,
	models.CategoryMechanicalEquipment:  true,
}

var foundationKeywords = []string{"Foundation", "Pedestal", "FND", "Tool", "Base"}

// IsFoundation reports whether the subject belongs to the foundation bucket.
func IsFoundation(s Subject) bool {
	if !foundationCategories[s.Category] {
		return false
	}
	text, ok := s.text()
	return ok && containsAny(text, foundationKeywords)
}

// containsAny is a case-insensitive substring test against a keyword list.
func containsAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
