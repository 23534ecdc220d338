package classify

import (
	"testing"

	"github.com/example/worksort/internal/models"
)

func TestIsElectrical(t *testing.T) {
	tests := []struct {
		name    string
		subject Subject
		want    bool
	}{
		{
			name:    "lighting fixture is electrical",
			subject: Subject{Category: models.CategoryLightingFixture},
			want:    true,
		},
		{
			name:    "cable route without type text is electrical",
			subject: Subject{Category: models.CategoryCableRoute},
			want:    true,
		},
		{
			name: "cable route claimed by fire is excluded",
			subject: Subject{
				Category:    models.CategoryCableRoute,
				TypeText:    "Fire Alarm Tray",
				HasTypeText: true,
			},
			want: false,
		},
		{
			name: "cable route fitting marked NOT ELECTRICAL is excluded",
			subject: Subject{
				Category:    models.CategoryCableRouteFitting,
				TypeText:    "not electrical - telecom",
				HasTypeText: true,
			},
			want: false,
		},
		{
			name: "conduit ignores exclusion keywords",
			subject: Subject{
				Category:    models.CategoryConduit,
				TypeText:    "HVAC controls",
				HasTypeText: true,
			},
			want: true,
		},
		{
			name:    "wall is not electrical",
			subject: Subject{Category: models.CategoryWall},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsElectrical(tt.subject); got != tt.want {
				t.Errorf("IsElectrical() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsStructural(t *testing.T) {
	tests := []struct {
		name    string
		subject Subject
		want    bool
	}{
		{
			name:    "pure structural category defaults true without attribute",
			subject: Subject{Category: models.CategoryStructuralFraming},
			want:    true,
		},
		{
			name: "pure structural with confirming keyword",
			subject: Subject{
				Category:    models.CategoryStructuralColumn,
				ItemText:    "Main Steel",
				HasItemText: true,
			},
			want: true,
		},
		{
			name: "pure structural with non-structural attribute is rejected",
			subject: Subject{
				Category:    models.CategoryStructuralFraming,
				ItemText:    "Architectural trim",
				HasItemText: true,
			},
			want: false,
		},
		{
			name: "generic with structural keyword in attribute",
			subject: Subject{
				Category:    models.CategoryGeneric,
				TypeText:    "STB support",
				HasTypeText: true,
			},
			want: true,
		},
		{
			name: "generic with structural keyword in type display name",
			subject: Subject{
				Category:        models.CategoryGeneric,
				TypeDisplayName: "Wide Flange Beam 310",
			},
			want: true,
		},
		{
			name:    "generic with no hints",
			subject: Subject{Category: models.CategoryGeneric},
			want:    false,
		},
		{
			name:    "duct is never structural",
			subject: Subject{Category: models.CategoryDuctCurve, ItemText: "Steel", HasItemText: true},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStructural(tt.subject); got != tt.want {
				t.Errorf("IsStructural() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsCleanroomPartition(t *testing.T) {
	yes := Subject{Category: models.CategoryWall, ItemText: "Cleanroom boundary", HasItemText: true}
	if !IsCleanroomPartition(yes) {
		t.Error("expected cleanroom wall to classify")
	}

	// Attribute lookup falls back from item to type.
	typeOnly := Subject{Category: models.CategoryDoor, TypeText: "RR access", HasTypeText: true}
	if !IsCleanroomPartition(typeOnly) {
		t.Error("expected type-level attribute to classify")
	}

	noText := Subject{Category: models.CategoryWall}
	if IsCleanroomPartition(noText) {
		t.Error("absence of the attribute must classify false")
	}

	wrongCategory := Subject{Category: models.CategoryPipeCurve, ItemText: "Cleanroom", HasItemText: true}
	if IsCleanroomPartition(wrongCategory) {
		t.Error("pipe must never classify as cleanroom partition")
	}
}

func TestIsFoundation(t *testing.T) {
	yes := Subject{Category: models.CategoryMechanicalEquipment, ItemText: "Tool pedestal", HasItemText: true}
	if !IsFoundation(yes) {
		t.Error("expected tool pedestal to classify")
	}

	noText := Subject{Category: models.CategoryStructuralFoundation}
	if IsFoundation(noText) {
		t.Error("foundation requires a keyword hit, absence is false")
	}
}

func TestFor(t *testing.T) {
	if _, ok := For("electrical"); !ok {
		t.Error("partition lookup must be case-insensitive")
	}
	if _, ok := For("HW_Supply_01"); ok {
		t.Error("ordinary partitions must not resolve to a predicate")
	}
	if !IsSpecial(" structure ") {
		t.Error("expected trimmed case-insensitive special lookup")
	}
}
