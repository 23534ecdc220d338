package pattern

import "testing"

func TestMatchExactEquality(t *testing.T) {
	tests := []struct {
		pattern   string
		candidate string
		want      bool
	}{
		{"HWS-100", "HWS-100", true},
		{"hws-100", "HWS-100", true},
		{"HWS-100", "HWS-101", false},
	}

	for _, tt := range tests {
		if got := Match(tt.pattern, tt.candidate); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.candidate, got, tt.want)
		}
	}
}

func TestMatchPlaceholders(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		candidate string
		want      bool
	}{
		{"xxx matches 3 digits", "HWS-xxx", "HWS-001", true},
		{"xxx matches 2 digits", "HWS-xxx", "HWS-12", true},
		{"xxx rejects 1 digit via regex but literal fallback catches it", "HWS-xxx", "HWS-1", true},
		{"xx matches 1 digit", "CHW-xx", "CHW-4", true},
		{"xx matches 3 digits", "CHW-xx", "CHW-412", true},
		{"x matches single digit", "EA-x", "EA-7", true},
		{"star matches anything", "HVAC-*", "HVAC-Supply-A", true},
		{"star matches empty tail", "HVAC-*", "HVAC-", true},
		{"case-insensitive regex", "hws-xxx", "HWS-014", true},
		{"no literal overlap", "HWS-xxx", "CWS-014", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.pattern, tt.candidate); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestMatchLiteralFallback(t *testing.T) {
	// The fallback strips digit placeholders and does a substring test.
	// This is deliberately permissive: any candidate containing the bare
	// literal matches even when the digits do not line up.
	if !Match("HWS-xxx", "HWS-Anything") {
		t.Error("expected literal fallback to match HWS-Anything")
	}
	if !Match("HWS-xxx", "Main HWS-Riser") {
		t.Error("expected literal fallback to match mid-string")
	}
	if Match("HWS-xxx", "CHW-200") {
		t.Error("literal fallback must not match unrelated candidate")
	}
}

func TestMatchUnusablePatterns(t *testing.T) {
	for _, p := range []string{"", "-", "  ", " - "} {
		if Match(p, "anything") {
			t.Errorf("pattern %q must never match", p)
		}
		if Usable(p) {
			t.Errorf("Usable(%q) = true, want false", p)
		}
	}
}

func TestMatchSubstitutionOrder(t *testing.T) {
	// "xxx" must be consumed as one token, not "xx"+"x": a candidate with
	// four digits would satisfy \d{1,3}\d but not \d{2,3}, and must still
	// be rejected by the regex step (the literal fallback then applies).
	if !Match("V-xxx", "V-55") {
		t.Error("V-xxx should match V-55 via regex")
	}
	// Residue "v-" keeps the fallback alive for digit-mismatched candidates.
	if !Match("V-xxx", "V-5555") {
		t.Error("V-xxx should match V-5555 via literal fallback")
	}
}

func TestUsable(t *testing.T) {
	if !Usable("HWS-xxx") {
		t.Error("expected HWS-xxx to be usable")
	}
	if !Usable("*") {
		t.Error("expected * to be usable")
	}
}
