package secondary

import (
	"context"
	"errors"

	"github.com/example/worksort/internal/models"
)

// ErrRuleSourceInvalid is returned when the rule source is missing or its
// mandatory columns are absent. It aborts the run before any mutation.
var ErrRuleSourceInvalid = errors.New("rule source invalid")

// RuleSource produces the ordered rule list from an external tabular
// source. Malformed rows are dropped, not fatal; each drop is reported in
// the warnings slice.
type RuleSource interface {
	Load(ctx context.Context) (rules []models.Rule, warnings []string, err error)
}
