// Package pattern compiles placeholder-bearing string patterns into
// matchable predicates. Matching is pure: no external state, no errors
// surfaced to callers (a pattern that cannot compile simply never matches
// via the regex step).
//
// Placeholders: "xxx" matches 2-3 digits, "xx" matches 1-3 digits,
// "x" matches exactly one digit, "*" matches anything.
package pattern

import (
	"regexp"
	"strings"
	"sync"
)

// placeholder substitutions, longest token first so "xxx" is never
// consumed as "xx"+"x".
var substitutions = []struct {
	token string
	regex string
}{
	{"xxx", `\d{2,3}`},
	{"xx", `\d{1,3}`},
	{"x", `\d`},
	{`\*`, `.*`}, // applied post-escape, so the token is the escaped form
}

var (
	cacheMu sync.Mutex
	cache   = map[string]*regexp.Regexp{}
)

// Usable reports whether the pattern can match anything at all.
// Empty and "-" patterns are routed to category matching by callers.
func Usable(raw string) bool {
	p := strings.TrimSpace(raw)
	return p != "" && p != "-"
}

// Match reports whether candidate satisfies the pattern. Steps are tried
// in order, short-circuiting on first success:
//
//  1. case-insensitive exact equality
//  2. regex built from the escaped pattern with placeholders substituted
//  3. case-insensitive substring match of the pattern's literal residue
//     (the pattern with all placeholder tokens removed)
//
// Step 3 is intentionally broad: a candidate containing the pattern's
// non-placeholder text matches even when the digits do not line up.
func Match(raw, candidate string) bool {
	if !Usable(raw) {
		return false
	}
	p := strings.TrimSpace(raw)

	if strings.EqualFold(p, candidate) {
		return true
	}

	if re := compile(p); re != nil && re.MatchString(candidate) {
		return true
	}

	if lit := literalResidue(p); lit != "" {
		return strings.Contains(strings.ToLower(candidate), strings.ToLower(lit))
	}
	return false
}

// compile returns the anchored case-insensitive regex for the pattern, or
// nil when construction fails.
func compile(p string) *regexp.Regexp {
	key := strings.ToLower(p)

	cacheMu.Lock()
	re, ok := cache[key]
	cacheMu.Unlock()
	if ok {
		return re
	}

	expr := regexp.QuoteMeta(key)
	for _, s := range substitutions {
		expr = strings.ReplaceAll(expr, s.token, s.regex)
	}

	re, err := regexp.Compile("(?i)^" + expr + "$")
	if err != nil {
		re = nil
	}

	cacheMu.Lock()
	cache[key] = re
	cacheMu.Unlock()
	return re
}

// literalResidue strips the digit placeholder tokens from the pattern,
// leaving the bare literal used by the substring fallback.
func literalResidue(p string) string {
	out := strings.ToLower(p)
	for _, token := range []string{"xxx", "xx", "x"} {
		out = strings.ReplaceAll(out, token, "")
	}
	return strings.TrimSpace(out)
}
