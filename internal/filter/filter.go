package filter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"pokedex-insights-go/internal/types"
)

// TypeAll disables the type constraint.
const TypeAll = "all"

// Criteria selects a subset of the collection.
type Criteria struct {
	Search string `json:"search"`
	Type   string `json:"type"`
}

// Matches reports whether p satisfies c. An empty Type behaves like TypeAll.
func (c Criteria) Matches(p types.Pokemon) bool {
	if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(c.Search)) {
		return false
	}
	if c.Type == "" || c.Type == TypeAll {
		return true
	}
	return p.HasType(c.Type)
}

// Apply returns the matching records in their original order. The input
// slice is never modified.
func Apply(records []types.Pokemon, c Criteria) []types.Pokemon {
	out := make([]types.Pokemon, 0, len(records))
	for _, p := range records {
		if c.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TypeOptions lists the values for a type selector: TypeAll, then each
// distinct type in first-encountered order.
func TypeOptions(records []types.Pokemon) []Option {
	opts := []Option{{Value: TypeAll, Label: "All"}}
	seen := map[string]bool{}
	for _, p := range records {
		for _, t := range p.Types {
			if seen[t] {
				continue
			}
			seen[t] = true
			opts = append(opts, Option{Value: t, Label: capitalize(t)})
		}
	}
	return opts
}

// capitalize upper-cases only the first letter, leaving the rest untouched.
// A Caser is stateful, so each call gets its own.
func capitalize(s string) string {
	titler := cases.Title(language.English)
	for i := range s {
		if i > 0 {
			return titler.String(s[:i]) + s[i:]
		}
	}
	return titler.String(s)
}
