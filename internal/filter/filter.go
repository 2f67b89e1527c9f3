// Package filter narrows ranked leads by free-text search, category and
// minimum score.
package filter

import (
	"slices"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadscout/internal/model"
)

// Criteria holds the user-facing filter inputs. Zero values match everything.
type Criteria struct {
	Search   string
	Category string
	MinScore int
}

// Fields tells Apply which lead attributes the search and category inputs
// are matched against.
type Fields[T any] struct {
	Search   func(T) []string
	Category func(T) string
}

// FundingFields searches company, round and investors; category is country.
var FundingFields = Fields[model.FundingLead]{
	Search: func(l model.FundingLead) []string {
		out := make([]string, 0, 2+len(l.Investors))
		out = append(out, l.Company, l.Round)
		return append(out, l.Investors...)
	},
	Category: func(l model.FundingLead) string { return l.Country },
}

// PersonFields searches name, title and company; category is location.
var PersonFields = Fields[model.PersonLead]{
	Search: func(l model.PersonLead) []string {
		return []string{l.Name, l.Title, l.Company.Name}
	},
	Category: func(l model.PersonLead) string { return l.Location },
}

// Validate rejects a MinScore outside the allowed threshold set.
func (c Criteria) Validate(allowed []int) error {
	if !slices.Contains(allowed, c.MinScore) {
		return eris.Errorf("filter: min score %d not in %v", c.MinScore, allowed)
	}
	return nil
}

// Matches reports whether a single scored lead passes every criterion.
func Matches[T any](s model.Scored[T], c Criteria, f Fields[T]) bool {
	if s.Score < c.MinScore {
		return false
	}
	if c.Category != "" && !containsFold(f.Category(s.Lead), c.Category) {
		return false
	}
	if c.Search == "" {
		return true
	}
	for _, v := range f.Search(s.Lead) {
		if containsFold(v, c.Search) {
			return true
		}
	}
	return false
}

// Apply returns the leads that match c, keeping their order. The input is
// not modified.
func Apply[T any](scored []model.Scored[T], c Criteria, f Fields[T]) []model.Scored[T] {
	c.Search = strings.TrimSpace(c.Search)
	c.Category = strings.TrimSpace(c.Category)

	out := make([]model.Scored[T], 0, len(scored))
	for _, s := range scored {
		if Matches(s, c, f) {
			out = append(out, s)
		}
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
