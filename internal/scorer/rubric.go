// Package scorer implements weighted-rule lead scoring and ranking.
package scorer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/model"
)

// MaxScore is the hard cap applied to every total.
const MaxScore = 100

// Rule scores a single factor. Eval receives the rule's weight and returns
// the points earned; the rubric clamps the result to [0, weight].
type Rule[T any] struct {
	Factor string
	Weight int
	Eval   func(lead T, weight int) int
}

// RankTable holds the inclusive lower bounds of the upper three tiers.
type RankTable struct {
	VeryHigh int `json:"very_high"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
}

// RankTableFrom converts a configured rank table.
func RankTableFrom(c config.RankConfig) RankTable {
	return RankTable{VeryHigh: c.VeryHigh, High: c.High, Medium: c.Medium}
}

// RankOf maps a score to its tier. It depends on the score alone.
func (t RankTable) RankOf(score int) model.Rank {
	switch {
	case score >= t.VeryHigh:
		return model.RankVeryHigh
	case score >= t.High:
		return model.RankHigh
	case score >= t.Medium:
		return model.RankMedium
	default:
		return model.RankLow
	}
}

// Thresholds returns the minimum-score filter values aligned to the tier
// boundaries, ascending and starting at 0.
func (t RankTable) Thresholds() []int {
	return []int{0, t.Medium, t.High, t.VeryHigh}
}

// Validate checks that 0 < Medium < High < VeryHigh <= MaxScore.
func (t RankTable) Validate() error {
	if t.Medium <= 0 || t.Medium >= t.High || t.High >= t.VeryHigh || t.VeryHigh > MaxScore {
		return eris.Errorf("scorer: rank thresholds must satisfy 0 < medium < high < very_high <= %d (got %d/%d/%d)",
			MaxScore, t.Medium, t.High, t.VeryHigh)
	}
	return nil
}

// Rubric is an ordered set of independent rules plus the rank table that
// turns their clamped total into a tier.
type Rubric[T any] struct {
	Name  string
	Hash  string
	Rules []Rule[T]
	Ranks RankTable
}

// NewRubric builds a rubric after checking that rules are well formed.
func NewRubric[T any](name string, ranks RankTable, rules ...Rule[T]) (*Rubric[T], error) {
	if len(rules) == 0 {
		return nil, eris.Errorf("scorer: rubric %q has no rules", name)
	}
	if err := ranks.Validate(); err != nil {
		return nil, eris.Wrapf(err, "scorer: rubric %q", name)
	}

	var errs []string
	seen := make(map[string]bool, len(rules))
	for i, r := range rules {
		switch {
		case r.Factor == "":
			errs = append(errs, fmt.Sprintf("rule %d has no factor name", i))
		case seen[r.Factor]:
			errs = append(errs, fmt.Sprintf("duplicate factor %q", r.Factor))
		}
		seen[r.Factor] = true
		if r.Weight < 0 {
			errs = append(errs, fmt.Sprintf("factor %q weight must be >= 0", r.Factor))
		}
		if r.Eval == nil {
			errs = append(errs, fmt.Sprintf("factor %q has no evaluator", r.Factor))
		}
	}
	if len(errs) > 0 {
		return nil, eris.Errorf("scorer: rubric %q invalid: %s", name, strings.Join(errs, "; "))
	}

	return &Rubric[T]{Name: name, Rules: rules, Ranks: ranks}, nil
}

// Score evaluates every rule against the lead, sums the contributions,
// clamps the sum to MaxScore and maps it to a rank.
func (r *Rubric[T]) Score(lead T) model.Scored[T] {
	factors := make([]model.FactorScore, len(r.Rules))
	var sum int
	for i, rule := range r.Rules {
		pts := clamp(rule.Eval(lead, rule.Weight), 0, rule.Weight)
		factors[i] = model.FactorScore{Factor: rule.Factor, Points: pts, Weight: rule.Weight}
		sum += pts
	}

	total := min(MaxScore, sum)
	return model.Scored[T]{
		Lead:      lead,
		Score:     total,
		Rank:      r.Ranks.RankOf(total),
		Breakdown: model.ScoreBreakdown{Factors: factors, Total: total},
	}
}

// MaxPoints returns the sum of rule weights before clamping.
func (r *Rubric[T]) MaxPoints() int {
	var n int
	for _, rule := range r.Rules {
		n += rule.Weight
	}
	return n
}

// Factors lists factor names in rubric order.
func (r *Rubric[T]) Factors() []string {
	names := make([]string, len(r.Rules))
	for i, rule := range r.Rules {
		names[i] = rule.Factor
	}
	return names
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
