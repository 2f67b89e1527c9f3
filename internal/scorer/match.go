package scorer

import (
	"cmp"
	"slices"
	"strings"

	"github.com/sells-group/leadscout/internal/config"
)

// containsAnyFold reports whether s contains any of the needles, ignoring case.
func containsAnyFold(s string, needles []string) bool {
	if s == "" {
		return false
	}
	lower := strings.ToLower(s)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// anyContainsFold reports whether any value contains any of the needles.
func anyContainsFold(values, needles []string) bool {
	for _, v := range values {
		if containsAnyFold(v, needles) {
			return true
		}
	}
	return false
}

// sortTiers returns a copy of tiers ordered by Min descending, so the first
// tier reached is the highest.
func sortTiers(tiers []config.TierConfig) []config.TierConfig {
	out := slices.Clone(tiers)
	slices.SortStableFunc(out, func(a, b config.TierConfig) int {
		return cmp.Compare(b.Min, a.Min)
	})
	return out
}

// tierPoints returns the floored share of weight for the highest tier that v
// reaches, or 0 when v is below every tier.
func tierPoints(v int64, tiers []config.TierConfig, weight int) int {
	for _, t := range tiers {
		if v >= t.Min {
			return weight * t.Percent / 100
		}
	}
	return 0
}
