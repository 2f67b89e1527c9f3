package scorer

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadscout/internal/config"
)

// DefaultFundingConfig returns the funding rubric. Weights sum to 100.
func DefaultFundingConfig() config.FundingRubricConfig {
	return config.FundingRubricConfig{
		StageWeight:     30,
		AmountWeight:    25,
		InvestorWeight:  20,
		HiringWeight:    15,
		TechRolesWeight: 10,

		TargetRounds: []string{"Series A", "Series B", "Series C"},
		TopTierInvestors: []string{
			"Sequoia Capital", "Andreessen Horowitz", "a16z", "Khosla Ventures",
			"Accel", "Greylock", "Benchmark", "Lightspeed", "Index Ventures",
			"General Catalyst", "Battery Ventures", "Insight Partners",
			"Y Combinator", "Lux Capital", "NEA", "Atomico",
		},
		AmountTiers: []config.TierConfig{
			{Min: 50_000_000, Percent: 100}, // $50M
			{Min: 20_000_000, Percent: 70},  // $20M
			{Min: 10_000_000, Percent: 40},  // $10M
		},
		HiringTiers: []config.LabelTierConfig{
			{Label: "A", Percent: 100},
			{Label: "B", Percent: 60},
		},
		TechRoleTiers: []config.TierConfig{
			{Min: 10, Percent: 100},
			{Min: 5, Percent: 70},
			{Min: 1, Percent: 30},
		},

		Ranks: config.RankConfig{VeryHigh: 75, High: 55, Medium: 35},
	}
}

// DefaultPersonConfig returns the person rubric. CurrentYear is left at zero
// and must be supplied by the caller.
func DefaultPersonConfig() config.PersonRubricConfig {
	return config.PersonRubricConfig{
		RoleWeight:          30,
		CompanyWeight:       20,
		InVitroWeight:       15,
		NAMWeight:           10,
		LocationWeight:      10,
		ScientificWeight:    40,
		PublicationWindowYr: intPtr(2),

		RoleKeywords: []string{
			"toxicology", "toxicologist", "safety", "preclinical",
			"dmpk", "adme", "in vitro", "discovery",
		},
		TargetStages: []string{"Series A", "Series B"},
		InVitroTags:  []string{"in-vitro", "vitro", "organ-on-chip"},
		NAMTags:      []string{"nam", "new approach"},
		HubLocations: []string{
			"boston", "cambridge", "san francisco", "san diego",
			"research triangle", "basel", "london", "oxford", "seattle",
		},
		ScientificKeywords: []string{"dili", "liver", "toxicity", "3d"},

		Ranks: config.RankConfig{VeryHigh: 80, High: 60, Medium: 40},
	}
}

// ResolveFundingConfig fills zero-valued fields of c from the defaults, so a
// config file only needs to name the entries it overrides.
func ResolveFundingConfig(c config.FundingRubricConfig) config.FundingRubricConfig {
	d := DefaultFundingConfig()
	c.StageWeight = orDefaultInt(c.StageWeight, d.StageWeight)
	c.AmountWeight = orDefaultInt(c.AmountWeight, d.AmountWeight)
	c.InvestorWeight = orDefaultInt(c.InvestorWeight, d.InvestorWeight)
	c.HiringWeight = orDefaultInt(c.HiringWeight, d.HiringWeight)
	c.TechRolesWeight = orDefaultInt(c.TechRolesWeight, d.TechRolesWeight)
	c.TargetRounds = orDefault(c.TargetRounds, d.TargetRounds)
	c.TopTierInvestors = orDefault(c.TopTierInvestors, d.TopTierInvestors)
	c.AmountTiers = orDefault(c.AmountTiers, d.AmountTiers)
	c.HiringTiers = orDefault(c.HiringTiers, d.HiringTiers)
	c.TechRoleTiers = orDefault(c.TechRoleTiers, d.TechRoleTiers)
	if c.Ranks == (config.RankConfig{}) {
		c.Ranks = d.Ranks
	}
	return c
}

// ResolvePersonConfig fills zero-valued fields of c from the defaults,
// keeping c.CurrentYear untouched.
func ResolvePersonConfig(c config.PersonRubricConfig) config.PersonRubricConfig {
	d := DefaultPersonConfig()
	c.RoleWeight = orDefaultInt(c.RoleWeight, d.RoleWeight)
	c.CompanyWeight = orDefaultInt(c.CompanyWeight, d.CompanyWeight)
	c.InVitroWeight = orDefaultInt(c.InVitroWeight, d.InVitroWeight)
	c.NAMWeight = orDefaultInt(c.NAMWeight, d.NAMWeight)
	c.LocationWeight = orDefaultInt(c.LocationWeight, d.LocationWeight)
	c.ScientificWeight = orDefaultInt(c.ScientificWeight, d.ScientificWeight)
	if c.PublicationWindowYr == nil {
		c.PublicationWindowYr = d.PublicationWindowYr
	}
	c.RoleKeywords = orDefault(c.RoleKeywords, d.RoleKeywords)
	c.TargetStages = orDefault(c.TargetStages, d.TargetStages)
	c.InVitroTags = orDefault(c.InVitroTags, d.InVitroTags)
	c.NAMTags = orDefault(c.NAMTags, d.NAMTags)
	c.HubLocations = orDefault(c.HubLocations, d.HubLocations)
	c.ScientificKeywords = orDefault(c.ScientificKeywords, d.ScientificKeywords)
	if c.Ranks == (config.RankConfig{}) {
		c.Ranks = d.Ranks
	}
	return c
}

// ValidateFundingConfig checks that a funding rubric is internally consistent.
func ValidateFundingConfig(c config.FundingRubricConfig) error {
	var errs []string

	weights := map[string]int{
		"stage_weight":      c.StageWeight,
		"amount_weight":     c.AmountWeight,
		"investor_weight":   c.InvestorWeight,
		"hiring_weight":     c.HiringWeight,
		"tech_roles_weight": c.TechRolesWeight,
	}
	errs = append(errs, checkWeights(weights)...)
	errs = append(errs, checkKeywords("target_rounds", c.TargetRounds)...)
	errs = append(errs, checkKeywords("top_tier_investors", c.TopTierInvestors)...)
	errs = append(errs, checkTiers("amount_tiers", c.AmountTiers)...)
	errs = append(errs, checkTiers("tech_role_tiers", c.TechRoleTiers)...)
	for _, lt := range c.HiringTiers {
		if lt.Label == "" {
			errs = append(errs, "hiring_tiers labels must be non-empty")
		}
		if lt.Percent < 0 || lt.Percent > 100 {
			errs = append(errs, fmt.Sprintf("hiring_tiers %q percent must be between 0 and 100", lt.Label))
		}
	}
	if err := RankTableFrom(c.Ranks).Validate(); err != nil {
		errs = append(errs, "ranks: "+err.Error())
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: funding config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ValidatePersonConfig checks that a person rubric is internally consistent.
func ValidatePersonConfig(c config.PersonRubricConfig) error {
	var errs []string

	weights := map[string]int{
		"role_weight":       c.RoleWeight,
		"company_weight":    c.CompanyWeight,
		"in_vitro_weight":   c.InVitroWeight,
		"nam_weight":        c.NAMWeight,
		"location_weight":   c.LocationWeight,
		"scientific_weight": c.ScientificWeight,
	}
	errs = append(errs, checkWeights(weights)...)
	switch {
	case c.PublicationWindowYr == nil:
		errs = append(errs, "publication_window_years must be set")
	case *c.PublicationWindowYr < 0:
		errs = append(errs, "publication_window_years must be >= 0")
	}
	if c.CurrentYear <= 0 {
		errs = append(errs, "current_year must be set")
	}
	errs = append(errs, checkKeywords("role_keywords", c.RoleKeywords)...)
	errs = append(errs, checkKeywords("target_stages", c.TargetStages)...)
	errs = append(errs, checkKeywords("in_vitro_tags", c.InVitroTags)...)
	errs = append(errs, checkKeywords("nam_tags", c.NAMTags)...)
	errs = append(errs, checkKeywords("hub_locations", c.HubLocations)...)
	errs = append(errs, checkKeywords("scientific_keywords", c.ScientificKeywords)...)
	if err := RankTableFrom(c.Ranks).Validate(); err != nil {
		errs = append(errs, "ranks: "+err.Error())
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: person config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ConfigHash returns a SHA-256 hash of the scoring config for reproducibility.
func ConfigHash(cfg any) string {
	data, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:16]) // 32 hex chars
}

func checkWeights(weights map[string]int) []string {
	var errs []string
	var sum int
	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		w := weights[name]
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
		sum += w
	}
	if sum <= 0 {
		errs = append(errs, "weight sum must be > 0")
	}
	return errs
}

func checkKeywords(name string, kws []string) []string {
	for _, kw := range kws {
		if strings.TrimSpace(kw) == "" {
			return []string{name + " must not contain empty entries"}
		}
	}
	return nil
}

func checkTiers(name string, tiers []config.TierConfig) []string {
	var errs []string
	for _, t := range tiers {
		if t.Min < 0 {
			errs = append(errs, fmt.Sprintf("%s min must be >= 0", name))
		}
		if t.Percent < 0 || t.Percent > 100 {
			errs = append(errs, fmt.Sprintf("%s percent must be between 0 and 100", name))
		}
	}
	return errs
}

func intPtr(v int) *int { return &v }

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func orDefault[S ~[]E, E any](v, def S) S {
	if len(v) == 0 {
		return slices.Clone(def)
	}
	return v
}
