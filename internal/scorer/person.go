package scorer

import (
	"slices"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/model"
)

// Person factor names, in rubric order.
const (
	FactorRoleFit          = "roleFit"
	FactorCompanyIntent    = "companyIntent"
	FactorTechnographic    = "technographic"
	FactorLocation         = "location"
	FactorScientificIntent = "scientificIntent"
)

// PersonRubric builds the person-lead rubric from a resolved config.
// Publication recency is measured against cfg.CurrentYear, never the clock.
func PersonRubric(cfg config.PersonRubricConfig) (*Rubric[model.PersonLead], error) {
	if err := ValidatePersonConfig(cfg); err != nil {
		return nil, err
	}

	r, err := NewRubric("person", RankTableFrom(cfg.Ranks),
		Rule[model.PersonLead]{
			Factor: FactorRoleFit,
			Weight: cfg.RoleWeight,
			Eval: func(l model.PersonLead, w int) int {
				if containsAnyFold(l.Title, cfg.RoleKeywords) {
					return w
				}
				return 0
			},
		},
		Rule[model.PersonLead]{
			Factor: FactorCompanyIntent,
			Weight: cfg.CompanyWeight,
			Eval: func(l model.PersonLead, w int) int {
				if slices.Contains(cfg.TargetStages, string(l.Company.FundingStage)) {
					return w
				}
				return 0
			},
		},
		Rule[model.PersonLead]{
			Factor: FactorTechnographic,
			Weight: cfg.InVitroWeight + cfg.NAMWeight,
			Eval: func(l model.PersonLead, _ int) int {
				var pts int
				if anyContainsFold(l.Company.Technographics, cfg.InVitroTags) {
					pts += cfg.InVitroWeight
				}
				if anyContainsFold(l.Company.Technographics, cfg.NAMTags) {
					pts += cfg.NAMWeight
				}
				return pts
			},
		},
		Rule[model.PersonLead]{
			Factor: FactorLocation,
			Weight: cfg.LocationWeight,
			Eval: func(l model.PersonLead, w int) int {
				if containsAnyFold(l.Location, cfg.HubLocations) {
					return w
				}
				return 0
			},
		},
		Rule[model.PersonLead]{
			Factor: FactorScientificIntent,
			Weight: cfg.ScientificWeight,
			Eval: func(l model.PersonLead, w int) int {
				if hasRecentRelevantPublication(l.Publications, cfg) {
					return w
				}
				return 0
			},
		},
	)
	if err != nil {
		return nil, err
	}
	r.Hash = ConfigHash(cfg)
	return r, nil
}

// hasRecentRelevantPublication reports whether at least one publication falls
// inside the recency window and carries a scientific keyword. Additional
// matches do not add points.
func hasRecentRelevantPublication(pubs []model.Publication, cfg config.PersonRubricConfig) bool {
	earliest := cfg.CurrentYear - *cfg.PublicationWindowYr
	for _, p := range pubs {
		if p.Year < earliest {
			continue
		}
		if anyContainsFold(p.Keywords, cfg.ScientificKeywords) {
			return true
		}
	}
	return false
}
