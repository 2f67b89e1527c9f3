package scorer

import (
	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/model"
)

// Funding factor names, in rubric order.
const (
	FactorFundingStage    = "fundingStage"
	FactorFundingAmount   = "fundingAmount"
	FactorInvestorQuality = "investorQuality"
	FactorHiringActivity  = "hiringActivity"
	FactorTechRoles       = "techRoles"
)

// FundingRubric builds the funding-lead rubric from a resolved config.
func FundingRubric(cfg config.FundingRubricConfig) (*Rubric[model.FundingLead], error) {
	if err := ValidateFundingConfig(cfg); err != nil {
		return nil, err
	}

	amountTiers := sortTiers(cfg.AmountTiers)
	techTiers := sortTiers(cfg.TechRoleTiers)

	r, err := NewRubric("funding", RankTableFrom(cfg.Ranks),
		Rule[model.FundingLead]{
			Factor: FactorFundingStage,
			Weight: cfg.StageWeight,
			Eval: func(l model.FundingLead, w int) int {
				if containsAnyFold(l.Round, cfg.TargetRounds) {
					return w
				}
				return 0
			},
		},
		Rule[model.FundingLead]{
			Factor: FactorFundingAmount,
			Weight: cfg.AmountWeight,
			Eval: func(l model.FundingLead, w int) int {
				return tierPoints(l.Amount, amountTiers, w)
			},
		},
		Rule[model.FundingLead]{
			Factor: FactorInvestorQuality,
			Weight: cfg.InvestorWeight,
			Eval: func(l model.FundingLead, w int) int {
				if hasTopInvestor(l, cfg.TopTierInvestors) {
					return w
				}
				return 0
			},
		},
		Rule[model.FundingLead]{
			Factor: FactorHiringActivity,
			Weight: cfg.HiringWeight,
			Eval: func(l model.FundingLead, w int) int {
				for _, t := range cfg.HiringTiers {
					if string(l.HiringTier) == t.Label {
						return w * t.Percent / 100
					}
				}
				return 0
			},
		},
		Rule[model.FundingLead]{
			Factor: FactorTechRoles,
			Weight: cfg.TechRolesWeight,
			Eval: func(l model.FundingLead, w int) int {
				return tierPoints(int64(l.TechRoles), techTiers, w)
			},
		},
	)
	if err != nil {
		return nil, err
	}
	r.Hash = ConfigHash(cfg)
	return r, nil
}

// hasTopInvestor reports whether any participating investor, including the
// lead, names a top-tier firm.
func hasTopInvestor(l model.FundingLead, top []string) bool {
	for _, inv := range l.Investors {
		if containsAnyFold(inv, top) {
			return true
		}
	}
	return containsAnyFold(l.LeadInvestor, top)
}
