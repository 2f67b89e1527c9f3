package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/dataset"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/scorer"
	"github.com/sells-group/leadscout/internal/source"
)

const (
	variantFunding = "funding"
	variantPerson  = "person"
)

func validateVariant(v string) error {
	if v != variantFunding && v != variantPerson {
		return eris.Errorf("--variant must be %s or %s (got %q)", variantFunding, variantPerson, v)
	}
	return nil
}

// resolveYear picks the publication-recency anchor: the rubric's own value,
// then scoring.current_year, then the wall clock.
func resolveYear(rubricYear, scoringYear int, now time.Time) int {
	if rubricYear > 0 {
		return rubricYear
	}
	if scoringYear > 0 {
		return scoringYear
	}
	return now.Year()
}

func buildFundingRubric(c *config.Config) (*scorer.Rubric[model.FundingLead], error) {
	r, err := scorer.FundingRubric(scorer.ResolveFundingConfig(c.Scoring.Funding))
	if err != nil {
		return nil, eris.Wrap(err, "build funding rubric")
	}
	return r, nil
}

func buildPersonRubric(c *config.Config, now time.Time) (*scorer.Rubric[model.PersonLead], error) {
	pc := scorer.ResolvePersonConfig(c.Scoring.Person)
	pc.CurrentYear = resolveYear(pc.CurrentYear, c.Scoring.CurrentYear, now)
	r, err := scorer.PersonRubric(pc)
	if err != nil {
		return nil, eris.Wrap(err, "build person rubric")
	}
	return r, nil
}

// firstNonEmpty returns the first non-empty path; an empty result selects the
// bundled sample dataset.
func firstNonEmpty(paths ...string) string {
	for _, p := range paths {
		if p != "" {
			return p
		}
	}
	return ""
}

func loadFundingLeads(ctx context.Context, path string) ([]model.FundingLead, error) {
	if path == "" {
		zap.L().Debug("using bundled funding dataset")
		return dataset.Funding()
	}
	return source.LoadFunding(ctx, path)
}

func loadPersonLeads(ctx context.Context, path string) ([]model.PersonLead, error) {
	if path == "" {
		zap.L().Debug("using bundled person dataset")
		return dataset.People()
	}
	return source.LoadPeople(ctx, path)
}

// rankFunding loads funding leads from input (or the configured source) and
// ranks them with the configured rubric.
func rankFunding(ctx context.Context, c *config.Config, input string) (*scorer.Rubric[model.FundingLead], []model.Scored[model.FundingLead], error) {
	r, err := buildFundingRubric(c)
	if err != nil {
		return nil, nil, err
	}
	leads, err := loadFundingLeads(ctx, firstNonEmpty(input, c.Source.FundingPath))
	if err != nil {
		return nil, nil, eris.Wrap(err, "load funding leads")
	}
	ranked, err := r.Rank(ctx, leads, c.Scoring.Concurrency)
	if err != nil {
		return nil, nil, err
	}
	return r, ranked, nil
}

// rankPeople is rankFunding for person leads.
func rankPeople(ctx context.Context, c *config.Config, input string, now time.Time) (*scorer.Rubric[model.PersonLead], []model.Scored[model.PersonLead], error) {
	r, err := buildPersonRubric(c, now)
	if err != nil {
		return nil, nil, err
	}
	leads, err := loadPersonLeads(ctx, firstNonEmpty(input, c.Source.PersonPath))
	if err != nil {
		return nil, nil, eris.Wrap(err, "load person leads")
	}
	ranked, err := r.Rank(ctx, leads, c.Scoring.Concurrency)
	if err != nil {
		return nil, nil, err
	}
	return r, ranked, nil
}
