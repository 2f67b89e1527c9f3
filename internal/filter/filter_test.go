package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscout/internal/model"
)

func fundingFixture() []model.Scored[model.FundingLead] {
	return []model.Scored[model.FundingLead]{
		{Lead: model.FundingLead{Company: "Hepatix", Round: "Series B", Investors: []string{"Sequoia Capital"}, Country: "United States"}, Score: 100},
		{Lead: model.FundingLead{Company: "Organoida", Round: "Series A", Investors: []string{"Atomico", "Local Angels"}, Country: "United Kingdom"}, Score: 72},
		{Lead: model.FundingLead{Company: "CellGrid", Round: "Series C", Investors: []string{"Acme Ventures"}, Country: "Germany"}, Score: 55},
		{Lead: model.FundingLead{Company: "TinyBio", Round: "Seed", Country: "United States"}, Score: 0},
	}
}

func companies(in []model.Scored[model.FundingLead]) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = s.Lead.Company
	}
	return out
}

func TestApply_Funding(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"empty criteria matches all", Criteria{}, []string{"Hepatix", "Organoida", "CellGrid", "TinyBio"}},
		{"search company case insensitive", Criteria{Search: "hepa"}, []string{"Hepatix"}},
		{"search round", Criteria{Search: "series"}, []string{"Hepatix", "Organoida", "CellGrid"}},
		{"search investor", Criteria{Search: "ATOMICO"}, []string{"Organoida"}},
		{"search trims whitespace", Criteria{Search: "  grid "}, []string{"CellGrid"}},
		{"category substring", Criteria{Category: "united"}, []string{"Hepatix", "Organoida", "TinyBio"}},
		{"category exact", Criteria{Category: "Germany"}, []string{"CellGrid"}},
		{"min score inclusive", Criteria{MinScore: 55}, []string{"Hepatix", "Organoida", "CellGrid"}},
		{"min score very high", Criteria{MinScore: 75}, []string{"Hepatix"}},
		{"combined", Criteria{Search: "series", Category: "United States", MinScore: 35}, []string{"Hepatix"}},
		{"no match", Criteria{Search: "nonexistent"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(fundingFixture(), tt.criteria, FundingFields)
			assert.Equal(t, tt.want, companies(got))
		})
	}
}

func TestApply_Person(t *testing.T) {
	in := []model.Scored[model.PersonLead]{
		{Lead: model.PersonLead{Name: "Sarah Chen", Title: "Head of Preclinical Safety", Company: model.Company{Name: "BioTech Innovations"}, Location: "San Francisco, CA"}, Score: 85},
		{Lead: model.PersonLead{Name: "James Smith", Title: "Senior Scientist", Company: model.Company{Name: "Global Pharma"}, Location: "Remote (Texas)"}, Score: 0},
		{Lead: model.PersonLead{Name: "Marcus Weber", Title: "Head of Toxicology", Company: model.Company{Name: "Basel Therapeutics"}, Location: "Basel, Switzerland"}, Score: 60},
	}

	names := func(s []model.Scored[model.PersonLead]) []string {
		out := make([]string, len(s))
		for i := range s {
			out[i] = s[i].Lead.Name
		}
		return out
	}

	assert.Equal(t, []string{"Sarah Chen"}, names(Apply(in, Criteria{Search: "chen"}, PersonFields)))
	assert.Equal(t, []string{"Marcus Weber"}, names(Apply(in, Criteria{Search: "toxicology"}, PersonFields)))
	assert.Equal(t, []string{"James Smith"}, names(Apply(in, Criteria{Search: "global"}, PersonFields)))
	assert.Equal(t, []string{"Marcus Weber"}, names(Apply(in, Criteria{Category: "switzerland"}, PersonFields)))
	assert.Equal(t, []string{"Sarah Chen", "Marcus Weber"}, names(Apply(in, Criteria{MinScore: 60}, PersonFields)))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := fundingFixture()
	_ = Apply(in, Criteria{MinScore: 75}, FundingFields)
	assert.Len(t, in, 4)
	assert.Equal(t, "Hepatix", in[0].Lead.Company)
}

func TestApply_NilInput(t *testing.T) {
	got := Apply(nil, Criteria{Search: "x"}, FundingFields)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCriteriaValidate(t *testing.T) {
	allowed := []int{0, 35, 55, 75}

	for _, v := range allowed {
		assert.NoError(t, Criteria{MinScore: v}.Validate(allowed))
	}

	for _, v := range []int{-1, 10, 40, 100} {
		err := Criteria{MinScore: v}.Validate(allowed)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "filter: min score")
	}
}
