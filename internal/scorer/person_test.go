package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/model"
)

const testYear = 2026

func defaultPersonRubric(t *testing.T) *Rubric[model.PersonLead] {
	t.Helper()
	cfg := DefaultPersonConfig()
	cfg.CurrentYear = testYear
	r, err := PersonRubric(cfg)
	require.NoError(t, err)
	return r
}

func TestPersonRubric_ClampedTotal(t *testing.T) {
	r := defaultPersonRubric(t)

	got := r.Score(model.PersonLead{
		Name:  "Dana Whitfield",
		Title: "Director of Toxicology",
		Company: model.Company{
			Name:           "Hepatix",
			FundingStage:   model.StageSeriesA,
			Technographics: []string{"In-Vitro Models"},
		},
		Location: "Cambridge, MA",
		Publications: []model.Publication{
			{Title: "Predicting hepatotoxicity", Year: testYear, Keywords: []string{"DILI"}},
		},
	})

	assert.Equal(t, 30, got.Breakdown.Points(FactorRoleFit))
	assert.Equal(t, 20, got.Breakdown.Points(FactorCompanyIntent))
	assert.Equal(t, 15, got.Breakdown.Points(FactorTechnographic))
	assert.Equal(t, 10, got.Breakdown.Points(FactorLocation))
	assert.Equal(t, 40, got.Breakdown.Points(FactorScientificIntent))
	assert.Equal(t, 115, got.Breakdown.Sum())
	assert.Equal(t, 100, got.Breakdown.Total)
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, model.RankVeryHigh, got.Rank)
}

func TestPersonRubric_NoSignals(t *testing.T) {
	r := defaultPersonRubric(t)

	got := r.Score(model.PersonLead{
		Title: "Senior Scientist",
		Company: model.Company{
			FundingStage:   model.StagePublic,
			Technographics: []string{"Animal Models"},
		},
		Location: "Remote (Texas)",
	})

	assert.Equal(t, 0, got.Score)
	assert.Equal(t, model.RankLow, got.Rank)
}

func TestPersonRubric_MaxPoints(t *testing.T) {
	r := defaultPersonRubric(t)
	assert.Equal(t, 125, r.MaxPoints())
	assert.Equal(t, []string{
		FactorRoleFit, FactorCompanyIntent, FactorTechnographic,
		FactorLocation, FactorScientificIntent,
	}, r.Factors())
}

func TestRoleFit(t *testing.T) {
	tests := []struct {
		title string
		want  int
	}{
		{"Director of Toxicology", 30},
		{"Principal Toxicologist", 30},
		{"Head of Preclinical Safety", 30},
		{"VP, DMPK", 30},
		{"ADME Scientist", 30},
		{"In Vitro Biology Lead", 30},
		{"Drug Discovery Manager", 30},
		{"Senior Scientist", 0},
		{"Chief Financial Officer", 0},
		{"", 0},
	}

	r := defaultPersonRubric(t)
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := r.Score(model.PersonLead{Title: tt.title})
			assert.Equal(t, tt.want, got.Breakdown.Points(FactorRoleFit))
		})
	}
}

func TestCompanyIntent(t *testing.T) {
	tests := []struct {
		stage model.FundingStage
		want  int
	}{
		{model.StageSeriesA, 20},
		{model.StageSeriesB, 20},
		{model.StageSeriesC, 0},
		{model.StageSeed, 0},
		{model.StagePublic, 0},
		{"series a", 0},
		{"", 0},
	}

	r := defaultPersonRubric(t)
	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			got := r.Score(model.PersonLead{Company: model.Company{FundingStage: tt.stage}})
			assert.Equal(t, tt.want, got.Breakdown.Points(FactorCompanyIntent))
		})
	}
}

func TestTechnographic(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want int
	}{
		{"none", nil, 0},
		{"in vitro only", []string{"In-Vitro"}, 15},
		{"organ on chip", []string{"Organ-on-Chip"}, 15},
		{"nam only", []string{"NAMs"}, 10},
		{"new approach methodologies", []string{"New Approach Methodologies"}, 10},
		{"both", []string{"NAMs", "Organ-on-Chip"}, 25},
		{"both in one tag", []string{"In-Vitro NAMs"}, 25},
		{"unrelated", []string{"Animal Models", "Clinical Trials"}, 0},
	}

	r := defaultPersonRubric(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Score(model.PersonLead{Company: model.Company{Technographics: tt.tags}})
			assert.Equal(t, tt.want, got.Breakdown.Points(FactorTechnographic))
		})
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		location string
		want     int
	}{
		{"Boston, MA", 10},
		{"South San Francisco, CA", 10},
		{"Basel, Switzerland", 10},
		{"LONDON, UK", 10},
		{"Research Triangle Park, NC", 10},
		{"Austin, TX", 0},
		{"", 0},
	}

	r := defaultPersonRubric(t)
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			got := r.Score(model.PersonLead{Location: tt.location})
			assert.Equal(t, tt.want, got.Breakdown.Points(FactorLocation))
		})
	}
}

func TestScientificIntent(t *testing.T) {
	tests := []struct {
		name string
		pubs []model.Publication
		want int
	}{
		{"no publications", nil, 0},
		{"current year", []model.Publication{{Year: testYear, Keywords: []string{"Liver"}}}, 40},
		{"window edge", []model.Publication{{Year: testYear - 2, Keywords: []string{"3D Models"}}}, 40},
		{"outside window", []model.Publication{{Year: testYear - 3, Keywords: []string{"DILI"}}}, 0},
		{"recent but irrelevant", []model.Publication{{Year: testYear, Keywords: []string{"Oncology"}}}, 0},
		{"substring keyword", []model.Publication{{Year: testYear - 1, Keywords: []string{"Hepatotoxicity"}}}, 40},
		{
			"multiple matches count once",
			[]model.Publication{
				{Year: testYear, Keywords: []string{"DILI"}},
				{Year: testYear - 1, Keywords: []string{"Liver Toxicity"}},
			},
			40,
		},
		{
			"old relevant and new irrelevant",
			[]model.Publication{
				{Year: testYear - 5, Keywords: []string{"DILI"}},
				{Year: testYear, Keywords: []string{"Genomics"}},
			},
			0,
		},
	}

	r := defaultPersonRubric(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Score(model.PersonLead{Publications: tt.pubs})
			assert.Equal(t, tt.want, got.Breakdown.Points(FactorScientificIntent))
		})
	}
}

func TestScientificIntent_UsesInjectedYear(t *testing.T) {
	lead := model.PersonLead{Publications: []model.Publication{{Year: 2020, Keywords: []string{"DILI"}}}}

	for _, tc := range []struct {
		year int
		want int
	}{
		{2021, 40},
		{2022, 40},
		{2023, 0},
	} {
		cfg := DefaultPersonConfig()
		cfg.CurrentYear = tc.year
		r, err := PersonRubric(cfg)
		require.NoError(t, err)
		assert.Equal(t, tc.want, r.Score(lead).Breakdown.Points(FactorScientificIntent), "year=%d", tc.year)
	}
}

func TestScientificIntent_PublicationWindow(t *testing.T) {
	lead := model.PersonLead{Publications: []model.Publication{{Year: 2024, Keywords: []string{"DILI"}}}}

	for _, tc := range []struct {
		window int
		want   int
	}{
		{0, 0},
		{1, 0},
		{2, 40},
	} {
		cfg := ResolvePersonConfig(config.PersonRubricConfig{
			CurrentYear:         2026,
			PublicationWindowYr: intPtr(tc.window),
		})
		require.Equal(t, tc.window, *cfg.PublicationWindowYr, "explicit window must survive resolution")
		r, err := PersonRubric(cfg)
		require.NoError(t, err)
		assert.Equal(t, tc.want, r.Score(lead).Breakdown.Points(FactorScientificIntent), "window=%d", tc.window)
	}
}

func TestPersonRanks(t *testing.T) {
	r := defaultPersonRubric(t)

	tests := []struct {
		name string
		lead model.PersonLead
		want int
		rank model.Rank
	}{
		{
			// 30 + 20 + 25 + 10 = 85
			name: "very high without publications",
			lead: model.PersonLead{
				Title:    "Head of Preclinical Safety",
				Company:  model.Company{FundingStage: model.StageSeriesA, Technographics: []string{"NAMs", "Organ-on-Chip"}},
				Location: "San Francisco, CA",
				Publications: []model.Publication{
					{Year: testYear - 1, Keywords: []string{"Safety", "Organ-on-Chip"}},
				},
			},
			want: 85,
			rank: model.RankVeryHigh,
		},
		{
			// 30 + 20 + 10 = 60
			name: "high",
			lead: model.PersonLead{
				Title:    "Toxicologist",
				Company:  model.Company{FundingStage: model.StageSeriesB},
				Location: "Boston, MA",
			},
			want: 60,
			rank: model.RankHigh,
		},
		{
			// 40
			name: "medium from publication alone",
			lead: model.PersonLead{
				Title:        "Research Associate",
				Publications: []model.Publication{{Year: testYear, Keywords: []string{"DILI"}}},
			},
			want: 40,
			rank: model.RankMedium,
		},
		{
			// 30
			name: "low",
			lead: model.PersonLead{Title: "DMPK Scientist", Location: "Austin, TX"},
			want: 30,
			rank: model.RankLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Score(tt.lead)
			assert.Equal(t, tt.want, got.Score)
			assert.Equal(t, tt.rank, got.Rank)
		})
	}
}

func TestPersonRubric_RequiresCurrentYear(t *testing.T) {
	_, err := PersonRubric(DefaultPersonConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "current_year must be set")
}
