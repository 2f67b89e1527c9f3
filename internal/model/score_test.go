package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankLevel(t *testing.T) {
	assert.Equal(t, 0, RankLow.Level())
	assert.Equal(t, 1, RankMedium.Level())
	assert.Equal(t, 2, RankHigh.Level())
	assert.Equal(t, 3, RankVeryHigh.Level())
	assert.Equal(t, -1, Rank("Urgent").Level())
}

func TestScoreBreakdownPointsAndSum(t *testing.T) {
	b := ScoreBreakdown{
		Factors: []FactorScore{
			{Factor: "roleFit", Points: 30, Weight: 30},
			{Factor: "scientificIntent", Points: 40, Weight: 40},
			{Factor: "technographic", Points: 25, Weight: 25},
			{Factor: "location", Points: 10, Weight: 10},
		},
		Total: 100,
	}

	assert.Equal(t, 30, b.Points("roleFit"))
	assert.Equal(t, 0, b.Points("missing"))
	assert.Equal(t, 105, b.Sum())
}

func TestScoreBreakdownMarshalJSON(t *testing.T) {
	b := ScoreBreakdown{
		Factors: []FactorScore{
			{Factor: "fundingStage", Points: 30, Weight: 30},
			{Factor: "fundingAmount", Points: 17, Weight: 25},
		},
		Total: 47,
	}

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, `{"fundingStage":30,"fundingAmount":17,"total":47}`, string(data))
}

func TestScoredMarshalJSON(t *testing.T) {
	s := Scored[FundingLead]{
		Lead:      FundingLead{Company: "Acme", HiringTier: HiringTierA},
		Score:     15,
		Rank:      RankLow,
		Breakdown: ScoreBreakdown{Factors: []FactorScore{{Factor: "hiringActivity", Points: 15, Weight: 15}}, Total: 15},
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "Low", out["rank"])
	assert.InDelta(t, 15, out["calculatedScore"], 0.001)
	bd, ok := out["scoreBreakdown"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 15, bd["total"], 0.001)
	lead, ok := out["lead"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Acme", lead["company"])
}
