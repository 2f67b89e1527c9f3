package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscout/internal/model"
)

func TestResolveYear(t *testing.T) {
	now := time.Date(2027, time.June, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 2024, resolveYear(2024, 2025, now))
	assert.Equal(t, 2025, resolveYear(0, 2025, now))
	assert.Equal(t, 2027, resolveYear(0, 0, now))
}

func TestValidateVariant(t *testing.T) {
	assert.NoError(t, validateVariant("funding"))
	assert.NoError(t, validateVariant("person"))
	assert.Error(t, validateVariant("Funding"))
	assert.Error(t, validateVariant(""))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("", "a", "b"))
	assert.Equal(t, "", firstNonEmpty("", ""))
	assert.Equal(t, "", firstNonEmpty())
}

func TestRankPeople_YearFromClock(t *testing.T) {
	c := testConfig()

	// Publications from 2025 stay recent in 2026 but not a decade later.
	_, recent, err := rankPeople(context.Background(), c, "", testNow)
	require.NoError(t, err)
	_, later, err := rankPeople(context.Background(), c, "", testNow.AddDate(10, 0, 0))
	require.NoError(t, err)

	assert.Greater(t, totalScore(recent), totalScore(later))

	c.Scoring.CurrentYear = 2026
	_, pinned, err := rankPeople(context.Background(), c, "", testNow.AddDate(10, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, totalScore(recent), totalScore(pinned))
}

func TestRankFunding_ConfiguredSource(t *testing.T) {
	c := testConfig()
	c.Source.FundingPath = "missing.json"

	_, _, err := rankFunding(context.Background(), c, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load funding leads")
}

func totalScore(scored []model.Scored[model.PersonLead]) int {
	n := 0
	for _, s := range scored {
		n += s.Score
	}
	return n
}
