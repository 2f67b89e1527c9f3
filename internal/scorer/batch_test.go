package scorer

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sells-group/leadscout/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestScoreAll_PreservesInputOrder(t *testing.T) {
	r := defaultFundingRubric(t)
	rng := rand.New(rand.NewPCG(3, 5))

	leads := make([]model.FundingLead, 200)
	for i := range leads {
		leads[i] = randomFundingLead(rng)
		leads[i].ID = fmt.Sprintf("lead-%03d", i)
	}

	for _, c := range []int{0, 1, 4, 32} {
		t.Run(fmt.Sprintf("concurrency=%d", c), func(t *testing.T) {
			got, err := r.ScoreAll(context.Background(), leads, c)
			require.NoError(t, err)
			require.Len(t, got, len(leads))
			for i := range leads {
				assert.Equal(t, leads[i].ID, got[i].Lead.ID)
				assert.Equal(t, r.Score(leads[i]), got[i])
			}
		})
	}
}

func TestScoreAll_Empty(t *testing.T) {
	r := defaultFundingRubric(t)
	got, err := r.ScoreAll(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScoreAll_CancelledContext(t *testing.T) {
	r := defaultFundingRubric(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ScoreAll(ctx, []model.FundingLead{{Round: "Series A"}}, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "scorer: score funding batch")
}

func TestSortByScore_StableDescending(t *testing.T) {
	in := []model.Scored[string]{
		{Lead: "a", Score: 40},
		{Lead: "b", Score: 90},
		{Lead: "c", Score: 40},
		{Lead: "d", Score: 100},
		{Lead: "e", Score: 40},
		{Lead: "f", Score: 0},
	}

	got := SortByScore(in)

	var order []string
	for _, s := range got {
		order = append(order, s.Lead)
	}
	assert.Equal(t, []string{"d", "b", "a", "c", "e", "f"}, order)
	assert.Equal(t, "a", in[0].Lead, "input must not be reordered")
}

func TestSortByScore_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	in := make([]model.Scored[int], 100)
	for i := range in {
		in[i] = model.Scored[int]{Lead: i, Score: rng.IntN(10) * 10}
	}

	once := SortByScore(in)
	twice := SortByScore(once)
	assert.Equal(t, once, twice)

	for i := 1; i < len(once); i++ {
		assert.GreaterOrEqual(t, once[i-1].Score, once[i].Score)
		if once[i-1].Score == once[i].Score {
			assert.Less(t, once[i-1].Lead, once[i].Lead)
		}
	}
}

func TestRank(t *testing.T) {
	r := defaultFundingRubric(t)
	leads := []model.FundingLead{
		{ID: "seed", Round: "Seed", Amount: 5_000_000, HiringTier: model.HiringTierC},
		{ID: "top", Round: "Series B", Amount: 60_000_000, Investors: []string{"Sequoia Capital"}, HiringTier: model.HiringTierA, TechRoles: 12},
		{ID: "mid", Round: "Series A", Amount: 12_000_000},
		{ID: "mid-twin", Round: "Series C", Amount: 15_000_000},
	}

	got, err := r.Rank(context.Background(), leads, 2)
	require.NoError(t, err)
	require.Len(t, got, 4)

	ids := make([]string, len(got))
	for i, s := range got {
		ids[i] = s.Lead.ID
	}
	assert.Equal(t, []string{"top", "mid", "mid-twin", "seed"}, ids)
	assert.Equal(t, []int{100, 40, 40, 0}, []int{got[0].Score, got[1].Score, got[2].Score, got[3].Score})
}

func TestCountRank(t *testing.T) {
	in := []model.Scored[int]{
		{Rank: model.RankHigh},
		{Rank: model.RankVeryHigh},
		{Rank: model.RankHigh},
	}
	assert.Equal(t, 2, countRank(in, model.RankHigh))
	assert.Equal(t, 1, countRank(in, model.RankVeryHigh))
	assert.Zero(t, countRank(in, model.RankLow))
}
