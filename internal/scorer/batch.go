package scorer

import (
	"cmp"
	"context"
	"slices"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadscout/internal/model"
)

// ScoreAll scores every lead with up to concurrency workers. Results keep
// the input order.
func (r *Rubric[T]) ScoreAll(ctx context.Context, leads []T, concurrency int) ([]model.Scored[T], error) {
	if concurrency < 1 {
		concurrency = 1
	}

	out := make([]model.Scored[T], len(leads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range leads {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = r.Score(leads[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrapf(err, "scorer: score %s batch", r.Name)
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrapf(err, "scorer: score %s batch", r.Name)
	}

	return out, nil
}

// SortByScore returns a copy of scored ordered by score descending. The sort
// is stable, so equal scores keep their input order.
func SortByScore[T any](scored []model.Scored[T]) []model.Scored[T] {
	out := slices.Clone(scored)
	slices.SortStableFunc(out, func(a, b model.Scored[T]) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

// Rank scores and sorts leads into priority order.
func (r *Rubric[T]) Rank(ctx context.Context, leads []T, concurrency int) ([]model.Scored[T], error) {
	scored, err := r.ScoreAll(ctx, leads, concurrency)
	if err != nil {
		return nil, err
	}
	ranked := SortByScore(scored)

	zap.L().Info("scorer: ranked leads",
		zap.String("rubric", r.Name),
		zap.String("rubric_hash", r.Hash),
		zap.Int("leads", len(ranked)),
		zap.Int("very_high", countRank(ranked, model.RankVeryHigh)),
		zap.Int("high", countRank(ranked, model.RankHigh)),
	)

	return ranked, nil
}

func countRank[T any](scored []model.Scored[T], rank model.Rank) int {
	n := 0
	for i := range scored {
		if scored[i].Rank == rank {
			n++
		}
	}
	return n
}
