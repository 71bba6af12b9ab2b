package app

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/domain"
)

// Aggregate fetches every source concurrently and concatenates the results
// in source order, each source's internal order preserved. A failed source
// contributes an empty sequence instead of failing the whole view; no
// deduplication is attempted.
func Aggregate(ctx context.Context, sources ...domain.Source) []domain.Review {
	results := make([][]domain.Review, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			rs, err := src.Fetch(gctx)
			if err != nil {
				log.Warn().Err(err).Str("source", src.Label()).Msg("source fetch degraded to empty")
				observability.ObserveSourceFetch(src.Label(), "degraded")
				return nil
			}
			results[i] = rs
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors

	var out []domain.Review
	for _, rs := range results {
		out = append(out, rs...)
	}
	return out
}
