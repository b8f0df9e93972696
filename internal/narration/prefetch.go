package narration

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Prefetch fills the cache for every text, running at most limit syntheses
// at once. It stops at the first error.
func Prefetch(ctx context.Context, s Synthesizer, cache Cache, texts []string, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, text := range texts {
		g.Go(func() error {
			_, err := cache.Ensure(ctx, s, text)
			return err
		})
	}
	return g.Wait()
}
