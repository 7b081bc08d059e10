package services

import (
	"context"

	"github.com/naturecards/social/internal/gallery"
	"github.com/naturecards/social/internal/models"
	"golang.org/x/sync/errgroup"
)

// fetchPair loads the current user's document and another user's document
// concurrently. Either failure fails the pair.
func fetchPair(ctx context.Context, store gallery.Store, userID, otherID string) (*models.UserDocument, *models.UserDocument, error) {
	var me, other *models.UserDocument

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := gallery.FetchCurrentUser(gctx, store, userID)
		me = doc
		return err
	})
	g.Go(func() error {
		doc, err := store.FetchUser(gctx, otherID)
		other = doc
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return me, other, nil
}

// writePair writes both documents concurrently and waits for both to finish.
// The group has no shared context, so one failing write never cancels the other,
// and nothing is rolled back: a failed pair can leave the two documents out of step.
func writePair(ctx context.Context, store gallery.Store, a, b *models.UserDocument) error {
	var g errgroup.Group
	g.Go(func() error { return store.WriteUser(ctx, a) })
	g.Go(func() error { return store.WriteUser(ctx, b) })
	return g.Wait()
}

// collect runs fn for every index in [0, n) with at most limit calls in flight and
// returns the successful results in index order. Failed items are skipped; fn is
// expected to log its own failure.
func collect[T any](ctx context.Context, limit, n int, fn func(ctx context.Context, i int) (T, error)) []T {
	results := make([]T, n)
	ok := make([]bool, n)

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			v, err := fn(ctx, i)
			if err != nil {
				return nil
			}
			results[i] = v
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	out := make([]T, 0, n)
	for i, v := range results {
		if ok[i] {
			out = append(out, v)
		}
	}
	return out
}
