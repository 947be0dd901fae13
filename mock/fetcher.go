package mock

import (
	"context"

	"github.com/fwojciec/atletiek"
)

var _ atletiek.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of atletiek.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ atletiek.Gate = (*Gate)(nil)

// Gate is a mock implementation of atletiek.Gate.
type Gate struct {
	AcquireFn func(ctx context.Context) error
}

func (g *Gate) Acquire(ctx context.Context) error {
	return g.AcquireFn(ctx)
}
