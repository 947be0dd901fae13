package atletiek

import "context"

// Fetcher retrieves the raw HTML of an upstream page.
type Fetcher interface {
	// Fetch returns the body of the page at url.
	// Upstream and network failures are reported with code EFETCH.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}

// Gate bounds the rate of upstream fetches.
type Gate interface {
	// Acquire blocks until a fetch may proceed.
	// Returns an error if the context is canceled first.
	Acquire(ctx context.Context) error
}
