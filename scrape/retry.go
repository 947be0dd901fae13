package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/atletiek"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches url, retrying failed attempts after each delay in
// turn. The first attempt must already have been admitted by the gate;
// every retry waits for the gate again. Failures are reported as EFETCH.
func FetchWithRetry(ctx context.Context, url string, fetcher atletiek.Fetcher, gate atletiek.Gate, logger *slog.Logger, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			logger.Warn("retrying fetch", "url", url, "attempt", attempt+1, "err", lastErr)

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delays[attempt-1]):
			}

			if err := gate.Acquire(ctx); err != nil {
				return "", err
			}
		}

		html, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err
	}

	if atletiek.ErrorCode(lastErr) == atletiek.EFETCH {
		return "", lastErr
	}
	return "", atletiek.Errorf(atletiek.EFETCH, "fetch %s: %v", url, lastErr)
}
