// Package slog provides log/slog decorators for atletiek services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/atletiek"
	"github.com/google/uuid"
)

// Ensure LoggingFetcher implements atletiek.Fetcher.
var _ atletiek.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. Every fetch is tagged with a
// request id so that retries of the same page can be told apart.
type LoggingFetcher struct {
	next   atletiek.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next atletiek.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	id := uuid.NewString()
	f.logger.Debug("fetch started", "request_id", id, "url", url)
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		f.logger.Log(ctx, level, "fetch",
			"request_id", id,
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
