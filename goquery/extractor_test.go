package goquery_test

import (
	"bytes"
	"log/slog"

	"github.com/fwojciec/atletiek/goquery"
)

// newLoggedExtractor returns an extractor whose diagnostics go to buf.
func newLoggedExtractor(buf *bytes.Buffer) *goquery.Extractor {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return goquery.NewExtractor(goquery.WithLogger(logger))
}
