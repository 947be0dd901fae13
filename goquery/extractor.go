// Package goquery implements atletiek.Extractor on top of goquery.
//
// Every page kind has one or more known layouts. Layouts are detected with
// ordered shape probes; the first probe whose anchor matches decides how the
// page is read. Malformed rows and fields are logged and skipped so that one
// bad row cannot blank out an entire page.
package goquery

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/atletiek"
)

// Ensure Extractor implements atletiek.Extractor at compile time.
var _ atletiek.Extractor = (*Extractor)(nil)

// Extractor parses atletiek.nu pages into domain records.
// It is stateless and safe for concurrent use.
type Extractor struct {
	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger that receives diagnostics about skipped rows
// and fields. Defaults to discarding them.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithClock sets the clock used when a page omits a date that has to be
// assumed to be today.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// pageShape is one known layout of a page kind, recognised by its anchor.
type pageShape struct {
	name   string
	anchor string
}

// detectShape returns the first shape whose anchor matches the document,
// together with the matched anchor element.
func detectShape(doc *goquery.Document, shapes []pageShape) (pageShape, *goquery.Selection, bool) {
	for _, shape := range shapes {
		if sel := doc.Find(shape.anchor).First(); sel.Length() > 0 {
			return shape, sel, true
		}
	}
	return pageShape{}, nil, false
}

func parseDocument(page string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, atletiek.Errorf(atletiek.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// fieldErrorf returns a recoverable error about a single row or field.
func fieldErrorf(format string, args ...any) error {
	return atletiek.Errorf(atletiek.EINVALID, format, args...)
}

var digitsRe = regexp.MustCompile(`\d+`)

// firstID returns the first run of digits in s.
func firstID(s string) (uint32, bool) {
	return parseUint32(digitsRe.FindString(s))
}

// lastID returns the last run of digits in s.
func lastID(s string) (uint32, bool) {
	all := digitsRe.FindAllString(s, -1)
	if len(all) == 0 {
		return 0, false
	}
	return parseUint32(all[len(all)-1])
}

func parseUint32(s string) (uint32, bool) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// parseCompactDate parses the leading YYYYMMDD of s.
func parseCompactDate(s string) (atletiek.Date, error) {
	digits := digitsRe.FindString(s)
	if len(digits) < 8 {
		return atletiek.Date{}, fieldErrorf("no YYYYMMDD date in %q", s)
	}
	t, err := time.Parse("20060102", digits[:8])
	if err != nil {
		return atletiek.Date{}, fieldErrorf("invalid date %q: %v", s, err)
	}
	return atletiek.DateOf(t), nil
}

// windSpeed parses a wind speed and logs when there is none.
func (e *Extractor) windSpeed(text string, attrs ...any) *float64 {
	v, ok := atletiek.ParseWindSpeed(text)
	if !ok {
		e.logger.Warn("no wind speed", append([]any{"text", normalizeSpace(text)}, attrs...)...)
		return nil
	}
	return &v
}
