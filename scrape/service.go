// Package scrape implements atletiek.Service: every operation consults the
// request cache, waits for the admission gate on a miss, fetches and
// extracts the upstream page and stores the encoded result.
package scrape

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/fwojciec/atletiek"
)

// Ensure Service implements atletiek.Service at compile time.
var _ atletiek.Service = (*Service)(nil)

// Service is the cached facade over the upstream site.
type Service struct {
	fetcher   atletiek.Fetcher
	extractor atletiek.Extractor
	cache     atletiek.Cache
	gate      atletiek.Gate

	urls        urlBuilder
	retryDelays []time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithBaseURL sets the upstream base URL. Defaults to DefaultBaseURL.
func WithBaseURL(base string) Option {
	return func(s *Service) {
		s.urls = urlBuilder{base: base}
	}
}

// WithRetryDelays sets the delays between fetch retries.
// Defaults to DefaultRetryDelays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(s *Service) {
		s.retryDelays = delays
	}
}

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock sets the clock used to report the age of cached results.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new Service.
func NewService(fetcher atletiek.Fetcher, extractor atletiek.Extractor, cache atletiek.Cache, gate atletiek.Gate, opts ...Option) *Service {
	s := &Service{
		fetcher:     fetcher,
		extractor:   extractor,
		cache:       cache,
		gate:        gate,
		urls:        urlBuilder{base: DefaultBaseURL},
		retryDelays: DefaultRetryDelays(),
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchCompetitions lists competitions between q.Start and q.End.
func (s *Service) SearchCompetitions(ctx context.Context, q atletiek.CompetitionQuery) ([]*atletiek.CompetitionSummary, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	key := atletiek.NewSearchCompetitionsKey(q.Start, q.End, q.Query, q.Country)
	if err := key.Validate(); err != nil {
		return nil, err
	}
	return cached(ctx, s, key, s.urls.competitions(key), s.extractor.ExtractCompetitions)
}

// GetCompetitionEvents returns the start-list events of a competition.
func (s *Service) GetCompetitionEvents(ctx context.Context, competitionID uint32) ([]*atletiek.CompetitionEvent, error) {
	if competitionID == 0 {
		return nil, atletiek.Errorf(atletiek.EINVALID, "competition id required")
	}
	key := atletiek.NewCompetitionEventsKey(competitionID)
	return cached(ctx, s, key, s.urls.competitionEvents(key), s.extractor.ExtractCompetitionEvents)
}

// GetRegistrations returns the registration list of a competition.
func (s *Service) GetRegistrations(ctx context.Context, competitionID uint32) ([]*atletiek.Registration, error) {
	if competitionID == 0 {
		return nil, atletiek.Errorf(atletiek.EINVALID, "competition id required")
	}
	key := atletiek.NewRegistrationsKey(competitionID)
	return cached(ctx, s, key, s.urls.registrations(key), s.extractor.ExtractRegistrations)
}

// GetEventResults returns a participant's results at one competition.
func (s *Service) GetEventResults(ctx context.Context, participantID uint32) (*atletiek.AthleteEventResults, error) {
	if participantID == 0 {
		return nil, atletiek.Errorf(atletiek.EINVALID, "participant id required")
	}
	key := atletiek.NewResultsKey(participantID)
	return cached(ctx, s, key, s.urls.results(key), s.extractor.ExtractEventResults)
}

// SearchAthletes finds athletes whose name matches query.
func (s *Service) SearchAthletes(ctx context.Context, query string) ([]*atletiek.AthleteSummary, error) {
	key := atletiek.NewSearchAthletesKey(query)
	if key.Query == "" {
		return nil, atletiek.Errorf(atletiek.EINVALID, "search query required")
	}
	return cached(ctx, s, key, s.urls.athletes(key), s.extractor.ExtractAthletes)
}

// GetAthleteProfile returns an athlete's profile.
func (s *Service) GetAthleteProfile(ctx context.Context, athleteID uint32) (*atletiek.AthleteProfile, error) {
	if athleteID == 0 {
		return nil, atletiek.Errorf(atletiek.EINVALID, "athlete id required")
	}
	key := atletiek.NewAthleteProfileKey(athleteID)
	return cached(ctx, s, key, s.urls.profile(key), s.extractor.ExtractAthleteProfile)
}

// cached serves key from the cache or loads it from url.
//
// Once the gate admits the call, loading runs detached from ctx: a caller
// that gives up still gets the result stored for the next caller. A
// CacheStatus carried by ctx records whether the cache answered and the age
// of the entry.
func cached[T any](ctx context.Context, s *Service, key atletiek.RequestKey, url string, extract func(string) (T, error)) (T, error) {
	var zero T

	status := atletiek.CacheStatusFrom(ctx)
	if status != nil {
		*status = atletiek.CacheStatus{}
	}

	if e, ok := s.cache.Lookup(key); ok {
		var v T
		err := json.Unmarshal(e.Payload, &v)
		if err == nil {
			if status != nil {
				*status = atletiek.CacheStatus{Hit: true, CreatedAt: e.CreatedAt, Age: e.Age(s.now())}
			}
			return v, nil
		}
		s.logger.Warn("discarding undecodable cache entry", "key", key.String(), "err", err)
	}

	if err := s.gate.Acquire(ctx); err != nil {
		return zero, err
	}

	type outcome struct {
		v   T
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := load(context.WithoutCancel(ctx), s, key, url, extract)
		done <- outcome{v: v, err: err}
	}()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case o := <-done:
		return o.v, o.err
	}
}

// load fetches, extracts and caches a result. The cache is only written
// on success.
func load[T any](ctx context.Context, s *Service, key atletiek.RequestKey, url string, extract func(string) (T, error)) (T, error) {
	var zero T

	html, err := FetchWithRetry(ctx, url, s.fetcher, s.gate, s.logger, s.retryDelays)
	if err != nil {
		return zero, err
	}

	v, err := extract(html)
	if err != nil {
		return zero, err
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return zero, atletiek.Errorf(atletiek.EINTERNAL, "encode %s: %v", key, err)
	}
	s.cache.Insert(key, payload)

	return v, nil
}
