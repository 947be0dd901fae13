package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/atletiek"
)

// Ensure LoggingService implements atletiek.Service.
var _ atletiek.Service = (*LoggingService)(nil)

// LoggingService wraps a Service with debug logging. Each call logs whether
// the cache answered it and the age of the cached result.
type LoggingService struct {
	next   atletiek.Service
	logger *slog.Logger
}

// NewLoggingService creates a new LoggingService.
func NewLoggingService(next atletiek.Service, logger *slog.Logger) *LoggingService {
	return &LoggingService{next: next, logger: logger}
}

func (s *LoggingService) SearchCompetitions(ctx context.Context, q atletiek.CompetitionQuery) (competitions []*atletiek.CompetitionSummary, err error) {
	ctx, status := atletiek.WithCacheStatus(ctx)
	defer func(begin time.Time) {
		s.logger.Debug("search competitions",
			"start", q.Start.String(),
			"end", q.End.String(),
			"query", q.Query,
			"country", string(q.Country),
			"count", len(competitions),
			"cached", status.Hit,
			"age", status.Age,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchCompetitions(ctx, q)
}

func (s *LoggingService) GetCompetitionEvents(ctx context.Context, competitionID uint32) (events []*atletiek.CompetitionEvent, err error) {
	ctx, status := atletiek.WithCacheStatus(ctx)
	defer func(begin time.Time) {
		s.logger.Debug("get competition events",
			"competition_id", competitionID,
			"count", len(events),
			"cached", status.Hit,
			"age", status.Age,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.GetCompetitionEvents(ctx, competitionID)
}

func (s *LoggingService) GetRegistrations(ctx context.Context, competitionID uint32) (registrations []*atletiek.Registration, err error) {
	ctx, status := atletiek.WithCacheStatus(ctx)
	defer func(begin time.Time) {
		s.logger.Debug("get registrations",
			"competition_id", competitionID,
			"count", len(registrations),
			"cached", status.Hit,
			"age", status.Age,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.GetRegistrations(ctx, competitionID)
}

func (s *LoggingService) GetEventResults(ctx context.Context, participantID uint32) (results *atletiek.AthleteEventResults, err error) {
	ctx, status := atletiek.WithCacheStatus(ctx)
	defer func(begin time.Time) {
		var events int
		if results != nil {
			events = len(results.Results)
		}
		s.logger.Debug("get event results",
			"participant_id", participantID,
			"events", events,
			"cached", status.Hit,
			"age", status.Age,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.GetEventResults(ctx, participantID)
}

func (s *LoggingService) SearchAthletes(ctx context.Context, query string) (athletes []*atletiek.AthleteSummary, err error) {
	ctx, status := atletiek.WithCacheStatus(ctx)
	defer func(begin time.Time) {
		s.logger.Debug("search athletes",
			"query", query,
			"count", len(athletes),
			"cached", status.Hit,
			"age", status.Age,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchAthletes(ctx, query)
}

func (s *LoggingService) GetAthleteProfile(ctx context.Context, athleteID uint32) (profile *atletiek.AthleteProfile, err error) {
	ctx, status := atletiek.WithCacheStatus(ctx)
	defer func(begin time.Time) {
		s.logger.Debug("get athlete profile",
			"athlete_id", athleteID,
			"cached", status.Hit,
			"age", status.Age,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.GetAthleteProfile(ctx, athleteID)
}
