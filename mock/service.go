package mock

import (
	"context"

	"github.com/fwojciec/atletiek"
)

var _ atletiek.Service = (*Service)(nil)

// Service is a mock implementation of atletiek.Service.
type Service struct {
	SearchCompetitionsFn   func(ctx context.Context, q atletiek.CompetitionQuery) ([]*atletiek.CompetitionSummary, error)
	GetCompetitionEventsFn func(ctx context.Context, competitionID uint32) ([]*atletiek.CompetitionEvent, error)
	GetRegistrationsFn     func(ctx context.Context, competitionID uint32) ([]*atletiek.Registration, error)
	GetEventResultsFn      func(ctx context.Context, participantID uint32) (*atletiek.AthleteEventResults, error)
	SearchAthletesFn       func(ctx context.Context, query string) ([]*atletiek.AthleteSummary, error)
	GetAthleteProfileFn    func(ctx context.Context, athleteID uint32) (*atletiek.AthleteProfile, error)
}

func (s *Service) SearchCompetitions(ctx context.Context, q atletiek.CompetitionQuery) ([]*atletiek.CompetitionSummary, error) {
	return s.SearchCompetitionsFn(ctx, q)
}

func (s *Service) GetCompetitionEvents(ctx context.Context, competitionID uint32) ([]*atletiek.CompetitionEvent, error) {
	return s.GetCompetitionEventsFn(ctx, competitionID)
}

func (s *Service) GetRegistrations(ctx context.Context, competitionID uint32) ([]*atletiek.Registration, error) {
	return s.GetRegistrationsFn(ctx, competitionID)
}

func (s *Service) GetEventResults(ctx context.Context, participantID uint32) (*atletiek.AthleteEventResults, error) {
	return s.GetEventResultsFn(ctx, participantID)
}

func (s *Service) SearchAthletes(ctx context.Context, query string) ([]*atletiek.AthleteSummary, error) {
	return s.SearchAthletesFn(ctx, query)
}

func (s *Service) GetAthleteProfile(ctx context.Context, athleteID uint32) (*atletiek.AthleteProfile, error) {
	return s.GetAthleteProfileFn(ctx, athleteID)
}
