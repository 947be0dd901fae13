package atletiek

import "context"

// Service provides the cached operations over the upstream site.
type Service interface {
	// SearchCompetitions lists competitions in a date range.
	SearchCompetitions(ctx context.Context, q CompetitionQuery) ([]*CompetitionSummary, error)

	// GetCompetitionEvents returns the events of a competition that have a
	// start list, each once.
	GetCompetitionEvents(ctx context.Context, competitionID uint32) ([]*CompetitionEvent, error)

	// GetRegistrations returns a competition's registration list.
	// Returns ENOTFOUND if the competition or its list cannot be found.
	GetRegistrations(ctx context.Context, competitionID uint32) ([]*Registration, error)

	// GetEventResults returns a participant's results at a competition.
	// Returns ENOTFOUND if no results are published (yet).
	GetEventResults(ctx context.Context, participantID uint32) (*AthleteEventResults, error)

	// SearchAthletes finds athletes by name.
	SearchAthletes(ctx context.Context, query string) ([]*AthleteSummary, error)

	// GetAthleteProfile returns an athlete's profile.
	// Returns ENOTFOUND if the athlete does not exist.
	GetAthleteProfile(ctx context.Context, athleteID uint32) (*AthleteProfile, error)
}
