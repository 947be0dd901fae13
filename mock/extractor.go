package mock

import "github.com/fwojciec/atletiek"

var _ atletiek.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of atletiek.Extractor.
type Extractor struct {
	ExtractCompetitionsFn      func(html string) ([]*atletiek.CompetitionSummary, error)
	ExtractAthletesFn          func(html string) ([]*atletiek.AthleteSummary, error)
	ExtractCompetitionEventsFn func(html string) ([]*atletiek.CompetitionEvent, error)
	ExtractRegistrationsFn     func(html string) ([]*atletiek.Registration, error)
	ExtractEventResultsFn      func(html string) (*atletiek.AthleteEventResults, error)
	ExtractAthleteProfileFn    func(html string) (*atletiek.AthleteProfile, error)
}

func (e *Extractor) ExtractCompetitions(html string) ([]*atletiek.CompetitionSummary, error) {
	return e.ExtractCompetitionsFn(html)
}

func (e *Extractor) ExtractAthletes(html string) ([]*atletiek.AthleteSummary, error) {
	return e.ExtractAthletesFn(html)
}

func (e *Extractor) ExtractCompetitionEvents(html string) ([]*atletiek.CompetitionEvent, error) {
	return e.ExtractCompetitionEventsFn(html)
}

func (e *Extractor) ExtractRegistrations(html string) ([]*atletiek.Registration, error) {
	return e.ExtractRegistrationsFn(html)
}

func (e *Extractor) ExtractEventResults(html string) (*atletiek.AthleteEventResults, error) {
	return e.ExtractEventResultsFn(html)
}

func (e *Extractor) ExtractAthleteProfile(html string) (*atletiek.AthleteProfile, error) {
	return e.ExtractAthleteProfileFn(html)
}
