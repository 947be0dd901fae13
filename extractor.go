package atletiek

// Extractor turns upstream pages into typed records.
//
// A page that does not have the expected shape yields ENOTFOUND, and a
// recognised but unsupported page format yields EUNSUPPORTED. Problems with
// individual rows or fields are not errors: the offending field or row is
// skipped.
type Extractor interface {
	// ExtractCompetitions parses a competition search result page.
	ExtractCompetitions(html string) ([]*CompetitionSummary, error)

	// ExtractAthletes parses an athlete search result page.
	ExtractAthletes(html string) ([]*AthleteSummary, error)

	// ExtractCompetitionEvents parses a competition's timetable for the
	// events that have a start list.
	ExtractCompetitionEvents(html string) ([]*CompetitionEvent, error)

	// ExtractRegistrations parses a competition's registration list.
	ExtractRegistrations(html string) ([]*Registration, error)

	// ExtractEventResults parses a participant's results page.
	ExtractEventResults(html string) (*AthleteEventResults, error)

	// ExtractAthleteProfile parses an athlete's profile page.
	ExtractAthleteProfile(html string) (*AthleteProfile, error)
}
