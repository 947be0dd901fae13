package atletiek

// CompetitionSummary is one row of a competition search.
type CompetitionSummary struct {
	ID               uint32 `json:"id"`
	Name             string `json:"name"`
	Date             Date   `json:"date"`
	Location         string `json:"location"`
	Club             string `json:"club"`
	Registrations    uint32 `json:"registrations"`
	ResultsAvailable bool   `json:"resultsAvailable"`
	ClubMembersOnly  bool   `json:"clubMembersOnly"`

	// Only reported by the legacy app listing.
	WorldAthleticsRecognized bool `json:"worldAthleticsRecognized,omitempty"`
}

// CompetitionQuery holds the parameters of a competition search.
type CompetitionQuery struct {
	Start   Date
	End     Date
	Query   string
	Country Country
}

// Validate returns an error if the query contains invalid fields.
func (q *CompetitionQuery) Validate() error {
	if q.Start.IsZero() || q.End.IsZero() {
		return Errorf(EINVALID, "start and end date required")
	}
	if q.End.Before(q.Start) {
		return Errorf(EINVALID, "end date is before start date")
	}
	return nil
}

// AthleteSummary is one row of an athlete search.
type AthleteSummary struct {
	ID       uint32 `json:"id"`
	Name     string `json:"name"`
	ClubName string `json:"clubName"`
	Age      uint8  `json:"age"`
}

// CompetitionEvent identifies the start list of one event of a competition,
// as linked from /wedstrijd/startlijst/{competition}/{event}/.
type CompetitionEvent struct {
	CompetitionID uint32 `json:"competitionId"`
	EventID       uint32 `json:"eventId"`
}
