package atletiek

import (
	"fmt"
	"strings"
	"time"
)

// RequestKind identifies a cached operation.
type RequestKind string

// RequestKind values, one per Service operation.
const (
	KindSearchCompetitions RequestKind = "search_competitions"
	KindCompetitionEvents  RequestKind = "competition_events"
	KindRegistrations      RequestKind = "registrations"
	KindResults            RequestKind = "results"
	KindSearchAthletes     RequestKind = "search_athletes"
	KindAthleteProfile     RequestKind = "athlete_profile"
)

// RequestKey describes a logical request by exactly the parameters that
// determine its result. It is comparable and used as the cache's primary
// key. Build keys with the New*Key constructors so that equivalent requests
// normalise to equal keys.
type RequestKey struct {
	Kind    RequestKind `json:"kind"`
	Start   Date        `json:"start,omitzero"`
	End     Date        `json:"end,omitzero"`
	Query   string      `json:"query,omitempty"`
	Country Country     `json:"country,omitempty"`
	ID      uint32      `json:"id,omitempty"`
}

// NewSearchCompetitionsKey returns the key of a competition search.
// An empty country means DefaultCountry.
func NewSearchCompetitionsKey(start, end Date, query string, country Country) RequestKey {
	if country == "" {
		country = DefaultCountry
	}
	return RequestKey{
		Kind:    KindSearchCompetitions,
		Start:   start,
		End:     end,
		Query:   normalizeQuery(query),
		Country: country,
	}
}

// NewCompetitionEventsKey returns the key of a competition's start-list events.
func NewCompetitionEventsKey(competitionID uint32) RequestKey {
	return RequestKey{Kind: KindCompetitionEvents, ID: competitionID}
}

// NewRegistrationsKey returns the key of a competition's registration list.
func NewRegistrationsKey(competitionID uint32) RequestKey {
	return RequestKey{Kind: KindRegistrations, ID: competitionID}
}

// NewResultsKey returns the key of a participant's event results.
func NewResultsKey(participantID uint32) RequestKey {
	return RequestKey{Kind: KindResults, ID: participantID}
}

// NewSearchAthletesKey returns the key of an athlete search.
func NewSearchAthletesKey(query string) RequestKey {
	return RequestKey{Kind: KindSearchAthletes, Query: normalizeQuery(query)}
}

// NewAthleteProfileKey returns the key of an athlete profile.
func NewAthleteProfileKey(athleteID uint32) RequestKey {
	return RequestKey{Kind: KindAthleteProfile, ID: athleteID}
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// TTL returns how long a cached result for the key stays valid.
func (k RequestKey) TTL() time.Duration {
	switch k.Kind {
	case KindResults:
		return 24 * time.Hour
	default:
		return 12 * time.Hour
	}
}

// Validate returns an error if the key is not one a constructor could produce.
func (k RequestKey) Validate() error {
	switch k.Kind {
	case KindSearchCompetitions:
		if k.Start.IsZero() || k.End.IsZero() {
			return Errorf(EINVALID, "search key requires start and end date")
		}
		if _, err := ParseCountry(string(k.Country)); err != nil {
			return err
		}
	case KindCompetitionEvents, KindRegistrations, KindResults, KindAthleteProfile:
		if k.ID == 0 {
			return Errorf(EINVALID, "%s key requires an id", k.Kind)
		}
	case KindSearchAthletes:
	default:
		return Errorf(EINVALID, "unknown request kind %q", k.Kind)
	}
	if k.Query != normalizeQuery(k.Query) {
		return Errorf(EINVALID, "query %q is not normalized", k.Query)
	}
	return nil
}

// String returns a canonical representation of the key.
// Equal keys have equal strings.
func (k RequestKey) String() string {
	switch k.Kind {
	case KindSearchCompetitions:
		return fmt.Sprintf("%s:%s:%s:%s:%q", k.Kind, k.Start, k.End, k.Country, k.Query)
	case KindSearchAthletes:
		return fmt.Sprintf("%s:%q", k.Kind, k.Query)
	default:
		return fmt.Sprintf("%s:%d", k.Kind, k.ID)
	}
}
