package atletiek

import "strings"

// EventStatus is the registration status of a single event entry.
type EventStatus string

// EventStatus values. EventStatusUnknown is used when the page renders no
// explicit status, or one that is not recognised.
const (
	EventStatusAccepted   EventStatus = "accepted"
	EventStatusCancelled  EventStatus = "cancelled"
	EventStatusRejected   EventStatus = "rejected"
	EventStatusReserve    EventStatus = "reserve"
	EventStatusUnverified EventStatus = "unverified"
	EventStatusCheckedIn  EventStatus = "checked-in"
	EventStatusUnknown    EventStatus = "unknown"
)

var eventStatusKeywords = map[string]EventStatus{
	"accepted":     EventStatusAccepted,
	"geaccepteerd": EventStatusAccepted,
	"cancelled":    EventStatusCancelled,
	"canceled":     EventStatusCancelled,
	"afgemeld":     EventStatusCancelled,
	"rejected":     EventStatusRejected,
	"afgewezen":    EventStatusRejected,
	"reserve":      EventStatusReserve,
	"unverified":   EventStatusUnverified,
	"onbevestigd":  EventStatusUnverified,
	"checked-in":   EventStatusCheckedIn,
	"checked in":   EventStatusCheckedIn,
	"checkedin":    EventStatusCheckedIn,
	"ingecheckt":   EventStatusCheckedIn,
}

// ParseEventStatus maps a status keyword to an EventStatus, case-insensitively.
// A "Status:" style prefix is ignored. The second return value is false when
// the keyword is not recognised, in which case EventStatusUnknown is returned.
func ParseEventStatus(keyword string) (EventStatus, bool) {
	s := strings.ToLower(strings.TrimSpace(keyword))
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = strings.TrimSpace(s[i+1:])
	}
	if status, ok := eventStatusKeywords[s]; ok {
		return status, true
	}
	return EventStatusUnknown, false
}

// EventEntry is one event a participant registered for.
type EventEntry struct {
	Name   string      `json:"name"`
	Status EventStatus `json:"status"`
}

// RelayTeam references a relay team a participant is part of.
type RelayTeam struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

// Registration is a participant entry on a competition's registration list.
type Registration struct {
	ParticipantID    uint32       `json:"participantId"`
	Name             string       `json:"name"`
	Category         string       `json:"category"`
	ClubShort        string       `json:"clubShort"`
	ClubLong         string       `json:"clubLong"`
	TeamName         *string      `json:"teamName,omitempty"`
	RelayTeams       []RelayTeam  `json:"relayTeams"`
	Events           []EventEntry `json:"events"`
	OutOfCompetition bool         `json:"outOfCompetition"`
	BibNumber        *uint32      `json:"bibNumber,omitempty"`
}

// HasEvent reports whether the registration contains the event with the given status.
func (r *Registration) HasEvent(name string, status EventStatus) bool {
	for _, e := range r.Events {
		if e.Name == name && e.Status == status {
			return true
		}
	}
	return false
}
