package atletiek

import "time"

// MeasurementThreshold is the largest raw measurement accepted as a real
// performance. The upstream encodes DNF/DNS/NM as sentinels like 9999998.
const MeasurementThreshold = 10000.0

// ItemKind discriminates the variants of EventResultItem.
type ItemKind string

// EventResultItem kinds.
const (
	ItemPosition    ItemKind = "position"
	ItemMeasurement ItemKind = "measurement"
	ItemPoints      ItemKind = "points"
)

// DNFReasonKind explains why a measurement was classified as DNF.
type DNFReasonKind string

// DNFReasonKind values.
const (
	DNFBelowZero      DNFReasonKind = "below_zero"
	DNFAboveThreshold DNFReasonKind = "above_threshold"
)

// DNFReason records why a measurement is DNF. Threshold is the literal limit
// that was exceeded and is only set for DNFAboveThreshold.
type DNFReason struct {
	Kind      DNFReasonKind `json:"kind"`
	Threshold float64       `json:"threshold,omitempty"`
}

// EventResultItem is a tagged variant: a position, a measurement or a points
// amount. Only the fields belonging to Kind are meaningful.
type EventResultItem struct {
	Kind ItemKind `json:"kind"`

	// ItemPosition
	Rank int `json:"rank,omitempty"`

	// ItemMeasurement
	Result    float64    `json:"result,omitempty"`
	WindSpeed *float64   `json:"windSpeed,omitempty"`
	DNF       bool       `json:"dnf,omitempty"`
	DNFReason *DNFReason `json:"dnfReason,omitempty"`

	// ItemPoints
	Amount int `json:"amount,omitempty"`
}

// PositionItem returns a position item.
func PositionItem(rank int) EventResultItem {
	return EventResultItem{Kind: ItemPosition, Rank: rank}
}

// PointsItem returns a points item.
func PointsItem(amount int) EventResultItem {
	return EventResultItem{Kind: ItemPoints, Amount: amount}
}

// NewMeasurement returns a measurement item, classifying implausible raw
// values as DNF. The raw value is kept in Result either way. Callers must
// not pass NaN.
func NewMeasurement(raw float64, windSpeed *float64) EventResultItem {
	item := EventResultItem{Kind: ItemMeasurement, Result: raw, WindSpeed: windSpeed}
	switch {
	case raw < 0:
		item.DNF = true
		item.DNFReason = &DNFReason{Kind: DNFBelowZero}
	case raw > MeasurementThreshold:
		item.DNF = true
		item.DNFReason = &DNFReason{Kind: DNFAboveThreshold, Threshold: MeasurementThreshold}
	}
	return item
}

// EventResult groups all result items of one event.
type EventResult struct {
	EventName string            `json:"eventName"`
	EventURL  string            `json:"eventUrl"`
	Items     []EventResultItem `json:"items"`
}

// TimetableSlot is one scheduled event in a competition timetable.
// Time is the upstream local wall-clock time, stored as UTC.
type TimetableSlot struct {
	Time         time.Time `json:"time"`
	StartListURL string    `json:"startListUrl"`
	Group        string    `json:"group"`
	EventShort   string    `json:"eventShort"`
	EventLong    string    `json:"eventLong"`
}

// Location is where a competition took place.
type Location struct {
	Place     string `json:"place"`
	Country   string `json:"country"`
	Continent string `json:"continent"`
	FlagURL   string `json:"flagUrl"`
}

// Participation is a competition an athlete took part in, as listed on
// their athlete pages. ParticipantID is zero when the row has no link.
type Participation struct {
	ParticipantID uint32   `json:"participantId"`
	Competition   string   `json:"competition"`
	Date          Date     `json:"date"`
	Location      Location `json:"location"`
}

// AthleteEventResults holds an athlete's results at a single competition.
type AthleteEventResults struct {
	Name             string           `json:"name"`
	CompetitionID    uint32           `json:"competitionId"`
	Results          []*EventResult   `json:"results"`
	Timetable        []*TimetableSlot `json:"timetable"`
	PastCompetitions []*Participation `json:"pastCompetitions"`
}

// TotalPoints returns the sum of all points items, or false if there are none.
func (r *AthleteEventResults) TotalPoints() (int, bool) {
	var total int
	var found bool
	for _, result := range r.Results {
		for _, item := range result.Items {
			if item.Kind == ItemPoints {
				total += item.Amount
				found = true
			}
		}
	}
	return total, found
}
