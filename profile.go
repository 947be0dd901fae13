package atletiek

import "encoding/json"

// AttributeKind discriminates the variants of Attribute.
type AttributeKind string

// AttributeKind values.
const (
	AttributeAll    AttributeKind = "all"
	AttributeWeight AttributeKind = "weight"
	AttributeHeight AttributeKind = "height"
)

// Attribute is an implement specification of an event, such as the weight
// of a shot or the height of a hurdle. Weights are in kilograms, heights in
// meters. AttributeAll means "no sub-specification" and carries no value.
type Attribute struct {
	Kind  AttributeKind `json:"kind"`
	Value float64       `json:"value,omitempty"`
}

// AllAttribute returns the attribute that matches every specification.
func AllAttribute() Attribute {
	return Attribute{Kind: AttributeAll}
}

// WeightAttribute returns a weight attribute in kilograms.
func WeightAttribute(kg float64) Attribute {
	return Attribute{Kind: AttributeWeight, Value: kg}
}

// HeightAttribute returns a height attribute in meters.
func HeightAttribute(m float64) Attribute {
	return Attribute{Kind: AttributeHeight, Value: m}
}

// PersonalBest is one row of an athlete's personal records.
type PersonalBest struct {
	Event        string     `json:"event"`
	Performance  float64    `json:"performance"`
	Display      string     `json:"display"`
	WindSpeed    *float64   `json:"windSpeed,omitempty"`
	HandMeasured bool       `json:"handMeasured"`
	Location     string     `json:"location"`
	Country      string     `json:"country"`
	Date         Date       `json:"date"`
	NotImportant bool       `json:"notImportant"`
	Attribute    *Attribute `json:"attribute,omitempty"`
}

// GraphPoint is one performance in a performance-history graph.
type GraphPoint struct {
	Date        Date    `json:"date"`
	Performance float64 `json:"performance"`
}

// MarshalJSON encodes the point as a [date, performance] pair.
func (p GraphPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Date, p.Performance})
}

// UnmarshalJSON decodes a [date, performance] pair.
func (p *GraphPoint) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return Errorf(EINVALID, "graph point: expected 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &p.Date); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &p.Performance)
}

// EventGraph is the performance history of one event and specification.
type EventGraph struct {
	Specification Attribute    `json:"specification"`
	Event         string       `json:"event"`
	EventID       uint32       `json:"eventId"`
	Points        []GraphPoint `json:"points"`
}

// AthleteProfile holds an athlete's profile page.
type AthleteProfile struct {
	Name             string           `json:"name"`
	PersonalBests    []*PersonalBest  `json:"personalBests"`
	Graphs           []*EventGraph    `json:"graphs"`
	PastCompetitions []*Participation `json:"pastCompetitions"`
}
