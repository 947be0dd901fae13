package atletiek

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Group 1: sign, group 2: speed.
var windSpeedRe = regexp.MustCompile(`([+-])([\d.]*)m/s`)

// Group 1: number, group 2: unit.
var attributeRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*([A-Za-z]+)`)

// RoundFloat rounds v to the given number of decimal digits.
func RoundFloat(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

// ParseWindSpeed finds a signed wind speed such as "+1,2 m/s" in text.
// Spaces are ignored and "," is accepted as decimal separator. The speed is
// rounded to two digits. Returns false if text holds no wind speed.
func ParseWindSpeed(text string) (float64, bool) {
	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, "\u00a0", "")
	text = strings.ReplaceAll(text, ",", ".")

	m := windSpeedRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, false
	}
	v = RoundFloat(v, 2)
	if m[1] == "-" {
		v = -v
	}
	return v, true
}

// ParseAttribute parses an implement specification such as "2kg", "76,2 cm"
// or "600gr". Centimeters become meters and grams become kilograms.
// Returns nil if text holds no number followed by a unit, and EINVALID if the
// unit is not known.
func ParseAttribute(text string) (*Attribute, error) {
	m := attributeRe.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return nil, Errorf(EINVALID, "attribute %q: %v", text, err)
	}

	var attr Attribute
	switch strings.ToLower(m[2]) {
	case "cm":
		attr = HeightAttribute(RoundFloat(v/100, 4))
	case "kg":
		attr = WeightAttribute(v)
	case "gr":
		attr = WeightAttribute(RoundFloat(v/1000, 4))
	default:
		return nil, Errorf(EINVALID, "attribute %q: unknown unit %q", text, m[2])
	}
	return &attr, nil
}

// ParsePerformance parses a displayed performance such as "9,62", "1:02,34",
// "1:02:03,4", "5,98" or "3456". Colon-separated parts are read as hours,
// minutes and seconds and the value is returned in seconds; a bare number
// (distance, height, points) is returned as is. A trailing "h" marks a hand
// timed performance.
func ParsePerformance(text string) (value float64, handMeasured bool, ok bool) {
	s := strings.TrimSpace(text)
	if strings.HasSuffix(s, "h") {
		handMeasured = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "h"))
	}
	if s == "" {
		return 0, false, false
	}
	s = strings.ReplaceAll(s, ",", ".")

	for _, part := range strings.Split(s, ":") {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return 0, false, false
		}
		value = value*60 + v
	}
	return RoundFloat(value, 3), handMeasured, true
}
