package goquery

import (
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/atletiek"
)

var (
	athleteIDRe      = regexp.MustCompile(`koppel_id=(\d+)`)
	athleteAgeClubRe = regexp.MustCompile(`(\d{1,3}) (?:years|jaar) \| (.+)`)
)

// ExtractAthletes parses an athlete search page. A page with no athletes
// yields an empty list.
func (e *Extractor) ExtractAthletes(page string) ([]*atletiek.AthleteSummary, error) {
	doc, err := parseDocument(page)
	if err != nil {
		return nil, err
	}

	athletes := make([]*atletiek.AthleteSummary, 0)
	doc.Find("div.list-athletes > ul > li > a > div.item-inner > div.item-title").Each(func(_ int, item *goquery.Selection) {
		a, err := parseAthlete(item)
		if err != nil {
			e.logger.Warn("skipping athlete", "err", err)
			return
		}
		athletes = append(athletes, a)
	})
	return athletes, nil
}

func parseAthlete(item *goquery.Selection) (*atletiek.AthleteSummary, error) {
	texts := textLines(item)
	if len(texts) < 2 {
		return nil, fieldErrorf("expected name and club, got %q", texts)
	}

	m := athleteAgeClubRe.FindStringSubmatch(texts[1])
	if m == nil {
		return nil, fieldErrorf("unrecognised age and club %q", texts[1])
	}
	age, err := strconv.ParseUint(m[1], 10, 8)
	if err != nil {
		return nil, fieldErrorf("invalid age %q", m[1])
	}

	onclick := item.Closest("a").AttrOr("onclick", "")
	idm := athleteIDRe.FindStringSubmatch(onclick)
	if idm == nil {
		return nil, fieldErrorf("no athlete id in %q", onclick)
	}
	id, ok := parseUint32(idm[1])
	if !ok {
		return nil, fieldErrorf("invalid athlete id %q", idm[1])
	}

	return &atletiek.AthleteSummary{
		ID:       id,
		Name:     texts[0],
		ClubName: m[2],
		Age:      uint8(age),
	}, nil
}
