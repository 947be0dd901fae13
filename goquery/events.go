package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/atletiek"
)

var startListLinkRe = regexp.MustCompile(`/wedstrijd/startlijst/(\d+)/(\d+)/`)

// ExtractCompetitionEvents lists the start lists linked from a competition's
// timetable, each once and in order of first appearance. A timetable without
// start lists yields an empty list.
func (e *Extractor) ExtractCompetitionEvents(page string) ([]*atletiek.CompetitionEvent, error) {
	doc, err := parseDocument(page)
	if err != nil {
		return nil, err
	}

	events := make([]*atletiek.CompetitionEvent, 0)
	seen := make(map[atletiek.CompetitionEvent]bool)
	doc.Find(`tbody > tr > td a[href*="/wedstrijd/startlijst/"]`).Each(func(_ int, link *goquery.Selection) {
		href := link.AttrOr("href", "")
		m := startListLinkRe.FindStringSubmatch(href)
		if m == nil {
			e.logger.Debug("skipping start list link without ids", "href", href)
			return
		}
		competitionID, ok1 := parseUint32(m[1])
		eventID, ok2 := parseUint32(m[2])
		if !ok1 || !ok2 {
			e.logger.Warn("skipping start list link with invalid ids", "href", href)
			return
		}

		ev := atletiek.CompetitionEvent{CompetitionID: competitionID, EventID: eventID}
		if seen[ev] {
			return
		}
		seen[ev] = true
		events = append(events, &ev)
	})
	return events, nil
}
