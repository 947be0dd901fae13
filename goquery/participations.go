package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/atletiek"
)

var participantLinkRe = regexp.MustCompile(`/atleet/main/(\d+)/`)

// participations reads the list of competitions an athlete took part in.
// Both the results page and the profile page render it.
func (e *Extractor) participations(doc *goquery.Document) []*atletiek.Participation {
	participations := make([]*atletiek.Participation, 0)

	doc.Find("div#wedstrijden > table#persoonlijkerecords > tbody > tr").Each(func(_ int, row *goquery.Selection) {
		first := row.ChildrenFiltered("td").First()
		p := &atletiek.Participation{Competition: firstText(first)}
		if p.Competition == "" {
			e.logger.Debug("skipping participation without competition name")
			return
		}

		if m := participantLinkRe.FindStringSubmatch(first.Find("a[href]").First().AttrOr("href", "")); m != nil {
			p.ParticipantID, _ = parseUint32(m[1])
		}

		if data, ok := row.Find("td > span.sortData[data]").First().Attr("data"); ok {
			d, err := parseCompactDate(data)
			if err != nil {
				e.logger.Warn("unparsable participation date", "competition", p.Competition, "err", err)
			} else {
				p.Date = d
			}
		}

		if place := row.Find("td > span.subtext > span.hidden-xs").First(); place.Length() > 0 {
			p.Location = placeLocation(place)
		}

		participations = append(participations, p)
	})

	return participations
}

// placeLocation reads a place label with a flag image whose title holds the
// country followed by the continent in a nested span.
func placeLocation(place *goquery.Selection) atletiek.Location {
	loc := atletiek.Location{Place: firstText(place)}

	flag := place.Find("img").First()
	if flag.Length() == 0 {
		return loc
	}
	loc.FlagURL = flag.AttrOr("src", "")

	title := flag.AttrOr("title", "")
	loc.Country = normalizeSpace(CleanHTML(title))
	if doc, err := parseDocument(title); err == nil {
		loc.Continent = normalizeSpace(doc.Find("span.subtext").First().Text())
	}
	return loc
}
