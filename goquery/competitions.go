package goquery

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/atletiek"
)

const (
	shapeFeederRows = "feeder rows"
	shapeAppList    = "app list"
)

// competitionShapes are the known layouts of a competition search page.
var competitionShapes = []pageShape{
	{name: shapeFeederRows, anchor: "tr[onclick]"},
	{name: shapeAppList, anchor: "div.competitions-list"},
}

var (
	// Matches e.g. "Sat 09 MAR 2024": day, month, year.
	competitionDateRe   = regexp.MustCompile(`\w{3} (\d{1,2}) (\w{3}) (\d{4})`)
	athleteCountRe      = regexp.MustCompile(`(\d+) (?:athletes|atleten|deelnemers)`)
	registrationCountRe = regexp.MustCompile(`(\d+) (?:registrations|inschrijvingen)`)
	legacyCompetitionRe = regexp.MustCompile(`event_id=(\d+)`)
)

var competitionMonths = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March, "MRT": time.March,
	"APR": time.April, "MAY": time.May, "MEI": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September, "OCT": time.October,
	"OKT": time.October, "NOV": time.November, "DEC": time.December,
}

// ExtractCompetitions parses a competition search page. A page with no
// competition rows yields an empty list.
func (e *Extractor) ExtractCompetitions(page string) ([]*atletiek.CompetitionSummary, error) {
	doc, err := parseDocument(page)
	if err != nil {
		return nil, err
	}

	competitions := make([]*atletiek.CompetitionSummary, 0)
	shape, _, ok := detectShape(doc, competitionShapes)
	if !ok {
		return competitions, nil
	}

	switch shape.name {
	case shapeFeederRows:
		doc.Find("tr[onclick]").Each(func(_ int, row *goquery.Selection) {
			c, err := e.feederCompetition(row)
			if err != nil {
				e.logger.Warn("skipping competition row", "err", err)
				return
			}
			competitions = append(competitions, c)
		})
	case shapeAppList:
		doc.Find("div.competitions-list li").Each(func(_ int, item *goquery.Selection) {
			c, err := e.appCompetition(item)
			if err != nil {
				e.logger.Warn("skipping competition item", "err", err)
				return
			}
			competitions = append(competitions, c)
		})
	}

	return competitions, nil
}

func (e *Extractor) feederCompetition(row *goquery.Selection) (*atletiek.CompetitionSummary, error) {
	onclick := row.AttrOr("onclick", "")
	id, ok := firstID(onclick)
	if !ok {
		return nil, fieldErrorf("no competition id in %q", onclick)
	}
	c := &atletiek.CompetitionSummary{ID: id}

	if date := row.Find("td.datumCol > span.hidden-xs").First(); date.Length() > 0 {
		d, err := parseCompetitionDate(date.Text())
		if err != nil {
			return nil, err
		}
		c.Date = d
	} else {
		e.logger.Warn("competition without date, assuming today", "id", id)
		c.Date = atletiek.DateOf(e.now())
	}

	info := row.Find("td.eventnaam > a > span")
	name := info.Find("span.eventnaam").First()
	if name.Length() == 0 {
		return nil, fieldErrorf("no name for competition %d", id)
	}
	c.Name = firstText(name)
	c.ClubMembersOnly = strings.Contains(name.Text(), "Club members only")
	c.WorldAthleticsRecognized = row.Find("img.WA-label").Length() > 0

	club, location, _ := strings.Cut(normalizeSpace(info.Find("span.verenigingnaam").First().Text()), ", ")
	c.Club = club
	c.Location = location

	if m := athleteCountRe.FindStringSubmatch(info.Find("span.aantaldeelnemers").First().Text()); m != nil {
		n, _ := strconv.ParseUint(m[1], 10, 32)
		c.Registrations = uint32(n)
	} else {
		e.logger.Debug("competition without registration count", "id", id)
	}

	if status := row.Find("td:last-child > span").First(); status.Length() > 0 {
		label := normalizeSpace(status.Text())
		c.ResultsAvailable = strings.EqualFold(label, "Results") || strings.EqualFold(label, "Uitslagen")
	}

	return c, nil
}

func parseCompetitionDate(text string) (atletiek.Date, error) {
	m := competitionDateRe.FindStringSubmatch(text)
	if m == nil {
		return atletiek.Date{}, fieldErrorf("unrecognised competition date %q", text)
	}
	month, ok := competitionMonths[strings.ToUpper(m[2])]
	if !ok {
		return atletiek.Date{}, fieldErrorf("unrecognised month %q", m[2])
	}
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	d := atletiek.NewDate(year, month, day)
	if d.Time().Day() != day {
		return atletiek.Date{}, fieldErrorf("invalid competition date %q", text)
	}
	return d, nil
}

func (e *Extractor) appCompetition(item *goquery.Selection) (*atletiek.CompetitionSummary, error) {
	href := item.Find("a[href]").First().AttrOr("href", "")
	m := legacyCompetitionRe.FindStringSubmatch(href)
	if m == nil {
		return nil, fieldErrorf("no competition id in %q", href)
	}
	id, ok := parseUint32(m[1])
	if !ok {
		return nil, fieldErrorf("invalid competition id %q", m[1])
	}
	c := &atletiek.CompetitionSummary{ID: id}

	info := item.Find("div.item-inner > div.item-title").First()
	title := info.Find("h6").First()
	c.Name = firstText(title)
	c.WorldAthleticsRecognized = title.Find("img.WA-label").Length() > 0

	subtitle := info.Find("div.subtitle").First()
	c.Location = ownText(subtitle)
	c.ClubMembersOnly = subtitle.Find("span.clubmembersonly").Length() > 0

	if m := registrationCountRe.FindStringSubmatch(info.Find("div.item-footer").First().Text()); m != nil {
		n, _ := strconv.ParseUint(m[1], 10, 32)
		c.Registrations = uint32(n)
	}

	return c, nil
}
