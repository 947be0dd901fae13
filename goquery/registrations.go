package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/atletiek"
)

const (
	shapeRegistrationTable  = "registration table"
	shapeRegistrationScript = "registration script"
)

// registrationShapes are the known layouts of a registration page. The
// script layout is the older mobile page, which ships its list as escaped
// markup inside a script element.
var registrationShapes = []pageShape{
	{name: shapeRegistrationTable, anchor: "table.deelnemerstabel"},
	{name: shapeRegistrationScript, anchor: "script.list-content-registrations"},
}

var (
	participantIDRe = regexp.MustCompile(`deelnemer_id=(\d+)`)
	moreEventsRe    = regexp.MustCompile(`(?i)^\+\d+\s*(?:onderdelen|onderdeel|events?|more)$`)
)

// ExtractRegistrations parses a competition registration page. It returns
// ENOTFOUND when the page carries no registration list.
func (e *Extractor) ExtractRegistrations(page string) ([]*atletiek.Registration, error) {
	doc, err := parseDocument(page)
	if err != nil {
		return nil, err
	}

	shape, anchor, ok := detectShape(doc, registrationShapes)
	if !ok {
		return nil, atletiek.Errorf(atletiek.ENOTFOUND, "no registration list found")
	}

	switch shape.name {
	case shapeRegistrationScript:
		return e.scriptRegistrations(anchor)
	default:
		return e.tableRegistrations(anchor), nil
	}
}

func (e *Extractor) tableRegistrations(table *goquery.Selection) []*atletiek.Registration {
	header := e.readHeader(table)
	registrations := make([]*atletiek.Registration, 0)
	byID := make(map[uint32]*atletiek.Registration)

	table.Find("tbody > tr").Each(func(_ int, row *goquery.Selection) {
		rowID := row.AttrOr("id", "")
		id, ok := firstID(rowID)
		if !ok {
			e.logger.Warn("skipping registration row without participant id", "id", rowID)
			return
		}

		reg := &atletiek.Registration{ParticipantID: id}
		row.ChildrenFiltered("td").Each(func(i int, cell *goquery.Selection) {
			if col, ok := header.column(i); ok {
				e.registrationField(reg, col, cell)
			}
		})
		reg.OutOfCompetition = isOutOfCompetition(row)
		if reg.Name == "" {
			e.logger.Warn("registration without name", "participant", id)
		}

		// Participants with more events than fit in one row are repeated.
		if prev, ok := byID[id]; ok {
			mergeRegistration(prev, reg)
			return
		}
		byID[id] = reg
		registrations = append(registrations, reg)
	})

	return registrations
}

func (e *Extractor) registrationField(reg *atletiek.Registration, col column, cell *goquery.Selection) {
	switch col {
	case colBib:
		text := firstText(cell)
		if text == "" {
			return
		}
		bib, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			e.logger.Debug("unparsable bib number", "participant", reg.ParticipantID, "bib", text)
			return
		}
		v := uint32(bib)
		reg.BibNumber = &v
	case colName:
		reg.Name = ownText(cell)
	case colCategory:
		reg.Category = normalizeSpace(cell.Text())
	case colClub:
		reg.ClubShort = ownText(cell)
		reg.ClubLong = reg.ClubShort
		if title, ok := cell.Attr("title"); ok && title != "" {
			reg.ClubLong = normalizeSpace(title)
		} else if title := cell.Find("[title]").First().AttrOr("title", ""); title != "" {
			reg.ClubLong = normalizeSpace(title)
		}
	case colTeam:
		if team := normalizeSpace(cell.Text()); team != "" {
			reg.TeamName = &team
		}
	case colRelay:
		reg.RelayTeams = relayTeams(cell)
	case colEvent:
		reg.Events = e.eventEntries(cell, reg.ParticipantID)
	}
}

func relayTeams(cell *goquery.Selection) []atletiek.RelayTeam {
	var teams []atletiek.RelayTeam
	links := cell.Find("a[href]")
	if links.Length() == 0 {
		for _, line := range textLines(cell) {
			teams = append(teams, atletiek.RelayTeam{Name: line})
		}
		return teams
	}
	links.Each(func(_ int, a *goquery.Selection) {
		id, _ := lastID(a.AttrOr("href", ""))
		teams = append(teams, atletiek.RelayTeam{ID: id, Name: normalizeSpace(a.Text())})
	})
	return teams
}

// eventEntries reads the events of one participant. Events rendered as
// labels carry their status in the title attribute; plain text events have
// an unknown status.
func (e *Extractor) eventEntries(cell *goquery.Selection, participant uint32) []atletiek.EventEntry {
	var entries []atletiek.EventEntry

	labels := cell.Find("span.tipped[title]")
	if labels.Length() > 0 {
		labels.Each(func(_ int, label *goquery.Selection) {
			name := ownText(label)
			if name == "" {
				return
			}
			title := label.AttrOr("title", "")
			status, ok := atletiek.ParseEventStatus(title)
			if !ok {
				e.logger.Warn("unexpected event status", "status", title, "event", name, "participant", participant)
			}
			entries = append(entries, atletiek.EventEntry{Name: name, Status: status})
		})
		return entries
	}

	for _, line := range textLines(cell) {
		if moreEventsRe.MatchString(line) {
			continue
		}
		entries = append(entries, atletiek.EventEntry{Name: line, Status: atletiek.EventStatusUnknown})
	}
	return entries
}

func isOutOfCompetition(row *goquery.Selection) bool {
	if row.HasClass("buitenmededinging") || row.Find(".bm, .buitenmededinging").Length() > 0 {
		return true
	}
	text := strings.ToLower(row.Text())
	return strings.Contains(text, "buiten mededinging") || strings.Contains(text, "out of competition")
}

func mergeRegistration(dst, src *atletiek.Registration) {
	for _, ev := range src.Events {
		if !dst.HasEvent(ev.Name, ev.Status) {
			dst.Events = append(dst.Events, ev)
		}
	}
	for _, team := range src.RelayTeams {
		if !containsRelayTeam(dst.RelayTeams, team) {
			dst.RelayTeams = append(dst.RelayTeams, team)
		}
	}
	dst.OutOfCompetition = dst.OutOfCompetition || src.OutOfCompetition
}

func containsRelayTeam(teams []atletiek.RelayTeam, team atletiek.RelayTeam) bool {
	for _, t := range teams {
		if t == team {
			return true
		}
	}
	return false
}

func (e *Extractor) scriptRegistrations(script *goquery.Selection) ([]*atletiek.Registration, error) {
	markup := strings.NewReplacer("&lt;", "<", "&gt;", ">").Replace(script.Text())
	doc, err := parseDocument(markup)
	if err != nil {
		return nil, err
	}

	registrations := make([]*atletiek.Registration, 0)
	doc.Find("li > a").Each(func(_ int, a *goquery.Selection) {
		reg, err := scriptRegistration(a)
		if err != nil {
			e.logger.Warn("skipping registration", "err", err)
			return
		}
		registrations = append(registrations, reg)
	})
	return registrations, nil
}

func scriptRegistration(a *goquery.Selection) (*atletiek.Registration, error) {
	href := a.AttrOr("href", "")
	m := participantIDRe.FindStringSubmatch(href)
	if m == nil {
		return nil, fieldErrorf("no participant id in %q", href)
	}
	id, ok := parseUint32(m[1])
	if !ok {
		return nil, fieldErrorf("invalid participant id %q", m[1])
	}

	texts := textLines(a.Find("div.item-inner > div.item-title").First())
	if len(texts) < 2 {
		return nil, fieldErrorf("expected name and category for participant %d, got %q", id, texts)
	}

	// "category | club" or "category | club | team"
	parts := strings.Split(texts[len(texts)-1], " | ")
	if len(parts) < 2 {
		return nil, fieldErrorf("unrecognised category and club %q", texts[len(texts)-1])
	}
	reg := &atletiek.Registration{
		ParticipantID: id,
		Name:          texts[0],
		Category:      parts[0],
		ClubShort:     parts[1],
		ClubLong:      parts[1],
	}
	if len(parts) > 2 {
		team := strings.Join(parts[2:], " | ")
		reg.TeamName = &team
	}

	for _, line := range textLines(a.Find("div.item-inner > div.item-after").First()) {
		reg.Events = append(reg.Events, atletiek.EventEntry{Name: line, Status: atletiek.EventStatusUnknown})
	}
	return reg, nil
}
