package goquery

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/atletiek"
)

// Matches e.g. "20160609Venlo (NLD)": year, month, day, place, country.
var personalBestDateRe = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})(.*?)\s*\((\w*)\)$`)

// ExtractAthleteProfile parses an athlete's profile page. It returns
// ENOTFOUND when the page carries no personal records section.
func (e *Extractor) ExtractAthleteProfile(page string) (*atletiek.AthleteProfile, error) {
	doc, err := parseDocument(page)
	if err != nil {
		return nil, err
	}

	records := doc.Find("div#records").First()
	if records.Length() == 0 {
		return nil, atletiek.Errorf(atletiek.ENOTFOUND, "no personal records found")
	}

	return &atletiek.AthleteProfile{
		Name:             pageTitle(doc),
		PersonalBests:    e.personalBests(records),
		Graphs:           e.graphs(doc, e.specifications(doc)),
		PastCompetitions: e.participations(doc),
	}, nil
}

func (e *Extractor) personalBests(records *goquery.Selection) []*atletiek.PersonalBest {
	bests := make([]*atletiek.PersonalBest, 0)
	table := records.Find("table#persoonlijkerecords").First()
	header := e.readHeader(table)
	eventIdx := header.indexOr(colEvent, 0)
	resultIdx := header.indexOr(colResult, 1)
	dateIdx := header.indexOr(colDate, 2)

	table.Find("tbody > tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		pb, err := e.personalBest(cells.Eq(eventIdx), cells.Eq(resultIdx), cells.Eq(dateIdx))
		if err != nil {
			e.logger.Warn("skipping personal best", "err", err)
			return
		}
		pb.NotImportant = row.HasClass("nietbelangrijk")
		bests = append(bests, pb)
	})

	return bests
}

func (e *Extractor) personalBest(eventCell, resultCell, dateCell *goquery.Selection) (*atletiek.PersonalBest, error) {
	pb := &atletiek.PersonalBest{Event: ownText(eventCell)}
	if pb.Event == "" {
		return nil, fieldErrorf("personal best without event")
	}

	if sub := eventCell.Find("span.subtext").First(); sub.Length() > 0 {
		attr, err := atletiek.ParseAttribute(sub.Text())
		if err != nil {
			e.logger.Warn("unrecognised event specification", "event", pb.Event, "err", err)
		}
		pb.Attribute = attr
	}

	pb.Display = firstText(resultCell)
	v, hand, ok := atletiek.ParsePerformance(pb.Display)
	if !ok {
		return nil, fieldErrorf("unparsable performance %q for %s", pb.Display, pb.Event)
	}
	pb.Performance = v
	pb.HandMeasured = hand
	if wind, ok := atletiek.ParseWindSpeed(resultCell.Text()); ok {
		pb.WindSpeed = &wind
	}

	data := dateCell.Find("span.sortData[data]").First().AttrOr("data", "")
	if m := personalBestDateRe.FindStringSubmatch(strings.TrimSpace(data)); m != nil {
		if d, err := parseCompactDate(m[1] + m[2] + m[3]); err == nil {
			pb.Date = d
		}
		pb.Location = normalizeSpace(m[4])
		pb.Country = m[5]
	} else {
		e.logger.Warn("unrecognised personal best date", "event", pb.Event, "data", data)
	}

	return pb, nil
}

// specifications maps graph specification tokens to the attribute they stand
// for, e.g. "2" to a 2 kg weight.
func (e *Extractor) specifications(doc *goquery.Document) map[string]atletiek.Attribute {
	specs := make(map[string]atletiek.Attribute)
	doc.Find("table.specificaties tr[data-specificatie]").Each(func(_ int, row *goquery.Selection) {
		token := row.AttrOr("data-specificatie", "")
		label := normalizeSpace(row.Text())
		attr, err := atletiek.ParseAttribute(label)
		switch {
		case err != nil:
			e.logger.Warn("unrecognised specification", "token", token, "err", err)
		case attr == nil:
			specs[token] = atletiek.AllAttribute()
		default:
			specs[token] = *attr
		}
	})
	return specs
}

// graphs reads the performance history graphs. A graph whose specification
// token equals its own id covers all specifications of the event.
func (e *Extractor) graphs(doc *goquery.Document, specs map[string]atletiek.Attribute) []*atletiek.EventGraph {
	graphs := make([]*atletiek.EventGraph, 0)

	doc.Find("div.grafiek[data-id][data-onderdeel][data-specificatie]").Each(func(_ int, div *goquery.Selection) {
		id := div.AttrOr("data-id", "")
		token := div.AttrOr("data-specificatie", "")

		spec, ok := specs[token]
		if !ok {
			if token != id {
				e.logger.Warn("skipping graph with unknown specification", "id", id, "specification", token)
				return
			}
			spec = atletiek.AllAttribute()
		}

		eventID, _ := parseUint32(id)
		g := &atletiek.EventGraph{
			Specification: spec,
			Event:         normalizeSpace(div.AttrOr("data-onderdeel", "")),
			EventID:       eventID,
			Points:        make([]atletiek.GraphPoint, 0),
		}

		div.Find("span.punt[data-datum][data-prestatie]").Each(func(_ int, point *goquery.Selection) {
			d, err := parseCompactDate(point.AttrOr("data-datum", ""))
			if err != nil {
				e.logger.Warn("skipping graph point", "event", g.Event, "err", err)
				return
			}
			raw := point.AttrOr("data-prestatie", "")
			v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				e.logger.Warn("skipping graph point", "event", g.Event, "performance", raw)
				return
			}
			g.Points = append(g.Points, atletiek.GraphPoint{Date: d, Performance: v})
		})

		graphs = append(graphs, g)
	})

	return graphs
}
