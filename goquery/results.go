package goquery

import (
	"math"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/atletiek"
)

// unsupportedResultsMarkers identify results pages the extractor knows it
// cannot read, such as competitions that publish results elsewhere.
var unsupportedResultsMarkers = []string{
	"externe uitslagen",
	"external results",
}

var competitionLinkRe = regexp.MustCompile(`/wedstrijd/main/(\d+)/`)

// rowShape is the layout of a single results row.
type rowShape int

const (
	rowNoMatch rowShape = iota
	rowStandard
	rowCombinedEvent
)

// resultRow says where the cells of one results row are. A negative index
// means the row has no such cell.
type resultRow struct {
	shape       rowShape
	eventIdx    int
	positionIdx int
	pointsIdx   int
}

// resultRowProbes are tried in order; the first match decides how a row is
// read.
var resultRowProbes = []func(cells *goquery.Selection, h headerIndex) (resultRow, bool){
	probeStandardRow,
	probeCombinedEventRow,
}

// probeStandardRow matches rows whose event cell links to the event. The
// position is taken from the header when present. Without a position
// header the last cell is the position unless the header names it as the
// result or points column.
func probeStandardRow(cells *goquery.Selection, h headerIndex) (resultRow, bool) {
	n := cells.Length()
	eventIdx := h.indexOr(colEvent, 0)
	if eventIdx >= n || cells.Eq(eventIdx).Find("a[href]").Length() == 0 {
		return resultRow{}, false
	}

	r := resultRow{shape: rowStandard, eventIdx: eventIdx, positionIdx: -1, pointsIdx: -1}
	if i, ok := h.index(colPosition); ok {
		if i > eventIdx && i < n {
			r.positionIdx = i
		}
	} else if last := n - 1; last > eventIdx {
		if col, named := h.byIndex[last]; !named || (col != colResult && col != colPoints) {
			r.positionIdx = last
		}
	}
	if i, ok := h.index(colPoints); ok && i > eventIdx && i < n && i != r.positionIdx {
		r.pointsIdx = i
	}
	return r, true
}

// probeCombinedEventRow matches the rows of a combined event, where a
// leading cell precedes the event link and the last two cells hold the
// position and the points scored.
func probeCombinedEventRow(cells *goquery.Selection, h headerIndex) (resultRow, bool) {
	n := cells.Length()
	eventIdx := h.indexOr(colEvent, 0) + 1
	if n < eventIdx+3 || cells.Eq(eventIdx).Find("a[href]").Length() == 0 {
		return resultRow{}, false
	}
	return resultRow{shape: rowCombinedEvent, eventIdx: eventIdx, positionIdx: n - 2, pointsIdx: n - 1}, true
}

func probeResultRow(cells *goquery.Selection, h headerIndex) resultRow {
	for _, probe := range resultRowProbes {
		if r, ok := probe(cells, h); ok {
			return r
		}
	}
	return resultRow{shape: rowNoMatch}
}

// ExtractEventResults parses an athlete's results page for one competition.
// It returns EUNSUPPORTED for pages in a known but unreadable format and
// ENOTFOUND when there is no results table, which usually means results
// have not been published yet.
func (e *Extractor) ExtractEventResults(page string) (*atletiek.AthleteEventResults, error) {
	doc, err := parseDocument(page)
	if err != nil {
		return nil, err
	}

	table := doc.Find("#uitslagentabel").First()
	if table.Length() == 0 {
		body := strings.ToLower(doc.Find("body").Text())
		for _, marker := range unsupportedResultsMarkers {
			if strings.Contains(body, marker) {
				return nil, atletiek.Errorf(atletiek.EUNSUPPORTED, "unsupported results page (%s)", marker)
			}
		}
		return nil, atletiek.Errorf(atletiek.ENOTFOUND, "no results table found")
	}

	results := &atletiek.AthleteEventResults{
		Name:             pageTitle(doc),
		Results:          e.eventResults(table),
		Timetable:        e.timetable(doc),
		PastCompetitions: e.participations(doc),
	}
	if m := competitionLinkRe.FindStringSubmatch(doc.Find(`a[href*="/wedstrijd/main/"]`).First().AttrOr("href", "")); m != nil {
		results.CompetitionID, _ = parseUint32(m[1])
	}
	return results, nil
}

// eventResults reads the results table, folding rows that belong to the
// same event into one EventResult in order of first appearance.
func (e *Extractor) eventResults(table *goquery.Selection) []*atletiek.EventResult {
	header := e.readHeader(table)
	results := make([]*atletiek.EventResult, 0)
	byURL := make(map[string]*atletiek.EventResult)

	table.Find("tbody > tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		r := probeResultRow(cells, header)
		if r.shape == rowNoMatch {
			e.logger.Debug("skipping results row without event link", "cells", cells.Length())
			return
		}

		link := cells.Eq(r.eventIdx).Find("a[href]").First()
		href := link.AttrOr("href", "")
		name := normalizeSpace(link.Text())
		if name == "" {
			name = path.Base(strings.TrimSuffix(href, "/"))
		}

		result, ok := byURL[href]
		if !ok {
			result = &atletiek.EventResult{EventName: name, EventURL: href}
			byURL[href] = result
			results = append(results, result)
		}
		result.Items = append(result.Items, e.resultItems(cells, r)...)
	})

	return results
}

// resultItems reads the cells after the event cell in column order.
func (e *Extractor) resultItems(cells *goquery.Selection, r resultRow) []atletiek.EventResultItem {
	var items []atletiek.EventResultItem
	cells.Each(func(i int, cell *goquery.Selection) {
		switch {
		case i <= r.eventIdx:
			// leading cells
		case i == r.positionIdx:
			if rank, ok := parseRank(cell.Text()); ok {
				items = append(items, atletiek.PositionItem(rank))
			} else if text := normalizeSpace(cell.Text()); text != "" {
				e.logger.Debug("skipping unparsable position", "text", text)
			}
		case i == r.pointsIdx:
			if amount, ok := parsePoints(cell.Text()); ok {
				items = append(items, atletiek.PointsItem(amount))
			} else if text := normalizeSpace(cell.Text()); text != "" {
				e.logger.Warn("skipping unparsable points", "text", text)
			}
		default:
			if item, ok := e.measurement(cell); ok {
				items = append(items, item)
			}
		}
	})
	return items
}

// measurement reads a measurement cell. The sortable raw value is in the
// data attribute; the wind speed is only rendered in the visible label.
func (e *Extractor) measurement(cell *goquery.Selection) (atletiek.EventResultItem, bool) {
	data := cell.Find("span.sortData[data]").First()
	if data.Length() == 0 {
		return atletiek.EventResultItem{}, false
	}

	raw := data.AttrOr("data", "")
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		e.logger.Warn("skipping unparsable measurement", "data", raw)
		return atletiek.EventResultItem{}, false
	}

	label := cell
	if tipped := cell.Find("span.tipped").First(); tipped.Length() > 0 {
		label = tipped
	}
	visible := label.Text() + " " + label.AttrOr("title", "")
	return atletiek.NewMeasurement(v, e.windSpeed(visible, "data", raw)), true
}

func parseRank(text string) (int, bool) {
	s := strings.TrimSuffix(normalizeSpace(text), ".")
	rank, err := strconv.Atoi(s)
	if err != nil || rank <= 0 {
		return 0, false
	}
	return rank, true
}

// parsePoints parses a points amount, which may use a dot as thousands
// separator.
func parsePoints(text string) (int, bool) {
	s := strings.ReplaceAll(normalizeSpace(text), ".", "")
	amount, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// pageTitle returns the top-level text of the page's first heading.
func pageTitle(doc *goquery.Document) string {
	return ownText(doc.Find("h1").First())
}
