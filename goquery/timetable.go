package goquery

import (
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/atletiek"
)

// timetable reads the competition timetable shown next to an athlete's
// results. Rows without a start list link are skipped.
func (e *Extractor) timetable(doc *goquery.Document) []*atletiek.TimetableSlot {
	slots := make([]*atletiek.TimetableSlot, 0)
	table := doc.Find("table#tijdschema").First()
	if table.Length() == 0 {
		return slots
	}

	header := e.readHeader(table)
	timeIdx := header.indexOr(colTime, 0)
	eventIdx := header.indexOr(colEvent, 1)
	groupIdx := header.indexOr(colGroup, 2)

	table.Find("tbody > tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		link := cells.Eq(eventIdx).Find("a[href]").First()
		if link.Length() == 0 {
			e.logger.Debug("skipping timetable row without start list")
			return
		}

		short := normalizeSpace(link.Text())
		slot := &atletiek.TimetableSlot{
			StartListURL: link.AttrOr("href", ""),
			Group:        normalizeSpace(cells.Eq(groupIdx).Text()),
			EventShort:   short,
			EventLong:    short,
		}
		if title := normalizeSpace(link.AttrOr("title", "")); title != "" {
			slot.EventLong = title
		}

		raw := cells.Eq(timeIdx).Find("span.sortData[data]").First().AttrOr("data", "")
		if t, err := time.Parse("200601021504", raw); err == nil {
			slot.Time = t
		} else {
			e.logger.Warn("unparsable timetable time", "data", raw, "event", short)
		}

		slots = append(slots, slot)
	})

	return slots
}
