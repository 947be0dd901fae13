package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// column is a table column independent of the page language.
type column string

const (
	colBib      column = "bib"
	colName     column = "name"
	colCategory column = "category"
	colClub     column = "club"
	colTeam     column = "team"
	colRelay    column = "relay"
	colEvent    column = "event"
	colPosition column = "position"
	colPoints   column = "points"
	colResult   column = "result"
	colTime     column = "time"
	colGroup    column = "group"
	colDate     column = "date"
)

// columnAliases maps lower-cased header labels, as rendered in English and
// Dutch, to columns.
var columnAliases = map[string]column{
	"bib":            colBib,
	"startnummer":    colBib,
	"startnr":        colBib,
	"name":           colName,
	"naam":           colName,
	"athlete":        colName,
	"atleet":         colName,
	"deelnemer":      colName,
	"category":       colCategory,
	"categorie":      colCategory,
	"cat":            colCategory,
	"club":           colClub,
	"vereniging":     colClub,
	"team":           colTeam,
	"ploeg":          colTeam,
	"relay":          colRelay,
	"relay team":     colRelay,
	"relay teams":    colRelay,
	"estafette":      colRelay,
	"estafetteteam":  colRelay,
	"estafetteteams": colRelay,
	"event":          colEvent,
	"events":         colEvent,
	"onderdeel":      colEvent,
	"onderdelen":     colEvent,
	"pos":            colPosition,
	"position":       colPosition,
	"plaats":         colPosition,
	"pl":             colPosition,
	"points":         colPoints,
	"punten":         colPoints,
	"pnt":            colPoints,
	"result":         colResult,
	"performance":    colResult,
	"prestatie":      colResult,
	"uitslag":        colResult,
	"time":           colTime,
	"tijd":           colTime,
	"group":          colGroup,
	"groep":          colGroup,
	"round":          colGroup,
	"ronde":          colGroup,
	"date":           colDate,
	"datum":          colDate,
}

// headerIndex maps columns to cell indices, read from a table's header row.
type headerIndex struct {
	byColumn map[column]int
	byIndex  map[int]column
}

// readHeader reads the first header row of table. Header cells spanning
// several columns advance the index by their colspan.
func (e *Extractor) readHeader(table *goquery.Selection) headerIndex {
	h := headerIndex{
		byColumn: make(map[column]int),
		byIndex:  make(map[int]column),
	}

	pos := 0
	table.Find("thead > tr").First().ChildrenFiltered("th, td").Each(func(_ int, th *goquery.Selection) {
		label := strings.TrimRight(strings.ToLower(normalizeSpace(th.Text())), ".:")
		col, ok := columnAliases[label]
		if !ok {
			if label != "" {
				e.logger.Debug("unexpected table header", "header", label)
			}
		} else if _, seen := h.byColumn[col]; !seen {
			h.byColumn[col] = pos
			h.byIndex[pos] = col
		}

		span := 1
		if v, err := strconv.Atoi(th.AttrOr("colspan", "1")); err == nil && v > 1 {
			span = v
		}
		pos += span
	})

	return h
}

// index returns the cell index of col.
func (h headerIndex) index(col column) (int, bool) {
	i, ok := h.byColumn[col]
	return i, ok
}

// indexOr returns the cell index of col, or def if the header lacks it.
func (h headerIndex) indexOr(col column, def int) int {
	if i, ok := h.byColumn[col]; ok {
		return i
	}
	return def
}

// column returns the column at cell index i.
func (h headerIndex) column(i int) (column, bool) {
	col, ok := h.byIndex[i]
	return col, ok
}
