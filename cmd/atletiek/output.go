package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/atletiek"
)

// render writes v as indented JSON when --json is set, and calls text
// otherwise.
func render(deps *Dependencies, v any, text func(w io.Writer)) error {
	if deps.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(deps.Stdout)
	return nil
}

// fail reports err on stderr the way every command does.
func fail(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", atletiek.ErrorMessage(err))
	return err
}

// cacheNote tells the user on stderr that a result came from the cache.
func cacheNote(deps *Dependencies, status *atletiek.CacheStatus) {
	if status.Hit {
		fmt.Fprintf(deps.Stderr, "(cached %s ago)\n", status.Age.Round(time.Second))
	}
}

func formatItem(item atletiek.EventResultItem) string {
	switch item.Kind {
	case atletiek.ItemPosition:
		return "#" + strconv.Itoa(item.Rank)
	case atletiek.ItemPoints:
		return strconv.Itoa(item.Amount) + " pts"
	case atletiek.ItemMeasurement:
		if item.DNF {
			return "DNF"
		}
		s := strconv.FormatFloat(item.Result, 'f', -1, 64)
		if item.WindSpeed != nil {
			s += fmt.Sprintf(" (%+.1f)", *item.WindSpeed)
		}
		return s
	}
	return ""
}

func formatItems(items []atletiek.EventResultItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, formatItem(item))
	}
	return strings.Join(parts, "  ")
}

func formatEvents(events []atletiek.EventEntry) string {
	parts := make([]string, 0, len(events))
	for _, e := range events {
		if e.Status == atletiek.EventStatusAccepted {
			parts = append(parts, e.Name)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", e.Name, e.Status))
	}
	return strings.Join(parts, ", ")
}
