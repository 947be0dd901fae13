package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/atletiek"
)

// Run executes the events command.
func (c *EventsCmd) Run(deps *Dependencies) error {
	ctx, status := atletiek.WithCacheStatus(deps.Ctx)
	events, err := deps.Service.GetCompetitionEvents(ctx, c.ID)
	if err != nil {
		return fail(deps, err)
	}
	cacheNote(deps, status)

	return render(deps, events, func(w io.Writer) {
		if len(events) == 0 {
			fmt.Fprintln(w, "No start lists found.")
			return
		}
		for _, ev := range events {
			fmt.Fprintf(w, "%d  %d\n", ev.EventID, ev.CompetitionID)
		}
	})
}
