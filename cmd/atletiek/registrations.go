package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/atletiek"
)

// Run executes the registrations command.
func (c *RegistrationsCmd) Run(deps *Dependencies) error {
	ctx, status := atletiek.WithCacheStatus(deps.Ctx)
	registrations, err := deps.Service.GetRegistrations(ctx, c.ID)
	if err != nil {
		return fail(deps, err)
	}
	cacheNote(deps, status)

	return render(deps, registrations, func(w io.Writer) {
		if len(registrations) == 0 {
			fmt.Fprintln(w, "No registrations found.")
			return
		}
		for _, r := range registrations {
			fmt.Fprintf(w, "%d  %s  %s  %s  %s", r.ParticipantID, r.Name, r.Category, r.ClubShort, formatEvents(r.Events))
			if r.OutOfCompetition {
				fmt.Fprint(w, "  (out of competition)")
			}
			fmt.Fprintln(w)
		}
	})
}
