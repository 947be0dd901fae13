package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/atletiek"
)

// Run executes the athletes command.
func (c *AthletesCmd) Run(deps *Dependencies) error {
	ctx, status := atletiek.WithCacheStatus(deps.Ctx)
	athletes, err := deps.Service.SearchAthletes(ctx, c.Query)
	if err != nil {
		return fail(deps, err)
	}
	cacheNote(deps, status)

	return render(deps, athletes, func(w io.Writer) {
		if len(athletes) == 0 {
			fmt.Fprintln(w, "No athletes found.")
			return
		}
		for _, a := range athletes {
			fmt.Fprintf(w, "%d  %s  %d  %s\n", a.ID, a.Name, a.Age, a.ClubName)
		}
	})
}
