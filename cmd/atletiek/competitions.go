package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/atletiek"
)

// Run executes the competitions command.
func (c *CompetitionsCmd) Run(deps *Dependencies) error {
	start, err := atletiek.ParseDate(c.Start)
	if err != nil {
		return fail(deps, err)
	}
	end, err := atletiek.ParseDate(c.End)
	if err != nil {
		return fail(deps, err)
	}
	country, err := atletiek.ParseCountry(c.Country)
	if err != nil {
		return fail(deps, err)
	}

	ctx, status := atletiek.WithCacheStatus(deps.Ctx)
	competitions, err := deps.Service.SearchCompetitions(ctx, atletiek.CompetitionQuery{
		Start:   start,
		End:     end,
		Query:   c.Query,
		Country: country,
	})
	if err != nil {
		return fail(deps, err)
	}
	cacheNote(deps, status)

	return render(deps, competitions, func(w io.Writer) {
		if len(competitions) == 0 {
			fmt.Fprintln(w, "No competitions found.")
			return
		}
		for _, comp := range competitions {
			fmt.Fprintf(w, "%d  %s  %s  %s  %d registrations", comp.ID, comp.Date, comp.Name, comp.Location, comp.Registrations)
			if comp.ResultsAvailable {
				fmt.Fprint(w, "  results")
			}
			fmt.Fprintln(w)
		}
	})
}
