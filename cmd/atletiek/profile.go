package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/atletiek"
)

// Run executes the profile command.
func (c *ProfileCmd) Run(deps *Dependencies) error {
	ctx, status := atletiek.WithCacheStatus(deps.Ctx)
	profile, err := deps.Service.GetAthleteProfile(ctx, c.ID)
	if err != nil {
		return fail(deps, err)
	}
	cacheNote(deps, status)

	return render(deps, profile, func(w io.Writer) {
		fmt.Fprintln(w, profile.Name)
		for _, pb := range profile.PersonalBests {
			fmt.Fprintf(w, "  %s  %s  %s  %s\n", pb.Event, pb.Display, pb.Date, pb.Location)
		}
		if n := len(profile.PastCompetitions); n > 0 {
			fmt.Fprintf(w, "%d past competitions\n", n)
		}
	})
}
