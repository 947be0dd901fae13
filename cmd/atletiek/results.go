package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/atletiek"
	"golang.org/x/sync/errgroup"
)

// Run executes the results command. Lookups run concurrently; the
// service gate still bounds the upstream request rate.
func (c *ResultsCmd) Run(deps *Dependencies) error {
	results := make([]*atletiek.AthleteEventResults, len(c.IDs))
	statuses := make([]*atletiek.CacheStatus, len(c.IDs))

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(max(c.Concurrency, 1))
	for i, id := range c.IDs {
		g.Go(func() error {
			callCtx, status := atletiek.WithCacheStatus(ctx)
			r, err := deps.Service.GetEventResults(callCtx, id)
			if err != nil {
				return fmt.Errorf("participant %d: %w", id, err)
			}
			results[i], statuses[i] = r, status
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fail(deps, err)
	}
	for i, status := range statuses {
		if status.Hit {
			fmt.Fprintf(deps.Stderr, "(participant %d cached %s ago)\n", c.IDs[i], status.Age.Round(time.Second))
		}
	}

	return render(deps, results, func(w io.Writer) {
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s  (participant %d, competition %d)\n", r.Name, c.IDs[i], r.CompetitionID)
			for _, result := range r.Results {
				fmt.Fprintf(w, "  %s: %s\n", result.EventName, formatItems(result.Items))
			}
			if total, ok := r.TotalPoints(); ok {
				fmt.Fprintf(w, "  total: %d pts\n", total)
			}
		}
	})
}
