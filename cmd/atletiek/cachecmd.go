package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/fwojciec/atletiek"
)

type cacheStats struct {
	Total  int                          `json:"total"`
	ByKind map[atletiek.RequestKind]int `json:"byKind"`
}

// Run executes the cache stats command.
func (c *CacheStatsCmd) Run(deps *Dependencies) error {
	stats := cacheStats{ByKind: make(map[atletiek.RequestKind]int)}
	for _, rec := range deps.Cache.Snapshot() {
		stats.Total++
		stats.ByKind[rec.Key.Kind]++
	}

	return render(deps, stats, func(w io.Writer) {
		fmt.Fprintf(w, "%d cached entries\n", stats.Total)
		kinds := make([]string, 0, len(stats.ByKind))
		for k := range stats.ByKind {
			kinds = append(kinds, string(k))
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Fprintf(w, "  %s: %d\n", k, stats.ByKind[atletiek.RequestKind(k)])
		}
	})
}

// Run executes the cache sweep command.
func (c *CacheSweepCmd) Run(deps *Dependencies) error {
	n := deps.Cache.Sweep()
	return render(deps, map[string]int{"removed": n}, func(w io.Writer) {
		fmt.Fprintf(w, "Removed %d expired entries.\n", n)
	})
}

// Run executes the cache clear command.
func (c *CacheClearCmd) Run(deps *Dependencies) error {
	n := deps.Cache.Clear()
	return render(deps, map[string]int{"removed": n}, func(w io.Writer) {
		fmt.Fprintf(w, "Removed %d entries.\n", n)
	})
}
