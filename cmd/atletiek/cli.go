package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/atletiek"
	"github.com/fwojciec/atletiek/cache"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Service atletiek.Service
	Cache   *cache.Cache
	JSON    bool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	CachePath    string        `name:"cache-path" env:"ATLETIEK_CACHE" help:"Cache snapshot path (default ~/.atletiek/cache.json or cache.db)"`
	Store        string        `name:"store" env:"ATLETIEK_STORE" enum:"json,sqlite" default:"json" help:"Snapshot store: json or sqlite"`
	BaseURL      string        `name:"base-url" env:"ATLETIEK_BASE_URL" default:"https://www.atletiek.nu" help:"Upstream base URL"`
	RateInterval time.Duration `name:"rate-interval" env:"ATLETIEK_RATE_INTERVAL" default:"1s" help:"Time to refill one request token"`
	RateCapacity int           `name:"rate-capacity" env:"ATLETIEK_RATE_CAPACITY" default:"2" help:"Maximum burst of upstream requests"`
	JSON         bool          `name:"json" help:"Print JSON instead of text"`
	Verbose      bool          `short:"v" help:"Log fetches and cache activity to stderr"`

	Competitions  CompetitionsCmd  `cmd:"" help:"Search competitions in a date range"`
	Events        EventsCmd        `cmd:"" help:"List the start-list events of a competition"`
	Registrations RegistrationsCmd `cmd:"" help:"List registrations for a competition"`
	Results       ResultsCmd       `cmd:"" help:"Show results for one or more participants"`
	Athletes      AthletesCmd      `cmd:"" help:"Search athletes by name"`
	Profile       ProfileCmd       `cmd:"" help:"Show an athlete profile"`
	Cache         CacheCmd         `cmd:"" help:"Inspect or prune the request cache"`
}

func (c *CLI) cachePath() string {
	if c.CachePath != "" {
		return c.CachePath
	}
	return defaultCachePath(c.Store)
}

// CompetitionsCmd is the "competitions" subcommand.
type CompetitionsCmd struct {
	Start   string `arg:"" help:"First day (YYYY-MM-DD)"`
	End     string `arg:"" help:"Last day (YYYY-MM-DD)"`
	Query   string `short:"q" help:"Free-text filter"`
	Country string `short:"c" help:"Two-letter country code (default NL)"`
}

// EventsCmd is the "events" subcommand.
type EventsCmd struct {
	ID uint32 `arg:"" help:"Competition ID"`
}

// RegistrationsCmd is the "registrations" subcommand.
type RegistrationsCmd struct {
	ID uint32 `arg:"" help:"Competition ID"`
}

// ResultsCmd is the "results" subcommand.
type ResultsCmd struct {
	IDs         []uint32 `arg:"" name:"id" help:"Participant IDs"`
	Concurrency int      `default:"4" help:"Concurrent lookups"`
}

// AthletesCmd is the "athletes" subcommand.
type AthletesCmd struct {
	Query string `arg:"" help:"Athlete name"`
}

// ProfileCmd is the "profile" subcommand.
type ProfileCmd struct {
	ID uint32 `arg:"" help:"Athlete ID"`
}

// CacheCmd groups the cache administration subcommands.
type CacheCmd struct {
	Stats CacheStatsCmd `cmd:"" help:"Show cached entry counts per request kind"`
	Sweep CacheSweepCmd `cmd:"" help:"Remove expired entries"`
	Clear CacheClearCmd `cmd:"" help:"Remove all entries"`
}

// CacheStatsCmd is the "cache stats" subcommand.
type CacheStatsCmd struct{}

// CacheSweepCmd is the "cache sweep" subcommand.
type CacheSweepCmd struct{}

// CacheClearCmd is the "cache clear" subcommand.
type CacheClearCmd struct{}
