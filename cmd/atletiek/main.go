package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/atletiek"
	"github.com/fwojciec/atletiek/cache"
	"github.com/fwojciec/atletiek/fs"
	"github.com/fwojciec/atletiek/goquery"
	atletiekhttp "github.com/fwojciec/atletiek/http"
	"github.com/fwojciec/atletiek/scrape"
	atletiekslog "github.com/fwojciec/atletiek/slog"
	"github.com/fwojciec/atletiek/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Overrides for end-to-end testing. When Service is set it is used
	// as is; otherwise Fetcher (or an HTTP fetcher) feeds a scrape.Service.
	Service atletiek.Service
	Fetcher atletiek.Fetcher

	// SQLite database, open only when the sqlite store is selected.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("atletiek"),
		kong.Description("Query competitions, registrations, results and athletes on atletiek.nu."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'atletiek --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	store, err := m.openStore(cli.Store, cli.cachePath(), logger)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set ATLETIEK_CACHE to use a different cache path\n")
		return err
	}
	defer m.Close()

	c := cache.New(cache.WithLogger(logger))
	restore(ctx, c, store, logger)

	stopSweep := c.Start(ctx, cache.DefaultSweepInterval)
	defer stopSweep()

	deps.Cache = c
	deps.JSON = cli.JSON
	deps.Service = m.Service
	if deps.Service == nil {
		deps.Service = m.newService(cli, c, logger)
	}

	runErr := kongCtx.Run(deps)

	stopSweep()
	if err := store.SaveSnapshot(context.WithoutCancel(ctx), c.Snapshot()); err != nil {
		logger.Warn("failed to save cache snapshot", "err", err)
		return errors.Join(runErr, err)
	}
	return runErr
}

func (m *Main) openStore(kind, path string, logger *slog.Logger) (atletiek.SnapshotStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	switch kind {
	case storeSQLite:
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			return nil, fmt.Errorf("failed to open cache database at %q: %w", path, err)
		}
		return sqlite.NewSnapshotStore(m.DB, logger), nil
	case storeJSON:
		return fs.NewSnapshotFile(path, logger), nil
	default:
		return nil, atletiek.Errorf(atletiek.EINVALID, "unknown store %q", kind)
	}
}

func (m *Main) newService(cli *CLI, c atletiek.Cache, logger *slog.Logger) atletiek.Service {
	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = atletiekhttp.NewFetcher()
	}
	extractor := goquery.NewExtractor(goquery.WithLogger(logger))
	gate := scrape.NewTokenBucket(cli.RateInterval, cli.RateCapacity, scrape.DefaultInitialTokens)

	svc := scrape.NewService(
		atletiekslog.NewLoggingFetcher(fetcher, logger),
		extractor,
		c,
		gate,
		scrape.WithBaseURL(cli.BaseURL),
		scrape.WithLogger(logger),
	)
	return atletiekslog.NewLoggingService(svc, logger)
}

// restore loads the persisted snapshot into c and drops expired entries.
// An unreadable snapshot leaves the cache empty.
func restore(ctx context.Context, c *cache.Cache, store atletiek.SnapshotStore, logger *slog.Logger) {
	records, err := store.LoadSnapshot(ctx)
	if err != nil {
		logger.Warn("ignoring unreadable cache snapshot", "err", err)
		return
	}
	n := c.Restore(records)
	expired := c.Sweep()
	logger.Debug("restored cache snapshot", "loaded", n, "expired", expired)
}

const (
	storeJSON   = "json"
	storeSQLite = "sqlite"
)

func defaultCachePath(store string) string {
	name := "cache.json"
	if store == storeSQLite {
		name = "cache.db"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".atletiek", name)
}
