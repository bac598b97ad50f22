package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/styleguide/internal/build"
	"git.home.luguber.info/inful/styleguide/internal/config"
	"git.home.luguber.info/inful/styleguide/internal/history"
	"git.home.luguber.info/inful/styleguide/internal/logfields"
	"git.home.luguber.info/inful/styleguide/internal/metrics"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"styleguide.yml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the style guide once"`
	Init    InitCmd    `cmd:"" help:"Scaffold a configuration file and documentation assets"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild whenever sources change, optionally serving the output"`
	Pages   PagesCmd   `cmd:"" help:"List the pages and blocks a build would produce without writing anything"`
	History HistoryCmd `cmd:"" help:"Show recent builds recorded in history_db"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

// parseLogLevel honours --verbose first, then STYLEGUIDE_LOG_LEVEL.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("STYLEGUIDE_LOG_LEVEL"))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// newService wires the build service with the recorder and history store the
// configuration asks for. A Prometheus recorder is always created when
// withMetrics is set so watch mode can serve /metrics.
func newService(cfg *config.Config, withMetrics bool) (*build.DefaultService, *metrics.PrometheusRecorder, func()) {
	svc := build.NewService()
	cleanup := func() {}

	var rec *metrics.PrometheusRecorder
	if withMetrics || cfg.MetricsFile != "" {
		rec = metrics.NewPrometheusRecorder(nil)
		svc.WithRecorder(rec)
	}

	if cfg.HistoryDB != "" {
		store, err := history.NewSQLiteStore(cfg.HistoryDB)
		if err != nil {
			slog.Warn("Build history disabled", logfields.Path(cfg.HistoryDB), logfields.Error(err))
		} else {
			svc.WithHistory(store)
			cleanup = func() {
				if err := store.Close(); err != nil {
					slog.Warn("Failed to close history store", logfields.Error(err))
				}
			}
		}
	}
	return svc, rec, cleanup
}
