package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"git.home.luguber.info/inful/styleguide/internal/build"
	"git.home.luguber.info/inful/styleguide/internal/config"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/history"
)

// HistoryCmd prints recent builds.
type HistoryCmd struct {
	Limit int `short:"n" default:"10" help:"Number of builds to show"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if cfg.HistoryDB == "" {
		return ferrors.ConfigError("history_db is not configured").
			WithContext("config", root.Config).
			Build()
	}

	store, err := history.NewSQLiteStore(cfg.HistoryDB)
	if err != nil {
		return ferrors.StorageError("failed to open build history").WithCause(err).Build()
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return ferrors.StorageError("failed to read build history").WithCause(err).Build()
	}
	writeHistory(os.Stdout, entries)
	return nil
}

func writeHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "no builds recorded")
		return
	}
	for _, e := range entries {
		commit := e.SourceCommit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		if commit == "" {
			commit = "-"
		}
		outcome := outcomeStyle(build.Outcome(e.Outcome)).Render(fmt.Sprintf("%-8s", e.Outcome))
		_, _ = fmt.Fprintf(w, "%s  %s  %s  %3d pages  %2d warnings  %8s  %s\n",
			e.StartedAt.Local().Format(time.DateTime), outcome, commit,
			e.Pages, len(e.Warnings), e.Duration.Round(time.Millisecond), styleMuted.Render(e.BuildID))
	}
}
