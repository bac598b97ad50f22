package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/styleguide/internal/build"
	"git.home.luguber.info/inful/styleguide/internal/config"
	"git.home.luguber.info/inful/styleguide/internal/history"
)

const buttonsSource = `
/*doc
---
title: Buttons
name: buttons
category: Basics
---
Use ` + "`.btn`" + ` for every clickable action.
*/
.btn { padding: 4px; }

/*doc
---
title: Primary
name: button-primary
parent: buttons
---
The main call to action.
*/
`

// scaffold creates a project with the init command and one stylesheet.
func scaffold(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := config.Init(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sass"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sass", "buttons.scss"), []byte(dedent.Dedent(buttonsSource)), 0o644))
	return filepath.Join(dir, config.DefaultFileName)
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return kctx.Run(&Global{Logger: slog.Default()}, &cli)
}

func TestBuildCommand(t *testing.T) {
	cfgPath := scaffold(t)
	dir := filepath.Dir(cfgPath)

	require.NoError(t, run(t, "-c", cfgPath, "build"))

	basics, err := os.ReadFile(filepath.Join(dir, "docs", "basics.html"))
	require.NoError(t, err)
	require.Contains(t, string(basics), `id="buttons"`)
	require.Contains(t, string(basics), `id="button-primary"`)
	require.FileExists(t, filepath.Join(dir, "docs", "index.html"))
	require.FileExists(t, filepath.Join(dir, "docs", "styleguide.css"))
	require.NoFileExists(t, filepath.Join(dir, "docs", "_header.html"))
}

func TestBuildCommandOutputOverride(t *testing.T) {
	cfgPath := scaffold(t)
	out := filepath.Join(t.TempDir(), "site")

	require.NoError(t, run(t, "-c", cfgPath, "build", "-o", out))
	require.FileExists(t, filepath.Join(out, "basics.html"))
}

func TestBuildCommandMissingConfig(t *testing.T) {
	err := run(t, "-c", filepath.Join(t.TempDir(), "missing.yml"), "build")
	require.Error(t, err)
}

func TestInitCommandRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, "init", dir))
	require.FileExists(t, filepath.Join(dir, config.DefaultFileName))

	require.Error(t, run(t, "init", dir))
	require.NoError(t, run(t, "init", "--force", dir))
}

func TestWritePagesJSON(t *testing.T) {
	cfgPath := scaffold(t)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	session, err := build.Assemble(context.Background(), cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writePages(&buf, session, true))

	var listing []pageListing
	require.NoError(t, json.Unmarshal(buf.Bytes(), &listing))
	names := make([]string, 0, len(listing))
	for _, l := range listing {
		names = append(names, l.FileName)
	}
	require.Contains(t, names, "basics.html")
	require.Contains(t, names, "index.html")
	require.NoDirExists(t, filepath.Join(filepath.Dir(cfgPath), "docs"))
}

func TestWritePagesText(t *testing.T) {
	cfgPath := scaffold(t)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	session, err := build.Assemble(context.Background(), cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writePages(&buf, session, false))
	require.Contains(t, buf.String(), "basics.html")
	require.Contains(t, buf.String(), "  - buttons")
}

func TestHistoryCommandRequiresDB(t *testing.T) {
	cfgPath := scaffold(t)
	require.Error(t, run(t, "-c", cfgPath, "history"))
}

func TestWriteHistory(t *testing.T) {
	var buf bytes.Buffer
	writeHistory(&buf, nil)
	require.Contains(t, buf.String(), "no builds recorded")

	buf.Reset()
	writeHistory(&buf, []history.Entry{{
		BuildID:      "build-1",
		StartedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:     1500 * time.Millisecond,
		Outcome:      "success",
		SourceCommit: "0123456789abcdef",
		Pages:        3,
	}})
	require.Contains(t, buf.String(), "01234567")
	require.NotContains(t, buf.String(), "0123456789")
	require.Contains(t, buf.String(), "build-1")
}

func TestStatusLine(t *testing.T) {
	require.Contains(t, statusLine(nil, errors.New("boom")), "Build failed: boom")

	report := &build.Report{Outcome: build.OutcomeWarning, Warnings: []error{errors.New("missing footer")}}
	line := statusLine(report, nil)
	require.Contains(t, line, "Build complete with warnings")
	require.Contains(t, line, "missing footer")

	require.Contains(t, statusLine(&build.Report{Outcome: build.OutcomeSuccess}, nil), "Build complete")
}

func TestParseLogLevel(t *testing.T) {
	t.Setenv("STYLEGUIDE_LOG_LEVEL", "warn")
	require.Equal(t, slog.LevelWarn, parseLogLevel(false))
	require.Equal(t, slog.LevelDebug, parseLogLevel(true))

	t.Setenv("STYLEGUIDE_LOG_LEVEL", "")
	require.Equal(t, slog.LevelInfo, parseLogLevel(false))
}
