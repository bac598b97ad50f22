package commands

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/styleguide/internal/config"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output        string `short:"o" help:"Override the destination directory from the configuration"`
	VerifyAnchors bool   `name:"verify-anchors" help:"Check that internal links in the generated pages resolve"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if err := b.apply(cfg); err != nil {
		return err
	}
	return RunBuild(cfg)
}

func (b *BuildCmd) apply(cfg *config.Config) error {
	if b.Output != "" {
		out, err := filepath.Abs(b.Output)
		if err != nil {
			return err
		}
		cfg.Destination = out
	}
	if b.VerifyAnchors {
		cfg.VerifyAnchors = true
	}
	return nil
}

// RunBuild runs one build and prints the status line.
func RunBuild(cfg *config.Config) error {
	ctx, cancel := signalContext()
	defer cancel()

	svc, _, cleanup := newService(cfg, false)
	defer cleanup()

	report, err := svc.Run(ctx, cfg)
	printStatus(os.Stdout, report, err)
	return err
}
