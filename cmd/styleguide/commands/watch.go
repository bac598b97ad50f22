package commands

import (
	"os"

	"git.home.luguber.info/inful/styleguide/internal/build"
	"git.home.luguber.info/inful/styleguide/internal/config"
	"git.home.luguber.info/inful/styleguide/internal/preview"
)

// WatchCmd rebuilds the guide whenever sources change.
type WatchCmd struct {
	Serve string `name:"serve" placeholder:":8080" help:"Serve the destination directory and /metrics on this address"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	svc, rec, cleanup := newService(cfg, true)
	defer cleanup()

	return preview.Run(ctx, preview.Options{
		Config:          cfg,
		Build:           svc.Run,
		Debounce:        cfg.Watch.DebounceDuration(),
		RebuildInterval: cfg.Watch.RebuildEvery(),
		Addr:            w.Serve,
		Registry:        rec.Registry(),
		OnBuild: func(report *build.Report, err error) {
			printStatus(os.Stdout, report, err)
		},
	})
}
