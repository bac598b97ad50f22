// Package preview implements watch mode: an initial build, rebuilds on
// source changes (debounced), optional periodic rebuilds, and an optional
// static file server for the generated guide.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/styleguide/internal/build"
	"git.home.luguber.info/inful/styleguide/internal/config"
	"git.home.luguber.info/inful/styleguide/internal/logfields"
)

// BuildFunc runs one build. build.Service.Run satisfies it.
type BuildFunc func(ctx context.Context, cfg *config.Config) (*build.Report, error)

// Options configures Run.
type Options struct {
	Config          *config.Config
	Build           BuildFunc
	Debounce        time.Duration
	RebuildInterval time.Duration // Zero disables periodic rebuilds
	Addr            string        // Empty disables the HTTP server
	Registry        *prom.Registry
	OnBuild         func(*build.Report, error)
}

// Run performs an initial build, then rebuilds whenever the source tree,
// documentation assets or dependencies change. It blocks until ctx is done.
func Run(ctx context.Context, opts Options) error {
	if opts.Config == nil || opts.Build == nil {
		return errors.New("preview: config and build function are required")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = opts.Config.Watch.DebounceDuration()
	}

	status := &buildStatus{}
	runBuild := func(ctx context.Context) {
		report, err := opts.Build(ctx, opts.Config)
		status.set(report, err)
		if opts.OnBuild != nil {
			opts.OnBuild(report, err)
		}
	}

	runBuild(ctx)

	w, err := newWatcher(opts.Config)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	rebuildReq, trigger := setupRebuildDebouncer(opts.Debounce)
	var workerDone sync.WaitGroup
	workerDone.Add(1)
	go func() {
		defer workerDone.Done()
		rebuildWorker(ctx, rebuildReq, runBuild)
	}()

	if opts.RebuildInterval > 0 {
		sched, err := newScheduler(opts.RebuildInterval, trigger)
		if err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Warn("scheduler shutdown error", logfields.Error(err))
			}
		}()
	}

	var srv *http.Server
	if opts.Addr != "" {
		srv = &http.Server{
			Addr:              opts.Addr,
			Handler:           NewHandler(opts.Config.Destination, opts.Registry, status),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("preview server failed", logfields.Error(err))
			}
		}()
		slog.Info("Preview server listening", slog.String("url", fmt.Sprintf("http://%s", displayAddr(opts.Addr))))
	}

	w.loop(ctx, trigger)

	slog.Info("Shutting down watch mode")
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("HTTP server shutdown error", logfields.Error(err))
		}
	}
	workerDone.Wait()
	return nil
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

// setupRebuildDebouncer returns the rebuild channel and a trigger that
// fires once per quiet period of length d.
func setupRebuildDebouncer(d time.Duration) (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

// rebuildWorker runs one build at a time. A request arriving mid-build is
// coalesced into a single follow-up build.
func rebuildWorker(ctx context.Context, rebuildReq chan struct{}, runBuild func(context.Context)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			slog.Info("Change detected; rebuilding style guide")
			runBuild(ctx)
		}
	}
}
