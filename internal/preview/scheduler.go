package preview

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// scheduler fires periodic full rebuilds through the debounced trigger,
// so a scheduled build never overlaps one caused by a file change.
type scheduler struct {
	s gocron.Scheduler
}

func newScheduler(interval time.Duration, trigger func()) (*scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			slog.Debug("Scheduled rebuild")
			trigger()
		}),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create periodic rebuild job: %w", err)
	}
	return &scheduler{s: s}, nil
}

func (s *scheduler) Start() { s.s.Start() }

func (s *scheduler) Stop() error { return s.s.Shutdown() }
