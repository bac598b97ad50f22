package build

import (
	"context"

	"git.home.luguber.info/inful/styleguide/internal/config"
)

// Service is the canonical interface for executing a style-guide build.
type Service interface {
	// Run executes the full pipeline and returns the report even when the
	// build fails, so callers can show what happened before the failure.
	Run(ctx context.Context, cfg *config.Config) (*Report, error)
}
