// Package history persists a record of every build so the watch loop and
// the history command can show what changed between runs.
package history

import (
	"context"
	"time"
)

// Entry is one completed build.
type Entry struct {
	BuildID      string
	StartedAt    time.Time
	Duration     time.Duration
	Outcome      string
	SourceCommit string
	Files        int
	Blocks       int
	Pages        int
	Warnings     []string
}

// Store records builds and returns them newest first.
type Store interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}
