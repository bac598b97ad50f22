package build

import (
	"context"
	"errors"

	"git.home.luguber.info/inful/styleguide/internal/config"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/hierarchy"
	"git.home.luguber.info/inful/styleguide/internal/logfields"
	"git.home.luguber.info/inful/styleguide/internal/metrics"
	"git.home.luguber.info/inful/styleguide/internal/observability"
	"git.home.luguber.info/inful/styleguide/internal/pages"
	"git.home.luguber.info/inful/styleguide/internal/scanner"
)

// Session owns the mutable state of one build. Nothing is shared between
// sessions, so concurrent builds of different configs do not interfere.
type Session struct {
	Config     *config.Config
	Collection *hierarchy.Collection
	Pages      *pages.Set
	Files      []scanner.SourceFile
	Report     *Report

	recorder metrics.Recorder
}

func newSession(cfg *config.Config, report *Report, recorder metrics.Recorder) *Session {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Session{
		Config: cfg,
		Collection: hierarchy.New(hierarchy.Headings{
			Parent: cfg.ParentHeadingTag,
			Child:  cfg.ChildHeadingTag,
		}),
		Pages:    pages.NewSet(),
		Report:   report,
		recorder: recorder,
	}
}

// warn records a tolerated problem on the report and logs it.
func (s *Session) warn(ctx context.Context, err error) {
	s.Report.Warnings = append(s.Report.Warnings, err)
	category := string(ferrors.GetCategory(err))
	s.recorder.IncWarning(category)
	observability.WarnContext(ctx, warningLine(err), logfields.Category(category))
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
