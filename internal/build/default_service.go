package build

import (
	"context"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/styleguide/internal/config"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/history"
	"git.home.luguber.info/inful/styleguide/internal/logfields"
	"git.home.luguber.info/inful/styleguide/internal/metrics"
	"git.home.luguber.info/inful/styleguide/internal/observability"
)

// textfileWriter is implemented by recorders that can export to a file.
type textfileWriter interface {
	WriteTextfile(path string) error
}

// DefaultService is the standard implementation of Service.
type DefaultService struct {
	recorder metrics.Recorder
	history  history.Store
	now      func() time.Time
	newID    func() string
}

// NewService creates a DefaultService with no metrics and no history.
func NewService() *DefaultService {
	return &DefaultService{
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// WithRecorder injects a metrics recorder.
func (s *DefaultService) WithRecorder(r metrics.Recorder) *DefaultService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithHistory records every finished build in store.
func (s *DefaultService) WithHistory(store history.Store) *DefaultService {
	s.history = store
	return s
}

// Run executes the complete pipeline.
func (s *DefaultService) Run(ctx context.Context, cfg *config.Config) (*Report, error) {
	report := newReport(s.newID(), s.now())
	if cfg == nil {
		report.End = s.now()
		report.deriveOutcome(ErrNilConfig)
		s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return report, ferrors.ConfigError("config required").WithCause(ErrNilConfig).Build()
	}

	ctx = observability.WithBuildID(ctx, report.BuildID)
	observability.InfoContext(ctx, "Starting build",
		logfields.Path(cfg.Source), logfields.File(cfg.BaseDir()))

	session := newSession(cfg, report, s.recorder)
	err := runStages(ctx, session, fullStages())

	report.End = s.now()
	report.deriveOutcome(err)
	s.finish(ctx, session, err)
	return report, err
}

// finish publishes metrics and history. Failures here only add warnings;
// they never change a successful build into a failed one.
func (s *DefaultService) finish(ctx context.Context, session *Session, buildErr error) {
	report := session.Report
	cfg := session.Config

	if s.history != nil {
		entry := history.Entry{
			BuildID:      report.BuildID,
			StartedAt:    report.Start,
			Duration:     report.Duration(),
			Outcome:      string(report.Outcome),
			SourceCommit: report.SourceCommit,
			Files:        report.Files,
			Blocks:       report.Blocks,
			Pages:        report.Pages,
			Warnings:     report.WarningMessages(),
		}
		if err := s.history.Record(context.WithoutCancel(ctx), entry); err != nil {
			session.warn(ctx, ferrors.WrapError(err, ferrors.CategoryStorage, "Could not record build history").
				Warning().
				Build())
		}
	}

	// Warnings added above can still move success to warning.
	if buildErr == nil {
		report.deriveOutcome(nil)
	}

	s.recorder.ObserveBuildDuration(report.Duration())
	s.recorder.IncBuildOutcome(outcomeLabel(report.Outcome))

	if cfg.MetricsFile != "" {
		if tw, ok := s.recorder.(textfileWriter); ok {
			if err := tw.WriteTextfile(cfg.MetricsFile); err != nil {
				session.warn(ctx, ferrors.WrapError(err, ferrors.CategoryStorage, "Could not write metrics file").
					Warning().
					WithContext("path", cfg.MetricsFile).
					Build())
			}
		}
	}

	switch report.Outcome {
	case OutcomeFailed, OutcomeCanceled:
		observability.ErrorContext(ctx, "Build "+string(report.Outcome), logfields.Error(buildErr))
	default:
		observability.InfoContext(ctx, "Build "+string(report.Outcome),
			logfields.Count(report.Pages),
			logfields.DurationMS(float64(report.Duration().Microseconds())/1000))
	}
}

func outcomeLabel(o Outcome) metrics.BuildOutcomeLabel {
	switch o {
	case OutcomeSuccess:
		return metrics.BuildOutcomeSuccess
	case OutcomeWarning:
		return metrics.BuildOutcomeWarning
	case OutcomeCanceled:
		return metrics.BuildOutcomeCanceled
	default:
		return metrics.BuildOutcomeFailed
	}
}

// Assemble runs the read side of the pipeline (scan, parse, fold) and
// returns the session holding the resulting hierarchy and page set. Nothing
// is written.
func Assemble(ctx context.Context, cfg *config.Config) (*Session, error) {
	report := newReport(uuid.New().String(), time.Now())
	session := newSession(cfg, report, metrics.NoopRecorder{})
	err := runStages(observability.WithBuildID(ctx, report.BuildID), session, assembleStages())
	report.End = time.Now()
	report.deriveOutcome(err)
	return session, err
}
