package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/styleguide/internal/logfields"
	"git.home.luguber.info/inful/styleguide/internal/metrics"
	"git.home.luguber.info/inful/styleguide/internal/observability"
)

// StageName identifies a pipeline stage in reports, logs and metrics.
type StageName string

const (
	StageScan     StageName = "scan"
	StageParse    StageName = "parse"
	StageFold     StageName = "fold"
	StageRender   StageName = "render"
	StageAssets   StageName = "assets"
	StageVerify   StageName = "verify"
	StageManifest StageName = "manifest"
)

// StageFunc executes one stage against the session.
type StageFunc func(ctx context.Context, s *Session) error

// StageDef pairs a stage name with its implementation.
type StageDef struct {
	Name StageName
	Fn   StageFunc
}

// assembleStages build the page set without touching the destination.
func assembleStages() []StageDef {
	return []StageDef{
		{StageScan, stageScan},
		{StageParse, stageParse},
		{StageFold, stageFold},
	}
}

// fullStages is the complete pipeline used by Service.Run.
func fullStages() []StageDef {
	return append(assembleStages(),
		StageDef{StageRender, stageRender},
		StageDef{StageAssets, stageAssets},
		StageDef{StageVerify, stageVerify},
		StageDef{StageManifest, stageManifest},
	)
}

// runStages executes stages in order, recording timing and stopping on the
// first error. Warnings never stop the pipeline.
func runStages(ctx context.Context, s *Session, stages []StageDef) error {
	for _, st := range stages {
		name := string(st.Name)
		if err := ctx.Err(); err != nil {
			s.recorder.IncStageResult(name, metrics.ResultCanceled)
			return err
		}

		stageCtx := observability.WithStage(ctx, name)
		warningsBefore := len(s.Report.Warnings)

		t0 := time.Now()
		err := st.Fn(stageCtx, s)
		dur := time.Since(t0)

		s.Report.StageDurations[name] = dur
		s.recorder.ObserveStageDuration(name, dur)

		switch {
		case err != nil && isCanceled(err):
			s.recorder.IncStageResult(name, metrics.ResultCanceled)
			return err
		case err != nil:
			s.recorder.IncStageResult(name, metrics.ResultFatal)
			return err
		case len(s.Report.Warnings) > warningsBefore:
			s.recorder.IncStageResult(name, metrics.ResultWarning)
		default:
			s.recorder.IncStageResult(name, metrics.ResultSuccess)
		}
		observability.DebugContext(stageCtx, "Stage complete",
			logfields.DurationMS(float64(dur.Microseconds())/1000))
	}
	return nil
}
