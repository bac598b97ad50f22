package build

import (
	"context"

	"git.home.luguber.info/inful/styleguide/internal/anchors"
	"git.home.luguber.info/inful/styleguide/internal/assets"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/logfields"
	"git.home.luguber.info/inful/styleguide/internal/manifest"
	"git.home.luguber.info/inful/styleguide/internal/observability"
	"git.home.luguber.info/inful/styleguide/internal/render"
)

func stageRender(ctx context.Context, s *Session) error {
	renderer, err := render.Lookup(s.Config.MarkdownRenderer)
	if err != nil {
		return err
	}

	templates, missing, err := render.LoadTemplates(s.Config.DocumentationAssets)
	if err != nil {
		return err
	}
	for _, m := range missing {
		s.warn(ctx, ferrors.NewError(ferrors.CategoryNotFound, "Template missing").
			WithCause(m).
			Warning().
			WithContext("path", s.Config.DocumentationAssets).
			Build())
	}

	w := &render.Writer{
		Renderer:    renderer,
		Templates:   templates,
		Destination: s.Config.Destination,
		Concurrency: s.Config.RenderConcurrency,
	}
	written, err := w.WritePages(ctx, s.Pages)
	if err != nil {
		return err
	}
	s.Report.Written = written
	s.recorder.SetPages(len(written))
	observability.InfoContext(ctx, "Wrote pages",
		logfields.Path(s.Config.Destination), logfields.Count(len(written)))
	return nil
}

// stageAssets copies dependencies first, then documentation assets, so an
// asset can override a dependency file of the same name.
func stageAssets(ctx context.Context, s *Session) error {
	deps := assets.CopyDependencies(s.Config.Dependencies, s.Config.Destination)
	docs := assets.CopyDocAssets(s.Config.DocumentationAssets, s.Config.Destination)
	for _, w := range append(deps.Warnings, docs.Warnings...) {
		s.warn(ctx, w)
	}
	observability.DebugContext(ctx, "Copied assets",
		logfields.Count(len(deps.Copied)+len(docs.Copied)))
	return nil
}

func stageVerify(ctx context.Context, s *Session) error {
	if !s.Config.VerifyAnchors {
		return nil
	}
	broken, err := anchors.Verify(s.Config.Destination, s.Report.Written)
	if err != nil {
		s.warn(ctx, ferrors.WrapError(err, ferrors.CategoryValidation, "Could not verify anchors").Warning().Build())
		return nil
	}
	for _, b := range broken {
		s.warn(ctx, ferrors.NewError(ferrors.CategoryValidation, "Broken link").
			Warning().
			WithContext("page", b.Page).
			WithContext("href", b.Href).
			WithContext("reason", b.Reason).
			Build())
	}
	return nil
}

// stageManifest resolves the source commit and, when configured, writes the
// build manifest. Persistence problems are warnings.
func stageManifest(ctx context.Context, s *Session) error {
	commit, err := manifest.SourceCommit(s.Config.Source)
	if err != nil {
		observability.DebugContext(ctx, "Source is not inside a git worktree", logfields.Error(err))
	}
	s.Report.SourceCommit = commit

	path := s.Config.ManifestPath()
	if path == "" {
		return nil
	}

	prev, err := manifest.Read(path)
	if err != nil {
		observability.DebugContext(ctx, "Ignoring unreadable previous manifest", logfields.Path(path), logfields.Error(err))
		prev = nil
	}

	m := manifest.New(s.Report.BuildID, s.Report.Start)
	m.Inputs = manifest.Inputs{
		Source:       s.Config.Source,
		SourceCommit: commit,
		ConfigHash:   manifest.HashConfig(s.Config.Raw()),
		Files:        s.Report.Files,
		Blocks:       s.Report.Blocks,
	}
	m.AddPages(s.Pages)
	m.Warnings = len(s.Report.Warnings)
	m.Status = string(OutcomeSuccess)
	if m.Warnings > 0 {
		m.Status = string(OutcomeWarning)
	}
	m.Duration = s.Report.Duration().Milliseconds()

	s.Report.ChangedPages = m.ChangedPages(prev)
	if prev != nil {
		observability.InfoContext(ctx, "Pages changed since last build",
			logfields.Count(len(s.Report.ChangedPages)))
	}

	if err := m.Write(path); err != nil {
		s.warn(ctx, ferrors.WrapError(err, ferrors.CategoryStorage, "Could not write manifest").
			Warning().
			WithContext("path", path).
			Build())
	}
	return nil
}
