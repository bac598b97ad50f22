package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/pages"
)

// Writer renders pages and writes them into a destination directory.
type Writer struct {
	Renderer    Renderer
	Templates   *Templates
	Destination string
	Concurrency int
}

// WritePages writes every page in set as <destination>/<name>. Pages are
// written in parallel, bounded by Concurrency. The first failure cancels
// the remaining writes.
func (w *Writer) WritePages(ctx context.Context, set *pages.Set) ([]string, error) {
	if err := os.MkdirAll(w.Destination, 0o755); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "Could not create destination directory").
			Fatal().
			WithContext("path", w.Destination).
			Build()
	}

	names := set.Names()
	g, ctx := errgroup.WithContext(ctx)
	limit := w.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for _, name := range names {
		page, _ := set.Get(name)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return w.writePage(name, page)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return names, nil
}

// RenderPage composes header, rendered body and footer for one page.
func (w *Writer) RenderPage(name string, page *pages.Page) ([]byte, error) {
	data := PageData{Title: page.Title(), FileName: name, Blocks: page.Blocks}
	templates := w.Templates
	if templates == nil {
		templates = &Templates{}
	}

	header, err := templates.Header(data)
	if err != nil {
		return nil, renderFailure(err, name, "header")
	}
	body, err := w.Renderer.Render([]byte(page.Markdown()))
	if err != nil {
		return nil, renderFailure(err, name, "markdown")
	}
	footer, err := templates.Footer(data)
	if err != nil {
		return nil, renderFailure(err, name, "footer")
	}

	var out bytes.Buffer
	out.Grow(len(header) + len(body) + len(footer))
	out.Write(header)
	out.Write(body)
	out.Write(footer)
	return out.Bytes(), nil
}

func (w *Writer) writePage(name string, page *pages.Page) error {
	content, err := w.RenderPage(name, page)
	if err != nil {
		return err
	}
	path := filepath.Join(w.Destination, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRender, "Could not write page").
			Fatal().
			WithContext("page", name).
			WithContext("path", path).
			Build()
	}
	return nil
}

func renderFailure(err error, page, stage string) error {
	return ferrors.RenderError("Could not render page").
		WithCause(err).
		WithContext("page", page).
		WithContext("stage", stage).
		Build()
}
