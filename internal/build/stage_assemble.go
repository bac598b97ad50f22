package build

import (
	"context"
	"sort"
	"strings"

	"git.home.luguber.info/inful/styleguide/internal/docblock"
	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/logfields"
	"git.home.luguber.info/inful/styleguide/internal/observability"
	"git.home.luguber.info/inful/styleguide/internal/scanner"
)

func stageScan(ctx context.Context, s *Session) error {
	files, err := scanner.Scan(s.Config.Source)
	if err != nil {
		return err
	}
	s.Files = files
	s.Report.Files = len(files)
	observability.InfoContext(ctx, "Scanned source tree",
		logfields.Path(s.Config.Source), logfields.Count(len(files)))
	return nil
}

// stageParse registers markdown documents as pages and inserts every
// documentation comment into the hierarchy, in scan order.
func stageParse(ctx context.Context, s *Session) error {
	for _, f := range s.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		content, err := f.Read()
		if err != nil {
			return err
		}

		if f.Kind == scanner.KindMarkdown {
			s.Pages.AddMarkdownPage(f.PageName(), content)
			continue
		}

		for _, raw := range docblock.Extract(content, f.Ext) {
			b, err := docblock.Parse(raw, f.Path)
			if err != nil {
				if ferrors.IsFatal(err) {
					return err
				}
				s.warn(ctx, err)
				continue
			}
			if b == nil {
				continue
			}
			if err := s.Collection.Insert(b); err != nil {
				return err
			}
			s.Report.Blocks++
		}
	}
	s.recorder.SetBlocks(s.Report.Blocks)
	return nil
}

// stageFold turns the hierarchy into pages and reports what was dropped.
func stageFold(ctx context.Context, s *Session) error {
	s.Pages.Fold(s.Collection.Roots(), "")

	unresolved := s.Collection.Unresolved()
	s.Report.Unresolved = unresolved
	s.recorder.SetUnresolvedParents(len(unresolved))

	parents := make([]string, 0, len(unresolved))
	for parent := range unresolved {
		parents = append(parents, parent)
	}
	sort.Strings(parents)
	for _, parent := range parents {
		names := make([]string, 0, len(unresolved[parent]))
		sources := make([]string, 0, len(unresolved[parent]))
		for _, o := range unresolved[parent] {
			names = append(names, o.Block.Name)
			sources = append(sources, o.Source)
		}
		builder := ferrors.NewError(ferrors.CategoryValidation, "Parent block was never defined, its children are not included in output")
		if nestedUnder := unresolved[parent][0].NestedUnder; nestedUnder != "" {
			builder = ferrors.NewError(ferrors.CategoryValidation, "Parent block is itself a child block, only top-level blocks can have children; its children are not included in output").
				WithContext("nested_under", nestedUnder)
		}
		s.warn(ctx, builder.
			Warning().
			WithContext("parent", parent).
			WithContext("children", strings.Join(names, ",")).
			WithContext("sources", strings.Join(uniqueSorted(sources), ",")).
			Build())
	}

	if idx := s.Config.Index; idx != "" && !s.Pages.AliasIndex(idx) {
		s.warn(ctx, ferrors.NewError(ferrors.CategoryNotFound, "Could not generate index.html, there was no content generated for the category").
			Warning().
			WithContext("index", idx).
			Build())
	}

	s.Report.Pages = s.Pages.Len()
	return nil
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
