package build

import (
	"fmt"
	"sort"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/hierarchy"
)

// Outcome is the final state of a build.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeWarning  Outcome = "warning"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Report captures what a build did.
type Report struct {
	BuildID        string
	Start          time.Time
	End            time.Time
	StageDurations map[string]time.Duration
	Outcome        Outcome
	Warnings       []error

	Files   int // Recognized source files
	Blocks  int // Valid blocks inserted into the hierarchy
	Pages   int // Pages in the set, including the index alias
	Written []string

	Unresolved   map[string][]hierarchy.Orphan
	SourceCommit string
	ChangedPages []string
}

func newReport(id string, start time.Time) *Report {
	return &Report{
		BuildID:        id,
		Start:          start,
		StageDurations: make(map[string]time.Duration),
	}
}

// Duration is the wall time of the build.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

// deriveOutcome sets Outcome from the terminating error and collected warnings.
func (r *Report) deriveOutcome(err error) {
	switch {
	case err != nil && isCanceled(err):
		r.Outcome = OutcomeCanceled
	case err != nil:
		r.Outcome = OutcomeFailed
	case len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

// WarningMessages renders each warning on one line.
func (r *Report) WarningMessages() []string {
	out := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		out = append(out, warningLine(w))
	}
	return out
}

func warningLine(err error) string {
	ce, ok := ferrors.AsClassified(err)
	if !ok {
		return err.Error()
	}
	var b strings.Builder
	b.WriteString(ce.Message())
	ctx := ce.Context()
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := fmt.Sprint(ctx[k])
		if strings.Contains(v, "\n") {
			continue
		}
		fmt.Fprintf(&b, " %s=%s", k, v)
	}
	if cause := ce.Cause(); cause != nil {
		fmt.Fprintf(&b, ": %v", cause)
	}
	return b.String()
}

// Summary is a one-line description of the build.
func (r *Report) Summary() string {
	return fmt.Sprintf("%s: %d files, %d blocks, %d pages, %d warnings in %s",
		r.Outcome, r.Files, r.Blocks, r.Pages, len(r.Warnings), r.Duration().Round(time.Millisecond))
}
