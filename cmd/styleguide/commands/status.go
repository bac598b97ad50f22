package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"git.home.luguber.info/inful/styleguide/internal/build"
)

var (
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	styleFailed  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func outcomeStyle(o build.Outcome) lipgloss.Style {
	switch o {
	case build.OutcomeSuccess:
		return styleSuccess
	case build.OutcomeWarning:
		return styleWarning
	default:
		return styleFailed
	}
}

// statusLine renders the final build banner followed by one line per warning.
func statusLine(report *build.Report, err error) string {
	if report == nil {
		return styleFailed.Render(fmt.Sprintf("Build failed: %v", err))
	}

	var b strings.Builder
	switch report.Outcome {
	case build.OutcomeSuccess:
		b.WriteString(styleSuccess.Render("Build complete"))
	case build.OutcomeWarning:
		b.WriteString(styleWarning.Render("Build complete with warnings"))
	case build.OutcomeCanceled:
		b.WriteString(styleFailed.Render("Build canceled"))
	default:
		b.WriteString(styleFailed.Render("Build failed"))
	}
	b.WriteString(" ")
	b.WriteString(styleMuted.Render(report.Summary()))
	for _, w := range report.WarningMessages() {
		b.WriteString("\n  ")
		b.WriteString(styleMuted.Render("- " + w))
	}
	if err != nil && report.Outcome == build.OutcomeFailed {
		b.WriteString("\n  ")
		b.WriteString(styleFailed.Render(err.Error()))
	}
	return b.String()
}

func printStatus(w io.Writer, report *build.Report, err error) {
	_, _ = fmt.Fprintln(w, statusLine(report, err))
}
