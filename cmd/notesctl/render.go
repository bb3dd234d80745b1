package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

var (
	colorAccent = lipgloss.Color("#7C3AED")
	colorMuted  = lipgloss.Color("#94A3B8")
	colorWarn   = lipgloss.Color("#F59E0B")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarn)
	bodyStyle    = lipgloss.NewStyle().PaddingLeft(2)
)

// renderSummary formats a summary record for a terminal
func renderSummary(rec entities.SummaryRecord, attempt entities.GenerationAttempt) string {
	rec.Normalize()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Meeting Summary") + "\n")

	provider := attempt.Provider
	if provider == "" {
		provider = "none"
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("provider: %s  outcome: %s", provider, attempt.Outcome)) + "\n")
	if attempt.FellBack() {
		b.WriteString(warnStyle.Render("⚠ generation failed, showing the placeholder summary") + "\n")
	}
	b.WriteString("\n" + bodyStyle.Render(rec.Summary) + "\n")

	writeList(&b, "Key points", rec.KeyPoints)
	writeList(&b, "Decisions", rec.Decisions)

	actions := make([]string, len(rec.ActionItems))
	for i, a := range rec.ActionItems {
		actions[i] = fmt.Sprintf("%s %s", a.Task, mutedStyle.Render(fmt.Sprintf("(%s, %s)", a.Owner, a.DueDate)))
	}
	writeList(&b, "Action items", actions)

	agenda := make([]string, len(rec.Agenda))
	for i, a := range rec.Agenda {
		agenda[i] = fmt.Sprintf("%s: %s", a.Topic, a.Summary)
	}
	writeList(&b, "Agenda", agenda)

	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	b.WriteString("\n" + headingStyle.Render(heading) + "\n")
	if len(items) == 0 {
		b.WriteString(bodyStyle.Render(mutedStyle.Render("none")) + "\n")
		return
	}
	for _, it := range items {
		b.WriteString(bodyStyle.Render("• "+it) + "\n")
	}
}
