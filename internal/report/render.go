package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const (
	minRenderWidth   = 40
	gaugeBarSegments = 30
)

// Render produces the terminal report for a display model, wrapped to the
// given width. The same renderer backs the TUI results pane and the one-shot
// analyze command.
func Render(model DisplayModel, width int) string {
	if width < minRenderWidth {
		width = minRenderWidth
	}
	bodyWrap := width - 2
	quoteWrap := width - 6

	var b strings.Builder

	b.WriteString(scoreLine(model))
	b.WriteRune('\n')
	b.WriteString(gaugeLine(model))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Summary of Claims"))
	b.WriteRune('\n')
	summary := model.Summary
	if strings.TrimSpace(summary) == "" {
		summary = "No summary was provided."
	}
	b.WriteString(wordwrap.String(summary, bodyWrap))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Overall Assessment"))
	b.WriteRune('\n')
	b.WriteString(wordwrap.String(model.Assessment, bodyWrap))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Manipulative Techniques"))
	b.WriteRune('\n')
	if !model.HasTechniques {
		b.WriteString(mutedStyle.Render(NoTechniquesMessage))
		b.WriteRune('\n')
	} else {
		for i, technique := range model.Techniques {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, techniqueStyle.Render(technique.Name)))
			b.WriteString(indent(wordwrap.String(technique.Explanation, quoteWrap), "   "))
			b.WriteRune('\n')
			if technique.Quote != "" {
				quote := wordwrap.String(fmt.Sprintf("“%s”", technique.Quote), quoteWrap)
				b.WriteString(quoteStyle.Render(indent(quote, "   ")))
				b.WriteRune('\n')
			}
		}
	}

	if model.Document != nil {
		b.WriteRune('\n')
		b.WriteString(sectionStyle.Render("Document"))
		b.WriteRune('\n')
		b.WriteString(fmt.Sprintf("%s (%s, %d characters extracted)\n",
			model.Document.Filename,
			strings.ToUpper(model.Document.FileType),
			model.Document.TextLength))
	}

	return strings.TrimRight(b.String(), "\n")
}

func scoreLine(model DisplayModel) string {
	label := fmt.Sprintf("Credibility Score: %d / 100", model.Score)
	return scoreStyleFor(model.Band).Render(label) +
		mutedStyle.Render(fmt.Sprintf("  (%s)", model.Band))
}

// gaugeLine draws the score as a linear sweep; the circular indicator angle
// stays available on the model for richer front ends.
func gaugeLine(model DisplayModel) string {
	filled := model.Score * gaugeBarSegments / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", gaugeBarSegments-filled)
	return scoreStyleFor(model.Band).Render(bar)
}

func scoreStyleFor(band Band) lipgloss.Style {
	switch band {
	case BandHigh:
		return scoreHighStyle
	case BandQuestionable:
		return scoreMidStyle
	default:
		return scoreLowStyle
	}
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

var (
	sectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	techniqueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("209"))
	quoteStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("110"))
	scoreHighStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a3be8c"))
	scoreMidStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd166"))
	scoreLowStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#bf616a"))
)
