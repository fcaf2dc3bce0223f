package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amehta/credlens/internal/validate"
)

func (m *model) View() string {
	parts := []string{
		m.headerView(),
		m.tabStripView(),
		m.inputPanelView(),
	}
	if m.loading {
		parts = append(parts, m.loadingView())
	}
	if m.errorMessage != "" {
		parts = append(parts, errorStyle.Render(m.errorMessage))
	}
	if m.outcome != nil {
		parts = append(parts, m.viewport.View())
	}
	if m.infoMessage != "" && !m.loading {
		parts = append(parts, helperStyle.Render(m.infoMessage))
	}
	if m.helpVisible {
		parts = append(parts, m.keyLegendView())
	}
	parts = append(parts, m.statusBarView())
	return joinNonEmpty(parts)
}

func (m *model) headerView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("CredLens"),
		taglineStyle.Render(heroTagline),
	)
}

func (m *model) tabStripView() string {
	cells := make([]string, 0, len(tabSequence))
	for _, t := range tabSequence {
		label := fmt.Sprintf(" %s ", t.title())
		if t == m.activeTab {
			cells = append(cells, activeTabStyle.Render(label))
		} else {
			cells = append(cells, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *model) inputPanelView() string {
	switch m.activeTab {
	case tabURL:
		return m.urlPanelView()
	case tabText:
		return m.textPanelView()
	case tabDocument:
		return m.documentPanelView()
	default:
		return ""
	}
}

func (m *model) urlPanelView() string {
	lines := []string{
		sectionHeaderStyle.Render("Analyze a URL"),
		m.urlInput.View(),
	}
	switch {
	case !m.urlTouched:
		lines = append(lines, helperStyle.Render("Enter to analyze. Schemeless addresses get https:// prepended."))
	case m.urlCheck.Valid && m.urlCheck.Corrected != "":
		lines = append(lines, validStyle.Render("Will analyze as "+m.urlCheck.Corrected))
	case m.urlCheck.Valid:
		lines = append(lines, validStyle.Render("Ready to analyze."))
	default:
		lines = append(lines, errorStyle.Render(m.urlCheck.Message))
	}
	return strings.Join(lines, "\n")
}

func (m *model) textPanelView() string {
	lines := []string{
		sectionHeaderStyle.Render("Analyze pasted text"),
		m.textInput.View(),
	}
	if remaining := validate.Remaining(m.textInput.Value()); remaining > 0 {
		lines = append(lines, helperStyle.Render(fmt.Sprintf("%d more characters needed.", remaining)))
	} else {
		lines = append(lines, validStyle.Render("Ready to analyze. Press Ctrl+S."))
	}
	return strings.Join(lines, "\n")
}

func (m *model) documentPanelView() string {
	lines := []string{
		sectionHeaderStyle.Render("Analyze a document"),
		helperStyle.Render(fmt.Sprintf("PDF, DOC, DOCX, TXT, or RTF up to %s.", validate.FormatFileSize(validate.MaxFileSize))),
		m.picker.View(),
	}
	if m.fileNotice != "" {
		if m.selectedFile != nil {
			lines = append(lines, validStyle.Render(m.fileNotice))
		} else {
			lines = append(lines, errorStyle.Render(m.fileNotice))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *model) loadingView() string {
	line := fmt.Sprintf("%s Analyzing %s…", m.spinner.View(), m.activeTab.modality())
	if m.activeTab == tabDocument && m.uploadPercent > 0 {
		upload := fmt.Sprintf("Uploading %d%%", m.uploadPercent)
		return joinNonEmpty([]string{helperStyle.Render(line), m.uploadBar.View() + "  " + helperStyle.Render(upload)})
	}
	return helperStyle.Render(line)
}

func (m *model) statusBarView() string {
	stats := []string{fmt.Sprintf("Tab %s", m.activeTab.title())}
	if m.healthStatus != "" {
		stats = append(stats, fmt.Sprintf("Service %s", m.healthStatus))
	}
	if m.loading {
		stats = append(stats, "Analyzing…")
	}
	if badges := m.jobStatusBadges(); len(badges) > 0 {
		stats = append(stats, badges...)
	}
	stats = append(stats, "Ctrl+G help")
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) jobStatusBadges() []string {
	var badges []string
	for _, id := range m.jobOrder {
		snapshot := m.jobs[id]
		if snapshot.Status != jobStatusRunning {
			continue
		}
		badges = append(badges, fmt.Sprintf("%s…", snapshot.Kind))
	}
	return badges
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"Tab / Shift+Tab", "Switch input mode"},
		{"Enter", "Analyze URL"},
		{"Ctrl+S", "Analyze current input"},
		{"Esc", "Clear result"},
		{"PgUp/PgDn", "Scroll result"},
		{"Ctrl+C", "Quit"},
	}
	rows := []string{sectionHeaderStyle.Render("Keys")}
	for _, hint := range hints {
		key := keyStyle.Render(hint.Key)
		desc := keyDescStyle.Render(" " + hint.Description)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

var (
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")).Underline(true)
	taglineStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	validStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	activeTabStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	inactiveTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 1)
	statusBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(1, 2)
)
