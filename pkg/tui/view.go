package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/counterline/till/pkg/ledger"
	"github.com/counterline/till/pkg/report"
)

const minWidth = 60
const minHeight = 16

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	var b strings.Builder

	// Header
	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")

	// Separator
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	headerLines := 2
	footerLines := 2

	contentHeight := h - headerLines - footerLines

	// Two-panel layout — form on the left, dashboard on the right
	leftWidth := w / 2
	rightWidth := w - leftWidth - 1 // 1 char for divider
	if leftWidth < 30 {
		leftWidth = 30
	}
	if rightWidth < 30 {
		rightWidth = 30
	}

	leftPanel := m.renderFormPanel(leftWidth)
	rightPanel := m.renderDashboardPanel(rightWidth)

	sep := lipgloss.NewStyle().Foreground(ColorGrayDim).Render("│")
	for i := 0; i < contentHeight; i++ {
		b.WriteString(getLine(leftPanel, i, leftWidth))
		b.WriteString(sep)
		b.WriteString(getLine(rightPanel, i, rightWidth))
		b.WriteString("\n")
	}

	// Separator
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	// Footer
	b.WriteString(FooterStyle.Render(m.keys.ShortHelp()))

	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := HeaderStyle.Render("Till")

	stats := HeaderCountStyle.Render(fmt.Sprintf("%d orders", len(m.records)))

	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		style := StatusStyle
		if m.statusIsError {
			style = ErrorStyle
		}
		status = "  " + style.Render(m.statusMsg)
	}

	gap := width - lipgloss.Width(title) - lipgloss.Width(stats) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}

	return title + strings.Repeat(" ", gap) + status + stats
}

func (m Model) renderFormPanel(width int) string {
	var lines []string

	lines = append(lines, " "+SectionTitleStyle.Render("Register Order"))
	lines = append(lines, "")

	for i := fieldCustomer; i <= fieldObservations; i++ {
		lines = append(lines, m.renderField(i))
	}

	lines = append(lines, "")
	lines = append(lines, " "+SectionTitleStyle.Render("Financial Goal"))
	lines = append(lines, "")
	lines = append(lines, m.renderField(fieldGoal))

	return strings.Join(lines, "\n")
}

func (m Model) renderField(i int) string {
	style := FieldLabelStyle
	if i == m.focus {
		style = FieldLabelFocusedStyle
	}
	label := style.Render(fmt.Sprintf(" %-13s", fieldLabels[i]+":"))
	return label + m.inputs[i].View()
}

func (m Model) renderDashboardPanel(width int) string {
	var lines []string

	// Total profit over every record on disk
	lines = append(lines, " "+SectionTitleStyle.Render("Total Profit"))
	lines = append(lines, " "+TotalStyle.Render(ledger.FormatPrice(m.total)))
	lines = append(lines, "")

	// Goal progress
	if percent, ok := m.tracker.Progress(m.total); ok {
		target, _ := m.tracker.Target()
		shown := percent / 100
		if shown > 1 {
			shown = 1
		}
		lines = append(lines, " "+m.progressBar.ViewAs(shown))
		lines = append(lines, " "+ResultStyle.Render(
			fmt.Sprintf("%.2f%% of %s", percent, ledger.FormatPrice(target))))
	} else {
		lines = append(lines, " "+FooterStyle.Render("No goal set. Fill the goal field and press ctrl+g."))
	}
	lines = append(lines, "")

	// Daily profit chart for the anchor week
	anchor := m.anchorDate()
	weekStart, weekEnd := report.WeekOf(anchor)
	lines = append(lines, " "+SectionTitleStyle.Render(
		fmt.Sprintf("Week %s - %s", weekStart.Format("02/01"), weekEnd.Format("02/01"))))
	buckets := report.BucketByDay(m.records, weekStart)
	for _, row := range strings.Split(RenderWeekChart(weekStart, buckets, width-2), "\n") {
		lines = append(lines, " "+row)
	}
	lines = append(lines, "")

	// Search results from the last ctrl+f
	if m.searched {
		if len(m.searchResults) == 0 {
			lines = append(lines, " "+FooterStyle.Render("No records for "+m.searchName))
		} else {
			lines = append(lines, " "+SectionTitleStyle.Render("Records for "+m.searchName))
			for _, name := range m.searchResults {
				lines = append(lines, " "+ResultStyle.Render(name))
			}
		}
		lines = append(lines, "")
	}

	if m.lastReportPath != "" {
		lines = append(lines, " "+FooterStyle.Render(fileHyperlink(m.lastReportPath)))
	}

	return strings.Join(lines, "\n")
}

// Helper functions

func getLine(block string, idx int, width int) string {
	lines := strings.Split(block, "\n")
	if idx < len(lines) {
		line := lines[idx]
		lineWidth := lipgloss.Width(line)
		if lineWidth < width {
			return line + strings.Repeat(" ", width-lineWidth)
		}
		return line
	}
	return strings.Repeat(" ", width)
}

// fileHyperlink wraps a file path in an OSC 8 terminal hyperlink so it's clickable.
func fileHyperlink(path string) string {
	url := "file://" + path
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, path)
}
