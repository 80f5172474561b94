package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the full companion screen: header, tail + stats panel, help.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	body := m.viewport.View()
	if m.width-statsWidth >= 20 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderStats())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.styles.Footer.Width(m.width).Render(m.help.View(m.keys)),
	)
}

// renderHeader renders the one-line status bar.
func (m Model) renderHeader() string {
	snap := m.collector.Snapshot(0)

	parts := []string{
		m.styles.Logo.Render("flaktail"),
		m.styles.MutedText.Render("requests:") + " " + m.styles.Text.Render(fmt.Sprintf("%d", snap.Total)),
		m.styles.MutedText.Render("rate:") + " " + m.styles.Text.Render(fmt.Sprintf("%.1f/s", snap.PerSecond)),
	}

	errorTotal := snap.ByClass[4] + snap.ByClass[5]
	errStyle := m.styles.MutedText
	if errorTotal > 0 {
		errStyle = m.styles.DangerText
	}
	parts = append(parts, m.styles.MutedText.Render("errors:")+" "+errStyle.Render(fmt.Sprintf("%d", errorTotal)))

	if !m.follow {
		parts = append(parts, m.styles.AccentText.Render("PAUSED"))
	}
	if m.errors {
		parts = append(parts, m.styles.DangerText.Render("ERRORS ONLY"))
	}

	return m.styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

// renderStats renders the right-hand summary panel: per-class totals and
// the busiest request paths.
func (m Model) renderStats() string {
	snap := m.collector.Snapshot(topPaths)

	var b strings.Builder
	b.WriteString(m.styles.AccentText.Render("STATUS"))
	b.WriteString("\n")
	for class := 2; class <= 5; class++ {
		label := fmt.Sprintf("%dxx", class)
		count := snap.ByClass[class]
		b.WriteString(m.styles.ClassStyle(class).Render(label))
		b.WriteString(m.styles.Text.Render(fmt.Sprintf(" %6d", count)))
		if snap.Total > 0 {
			pct := float64(count) / float64(snap.Total) * 100
			b.WriteString(m.styles.FaintText.Render(fmt.Sprintf("  %5.1f%%", pct)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.AccentText.Render("TOP PATHS"))
	b.WriteString("\n")
	if len(snap.TopPaths) == 0 {
		b.WriteString(m.styles.FaintText.Render("no traffic yet"))
	}
	for _, pc := range snap.TopPaths {
		b.WriteString(m.styles.Text.Render(fmt.Sprintf("%5d ", pc.Count)))
		b.WriteString(m.styles.MutedText.Render(truncate(pc.Path, statsWidth-10)))
		b.WriteString("\n")
	}

	panel := m.styles.Panel.Width(statsWidth - 2)
	if m.viewport.Height > 2 {
		panel = panel.Height(m.viewport.Height - 2)
	}
	return panel.Render(strings.TrimRight(b.String(), "\n"))
}
