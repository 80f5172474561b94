package tui

import (
	"fmt"

	"flakwall/internal/weblog"
)

const (
	maxPathWidth  = 42
	maxAgentWidth = 28
)

// formatEvent renders one access-log event as a single aligned tail row.
func formatEvent(ev weblog.Event, styles Styles) string {
	status := styles.ClassStyle(ev.StatusClass()).Render(fmt.Sprintf("%3d", ev.Status))
	when := styles.FaintText.Render(ev.Time.Format("15:04:05"))
	ip := styles.MutedText.Render(fmt.Sprintf("%-15s", truncate(ev.IP, 15)))
	method := styles.AccentText.Render(fmt.Sprintf("%-6s", truncate(ev.Method, 6)))
	path := styles.Text.Render(fmt.Sprintf("%-*s", maxPathWidth, truncate(ev.Path, maxPathWidth)))
	agent := styles.FaintText.Render(truncate(ev.UserAgent, maxAgentWidth))

	return when + "  " + ip + "  " + status + "  " + method + " " + path + "  " + agent
}

// truncate shortens a string to max runes with an ellipsis, never cutting
// inside a multi-byte character.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
