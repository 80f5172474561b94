package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"flakwall/internal/feed"
	"flakwall/internal/prefs"
	"flakwall/internal/stats"
	"flakwall/internal/weblog"
)

const (
	pollEvery   = 250 * time.Millisecond
	maxTailRows = 1000
	topPaths    = 8
	statsWidth  = 36
)

// Options configure the companion runtime.
type Options struct {
	Journal *feed.Journal
	Theme   string

	// PrefsPath is where theme and follow changes are persisted. Empty
	// disables persistence.
	PrefsPath string
	// Follow seeds the initial follow mode, normally from saved prefs.
	Follow bool
}

// Model is the bubbletea model for the live tail view.
type Model struct {
	journal   *feed.Journal
	collector *stats.Collector
	cursor    uint64
	prefsPath string

	events []weblog.Event
	follow bool
	errors bool // show only status >= 400

	viewport viewport.Model
	help     help.Model
	keys     keyMap

	theme  Theme
	styles Styles

	width, height int
	ready         bool
}

// NewModel builds a companion model reading from journal.
func NewModel(opts Options) Model {
	theme := GetTheme(opts.Theme)
	return Model{
		journal:   opts.Journal,
		collector: stats.NewCollector(),
		prefsPath: opts.PrefsPath,
		follow:    opts.Follow,
		help:      help.New(),
		keys:      DefaultKeyMap(),
		theme:     theme,
		styles:    theme.Styles(),
	}
}

type pollMsg time.Time

func pollCmd() tea.Cmd {
	return tea.Tick(pollEvery, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

// Init starts the journal poll loop.
func (m Model) Init() tea.Cmd {
	return pollCmd()
}

// Update handles messages on the bubbletea loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pollMsg:
		m.drainJournal()
		return m, pollCmd()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		tailWidth := msg.Width - statsWidth
		if tailWidth < 20 {
			tailWidth = msg.Width
		}
		// header + footer/help
		tailHeight := msg.Height - 3
		if tailHeight < 1 {
			tailHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(tailWidth, tailHeight)
			m.ready = true
		} else {
			m.viewport.Width = tailWidth
			m.viewport.Height = tailHeight
		}
		m.refreshTail()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.ToggleFollow):
			m.follow = !m.follow
			if m.follow {
				m.viewport.GotoBottom()
			}
			m.savePrefs()
			return m, nil
		case key.Matches(msg, m.keys.Theme):
			m.theme = GetTheme(NextTheme(m.theme.Name))
			m.styles = m.theme.Styles()
			m.refreshTail()
			m.savePrefs()
			return m, nil
		case key.Matches(msg, m.keys.ErrorsOnly):
			m.errors = !m.errors
			m.refreshTail()
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.events = nil
			m.collector.Reset()
			m.refreshTail()
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.follow = false
			m.viewport.ScrollUp(1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.viewport.ScrollDown(1)
			return m, nil
		case key.Matches(msg, m.keys.PageUp):
			m.follow = false
			m.viewport.HalfPageUp()
			return m, nil
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.HalfPageDown()
			return m, nil
		case key.Matches(msg, m.keys.Top):
			m.follow = false
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.follow = true
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// savePrefs persists the current theme and follow mode. A write failure is
// tolerated the same way a missing prefs file is on load.
func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Follow: m.follow})
}

// drainJournal pulls events published since the last poll into the tail.
func (m *Model) drainJournal() {
	if m.journal == nil {
		return
	}
	events, next := m.journal.Since(m.cursor)
	m.cursor = next
	if len(events) == 0 {
		return
	}
	for _, ev := range events {
		m.collector.Observe(ev)
	}
	m.events = append(m.events, events...)
	if over := len(m.events) - maxTailRows; over > 0 {
		m.events = m.events[over:]
	}
	m.refreshTail()
}

// refreshTail rebuilds the viewport content from the retained events.
func (m *Model) refreshTail() {
	if !m.ready {
		return
	}
	rows := make([]string, 0, len(m.events))
	for _, ev := range m.events {
		if m.errors && !ev.Rejected() {
			continue
		}
		rows = append(rows, formatEvent(ev, m.styles))
	}
	m.viewport.SetContent(joinRows(rows))
	if m.follow {
		m.viewport.GotoBottom()
	}
}

func joinRows(rows []string) string {
	if len(rows) == 0 {
		return "waiting for traffic..."
	}
	out := rows[0]
	for _, r := range rows[1:] {
		out += "\n" + r
	}
	return out
}

// Run blocks on the bubbletea program until ctx is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil // shutdown requested, not a failure
		}
		return fmt.Errorf("companion ui: %w", err)
	}
	return nil
}
