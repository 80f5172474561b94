package tui

import (
	"path/filepath"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"flakwall/internal/feed"
	"flakwall/internal/prefs"
	"flakwall/internal/weblog"
)

func TestDrainJournalAdvancesCursor(t *testing.T) {
	j := feed.NewJournal(100)
	m := NewModel(Options{Journal: j})

	j.Append(weblog.Event{ID: "a", Path: "/", Status: 200})
	j.Append(weblog.Event{ID: "b", Path: "/", Status: 404})

	m.drainJournal()
	if len(m.events) != 2 {
		t.Fatalf("events = %d, want 2", len(m.events))
	}

	// A second drain with no new events must not re-append.
	m.drainJournal()
	if len(m.events) != 2 {
		t.Fatalf("events after empty drain = %d, want still 2", len(m.events))
	}

	j.Append(weblog.Event{ID: "c", Path: "/", Status: 500})
	m.drainJournal()
	if len(m.events) != 3 || m.events[2].ID != "c" {
		t.Fatalf("events = %d (last %q), want 3 ending in c", len(m.events), m.events[len(m.events)-1].ID)
	}
}

func TestNewModelSeedsFollow(t *testing.T) {
	if m := NewModel(Options{Follow: true}); !m.follow {
		t.Fatal("follow = false, want seeded true")
	}
	if m := NewModel(Options{Follow: false}); m.follow {
		t.Fatal("follow = true, want seeded false")
	}
}

func TestThemeKeyCyclesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := NewModel(Options{Theme: "Dracula", PrefsPath: path, Follow: true})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	m = next.(Model)

	if m.theme.Name != "Slate" {
		t.Fatalf("theme = %q after cycle, want Slate", m.theme.Name)
	}

	saved, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("load saved prefs: %v", err)
	}
	if saved.Theme != "Slate" {
		t.Fatalf("persisted theme = %q, want Slate", saved.Theme)
	}
	if !saved.Follow {
		t.Fatal("persisted follow = false, want carried-over true")
	}

	// A second cycle wraps back around.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if m = next.(Model); m.theme.Name != "Dracula" {
		t.Fatalf("theme = %q after full cycle, want Dracula", m.theme.Name)
	}
}

func TestFollowTogglePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := NewModel(Options{PrefsPath: path, Follow: true})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Model)

	if m.follow {
		t.Fatal("follow = true after toggle, want false")
	}
	saved, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("load saved prefs: %v", err)
	}
	if saved.Follow {
		t.Fatal("persisted follow = true, want false")
	}
}

func TestDrainJournalCapsScrollback(t *testing.T) {
	j := feed.NewJournal(maxTailRows * 2)
	m := NewModel(Options{Journal: j})

	for i := 0; i < maxTailRows+50; i++ {
		j.Append(weblog.Event{ID: strconv.Itoa(i), Path: "/", Status: 200})
	}
	m.drainJournal()

	if len(m.events) != maxTailRows {
		t.Fatalf("events = %d, want capped at %d", len(m.events), maxTailRows)
	}
	if m.events[0].ID != "50" {
		t.Fatalf("oldest retained = %q, want 50 (oldest evicted first)", m.events[0].ID)
	}
}
