package engine

import (
	"strings"
	"testing"
	"unicode/utf8"

	"flakwall/internal/stats"
)

func TestTrafficLine(t *testing.T) {
	got := trafficLine(stats.Snapshot{Total: 128, PerSecond: 6.4})
	if got != "6.4 req/s   128 total" {
		t.Fatalf("trafficLine = %q", got)
	}

	if got := trafficLine(stats.Snapshot{}); got != "0.0 req/s   0 total" {
		t.Fatalf("empty trafficLine = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("/api/users", 26); got != "/api/users" {
		t.Fatalf("short string modified: %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Fatalf("truncate = %q, want %q", got, "abcd…")
	}
}

func TestTruncate_MultibyteAgent(t *testing.T) {
	agent := "Мозилла/5.0 (Смартфон; Линукс) браузер"

	got := truncate(agent, 12)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("truncate = %q, want ellipsis suffix", got)
	}
	if n := utf8.RuneCountInString(got); n != 12 {
		t.Fatalf("rune count = %d, want 12", n)
	}
	if want := string([]rune(agent)[:11]) + "…"; got != want {
		t.Fatalf("truncate = %q, want %q", got, want)
	}

	// Multi-byte but under the limit in runes: returned whole.
	if got := truncate("héllo", 5); got != "héllo" {
		t.Fatalf("truncate = %q, want unchanged", got)
	}
}
