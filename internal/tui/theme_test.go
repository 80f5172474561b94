package tui

import "testing"

func TestGetThemeFallback(t *testing.T) {
	if got := GetTheme("NoSuchTheme").Name; got != "Dracula" {
		t.Errorf("GetTheme fallback = %q, want Dracula", got)
	}
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Errorf("GetTheme(Slate) = %q", got)
	}
}

func TestNextThemeCycles(t *testing.T) {
	seen := map[string]bool{}
	name := themeOrder[0]
	for range themeOrder {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != themeOrder[0] {
		t.Errorf("cycle did not wrap: ended at %q", name)
	}
	for _, want := range themeOrder {
		if !seen[want] {
			t.Errorf("theme %q never visited", want)
		}
	}
	if got := NextTheme("bogus"); got != themeOrder[0] {
		t.Errorf("NextTheme(bogus) = %q, want first theme", got)
	}
}

func TestThemesCoverStatusClasses(t *testing.T) {
	for name, theme := range themes {
		for class := 2; class <= 5; class++ {
			if theme.ClassColors[class] == "" {
				t.Errorf("theme %q missing color for %dxx", name, class)
			}
		}
	}
}
