package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestGetThemeFallsBackToNightfox(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate) = %q", got)
	}
	if got := GetTheme("missing").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(missing) = %q, want Nightfox", got)
	}
}

func TestNextThemeCycles(t *testing.T) {
	name := ThemeNames()[0]
	seen := map[string]bool{}
	for range ThemeNames() {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != ThemeNames()[0] {
		t.Fatalf("cycle ended at %q, want %q", name, ThemeNames()[0])
	}
	if len(seen) != len(ThemeNames()) {
		t.Fatalf("cycle visited %d themes, want %d", len(seen), len(ThemeNames()))
	}
	if got := NextTheme("unknown"); got != ThemeNames()[0] {
		t.Fatalf("NextTheme(unknown) = %q", got)
	}
}

func TestThemesDefineEveryColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for field, v := range map[string]string{
			"Background": th.Background, "Surface": th.Surface, "Text": th.Text,
			"Accent": th.Accent, "Danger": th.Danger, "Deal": th.Deal,
			"SelectionBg": th.SelectionBg, "BorderFocus": th.BorderFocus,
		} {
			if v == "" {
				t.Fatalf("theme %s missing %s", name, field)
			}
		}
	}
}

func TestLevelStyle(t *testing.T) {
	s := GetTheme("Nightfox").Styles()
	if s.LevelStyle("ERROR").GetForeground() != s.DangerText.GetForeground() {
		t.Fatalf("ERROR should use danger color")
	}
	if s.LevelStyle("WARN").GetForeground() != s.WarningText.GetForeground() {
		t.Fatalf("WARN should use warning color")
	}
	if s.LevelStyle("INFO").GetForeground() != s.InfoText.GetForeground() {
		t.Fatalf("INFO should use info color")
	}
}

func TestWithBackgroundKeepsBanner(t *testing.T) {
	th := GetTheme("Slate")
	s := th.Styles().WithBackground(th.FocusBg)
	if s.Text.GetBackground() != lipgloss.Color(th.FocusBg) {
		t.Fatalf("Text background = %v, want %s", s.Text.GetBackground(), th.FocusBg)
	}
	if s.Banner.GetBackground() != lipgloss.Color(th.Danger) {
		t.Fatalf("Banner background should stay %s", th.Danger)
	}
}

func TestModeBadge(t *testing.T) {
	s := GetTheme("Nightfox").Styles()
	if label, _ := s.ModeBadge(true); label != "● LIVE" {
		t.Fatalf("ModeBadge(true) = %q", label)
	}
	if label, _ := s.ModeBadge(false); label != "● MOCK" {
		t.Fatalf("ModeBadge(false) = %q", label)
	}
}
