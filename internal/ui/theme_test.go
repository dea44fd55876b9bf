package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestGetTheme_KnownAndFallback(t *testing.T) {
	if got := GetTheme("Dracula"); got.Name != "Dracula" {
		t.Fatalf("GetTheme(Dracula).Name = %q, want Dracula", got.Name)
	}
	if got := GetTheme("NoSuchTheme"); got.Name != "Court" {
		t.Fatalf("GetTheme(unknown).Name = %q, want Court fallback", got.Name)
	}
	if got := GetTheme(""); got.Name != "Court" {
		t.Fatalf("GetTheme(empty).Name = %q, want Court fallback", got.Name)
	}
}

func TestTheme_StylesUseAccent(t *testing.T) {
	theme := GetTheme("Court")
	styles := theme.Styles()
	if styles.Logo.GetForeground() != styles.HelpKey.GetForeground() {
		t.Fatalf("Logo and HelpKey should share the accent color")
	}
}

func TestTheme_HeaderStyleUsesSurface(t *testing.T) {
	theme := GetTheme("Court")
	styles := theme.Styles()
	if styles.Header.GetBackground() != lipgloss.Color(theme.Surface) {
		t.Fatalf("Header background = %v, want surface %q", styles.Header.GetBackground(), theme.Surface)
	}
}
