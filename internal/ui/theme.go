package ui

import "github.com/charmbracelet/lipgloss"

// Theme is a small named color palette.
type Theme struct {
	Name    string
	Accent  string
	Text    string
	Muted   string
	Surface string
	Danger  string
	Warning string
	Success string
}

var themes = map[string]Theme{
	"Court": {
		Name:    "Court",
		Accent:  "#22c55e",
		Text:    "#e5e7eb",
		Muted:   "#6b7280",
		Surface: "#1f2937",
		Danger:  "#ef4444",
		Warning: "#f59e0b",
		Success: "#22c55e",
	},
	"Dracula": {
		Name:    "Dracula",
		Accent:  "#bd93f9",
		Text:    "#f8f8f2",
		Muted:   "#6272a4",
		Surface: "#44475a",
		Danger:  "#ff5555",
		Warning: "#f1fa8c",
		Success: "#50fa7b",
	},
}

// GetTheme returns the named theme, falling back to Court.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["Court"]
}

// Styles bundles the lipgloss styles derived from a theme.
type Styles struct {
	Logo    lipgloss.Style
	Header  lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Danger  lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	HelpKey lipgloss.Style
}

// Styles materializes the theme into render styles.
func (t Theme) Styles() Styles {
	return Styles{
		Logo:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true),
		Header:  lipgloss.NewStyle().Background(lipgloss.Color(t.Surface)).Foreground(lipgloss.Color(t.Text)),
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		HelpKey: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
	}
}
