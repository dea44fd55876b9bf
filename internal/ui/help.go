package ui

import "strings"

// renderHelp renders the help overlay body.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	bindings := []struct {
		key  string
		desc string
	}{
		{"q / ctrl+c", "quit"},
		{"r", "poll the feed now"},
		{"/", "filter by venue name"},
		{"esc", "clear the filter"},
		{"j/k, arrows", "scroll the table"},
		{"pgup/pgdn", "page the table"},
		{"? / h", "toggle this help"},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Render("Keys"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		b.WriteString("  ")
		b.WriteString(styles.HelpKey.Render(padRight(bind.key, 14)))
		b.WriteString(styles.Text.Render(bind.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("The table shows one row per venue per date per time band."))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render("Changes are emailed (or logged in dry-run mode) as they are detected."))
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
