package ui

import (
	"fmt"
	"strings"
)

// renderHeader renders the one-line status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{styles.Logo.Render("courtwatch")}

	switch {
	case !m.snapshot.HasData && m.snapshot.LastError == nil:
		parts = append(parts, styles.Warning.Render("Connecting to feed..."))
	case m.snapshot.IsOffline():
		parts = append(parts, styles.Danger.Render("FEED OFFLINE"), styles.Warning.Render("Retrying..."))
	case m.snapshot.LastError != nil:
		parts = append(parts, styles.Warning.Render("poll error"))
	default:
		parts = append(parts, styles.Success.Render("LIVE"))
	}

	if m.snapshot.HasData {
		visible := m.visibleSlots()
		label := fmt.Sprintf("%d slots", len(visible))
		if m.filter != "" {
			label = fmt.Sprintf("%d/%d slots  filter:%s", len(visible), len(m.snapshot.Slots), m.filter)
		}
		parts = append(parts,
			styles.Text.Render(label),
			styles.Muted.Render(fmt.Sprintf("%d venues", countVenues(m.snapshot.Slots))),
		)
	}

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, styles.Muted.Render(m.snapshot.LastUpdated.Format("15:04:05")))
	}
	if m.snapshot.LastError != nil {
		parts = append(parts, styles.Danger.Render(truncate(m.snapshot.LastError.Error(), 48)))
	}

	content := strings.Join(parts, "  ")
	return styles.Header.Width(m.width).Render(content)
}

// renderFooter renders the key hints line.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.filtering {
		return styles.Text.Render("filter: ") + m.filterInput.View()
	}
	hints := []string{"q quit", "r refresh", "/ filter", "? help"}
	if m.filter != "" {
		hints = append(hints, "esc clear filter")
	}
	return styles.Muted.Render(strings.Join(hints, "  ·  "))
}

// truncate shortens to max runes so multibyte names are never cut mid-rune.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
