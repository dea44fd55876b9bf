package ui

import (
	"fmt"
	"strings"

	"courtwatch/internal/availability"
	"courtwatch/internal/state"
)

const (
	colDate  = 10
	colTime  = 5
	colVenue = 28
	colNum   = 6
	colAge   = 14
)

// renderColumnHeader renders the table column titles.
func (m Model) renderColumnHeader() string {
	styles := m.theme.Styles()
	header := fmt.Sprintf("%-*s  %-*s  %-*s  %*s  %*s  %-*s",
		colDate, "DATE",
		colTime, "TIME",
		colVenue, "VENUE",
		colNum, "SPACES",
		colNum, "SIZE",
		colAge, "AGE",
	)
	return styles.Muted.Render(header)
}

// renderTable renders the visible slot rows for the viewport.
func (m Model) renderTable() string {
	styles := m.theme.Styles()
	visible := m.visibleSlots()
	if len(visible) == 0 {
		if m.filter != "" {
			return styles.Muted.Render("No slots match the filter.")
		}
		if !m.snapshot.HasData {
			return styles.Muted.Render("Waiting for the first poll...")
		}
		return styles.Muted.Render("No availability right now.")
	}

	rows := make([]string, 0, len(visible))
	for _, slot := range visible {
		line := fmt.Sprintf("%-*s  %-*s  %-*s  %*d  %*d  %-*s",
			colDate, slot.Date,
			colTime, slot.Time,
			colVenue, truncate(slot.Venue, colVenue),
			colNum, slot.Spaces,
			colNum, slot.VenueSize,
			colAge, truncate(slot.Age, colAge),
		)
		if slot.Spaces > 0 {
			rows = append(rows, styles.Text.Render(line))
		} else {
			rows = append(rows, styles.Muted.Render(line))
		}
	}
	return strings.Join(rows, "\n")
}

// visibleSlots applies the venue filter.
func (m Model) visibleSlots() []availability.Slot {
	if m.filter == "" {
		return m.snapshot.Slots
	}
	needle := strings.ToLower(m.filter)
	var out []availability.Slot
	for _, slot := range m.snapshot.Slots {
		if strings.Contains(strings.ToLower(slot.Venue), needle) {
			out = append(out, slot)
		}
	}
	return out
}

// renderChanges renders the recent-changes panel, newest first.
func (m Model) renderChanges() string {
	styles := m.theme.Styles()
	changes := m.snapshot.RecentChanges
	if len(changes) == 0 {
		return styles.Muted.Render("No changes notified yet.")
	}
	shown := changes
	if len(shown) > maxShownChanges {
		shown = shown[:maxShownChanges]
	}
	lines := make([]string, 0, len(shown)+1)
	lines = append(lines, styles.Success.Render(fmt.Sprintf("Recent changes (%d)", len(changes))))
	for _, c := range shown {
		lines = append(lines, styles.Text.Render(fmt.Sprintf("  %s  %s", c.Seen.Format("15:04"), c.Key)))
	}
	return strings.Join(lines, "\n")
}

const maxShownChanges = 4

// changePanelHeight returns the number of lines renderChanges occupies.
func changePanelHeight(snap state.Snapshot) int {
	n := len(snap.RecentChanges)
	if n == 0 {
		return 1
	}
	if n > maxShownChanges {
		n = maxShownChanges
	}
	return n + 1
}

func countVenues(slots []availability.Slot) int {
	seen := make(map[int]struct{}, len(slots))
	for _, slot := range slots {
		seen[slot.VenueID] = struct{}{}
	}
	return len(seen)
}
