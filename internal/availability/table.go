// Package availability turns feed payloads into a flat slot table and
// computes the change set between two tables.
package availability

import (
	"fmt"
	"regexp"
	"sort"

	"courtwatch/internal/feed"
)

// Slot is one bookable court slot: a venue on a date at a time. The JSON and
// CSV names match the tabular layout the state cache has always used.
type Slot struct {
	Date      string `json:"Date" csv:"Date"`
	Time      string `json:"Time" csv:"Time"`
	Venue     string `json:"Venue" csv:"Venue"`
	Spaces    int    `json:"Spaces" csv:"Spaces"`
	VenueSize int    `json:"Venue Size" csv:"Venue Size"`
	Age       string `json:"Age" csv:"Age"`
	ScrapedAt string `json:"Scraped At" csv:"Scraped At"`
	URL       string `json:"URL" csv:"URL"`
	VenueID   int    `json:"venue_id" csv:"venue_id"`
}

// Key identifies a slot across polls. Venue name changes do not move a slot
// to a new identity; the venue id does.
func (s Slot) Key() string {
	return fmt.Sprintf("%s|%s|%d", s.Date, s.Time, s.VenueID)
}

// The day labels in the feed ("30 Dec") carry no year, so the date comes
// from the booking URL instead. This also keeps year boundaries correct.
var bookingDatePattern = regexp.MustCompile(`/(\d{4}-\d{2}-\d{2})/`)

// ExtractDate pulls the ISO date out of a booking URL, or returns "".
func ExtractDate(bookingURL string) string {
	m := bookingDatePattern.FindStringSubmatch(bookingURL)
	if m == nil {
		return ""
	}
	return m[1]
}

// Tabularise flattens a feed payload into one Slot per venue per day per
// time band. Day cells with no spaces produce no rows.
func Tabularise(payload *feed.Payload) []Slot {
	if payload == nil {
		return nil
	}
	var out []Slot
	for _, row := range payload.Rows {
		for _, dayKey := range sortedDayKeys(row.Days) {
			day := row.Days[dayKey]
			for _, item := range day.Spaces {
				venueID := -1
				if item.VenueID != nil {
					venueID = *item.VenueID
				}
				out = append(out, Slot{
					Date:      ExtractDate(item.BookingURL),
					Time:      row.FromTime,
					Venue:     item.Name,
					Spaces:    day.TotalSpaces,
					VenueSize: item.TotalSpaces,
					Age:       item.Freshness,
					ScrapedAt: item.ScrapedAt,
					URL:       item.BookingURL,
					VenueID:   venueID,
				})
			}
		}
	}
	return out
}

// Diff compares two slot tables and returns the keys whose rows differ,
// sorted ascending. A key present on only one side counts as changed, so
// additions and removals are both reported.
func Diff(curr, prev []Slot) []string {
	prevMap := byKey(prev)
	currMap := byKey(curr)

	keys := make(map[string]struct{}, len(prevMap)+len(currMap))
	for k := range prevMap {
		keys[k] = struct{}{}
	}
	for k := range currMap {
		keys[k] = struct{}{}
	}

	var changed []string
	for k := range keys {
		a, inPrev := prevMap[k]
		b, inCurr := currMap[k]
		if !inPrev || !inCurr || a != b {
			changed = append(changed, k)
		}
	}
	sort.Strings(changed)
	return changed
}

func byKey(slots []Slot) map[string]Slot {
	m := make(map[string]Slot, len(slots))
	for _, s := range slots {
		m[s.Key()] = s
	}
	return m
}

func sortedDayKeys(days map[string]feed.Day) []string {
	if len(days) == 0 {
		return nil
	}
	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
