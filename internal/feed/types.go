package feed

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Payload mirrors the availability feed document.
type Payload struct {
	Rows []Row `json:"rows"`
}

// Row is one time-of-day band across the visible days. The feed encodes the
// days as dynamic "dayDDMM" keys alongside the fixed fields, so decoding is
// custom.
type Row struct {
	Hour     int
	FromTime string
	Days     map[string]Day
}

// UnmarshalJSON splits the fixed fields from the dynamic day keys.
func (r *Row) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["hour"]; ok {
		if err := json.Unmarshal(v, &r.Hour); err != nil {
			return fmt.Errorf("decode hour: %w", err)
		}
	}
	if v, ok := raw["fromTime"]; ok {
		if err := json.Unmarshal(v, &r.FromTime); err != nil {
			return fmt.Errorf("decode fromTime: %w", err)
		}
	}
	for key, value := range raw {
		if !strings.HasPrefix(key, "day") {
			continue
		}
		if string(value) == "null" {
			continue
		}
		var day Day
		if err := json.Unmarshal(value, &day); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		if r.Days == nil {
			r.Days = make(map[string]Day)
		}
		r.Days[key] = day
	}
	return nil
}

// Day is one day cell within a row.
type Day struct {
	Label       string  `json:"day"`
	TotalSpaces int     `json:"total_spaces"`
	Spaces      []Space `json:"spaces"`
}

// Space is one venue offering the slot inside a day cell.
type Space struct {
	VenueID     *int   `json:"venue_id"`
	Name        string `json:"name"`
	TotalSpaces int    `json:"total_spaces"`
	ScrapedAt   string `json:"scraped_at"`
	Freshness   string `json:"freshness"`
	BookingURL  string `json:"booking_url"`
}
