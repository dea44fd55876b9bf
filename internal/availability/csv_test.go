package availability

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	slots := []Slot{{
		Date:      "2026-01-02",
		Time:      "07:00",
		Venue:     "Test Venue",
		Spaces:    3,
		VenueSize: 1,
		Age:       "6 mins ago",
		ScrapedAt: "2025-12-29T19:30:16",
		URL:       "https://example.com/2026-01-02/slot",
		VenueID:   5,
	}}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, slots); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv lines = %d, want header + 1 row:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "Date,Time,Venue,Spaces,Venue Size,Age,Scraped At,URL,venue_id") {
		t.Fatalf("header = %q, want tabular column names", lines[0])
	}
	if !strings.Contains(lines[1], "Test Venue") || !strings.Contains(lines[1], "2026-01-02") {
		t.Fatalf("row = %q, want venue and date present", lines[1])
	}
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	slots := []Slot{{Date: "2026-01-02", Time: "07:00", Venue: "A", VenueID: 1}}

	if err := ExportCSV(path, slots); err != nil {
		t.Fatalf("ExportCSV returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "2026-01-02") {
		t.Fatalf("csv file = %q, want exported row", string(data))
	}
}
