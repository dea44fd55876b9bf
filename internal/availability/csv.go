package availability

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// WriteCSV renders the slot table as CSV.
func WriteCSV(w io.Writer, slots []Slot) error {
	if err := gocsv.Marshal(&slots, w); err != nil {
		return fmt.Errorf("marshal csv: %w", err)
	}
	return nil
}

// ExportCSV writes the slot table to a CSV file at path.
func ExportCSV(path string, slots []Slot) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() { _ = out.Close() }()

	if err := WriteCSV(out, slots); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close csv: %w", err)
	}
	return nil
}
