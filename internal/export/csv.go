// Package export serializes the progress table to CSV. The column order is
// fixed; rows are written in the order given, which is the display order at
// export time.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/djglass/ed-colony-construction-tracker/internal/commodity"
	"github.com/djglass/ed-colony-construction-tracker/internal/progress"
)

var header = []string{"Commodity", "Delivered", "Required", "Remaining"}

// Write serializes rows to w, header first.
func Write(w io.Writer, rows []progress.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			string(r.Commodity),
			strconv.Itoa(r.Delivered),
			strconv.Itoa(r.Required),
			strconv.Itoa(r.Remaining),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes rows to path, creating or truncating it. A failure leaves
// the in-memory rows untouched; the caller reports it and carries on.
func WriteFile(path string, rows []progress.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadFile loads a previously exported progress table, preserving row order.
func ReadFile(path string) ([]progress.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(header)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: missing header", path)
	}
	for i, want := range header {
		if records[0][i] != want {
			return nil, fmt.Errorf("read %s: unexpected header %v", path, records[0])
		}
	}

	rows := make([]progress.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		delivered, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("read %s: delivered %q: %w", path, rec[1], err)
		}
		required, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("read %s: required %q: %w", path, rec[2], err)
		}
		remaining, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("read %s: remaining %q: %w", path, rec[3], err)
		}
		rows = append(rows, progress.Row{
			Commodity: commodity.Name(rec[0]),
			Delivered: delivered,
			Required:  required,
			Remaining: remaining,
		})
	}
	return rows, nil
}
