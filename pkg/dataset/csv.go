package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

var errNoHeader = errors.New("csv input has no header row")

// FromCSV reads a table from CSV content. The first row is the
// header. Empty cells are missing; cells that parse as numbers become
// float64, everything else stays a string.
func FromCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errNoHeader
		}
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	raw := make([][]string, 0)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", len(raw)+2, err)
		}
		raw = append(raw, rec)
	}

	t := NewTable(len(raw))
	for i, name := range header {
		cells := make([]any, len(raw))
		for j, rec := range raw {
			cells[j] = ParseValue(rec[i])
		}
		if err := t.SetColumn(name, cells); err != nil {
			return nil, fmt.Errorf("building column %s: %w", name, err)
		}
	}

	slog.Debug("csv table loaded", "rows", t.Len(), "columns", len(header))
	return t, t.validate()
}

// FromCSVFile reads a table from a CSV file on disk.
func FromCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv file %s: %w", path, err)
	}
	defer f.Close()
	return FromCSV(f)
}

// ParseValue maps a raw string onto the table cell types: empty is
// missing, numbers become float64, everything else stays a string.
func ParseValue(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
