package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Table is a bulk-loaded tabular record set: a header plus raw string rows.
// Values are accessed by column name; a row shorter than the header reads as
// empty for the trailing columns.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// ReadCSV parses an entire CSV stream into a Table. The first record is the
// header. Ragged rows are tolerated: short rows read as empty values.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		header[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return &Table{Header: header, Rows: rows, index: index}, nil
}

// ReadFile loads a CSV file from disk.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("path", path).Int("rows", len(t.Rows)).Int("columns", len(t.Header)).Msg("Dataset file loaded")
	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the header contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Value returns the trimmed cell value at (row, column). Absent columns and
// short rows yield the empty string.
func (t *Table) Value(row int, column string) string {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}
