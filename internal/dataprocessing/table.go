package dataprocessing

import (
	"strings"

	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
)

// Table is a rectangular grid of raw cell values with a header row.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewTable builds a table. Short rows are padded and long rows truncated to
// the header width.
func NewTable(name string, header []string, rows [][]string) *Table {
	width := len(header)
	for i, row := range rows {
		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		case len(row) > width:
			rows[i] = row[:width]
		}
	}

	t := &Table{Name: name, Header: header, Rows: rows}
	t.buildIndex()
	return t
}

func (t *Table) buildIndex() {
	t.index = make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		key := NormalizeHeader(h)
		// first occurrence wins for duplicated headers
		if _, exists := t.index[key]; !exists {
			t.index[key] = i
		}
	}
}

// NormalizeHeader lower-cases a header and joins words with underscores.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.Join(strings.Fields(strings.ToLower(h)), "_")
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the index of the first header matching name or one of its
// aliases. A COLUMN error is returned when none match.
func (t *Table) Column(name string, aliases ...string) (int, error) {
	if t.index == nil {
		t.buildIndex()
	}
	for _, candidate := range append([]string{name}, aliases...) {
		if i, ok := t.index[NormalizeHeader(candidate)]; ok {
			return i, nil
		}
	}
	return -1, apperrors.NewColumnError(t.Name, name)
}

// OptionalColumn is Column without the error; it returns -1 when absent.
func (t *Table) OptionalColumn(name string, aliases ...string) int {
	i, err := t.Column(name, aliases...)
	if err != nil {
		return -1
	}
	return i
}

// Cell returns the value at row, col or "" when col is -1.
func (t *Table) Cell(row, col int) string {
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}
