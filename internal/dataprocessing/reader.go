package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadTable loads a table from a delimited text file or an .xlsx workbook.
// The table is named after the file without its extension.
func ReadTable(path string) (*Table, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readWorkbook(path, name)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(path)
		}
		return nil, apperrors.NewStorageError("failed to open "+path, err)
	}
	defer f.Close()

	return ReadDelimited(f, name)
}

// ReadDelimited parses delimited text. The delimiter is sniffed from the
// header line and a leading UTF-8 BOM is dropped. Blank lines are skipped.
func ReadDelimited(r io.Reader, name string) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read "+name, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = SniffDelimiter(string(firstLine))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("malformed table %s", name), err)
	}

	return tableFromRecords(name, records)
}

// SniffDelimiter picks the most frequent of comma, semicolon and tab outside
// quotes. Comma wins ties and lines with none of them.
func SniffDelimiter(line string) rune {
	counts := map[rune]int{}
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case inQuotes:
		case r == ',' || r == ';' || r == '\t':
			counts[r]++
		}
	}

	best := ','
	for _, candidate := range []rune{';', '\t'} {
		if counts[candidate] > counts[best] {
			best = candidate
		}
	}
	return best
}

// readWorkbook reads the first sheet of an .xlsx file
func readWorkbook(path, name string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(path)
		}
		return nil, apperrors.NewParsingError("failed to open workbook "+path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError("workbook has no sheets: "+path, nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet "+sheets[0], err)
	}

	return tableFromRecords(name, rows)
}

func tableFromRecords(name string, records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("table %s has no header row", name), nil)
	}

	header := records[0]
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		rows = append(rows, rec)
	}

	return NewTable(name, header, rows), nil
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
