package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadCSV reads the header row and data rows from a CSV or TSV file. The
// delimiter is sniffed from the extension (.tsv means tab).
func ReadCSV(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		r.Comma = '\t'
	}

	header, err = r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("%s has no header row", path)
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, append([]string(nil), rec...))
	}
	return header, rows, nil
}

// ReadFile loads a tabular file into a Table, choosing the reader by
// extension: .xlsx workbooks, otherwise CSV/TSV text. sheetName and
// sheetIndex apply to workbooks only.
func ReadFile(path, sheetName string, sheetIndex int) (*Table, error) {
	var (
		header []string
		rows   [][]string
		err    error
	)
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		header, rows, err = ReadXLSX(path, sheetName, sheetIndex)
	} else {
		header, rows, err = ReadCSV(path)
	}
	if err != nil {
		return nil, err
	}
	return Load(header, rows)
}
