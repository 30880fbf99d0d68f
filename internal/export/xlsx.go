// Package export serializes classified records back into a spreadsheet with
// abnormal rows highlighted.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/testlens-cli/internal/detect"
	"github.com/KaramelBytes/testlens-cli/internal/utils"
)

const (
	// SheetName is the single sheet emitted in result workbooks.
	SheetName = "Results"
	// abnormalFill is the light red applied across abnormal rows.
	abnormalFill = "FFCCCC"
)

// ExtraColumns are appended after the original columns, in this order.
var ExtraColumns = []string{"Lower_Bound", "Upper_Bound", "IS_OUTLIER"}

// Workbook builds a results workbook in memory. Every original column is
// emitted verbatim in its original order for every row (NOT_ANALYZED rows
// included), followed by the three derived columns. Rows classified ABNORMAL
// get a solid light-red fill across the full row width; row order follows
// the input exactly. An empty input still yields a valid workbook with the
// header row only.
func Workbook(header []string, rows []detect.Classified, runID string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	full := make([]string, 0, len(header)+len(ExtraColumns))
	full = append(full, header...)
	full = append(full, ExtraColumns...)
	hdr := make([]interface{}, len(full))
	for i, h := range full {
		hdr[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &hdr); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	fillID, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{abnormalFill}},
	})
	if err != nil {
		return nil, fmt.Errorf("create fill style: %w", err)
	}

	n := len(header)
	for i, row := range rows {
		cells := make([]interface{}, len(full))
		for j := 0; j < n; j++ {
			if j < len(row.Cells) {
				cells[j] = row.Cells[j]
			} else {
				cells[j] = ""
			}
		}
		if row.Lower != nil {
			cells[n] = *row.Lower
		}
		if row.Upper != nil {
			cells[n+1] = *row.Upper
		}
		cells[n+2] = row.Status.String()

		rowNum := i + 2
		first, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(SheetName, first, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", rowNum, err)
		}
		if row.Status == detect.StatusAbnormal {
			last, _ := excelize.CoordinatesToCellName(len(full), rowNum)
			if err := f.SetCellStyle(SheetName, first, last, fillID); err != nil {
				return nil, fmt.Errorf("style row %d: %w", rowNum, err)
			}
		}
	}

	if runID != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Identifier: runID, Creator: "testlens"}); err != nil {
			return nil, fmt.Errorf("set doc properties: %w", err)
		}
	}
	return f, nil
}

// WriteFile builds the workbook and saves it with an atomic rename.
func WriteFile(path string, header []string, rows []detect.Classified, runID string) error {
	f, err := Workbook(header, rows, runID)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return fmt.Errorf("serialize workbook: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}
