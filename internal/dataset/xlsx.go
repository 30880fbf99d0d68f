package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the header row and data rows from one sheet of a workbook.
// The sheet is selected by name when sheetName is non-empty, otherwise by
// 1-based index (0 or negative means the first sheet).
func ReadXLSX(path, sheetName string, sheetIndex int) (header []string, rows [][]string, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	var sheet string
	if sheetName != "" {
		for _, s := range sheets {
			if s == sheetName {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, nil, fmt.Errorf("sheet %q not found; available: %s", sheetName, strings.Join(sheets, ", "))
		}
	} else {
		idx := sheetIndex
		if idx <= 0 {
			idx = 1
		}
		if idx > len(sheets) {
			return nil, nil, fmt.Errorf("sheet index %d out of range; workbook has %d sheet(s)", idx, len(sheets))
		}
		sheet = sheets[idx-1]
	}

	all, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("sheet %q has no header row", sheet)
	}
	return all[0], all[1:], nil
}
