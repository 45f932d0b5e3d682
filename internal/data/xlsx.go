package data

import (
	"fmt"

	"bootcomp/internal/model"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads scenario columns from a spreadsheet tab (the first tab
// when opts.Sheet is empty).
func LoadXLSX(path string, opts Options) (model.Scenarios, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: %w: workbook has no sheets", path, model.ErrInsufficientData)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: sheet %q: %w", path, sheet, err)
	}
	sc, err := parseTable(rows, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: sheet %q: %w", path, sheet, err)
	}
	return sc, nil
}
