// Package parser adapts spreadsheet file formats to the normalized
// cell stream consumed by the compression core.
package parser

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/models"
)

// ExtractExcel reads an Excel workbook and normalizes every sheet.
// Cells are emitted in row-major order; empty cells are skipped.
func ExtractExcel(r io.Reader) ([]models.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sheets []models.Sheet
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, err
		}

		sheet := models.Sheet{Name: sheetName}
		for rowIdx, row := range rows {
			for colIdx, value := range row {
				if value == "" {
					continue
				}
				ref, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					return nil, err
				}
				sheet.Cells = append(sheet.Cells, models.Cell{
					Row:   rowIdx + 1,
					Col:   colIdx + 1,
					Ref:   ref,
					Value: value,
				})
			}
		}
		sheets = append(sheets, sheet)
	}

	return sheets, nil
}
