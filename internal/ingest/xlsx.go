// =============================================================================
// PO Reconciliation - Workbook Reader
// =============================================================================
//
// This file reads Excel workbooks via excelize. Each sheet yields an
// independent RawTable: a workbook may contain a cover sheet, an
// instructions sheet, and the actual data sheet, and the header locator
// needs to try all of them.
//
// =============================================================================

package ingest

import (
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"poreconcile/internal/types"
)

// readWorkbook reads every sheet of an Excel workbook into RawTables.
//
// PARAMETERS:
//   - path: The path to the .xlsx/.xls file.
//
// RETURNS:
//   - One RawTable per sheet, in workbook sheet order.
//   - *ParseError if the binary cannot be decoded (corrupt, or the file is
//     still open in Excel) or the workbook has zero sheets.
func readWorkbook(path string) ([]types.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ParseError{
			Filename: filepath.Base(path),
			Reason:   "workbook could not be decoded (corrupt file, or still open in Excel?)",
			Err:      err,
		}
	}
	defer f.Close()

	sheetNames := f.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, &ParseError{
			Filename: filepath.Base(path),
			Reason:   "workbook contains no sheets",
		}
	}

	tables := make([]types.RawTable, 0, len(sheetNames))
	for _, sheetName := range sheetNames {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, &ParseError{
				Filename: filepath.Base(path),
				Reason:   "sheet '" + sheetName + "' could not be read",
				Err:      err,
			}
		}
		tables = append(tables, types.RawTable{Sheet: sheetName, Cells: rows})
	}

	return tables, nil
}
