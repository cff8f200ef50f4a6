// =============================================================================
// PO Reconciliation - Tabular Ingestion Module
// =============================================================================
//
// This module turns an arbitrary uploaded file into one or more raw untyped
// grids (RawTable). It supports three input encodings:
//   - Delimited text (.csv / .tsv) : one grid, no header assumption
//   - Excel workbook (.xlsx / .xls): one grid per sheet; every sheet is a
//     candidate, since workbooks routinely carry a cover sheet ahead of the
//     real data sheet
//   - PDF (.pdf)                   : best-effort plain-text table heuristic
//     over the embedded text layer (no OCR)
//
// The parser is selected by file extension. Anything else fails immediately
// with UnsupportedFormatError.
//
// Ingestion is a pure transformation: no network or persistent I/O beyond
// reading the supplied file bytes. Header identification is deliberately NOT
// done here; that is the header package's job.
//
// =============================================================================

package ingest

import (
	"path/filepath"
	"strings"

	"poreconcile/internal/types"
)

// =============================================================================
// FILE DISPATCH
// =============================================================================

// ReadFile decodes the file at path into one or more RawTables.
//
// PARAMETERS:
//   - path: The path to the input file. The extension selects the parser.
//
// RETURNS:
//   - One RawTable for CSV/TSV/PDF sources, one per sheet for workbooks.
//   - *UnsupportedFormatError or *ParseError on failure.
func ReadFile(path string) ([]types.RawTable, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".csv":
		return readDelimited(path, ',')
	case ".tsv":
		return readDelimited(path, '\t')
	case ".xlsx", ".xls":
		return readWorkbook(path)
	case ".pdf":
		return readPDF(path)
	default:
		return nil, &UnsupportedFormatError{
			Filename:  filepath.Base(path),
			Extension: ext,
		}
	}
}

// =============================================================================
// IN-MEMORY GRID
// =============================================================================

// FromGrid wraps a 2-D array of cell values taken directly from a
// spreadsheet selection. This skips file decoding entirely but the result
// still flows through header location and column detection like any other
// source.
func FromGrid(cells [][]string) types.RawTable {
	// Copy the grid so the caller's slice stays untouched.
	copied := make([][]string, len(cells))
	for i, row := range cells {
		copied[i] = append([]string(nil), row...)
	}
	return types.RawTable{Sheet: "selection", Cells: copied}
}
