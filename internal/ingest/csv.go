// =============================================================================
// PO Reconciliation - Delimited Text Reader
// =============================================================================
//
// This file reads CSV and TSV exports into a raw grid. It makes no header
// assumption: instruction rows, legends, and the real table all come through
// as-is, preserving empty cells as empty strings, so the header locator can
// do its job downstream.
//
// PARSING POLICY:
//   - FieldsPerRecord = -1 : legacy exports routinely have ragged rows
//   - LazyQuotes           : tolerate quotes that break strict CSV rules
//   - Row-level recovery   : a malformed row is skipped, not fatal; the read
//     only fails when the decoder reported errors AND produced zero rows
//
// =============================================================================

package ingest

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"poreconcile/internal/types"
)

// readDelimited reads a CSV or TSV file into a single RawTable.
//
// PARAMETERS:
//   - path:  The path to the delimited text file.
//   - comma: The field delimiter (',' for CSV, '\t' for TSV).
//
// RETURNS:
//   - A single-element RawTable slice.
//   - *ParseError when the file cannot be opened or yields zero rows.
func readDelimited(path string, comma rune) ([]types.RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{
			Filename: filepath.Base(path),
			Reason:   "cannot open file",
			Err:      err,
		}
	}
	defer file.Close()

	grid, readErr := decodeDelimited(bufio.NewReader(file), comma)

	// A decoder error only matters when nothing at all was recovered.
	// Partial reads are fine: one broken row must not discard a usable file.
	if len(grid) == 0 {
		reason := "file contains no rows"
		if readErr != nil {
			reason = "file could not be read as delimited text"
		}
		return nil, &ParseError{
			Filename: filepath.Base(path),
			Reason:   reason,
			Err:      readErr,
		}
	}

	return []types.RawTable{{Sheet: "", Cells: grid}}, nil
}

// decodeDelimited reads rows one at a time so a single malformed record does
// not abort the whole file. It returns the rows it recovered plus the last
// decoder error seen, if any.
func decodeDelimited(r io.Reader, comma rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma

	// Allow variable number of fields per row.
	// This is needed for exports with inconsistent column counts.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true

	var grid [][]string
	var lastErr error

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip the malformed row but remember the error in case the
			// whole file turns out to be unreadable.
			lastErr = err
			if len(record) == 0 {
				continue
			}
		}
		grid = append(grid, record)
	}

	return grid, lastErr
}
