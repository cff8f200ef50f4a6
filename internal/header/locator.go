// =============================================================================
// PO Reconciliation - Header Locator
// =============================================================================
//
// This module scans raw grids (and, for multi-sheet workbooks, multiple
// grids) to find the row that is most plausibly the real column-header row,
// skipping cover pages, instructions, and legends above it.
//
// SCORING ALGORITHM (per grid):
//   1. Discard rows with fewer than 2 non-empty cells
//   2. Classify each non-empty cell as "short" (trimmed length <= 40) and
//      test short cells for containment of any header keyword
//   3. Score each candidate row as keywordHits*3 + shortCellCount; the
//      keyword weight rewards semantic recognition over mere cell-shortness
//   4. Rank by score descending, ties broken by short-cell count descending
//   5. Walk ranked candidates; accept the first whose headers resolve both
//      SKU and price roles AND that has at least one data row below it
//   6. If nothing auto-resolves, fall back to the candidate with the most
//      header cells for manual column selection by the caller. This is a
//      legitimate terminal state, not an error.
//
// Original column positions are recorded when extracting headers, because
// instruction rows above the table may have fewer populated columns than
// the real data rows.
//
// =============================================================================

package header

import (
	"fmt"
	"sort"
	"strings"

	"poreconcile/internal/columns"
	"poreconcile/internal/types"
)

// =============================================================================
// TUNING CONSTANTS
// =============================================================================

// shortCellLimit is the trimmed length that still looks like a column label
// rather than a sentence of instructional text.
const shortCellLimit = 40

// keywordWeight is how much one keyword hit outscores one short cell.
// A weight of 3 keeps a long row of short decorative cells from outranking
// a row with two or three unmistakable keyword hits.
const keywordWeight = 3

// headerKeywords is the fixed vocabulary of terms that mark a cell as a
// likely column label.
var headerKeywords = []string{
	"sku", "item", "product", "part", "material", "price", "cost",
	"amount", "qty", "quantity", "description", "name", "unit", "total",
	"status", "order", "number", "code", "date", "upc", "article",
}

// =============================================================================
// ERRORS
// =============================================================================

// NotFoundError indicates that no row in any grid cleared the minimum of
// two populated cells, so there is nothing to even offer for manual
// selection.
type NotFoundError struct {
	// Source describes the input being scanned (file name or "selection").
	Source string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no header row found in %s: no row has at least 2 populated cells", e.Source)
}

// =============================================================================
// RESULT
// =============================================================================

// Located is the outcome of a header search across one or more grids.
type Located struct {
	// Table is the parsed table built below the chosen header row.
	Table types.ParsedTable

	// Roles is the column-role assignment for the chosen headers. When
	// AutoResolved is false this may be partial: the caller is expected to
	// prompt for (or configure) the missing mappings.
	Roles columns.Roles

	// AutoResolved is true when SKU and price both resolved and at least
	// one data row exists, i.e. the table is immediately usable.
	AutoResolved bool
}

// =============================================================================
// LOCATION
// =============================================================================

// Locate finds the best header row across all candidate grids.
//
// PARAMETERS:
//   - tables: One grid per sheet. Multi-sheet workbooks pass all sheets.
//   - source: A label for error messages (file name or "selection").
//
// RETURNS:
//   - The located table, roles, and whether detection auto-resolved.
//   - *NotFoundError when no grid produced a single candidate row.
//
// Sheets are tried in order; the first sheet where auto-detection succeeds
// wins. Otherwise the best-effort fallback across all sheets is returned,
// preferring the candidate with the most header columns.
func Locate(tables []types.RawTable, source string) (*Located, error) {
	var fallback *Located

	for _, raw := range tables {
		located, ok := locateInGrid(raw)
		if located == nil {
			continue
		}
		if ok {
			return located, nil
		}
		if fallback == nil || len(located.Table.Headers) > len(fallback.Table.Headers) {
			fallback = located
		}
	}

	if fallback != nil {
		return fallback, nil
	}
	return nil, &NotFoundError{Source: source}
}

// =============================================================================
// PER-GRID SEARCH
// =============================================================================

// candidate is one row under consideration as the header row.
type candidate struct {
	rowIdx     int
	score      int
	shortCells int

	// headers are the row's non-empty cells; cols records each header's
	// original column position so data rows index correctly.
	headers []string
	cols    []int
}

// locateInGrid runs the scoring walk over one grid. The boolean reports
// whether the returned result auto-resolved; a nil result means the grid
// had no candidate rows at all.
func locateInGrid(raw types.RawTable) (*Located, bool) {
	candidates := collectCandidates(raw.Cells)
	if len(candidates) == 0 {
		return nil, false
	}

	// Rank by score, ties broken by short-cell count.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].shortCells > candidates[j].shortCells
	})

	// Walk ranked candidates and accept the first that fully resolves.
	for _, cand := range candidates {
		table := buildTable(raw, cand)
		roles := columns.Detect(table.Headers)
		if roles.Valid() && len(table.Rows) > 0 {
			return &Located{Table: table, Roles: roles, AutoResolved: true}, true
		}
	}

	// No candidate auto-resolved: fall back to the one with the most header
	// cells. A real data table has the most columns.
	best := candidates[0]
	for _, cand := range candidates[1:] {
		if len(cand.headers) > len(best.headers) {
			best = cand
		}
	}
	table := buildTable(raw, best)
	return &Located{Table: table, Roles: columns.Detect(table.Headers)}, false
}

// collectCandidates scores every row that clears the 2-non-empty-cell
// minimum.
func collectCandidates(cells [][]string) []candidate {
	var candidates []candidate

	for rowIdx, row := range cells {
		var headers []string
		var cols []int
		shortCells := 0
		keywordHits := 0

		for colIdx, cell := range row {
			trimmed := strings.TrimSpace(cell)
			if trimmed == "" {
				continue
			}
			headers = append(headers, trimmed)
			cols = append(cols, colIdx)

			if len(trimmed) <= shortCellLimit {
				shortCells++
				if containsKeyword(trimmed) {
					keywordHits++
				}
			}
		}

		if len(headers) < 2 {
			continue
		}

		candidates = append(candidates, candidate{
			rowIdx:     rowIdx,
			score:      keywordHits*keywordWeight + shortCells,
			shortCells: shortCells,
			headers:    headers,
			cols:       cols,
		})
	}

	return candidates
}

// containsKeyword tests a short cell against the header vocabulary.
func containsKeyword(cell string) bool {
	lower := strings.ToLower(cell)
	for _, kw := range headerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// =============================================================================
// TABLE CONSTRUCTION
// =============================================================================

// buildTable extracts the data rows below a candidate header row.
//
// EDGE-CASE POLICY:
//   - Every row below the header is a data row, regardless of blank rows
//     in between
//   - A row whose mapped cells are all empty is dropped
//   - A row shorter than the header row is kept; missing trailing cells
//     become the empty string
func buildTable(raw types.RawTable, cand candidate) types.ParsedTable {
	headers := dedupeHeaders(cand.headers)

	var rows []map[string]string
	for rowIdx := cand.rowIdx + 1; rowIdx < len(raw.Cells); rowIdx++ {
		row := raw.Cells[rowIdx]

		mapped := make(map[string]string, len(headers))
		empty := true
		for i, header := range headers {
			value := ""
			if col := cand.cols[i]; col < len(row) {
				value = strings.TrimSpace(row[col])
			}
			if value != "" {
				empty = false
			}
			mapped[header] = value
		}

		if empty {
			continue
		}
		rows = append(rows, mapped)
	}

	return types.ParsedTable{
		Sheet:     raw.Sheet,
		HeaderRow: cand.rowIdx,
		Headers:   headers,
		Rows:      rows,
	}
}

// dedupeHeaders makes repeated header names unique enough to serve as map
// keys by appending a numeric suffix to repeats.
func dedupeHeaders(headers []string) []string {
	seen := make(map[string]int, len(headers))
	out := make([]string, len(headers))

	for i, h := range headers {
		seen[h]++
		if seen[h] == 1 {
			out[i] = h
			continue
		}
		out[i] = fmt.Sprintf("%s (%d)", h, seen[h])
	}
	return out
}
