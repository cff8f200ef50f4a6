// =============================================================================
// PO Reconciliation - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - ingest
//   - header
//   - recon
//
// The tabular data passes through three distinct stages, each with its own
// invariants, and each stage gets its own type:
//   1. RawTable    : raw text grid, no header identified, no typing at all
//   2. ParsedTable : header resolved, rows keyed by header, values still text
//   3. recon.Line  : numbers parsed and classified (defined in the recon package)
//
// =============================================================================

package types

import "strings"

// =============================================================================
// RAW TABLE
// =============================================================================

// RawTable is one sheet/CSV/PDF-derived grid before any header is identified.
// Cells are raw text, possibly empty; rows may have ragged lengths.
type RawTable struct {
	// Sheet is the originating sheet name for workbooks, or a label such as
	// "csv" / "pdf" for single-grid sources. Used in messages only.
	Sheet string

	// Cells holds the grid in row-major order.
	Cells [][]string
}

// =============================================================================
// PARSED TABLE
// =============================================================================

// ParsedTable is a table whose header row has been located. This is the
// boundary type the rest of the system consumes. It is schema-less: every
// value is a string until the reconciliation engine parses numbers.
//
// Invariants:
//   - len(Headers) >= 2
//   - every row map has exactly the same key set as Headers
//     (missing trailing cells become the empty string)
type ParsedTable struct {
	// Sheet is the sheet the header was found on (empty for CSV/PDF sources).
	Sheet string

	// HeaderRow is the 0-based row index of the header within the raw grid.
	HeaderRow int

	// Headers contains the column headers, in original column order.
	// Duplicate names are de-duplicated with a numeric suffix so they can
	// serve as map keys.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	Rows []map[string]string
}

// Column returns all values for a specific header.
func (t *ParsedTable) Column(header string) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[header]
	}
	return values
}

// HasHeader reports whether the table contains the given header name.
func (t *ParsedTable) HasHeader(header string) bool {
	for _, h := range t.Headers {
		if h == header {
			return true
		}
	}
	return false
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// IsRowEmpty checks if a row contains only empty values.
func IsRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
