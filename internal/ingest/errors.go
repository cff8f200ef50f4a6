// =============================================================================
// PO Reconciliation - Ingestion Errors
// =============================================================================
//
// This file defines the typed errors produced by the ingestion layer. Every
// hard error carries a short actionable message (what was wrong, what the
// user should do next) instead of an internal stack trace.
//
// ERROR TAXONOMY:
//   - UnsupportedFormatError : unrecognized file extension
//   - ParseError             : underlying decode failure (corrupt workbook,
//                              zero-row CSV, undecodable PDF, no tabular
//                              delimiter detected in PDF text)
//
// All errors are terminal for the single operation attempted; there is no
// automatic retry, since inputs are either malformed or ambiguous and
// require human correction.
//
// =============================================================================

package ingest

import "fmt"

// =============================================================================
// UNSUPPORTED FORMAT ERROR
// =============================================================================

// UnsupportedFormatError indicates the file extension is not one the
// ingestion layer knows how to decode.
type UnsupportedFormatError struct {
	// Filename is the name of the offending file.
	Filename string

	// Extension is the unrecognized extension (lowercased, with dot).
	Extension string
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q for %s: expected .csv, .tsv, .xlsx, .xls or .pdf",
		e.Extension, e.Filename)
}

// =============================================================================
// PARSE ERROR
// =============================================================================

// ParseError indicates the file matched a supported format but could not be
// decoded into any rows.
type ParseError struct {
	// Filename is the name of the offending file.
	Filename string

	// Reason is a short, user-facing description of what went wrong and what
	// to do about it.
	Reason string

	// Err is the underlying decoder error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot parse %s: %s: %v", e.Filename, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot parse %s: %s", e.Filename, e.Reason)
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
