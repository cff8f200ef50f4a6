// =============================================================================
// PO Reconciliation - Result Types
// =============================================================================
//
// This file defines the output structures of the reconciliation engine.
// Sinks (sheet writer, table renderer, derived-document generators) are pure
// consumers of these structures: they must not re-derive matches, only
// format and display the given rows and summary.
//
// =============================================================================

package recon

import "time"

// =============================================================================
// STATUS
// =============================================================================

// Status classifies a single reconciled line.
type Status string

const (
	// StatusMatch means the PO price equals the ERP price exactly.
	StatusMatch Status = "Match"

	// StatusTolerance means the absolute difference is nonzero but within
	// the configured tolerance.
	StatusTolerance Status = "Tolerance"

	// StatusException means the difference exceeds the tolerance and needs
	// human review. Exception lines drive the exposure total.
	StatusException Status = "Exception"

	// StatusWarning marks per-row soft failures: non-numeric prices and
	// ambiguous prefix matches. One bad line never aborts the run.
	StatusWarning Status = "Warning"

	// StatusNotInERP marks a PO line whose SKU has no ERP counterpart.
	StatusNotInERP Status = "Not in ERP"

	// StatusNotInPO marks an ERP entry no PO line consumed.
	StatusNotInPO Status = "Not in PO"
)

// sortRank returns the fixed status precedence used to order the report.
// The financially material problems surface first.
func (s Status) sortRank() int {
	switch s {
	case StatusException:
		return 0
	case StatusNotInERP:
		return 1
	case StatusNotInPO:
		return 2
	case StatusWarning:
		return 3
	case StatusTolerance:
		return 4
	case StatusMatch:
		return 5
	default:
		return 6
	}
}

// =============================================================================
// LINE
// =============================================================================

// Line is one output row of the reconciliation. Lines are immutable after
// creation and never mutated post-sort.
//
// Numeric fields use *float64 so "absent" (unparseable or not applicable)
// stays distinguishable from zero.
type Line struct {
	Status Status

	// SKU is the identifier as it appeared on the originating side.
	SKU string

	// ERPSKU is set when a prefix match changed the identifier, i.e. the PO
	// carried a core number and the ERP carried a variant SKU.
	ERPSKU string

	Name string

	ERPPrice *float64
	POPrice  *float64

	// Diff is poPrice - erpPrice rounded to 2 decimals; PctDiff is the
	// whole-number percent deviation against the ERP price.
	Diff    *float64
	PctDiff *float64

	// Action is the human-readable next step for the operator.
	Action string

	// Duplicate is true when the SKU occurred more than once on its side.
	Duplicate bool

	POQty     string
	ERPQty    string
	LineTotal string
}

// AbsDiff returns |Diff|, with absent diffs sorting as zero.
func (l *Line) AbsDiff() float64 {
	if l.Diff == nil {
		return 0
	}
	if *l.Diff < 0 {
		return -*l.Diff
	}
	return *l.Diff
}

// =============================================================================
// SUMMARY AND RESULT
// =============================================================================

// Summary aggregates the classified lines. It is derived purely from the
// lines and never stored independently of them.
//
// Note the deliberate asymmetry: "Not in PO" sweep rows count toward Total
// but never toward Exceptions. Only PO-side pricing risk feeds the
// exceptions counter and the exposure total.
type Summary struct {
	Total      int
	Matches    int
	Tolerances int
	Exceptions int
	Warnings   int

	// Exposure is the sum of absolute price differences for Exception
	// lines only, rounded to 2 decimals at every addition.
	Exposure float64

	GeneratedAt time.Time
}

// Result is the single immutable value the engine returns.
type Result struct {
	Summary Summary
	Rows    []Line
}
