// =============================================================================
// PO Reconciliation - Reconciliation Engine
// =============================================================================
//
// This module contains the core comparison algorithm. Given two normalized
// tables (PO side, ERP side) with resolved column roles and a numeric
// tolerance, it produces a classified, sorted comparison with summary
// statistics.
//
// PIPELINE:
//   1. Build the ERP lookup index (normalized SKUs, last-wins duplicates)
//   2. Count PO-side duplicate SKUs for reporting
//   3. Per PO row, in original file order:
//      - skip rows with an empty SKU entirely (not reported)
//      - non-numeric PO price       -> Warning, no matching attempted
//      - exact match, then proper-prefix match (tagged result)
//      - ambiguous prefix           -> Warning listing every candidate
//      - zero candidates            -> "Not in ERP" exception
//      - otherwise classify against the tolerance
//   4. Sweep ERP entries no PO line consumed into "Not in PO" rows
//   5. Sort by status precedence, then |diff| descending
//
// The computation is pure, synchronous, and side-effect free: fresh tables
// in, one immutable result out. Per-row soft failures degrade that single
// line to Warning status and processing continues; one bad line never
// prevents the rest of the PO from being reconciled.
//
// =============================================================================

package recon

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"poreconcile/internal/columns"
	"poreconcile/internal/types"
)

// DefaultTolerance is the default acceptable absolute price difference, in
// currency units.
const DefaultTolerance = 0.02

// =============================================================================
// INPUT
// =============================================================================

// Side is one reconciliation input: a parsed table plus its column-role
// assignment.
type Side struct {
	Table types.ParsedTable
	Roles columns.Roles

	// LineTotalHeader optionally names a line-total column carried through
	// to the output for display. Only meaningful on the PO side.
	LineTotalHeader string
}

// =============================================================================
// ENGINE
// =============================================================================

// Reconcile compares the PO side against the ERP side.
//
// PARAMETERS:
//   - po, erp:   The two sides. Both must have SKU and price roles resolved.
//   - tolerance: Maximum acceptable absolute price difference, >= 0.
//
// RETURNS:
//   - The classified, sorted result.
//   - An error only for precondition violations (unresolved roles, negative
//     tolerance); data problems never fail the run.
func Reconcile(po, erp Side, tolerance float64) (*Result, error) {
	if !po.Roles.Valid() {
		return nil, fmt.Errorf("PO columns unresolved: missing %s", strings.Join(po.Roles.Missing(), ", "))
	}
	if !erp.Roles.Valid() {
		return nil, fmt.Errorf("ERP columns unresolved: missing %s", strings.Join(erp.Roles.Missing(), ", "))
	}
	if tolerance < 0 {
		return nil, fmt.Errorf("tolerance must be >= 0, got %v", tolerance)
	}

	idx := buildERPIndex(erp.Table.Rows, erp.Roles.SKU, erp.Roles.Price, erp.Roles.Name, erp.Roles.Qty)

	// PO-side duplicate detection. Reporting only; matching is unaffected.
	poCounts := make(map[string]int, len(po.Table.Rows))
	for _, row := range po.Table.Rows {
		if key := normalizeSKU(row[po.Roles.SKU]); key != "" {
			poCounts[key]++
		}
	}

	var summary Summary
	rows := make([]Line, 0, len(po.Table.Rows))

	for _, row := range po.Table.Rows {
		rawSKU := strings.TrimSpace(row[po.Roles.SKU])
		key := normalizeSKU(rawSKU)
		if key == "" {
			continue
		}

		line := Line{
			SKU:       rawSKU,
			Duplicate: poCounts[key] > 1,
			POQty:     valueAt(row, po.Roles.Qty),
			Name:      valueAt(row, po.Roles.Name),
			LineTotal: valueAt(row, po.LineTotalHeader),
		}

		poPrice, priceOK := parseNumber(row[po.Roles.Price])
		if !priceOK {
			line.Status = StatusWarning
			line.Action = "Non-numeric PO price: " + strings.TrimSpace(row[po.Roles.Price])
			summary.Warnings++
			rows = append(rows, line)
			continue
		}
		line.POPrice = ptr(poPrice)

		switch m := idx.match(key); m.kind {
		case matchAmbiguous:
			line.Status = StatusWarning
			line.Action = "Ambiguous SKU: matches " + strings.Join(m.candidates, ", ")
			summary.Warnings++

		case matchNone:
			line.Status = StatusNotInERP
			line.Action = "Review - SKU not found"
			summary.Exceptions++

		default: // matchExact or matchPrefix
			m.entry.matched = true
			line.ERPQty = m.entry.qty
			if line.Name == "" {
				line.Name = m.entry.name
			}
			if m.entry.duplicate {
				line.Duplicate = true
			}
			if m.kind == matchPrefix {
				line.ERPSKU = m.entry.rawSKU
			}

			if m.entry.price == nil {
				line.Status = StatusWarning
				line.Action = "Non-numeric ERP price: " + strings.TrimSpace(m.entry.priceText)
				summary.Warnings++
				break
			}

			classify(&line, poPrice, *m.entry.price, tolerance, m.kind == matchPrefix, &summary)
		}

		rows = append(rows, line)
	}

	// Unmatched ERP sweep. These rows count toward the total but,
	// deliberately, never toward the exceptions tally: only PO-side pricing
	// risk feeds that counter.
	for _, entry := range idx.unmatched() {
		rows = append(rows, Line{
			Status:    StatusNotInPO,
			SKU:       entry.rawSKU,
			Name:      entry.name,
			ERPPrice:  entry.price,
			ERPQty:    entry.qty,
			Duplicate: entry.duplicate,
			Action:    "Check whether item was dropped from the order",
		})
	}

	sortRows(rows)

	summary.Total = len(rows)
	summary.GeneratedAt = time.Now()

	return &Result{Summary: summary, Rows: rows}, nil
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// classify fills in the numeric comparison and status for a matched line.
func classify(line *Line, poPrice, erpPrice, tolerance float64, viaPrefix bool, summary *Summary) {
	diff := round2(poPrice - erpPrice)
	absDiff := diff
	if absDiff < 0 {
		absDiff = -absDiff
	}

	line.ERPPrice = ptr(erpPrice)
	line.Diff = ptr(diff)
	line.PctDiff = ptr(percentDiff(diff, erpPrice))

	switch {
	case absDiff == 0:
		line.Status = StatusMatch
		line.Action = "OK"
		summary.Matches++
	case absDiff <= tolerance:
		line.Status = StatusTolerance
		line.Action = "OK (within tolerance)"
		summary.Tolerances++
	default:
		line.Status = StatusException
		line.Action = "Review - price difference exceeds tolerance"
		summary.Exceptions++
		// Round at each addition so the running total cannot drift.
		summary.Exposure = round2(summary.Exposure + absDiff)
	}

	// A prefix match that silently succeeds must still be visibly
	// distinguishable from an exact match.
	if viaPrefix && strings.HasPrefix(line.Action, "OK") {
		line.Action += " [matched ERP SKU " + line.ERPSKU + "]"
	}
}

// sortRows orders the report: status precedence first, then the largest
// absolute differences within each group. Rows without a diff sort last
// within their group.
func sortRows(rows []Line) {
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i].Status.sortRank(), rows[j].Status.sortRank()
		if ri != rj {
			return ri < rj
		}
		return rows[i].AbsDiff() > rows[j].AbsDiff()
	})
}

// valueAt reads a role column, tolerating an unassigned role.
func valueAt(row map[string]string, header string) string {
	if header == "" {
		return ""
	}
	return row[header]
}
