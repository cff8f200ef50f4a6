package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poreconcile/internal/columns"
	"poreconcile/internal/types"
)

// makeSide builds a reconciliation side from [sku, price, name, qty] rows.
func makeSide(rows [][4]string) Side {
	headers := []string{"SKU", "Price", "Description", "Qty"}
	table := types.ParsedTable{Headers: headers}
	for _, r := range rows {
		table.Rows = append(table.Rows, map[string]string{
			"SKU": r[0], "Price": r[1], "Description": r[2], "Qty": r[3],
		})
	}
	return Side{
		Table: table,
		Roles: columns.Roles{SKU: "SKU", Price: "Price", Name: "Description", Qty: "Qty"},
	}
}

func findRow(t *testing.T, result *Result, sku string) *Line {
	t.Helper()
	for i := range result.Rows {
		if result.Rows[i].SKU == sku {
			return &result.Rows[i]
		}
	}
	t.Fatalf("no output row for SKU %q", sku)
	return nil
}

func TestReconcileExactMatch(t *testing.T) {
	po := makeSide([][4]string{{"A100", "10.00", "Widget", "5"}})
	erp := makeSide([][4]string{{"A100", "10.00", "Widget", "5"}})

	result, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	line := result.Rows[0]
	assert.Equal(t, StatusMatch, line.Status)
	assert.Equal(t, "OK", line.Action)
	assert.Empty(t, line.ERPSKU)
	assert.Equal(t, 0.0, *line.Diff)
	assert.Equal(t, 1, result.Summary.Matches)
	assert.Equal(t, 1, result.Summary.Total)
}

func TestReconcilePrefixMatchExactPrice(t *testing.T) {
	// PO carries the core number, ERP carries the variant SKU.
	po := makeSide([][4]string{{"11082", "21.99", "", "1"}})
	erp := makeSide([][4]string{{"11082V008", "21.99", "Valve", "1"}})

	result, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	line := result.Rows[0]
	assert.Equal(t, StatusMatch, line.Status)
	assert.Equal(t, 0.0, *line.Diff)

	// A silently succeeding prefix match must still disclose itself.
	assert.Equal(t, "11082V008", line.ERPSKU)
	assert.Contains(t, line.Action, "11082V008")

	// Name backfills from the ERP side when the PO has none.
	assert.Equal(t, "Valve", line.Name)
}

func TestReconcileExceptionAndExposure(t *testing.T) {
	po := makeSide([][4]string{{"11080", "13.50", "", "1"}})
	erp := makeSide([][4]string{{"11080V012", "12.99", "", "1"}})

	result, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)

	line := result.Rows[0]
	assert.Equal(t, StatusException, line.Status)
	assert.InDelta(t, 0.51, *line.Diff, 1e-9)
	assert.InDelta(t, 0.51, result.Summary.Exposure, 1e-9)
	assert.Equal(t, 1, result.Summary.Exceptions)
}

func TestReconcileToleranceBoundary(t *testing.T) {
	po := makeSide([][4]string{{"B200", "10.00", "", "1"}})
	erp := makeSide([][4]string{{"B200", "9.99", "", "1"}})

	result, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)

	line := result.Rows[0]
	assert.Equal(t, StatusTolerance, line.Status)
	assert.InDelta(t, 0.01, *line.Diff, 1e-9)
	assert.Equal(t, 1, result.Summary.Tolerances)
	assert.Equal(t, 0, result.Summary.Exceptions)
	assert.Equal(t, 0.0, result.Summary.Exposure)
}

func TestReconcileAmbiguousPrefixIsWarning(t *testing.T) {
	po := makeSide([][4]string{{"1234", "5.00", "", "1"}})
	erp := makeSide([][4]string{
		{"1234V001", "5.00", "", "1"},
		{"1234V002", "5.10", "", "1"},
	})

	result, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)

	line := findRow(t, result, "1234")
	assert.Equal(t, StatusWarning, line.Status)
	assert.Contains(t, line.Action, "1234V001")
	assert.Contains(t, line.Action, "1234V002")

	// No candidate is consumed: both ERP rows come back as "Not in PO".
	var sweep int
	for _, row := range result.Rows {
		if row.Status == StatusNotInPO {
			sweep++
		}
	}
	assert.Equal(t, 2, sweep)
	assert.Equal(t, 1, result.Summary.Warnings)
}

func TestReconcileNotInERP(t *testing.T) {
	po := makeSide([][4]string{{"ZZZ", "1.00", "", "1"}})
	erp := makeSide([][4]string{{"A100", "1.00", "", "1"}})

	result, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)

	line := findRow(t, result, "ZZZ")
	assert.Equal(t, StatusNotInERP, line.Status)
	assert.Equal(t, "Review - SKU not found", line.Action)
	assert.Equal(t, 1, result.Summary.Exceptions)
}

func TestReconcileNotInPOSweepNotCountedAsException(t *testing.T) {
	po := makeSide([][4]string{{"A100", "2.00", "", "1"}})
	erp := makeSide([][4]string{
		{"A100", "2.00", "", "1"},
		{"B200", "3.00", "Spare", "4"},
	})

	result, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)

	line := findRow(t, result, "B200")
	assert.Equal(t, StatusNotInPO, line.Status)
	assert.Equal(t, "Spare", line.Name)

	// The sweep row counts toward the total but never toward exceptions.
	assert.Equal(t, 2, result.Summary.Total)
	assert.Equal(t, 0, result.Summary.Exceptions)
	assert.Equal(t, 0.0, result.Summary.Exposure)
}

func TestReconcileNonNumericPOPrice(t *testing.T) {
	po := makeSide([][4]string{{"A100", "call for pricing", "", "1"}})
	erp := makeSide([][4]string{{"A100", "2.00", "", "1"}})

	result, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)

	line := findRow(t, result, "A100")
	assert.Equal(t, StatusWarning, line.Status)
	assert.Nil(t, line.POPrice)
	assert.Contains(t, line.Action, "Non-numeric PO price")

	// No matching was attempted, so the ERP entry sweeps out unmatched.
	assert.Equal(t, 2, result.Summary.Total)
}

func TestReconcileNonNumericERPPrice(t *testing.T) {
	po := makeSide([][4]string{{"A100", "2.00", "", "1"}})
	erp := makeSide([][4]string{{"A100", "POA", "", "1"}})

	result, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)

	line := result.Rows[0]
	assert.Equal(t, StatusWarning, line.Status)
	assert.Contains(t, line.Action, "Non-numeric ERP price")

	// The entry was consumed, so it must not also appear as "Not in PO".
	assert.Equal(t, 1, result.Summary.Total)
}

func TestReconcileEmptySKURowsSkippedEntirely(t *testing.T) {
	po := makeSide([][4]string{
		{"", "2.00", "stray subtotal", ""},
		{"A100", "2.00", "", "1"},
	})
	erp := makeSide([][4]string{{"A100", "2.00", "", "1"}})

	result, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Total)
}

func TestReconcileDuplicateFlags(t *testing.T) {
	po := makeSide([][4]string{
		{"A100", "2.00", "", "1"},
		{"A100", "2.05", "", "2"},
	})
	erp := makeSide([][4]string{
		{"B200", "9.00", "old", "1"},
		{"B200", "9.50", "new", "1"},
		{"A100", "2.00", "", "1"},
	})

	result, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)

	// Both PO occurrences are flagged and both produce output rows.
	var poRows int
	for _, row := range result.Rows {
		if row.SKU == "A100" && row.Status != StatusNotInPO {
			poRows++
			assert.True(t, row.Duplicate)
		}
	}
	assert.Equal(t, 2, poRows)

	// ERP duplicates: the last occurrence wins the index, flagged, no error.
	b200 := findRow(t, result, "B200")
	assert.Equal(t, StatusNotInPO, b200.Status)
	assert.True(t, b200.Duplicate)
	assert.Equal(t, "new", b200.Name)
	assert.InDelta(t, 9.50, *b200.ERPPrice, 1e-9)
}

func TestReconcileSKUNormalization(t *testing.T) {
	po := makeSide([][4]string{{"  a100 ", "2.00", "", "1"}})
	erp := makeSide([][4]string{{"A100", "2.00", "", "1"}})

	result, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)
	assert.Equal(t, StatusMatch, result.Rows[0].Status)
}

func TestReconcileZeroERPPricePercent(t *testing.T) {
	po := makeSide([][4]string{{"A100", "2.00", "", "1"}})
	erp := makeSide([][4]string{{"A100", "0", "", "1"}})

	result, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)

	line := result.Rows[0]
	assert.Equal(t, StatusException, line.Status)
	assert.Equal(t, 100.0, *line.PctDiff)
}

func TestReconcileSortOrder(t *testing.T) {
	po := makeSide([][4]string{
		{"M1", "1.00", "", "1"},      // Match
		{"T1", "1.01", "", "1"},      // Tolerance
		{"E1", "2.00", "", "1"},      // Exception, diff 0.50
		{"E2", "3.00", "", "1"},      // Exception, diff 1.50
		{"W1", "badprice", "", "1"},  // Warning
		{"MISSING", "1.00", "", "1"}, // Not in ERP
	})
	erp := makeSide([][4]string{
		{"M1", "1.00", "", "1"},
		{"T1", "1.00", "", "1"},
		{"E1", "1.50", "", "1"},
		{"E2", "1.50", "", "1"},
		{"EXTRA", "1.00", "", "1"}, // Not in PO
	})

	result, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)
	require.Len(t, result.Rows, 7)

	// Status precedence, with the larger exception first within the group.
	got := make([]Status, len(result.Rows))
	for i, row := range result.Rows {
		got[i] = row.Status
	}
	assert.Equal(t, []Status{
		StatusException, StatusException, StatusNotInERP, StatusNotInPO,
		StatusWarning, StatusTolerance, StatusMatch,
	}, got)
	assert.Equal(t, "E2", result.Rows[0].SKU)
	assert.Equal(t, "E1", result.Rows[1].SKU)

	// Sort invariant holds for every adjacent pair.
	for i := 1; i < len(result.Rows); i++ {
		prev, cur := result.Rows[i-1], result.Rows[i]
		if prev.Status == cur.Status {
			assert.GreaterOrEqual(t, prev.AbsDiff(), cur.AbsDiff())
		}
	}

	// Exposure is the 2dp sum over Exception rows only.
	assert.InDelta(t, 2.00, result.Summary.Exposure, 1e-9)
}

func TestReconcileDeterministicExceptTimestamp(t *testing.T) {
	po := makeSide([][4]string{
		{"A100", "2.50", "", "1"},
		{"1234", "5.00", "", "2"},
		{"GONE", "1.00", "", "1"},
	})
	erp := makeSide([][4]string{
		{"A100", "2.00", "", "1"},
		{"1234V001", "5.00", "", "2"},
	})

	first, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)
	second, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
	second.Summary.GeneratedAt = first.Summary.GeneratedAt
	assert.Equal(t, first.Summary, second.Summary)
}

func TestReconcileCompleteness(t *testing.T) {
	// Every PO row with a non-empty SKU produces exactly one output row.
	po := makeSide([][4]string{
		{"A1", "1.00", "", "1"},
		{"A2", "x", "", "1"},
		{"", "1.00", "", "1"},
		{"A3", "1.00", "", "1"},
	})
	erp := makeSide([][4]string{{"A1", "1.00", "", "1"}})

	result, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)

	var fromPO int
	for _, row := range result.Rows {
		if row.Status != StatusNotInPO {
			fromPO++
		}
	}
	assert.Equal(t, 3, fromPO)
	assert.Equal(t, result.Summary.Total, len(result.Rows))
}

func TestReconcilePreconditions(t *testing.T) {
	po := makeSide(nil)
	erp := makeSide(nil)

	_, err := Reconcile(po, erp, -0.01)
	assert.Error(t, err)

	bad := po
	bad.Roles.SKU = ""
	_, err = Reconcile(bad, erp, 0.02)
	assert.ErrorContains(t, err, "PO columns unresolved")
}

func TestReconcileExposureRoundsEachAddition(t *testing.T) {
	// Three diffs of 0.105 each: rounding per addition gives 0.11*3 = 0.33
	// rather than round(0.315) twice over.
	po := makeSide([][4]string{
		{"A1", "1.105", "", "1"},
		{"A2", "1.105", "", "1"},
		{"A3", "1.105", "", "1"},
	})
	erp := makeSide([][4]string{
		{"A1", "1.00", "", "1"},
		{"A2", "1.00", "", "1"},
		{"A3", "1.00", "", "1"},
	})

	result, err := Reconcile(po, erp, 0.02)
	require.NoError(t, err)
	assert.InDelta(t, 0.33, result.Summary.Exposure, 1e-9)
}
