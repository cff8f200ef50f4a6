// =============================================================================
// PO Reconciliation - Numeric Parsing & Rounding
// =============================================================================
//
// Cell values arrive as strings regardless of apparent numeric type. This
// file parses them into currency-symbol-agnostic numbers and provides the
// consistent round-half-to-nearest-cent arithmetic the engine relies on.
// Rounding happens at every addition so floating point drift cannot
// accumulate across many lines.
//
// =============================================================================

package recon

import (
	"math"
	"strconv"
	"strings"
)

// currencyMarks are the characters stripped before numeric parsing. The
// comparison arithmetic never depends on the display currency.
const currencyMarks = "$€£¥₽ ,"

// parseNumber parses a cell as a decimal number, tolerating a leading or
// trailing currency symbol, thousands commas, and surrounding whitespace.
// The boolean is false when the cell is empty or not a number.
func parseNumber(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return 0, false
	}

	// Accounting negatives: (12.34) means -12.34.
	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	var b strings.Builder
	for _, r := range cleaned {
		if strings.ContainsRune(currencyMarks, r) {
			continue
		}
		b.WriteRune(r)
	}
	cleaned = b.String()

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

// round2 rounds to the nearest cent, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// percentDiff computes the whole-number percent deviation of diff against
// the ERP price. A zero reference price yields 100 for any nonzero diff and
// 0 otherwise, which avoids division by zero while still flagging a
// deviation against a zero reference.
func percentDiff(diff, erpPrice float64) float64 {
	if erpPrice == 0 {
		if diff != 0 {
			return 100
		}
		return 0
	}
	return math.Round(diff / erpPrice * 100)
}

func ptr(v float64) *float64 {
	return &v
}
