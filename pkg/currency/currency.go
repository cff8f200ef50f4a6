// =============================================================================
// PO Reconciliation - Display Currency Formatting
// =============================================================================
//
// This package formats monetary amounts for display in reports, derived
// documents, and terminal output. It is display-only by design: the
// reconciliation arithmetic is currency-symbol-agnostic and never reads the
// selected currency or locale. The formatter is created once from
// configuration and threaded explicitly into formatting calls.
//
// =============================================================================

package currency

import (
	"fmt"

	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts in a fixed currency and locale.
type Formatter struct {
	printer *message.Printer
	unit    xcurrency.Unit
}

// NewFormatter builds a formatter for an ISO 4217 currency code and a BCP 47
// locale tag (for digit grouping and symbol placement).
func NewFormatter(code, locale string) (*Formatter, error) {
	unit, err := xcurrency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("unknown currency code %q: %w", code, err)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("unknown locale %q: %w", locale, err)
	}

	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}, nil
}

// Format renders an amount with the currency symbol, e.g. "$ 21.99".
func (f *Formatter) Format(amount float64) string {
	return f.printer.Sprint(xcurrency.Symbol(f.unit.Amount(amount)))
}

// Code returns the ISO currency code, for report headings.
func (f *Formatter) Code() string {
	return f.unit.String()
}
