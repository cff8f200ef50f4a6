// =============================================================================
// PO Reconciliation - Derived Document Generators
// =============================================================================
//
// This file generates the documents derived from a finished reconciliation:
// a credit note, a corrected re-invoice, and an email draft summarizing the
// findings. All three are pure folds over the reconciled rows; no new
// matching logic lives here.
//
// BUSINESS RULES:
//   - Credit note: company policy is to reverse the entire PO at what was
//     invoiced, regardless of match status. Every line that represents an
//     actual PO line (everything except "Not in PO" sweep rows) is emitted
//     as a negative amount at the ORIGINAL PO price, never the ERP price.
//   - Re-invoice: corrected lines use the ERP price when available, falling
//     back to the PO price, with priceChanged flagged when they differ.
//
// =============================================================================

package recon

import (
	"strings"
	"text/template"
)

// =============================================================================
// CREDIT NOTE
// =============================================================================

// CreditLine is one reversal line on the credit note.
type CreditLine struct {
	SKU  string
	Name string
	Qty  float64

	// UnitPrice is the original PO price. Amount is negative.
	UnitPrice float64
	Amount    float64
}

// CreditNote reverses every actual PO line of the result.
type CreditNote struct {
	Lines []CreditLine

	// Total is the (negative) sum of all line amounts, rounded per addition.
	Total float64
}

// BuildCreditNote folds the reconciled rows into a credit note.
// Rows without a parseable PO price (Warning lines for bad prices) carry no
// amount to reverse and are skipped.
func BuildCreditNote(result *Result) CreditNote {
	var note CreditNote

	for _, row := range result.Rows {
		if row.Status == StatusNotInPO || row.POPrice == nil {
			continue
		}

		qty := quantityOrOne(row.POQty)
		amount := round2(-*row.POPrice * qty)

		note.Lines = append(note.Lines, CreditLine{
			SKU:       row.SKU,
			Name:      row.Name,
			Qty:       qty,
			UnitPrice: *row.POPrice,
			Amount:    amount,
		})
		note.Total = round2(note.Total + amount)
	}

	return note
}

// =============================================================================
// RE-INVOICE
// =============================================================================

// InvoiceLine is one corrected line on the re-invoice.
type InvoiceLine struct {
	SKU  string
	Name string
	Qty  float64

	// UnitPrice is the ERP price when available, else the PO price.
	UnitPrice float64
	Amount    float64

	// PriceChanged is true when the corrected price differs from what the
	// customer was originally invoiced.
	PriceChanged bool
}

// ReInvoice is the corrected invoice derived from the reconciliation.
type ReInvoice struct {
	Lines []InvoiceLine
	Total float64
}

// BuildReInvoice folds the reconciled rows into a corrected invoice.
func BuildReInvoice(result *Result) ReInvoice {
	var inv ReInvoice

	for _, row := range result.Rows {
		if row.Status == StatusNotInPO {
			continue
		}

		var price float64
		switch {
		case row.ERPPrice != nil:
			price = *row.ERPPrice
		case row.POPrice != nil:
			price = *row.POPrice
		default:
			continue
		}

		qty := quantityOrOne(row.POQty)
		amount := round2(price * qty)

		inv.Lines = append(inv.Lines, InvoiceLine{
			SKU:          row.SKU,
			Name:         row.Name,
			Qty:          qty,
			UnitPrice:    price,
			Amount:       amount,
			PriceChanged: row.ERPPrice != nil && row.POPrice != nil && *row.ERPPrice != *row.POPrice,
		})
		inv.Total = round2(inv.Total + amount)
	}

	return inv
}

// quantityOrOne parses a quantity cell, defaulting to one unit when the
// cell is empty or not numeric.
func quantityOrOne(s string) float64 {
	if v, ok := parseNumber(s); ok && v != 0 {
		return v
	}
	return 1
}

// =============================================================================
// EMAIL DRAFT
// =============================================================================

// emailTemplate renders the summary plus every exception line. Amounts are
// pre-formatted by the caller's display-currency formatter so the engine
// arithmetic stays locale-independent.
var emailTemplate = template.Must(template.New("email").Parse(
	`Subject: Price discrepancies on your purchase order

Hi,

We reviewed your purchase order against our current price list and found
{{.Exceptions}} line(s) with price differences beyond the agreed tolerance
(total exposure {{.Exposure}}).

{{range .Lines}}  - {{.SKU}}{{if .Name}} ({{.Name}}){{end}}: ordered at {{.POPrice}}, listed at {{.ERPPrice}}
{{end}}
Could you confirm how you would like to proceed? We can issue a corrected
invoice at list prices, or review the items above individually.

Thanks,
Accounts
`))

// emailLine is one exception row, pre-formatted for display.
type emailLine struct {
	SKU      string
	Name     string
	POPrice  string
	ERPPrice string
}

// emailData is the template payload.
type emailData struct {
	Exceptions int
	Exposure   string
	Lines      []emailLine
}

// BuildEmailDraft renders an email draft covering the Exception lines.
//
// PARAMETERS:
//   - result:  The finished reconciliation.
//   - display: Formats an amount for the operator's display currency. The
//     formatter is injected so this package never touches locale state.
func BuildEmailDraft(result *Result, display func(float64) string) string {
	data := emailData{
		Exceptions: result.Summary.Exceptions,
		Exposure:   display(result.Summary.Exposure),
	}

	for _, row := range result.Rows {
		if row.Status != StatusException {
			continue
		}
		line := emailLine{SKU: row.SKU, Name: row.Name}
		if row.POPrice != nil {
			line.POPrice = display(*row.POPrice)
		}
		if row.ERPPrice != nil {
			line.ERPPrice = display(*row.ERPPrice)
		}
		data.Lines = append(data.Lines, line)
	}

	var b strings.Builder
	if err := emailTemplate.Execute(&b, data); err != nil {
		// The template is static and the data is plain strings; execution
		// cannot fail at runtime.
		return ""
	}
	return b.String()
}
