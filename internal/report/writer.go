// =============================================================================
// PO Reconciliation - Report Writer
// =============================================================================
//
// This module renders a finished reconciliation result into an Excel
// workbook. It is a pure sink: it formats and writes the rows and summary
// it is given and never re-derives a match or recomputes a classification.
//
// WORKBOOK STRUCTURE:
//   Summary        : run statistics (counts, exposure, timestamp)
//   Reconciliation : one status-colored row per reconciled line, header
//                    frozen, problems already sorted to the top
//   Credit Note    : optional, reversal lines at invoiced prices
//   Re-Invoice     : optional, corrected lines at list prices
//
// =============================================================================

package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"poreconcile/internal/recon"
)

// =============================================================================
// STATUS COLORS
// =============================================================================
// Standard Excel conditional-formatting palette; fills keep the report
// readable without the operator touching a legend.

var statusFills = map[recon.Status]string{
	recon.StatusException: "FFC7CE", // red
	recon.StatusNotInERP:  "FFC7CE",
	recon.StatusNotInPO:   "FCD5B4", // orange
	recon.StatusWarning:   "FFEB9C", // yellow
	recon.StatusTolerance: "DDEBF7", // blue
	recon.StatusMatch:     "C6EFCE", // green
}

var detailHeaders = []string{
	"Status", "SKU", "ERP SKU", "Description", "PO Price", "ERP Price",
	"Diff", "Diff %", "PO Qty", "ERP Qty", "Line Total", "Duplicate", "Action",
}

// =============================================================================
// OUTPUT NAMING
// =============================================================================

// OutputPath builds a unique workbook path inside dir, following the
// timestamp-plus-short-UUID naming convention so consecutive runs never
// overwrite each other.
func OutputPath(dir string) string {
	name := fmt.Sprintf("reconciliation_%s_%s.xlsx",
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8],
	)
	return filepath.Join(dir, name)
}

// =============================================================================
// WRITER
// =============================================================================

// Options selects the optional sheets.
type Options struct {
	CreditNote *recon.CreditNote
	ReInvoice  *recon.ReInvoice
}

// Write renders the result (and any derived documents) to an .xlsx file at
// path.
func Write(result *recon.Result, opts Options, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, result); err != nil {
		return fmt.Errorf("failed to write summary sheet: %w", err)
	}
	if err := writeDetailSheet(f, result); err != nil {
		return fmt.Errorf("failed to write detail sheet: %w", err)
	}
	if opts.CreditNote != nil {
		if err := writeCreditSheet(f, opts.CreditNote); err != nil {
			return fmt.Errorf("failed to write credit note sheet: %w", err)
		}
	}
	if opts.ReInvoice != nil {
		if err := writeInvoiceSheet(f, opts.ReInvoice); err != nil {
			return fmt.Errorf("failed to write re-invoice sheet: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// writeSummarySheet renames the default sheet to Summary and fills in the
// run statistics.
func writeSummarySheet(f *excelize.File, result *recon.Result) error {
	const sheet = "Summary"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	s := result.Summary
	rows := [][]interface{}{
		{"PO Reconciliation Summary", ""},
		{"Generated", s.GeneratedAt.Format(time.RFC3339)},
		{"Total lines", s.Total},
		{"Matches", s.Matches},
		{"Within tolerance", s.Tolerances},
		{"Exceptions", s.Exceptions},
		{"Warnings", s.Warnings},
		{"Exposure", s.Exposure},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "A", "A", 24)
}

// writeDetailSheet writes the classified rows with status coloring and a
// frozen header row.
func writeDetailSheet(f *excelize.File, result *recon.Result) error {
	const sheet = "Reconciliation"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := make([]interface{}, len(detailHeaders))
	for i, h := range detailHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9D9D9"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	lastCol, err := excelize.CoordinatesToCellName(len(detailHeaders), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol, headerStyle); err != nil {
		return err
	}

	// One style per status, created once.
	fillStyles := make(map[recon.Status]int, len(statusFills))
	for status, color := range statusFills {
		styleID, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return err
		}
		fillStyles[status] = styleID
	}

	for i, line := range result.Rows {
		rowNum := i + 2
		values := []interface{}{
			string(line.Status),
			line.SKU,
			line.ERPSKU,
			line.Name,
			numCell(line.POPrice),
			numCell(line.ERPPrice),
			numCell(line.Diff),
			numCell(line.PctDiff),
			line.POQty,
			line.ERPQty,
			line.LineTotal,
			boolCell(line.Duplicate),
			line.Action,
		}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}

		if styleID, ok := fillStyles[line.Status]; ok {
			end, err := excelize.CoordinatesToCellName(len(detailHeaders), rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, end, styleID); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "M", 14); err != nil {
		return err
	}

	// Keep the header visible while the operator scrolls the problem rows.
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// writeCreditSheet writes the credit-note reversal lines.
func writeCreditSheet(f *excelize.File, note *recon.CreditNote) error {
	const sheet = "Credit Note"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"SKU", "Description", "Qty", "Unit Price", "Amount"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, line := range note.Lines {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{line.SKU, line.Name, line.Qty, line.UnitPrice, line.Amount}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	totalCell, err := excelize.CoordinatesToCellName(5, len(note.Lines)+2)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, totalCell, note.Total)
}

// writeInvoiceSheet writes the corrected re-invoice lines.
func writeInvoiceSheet(f *excelize.File, inv *recon.ReInvoice) error {
	const sheet = "Re-Invoice"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"SKU", "Description", "Qty", "Unit Price", "Amount", "Price Changed"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, line := range inv.Lines {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			line.SKU, line.Name, line.Qty, line.UnitPrice, line.Amount, boolCell(line.PriceChanged),
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	totalCell, err := excelize.CoordinatesToCellName(5, len(inv.Lines)+2)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, totalCell, inv.Total)
}

// numCell renders an optional number, leaving absent values blank rather
// than zero.
func numCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func boolCell(v bool) string {
	if v {
		return "yes"
	}
	return ""
}
