// =============================================================================
// PO Reconciliation - Reconcile Command
// =============================================================================
//
// This file defines the 'reconcile' command, which runs the full pipeline:
// ingest the PO and ERP files, locate their header rows, resolve column
// roles, reconcile the two sides, and write the report workbook plus any
// requested derived documents.
//
// COMMAND USAGE:
//   poreconcile reconcile --po <file> --erp <file> [flags]
//
// FLAGS:
//   --po          : Path to the customer purchase order (.csv/.tsv/.xlsx/.xls/.pdf)
//   --erp         : Path to the ERP price list export
//   --tolerance   : Override the configured price tolerance
//   --out         : Output workbook path (default: generated name in output_dir)
//   --credit-note : Also generate a credit-note sheet
//   --re-invoice  : Also generate a corrected re-invoice sheet
//   --email       : Also write an email draft next to the workbook
//
// PIPELINE:
//   file -> Tabular Ingestion -> Header Locator -> Column Detector
//   (once per side) -> Reconciliation Engine -> report sinks
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"poreconcile/internal/columns"
	"poreconcile/internal/config"
	"poreconcile/internal/header"
	"poreconcile/internal/ingest"
	"poreconcile/internal/recon"
	"poreconcile/internal/report"
	"poreconcile/pkg/currency"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// poPath is the path to the customer purchase order file.
var poPath string

// erpPath is the path to the ERP price list export.
var erpPath string

// toleranceFlag overrides the configured tolerance when set.
var toleranceFlag float64

// outPath is the output workbook path; empty means a generated name.
var outPath string

// withCreditNote requests a credit-note sheet.
var withCreditNote bool

// withReInvoice requests a corrected re-invoice sheet.
var withReInvoice bool

// withEmail requests an email draft file.
var withEmail bool

// =============================================================================
// RECONCILE COMMAND DEFINITION
// =============================================================================

// reconcileCmd represents the 'reconcile' command.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a purchase order against an ERP price list",
	Long: `The reconcile command ingests a customer purchase order and an ERP price
list export, locates the real data table inside each file (skipping cover
pages and instruction rows), matches PO lines to ERP lines by exact or
core-number prefix SKU, and classifies every line by match quality.

The result is written as a status-colored Excel workbook with the
financially material problems sorted to the top. Per-line data problems
(non-numeric prices, ambiguous SKUs) degrade that single line to a Warning;
they never abort the run.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile(cmd)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the reconcile command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().StringVar(&poPath, "po", "", "Path to the purchase order file (required)")
	reconcileCmd.Flags().StringVar(&erpPath, "erp", "", "Path to the ERP price list export (required)")
	reconcileCmd.Flags().Float64Var(&toleranceFlag, "tolerance", -1, "Price tolerance in currency units (overrides config)")
	reconcileCmd.Flags().StringVar(&outPath, "out", "", "Output workbook path (default: generated name)")
	reconcileCmd.Flags().BoolVar(&withCreditNote, "credit-note", false, "Also generate a credit-note sheet")
	reconcileCmd.Flags().BoolVar(&withReInvoice, "re-invoice", false, "Also generate a corrected re-invoice sheet")
	reconcileCmd.Flags().BoolVar(&withEmail, "email", false, "Also write an email draft covering the exceptions")

	reconcileCmd.MarkFlagRequired("po")
	reconcileCmd.MarkFlagRequired("erp")
}

// =============================================================================
// MAIN PIPELINE
// =============================================================================

// runReconcile orchestrates the full reconciliation pipeline.
func runReconcile(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	tolerance := cfg.Tolerance
	if cmd.Flags().Changed("tolerance") {
		tolerance = toleranceFlag
	}

	display, err := currency.NewFormatter(cfg.Currency, cfg.Locale)
	if err != nil {
		return err
	}

	fmt.Println("=== PO Reconciliation ===")

	// =========================================================================
	// STEP 1: INGEST AND RESOLVE BOTH SIDES
	// =========================================================================

	poSide, err := loadSide(poPath, cfg.PO)
	if err != nil {
		return fmt.Errorf("PO file: %w", err)
	}
	erpSide, err := loadSide(erpPath, cfg.ERP)
	if err != nil {
		return fmt.Errorf("ERP file: %w", err)
	}

	// =========================================================================
	// STEP 2: RECONCILE
	// =========================================================================

	result, err := recon.Reconcile(*poSide, *erpSide, tolerance)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 3: WRITE OUTPUTS
	// =========================================================================

	target := outPath
	if target == "" {
		target = report.OutputPath(cfg.OutputDir)
	}

	opts := report.Options{}
	if withCreditNote || cfg.Report.CreditNote {
		note := recon.BuildCreditNote(result)
		opts.CreditNote = &note
	}
	if withReInvoice || cfg.Report.ReInvoice {
		inv := recon.BuildReInvoice(result)
		opts.ReInvoice = &inv
	}

	if err := report.Write(result, opts, target); err != nil {
		return err
	}

	if withEmail || cfg.Report.EmailDraft {
		draft := recon.BuildEmailDraft(result, display.Format)
		emailPath := strings.TrimSuffix(target, filepath.Ext(target)) + "_email.txt"
		if err := os.WriteFile(emailPath, []byte(draft), 0o644); err != nil {
			return fmt.Errorf("failed to write email draft: %w", err)
		}
		fmt.Printf("Email draft:     %s\n", emailPath)
	}

	// =========================================================================
	// STEP 4: PRINT SUMMARY
	// =========================================================================

	s := result.Summary
	fmt.Printf("Report:          %s\n", target)
	fmt.Printf("Total lines:     %d\n", s.Total)
	fmt.Printf("Matches:         %d\n", s.Matches)
	fmt.Printf("Tolerances:      %d\n", s.Tolerances)
	fmt.Printf("Exceptions:      %d\n", s.Exceptions)
	fmt.Printf("Warnings:        %d\n", s.Warnings)
	fmt.Printf("Exposure:        %s\n", display.Format(s.Exposure))

	return nil
}

// =============================================================================
// SIDE LOADING
// =============================================================================

// loadSide runs ingestion, header location, and column detection for one
// input file, then applies any configured column overrides.
//
// When auto-detection cannot resolve SKU and price and no override fills
// the gap, the error tells the user which roles are missing and what the
// available headers are. This is the "needs manual column selection" state
// surfaced as an actionable message rather than a stack trace.
func loadSide(path string, side config.SideConfig) (*recon.Side, error) {
	tables, err := ingest.ReadFile(path)
	if err != nil {
		return nil, err
	}

	located, err := header.Locate(tables, filepath.Base(path))
	if err != nil {
		return nil, err
	}

	roles := applyOverrides(located, side.Columns)

	if !roles.Valid() {
		return nil, fmt.Errorf(
			"could not identify %s column(s); headers found: %s. Map them in the config file under 'columns'",
			strings.Join(roles.Missing(), " and "),
			strings.Join(located.Table.Headers, ", "),
		)
	}

	if verbose {
		fmt.Printf("  %s: header on row %d", filepath.Base(path), located.Table.HeaderRow+1)
		if located.Table.Sheet != "" {
			fmt.Printf(" of sheet %q", located.Table.Sheet)
		}
		fmt.Printf(", %d data row(s)\n", len(located.Table.Rows))
	}

	// The extended detector also finds a line-total column when one exists;
	// it is carried through to the report for display only.
	extended := columns.DetectExtended(located.Table.Headers)

	return &recon.Side{
		Table:           located.Table,
		Roles:           roles,
		LineTotalHeader: extended.LineTotal,
	}, nil
}

// applyOverrides fills auto-detected roles with configured header names.
// An override naming a header the table does not have is ignored rather
// than silently producing empty columns.
func applyOverrides(located *header.Located, overrides config.ColumnOverrides) columns.Roles {
	roles := located.Roles

	apply := func(current *string, override string) {
		if override != "" && located.Table.HasHeader(override) {
			*current = override
		}
	}
	apply(&roles.SKU, overrides.SKU)
	apply(&roles.Price, overrides.Price)
	apply(&roles.Name, overrides.Name)
	apply(&roles.Qty, overrides.Qty)

	return roles
}
