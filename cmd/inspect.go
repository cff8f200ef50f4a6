// =============================================================================
// PO Reconciliation - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command, a debugging aid that runs only
// the detection half of the pipeline on a single file and prints what was
// found: the chosen sheet and header row, the extracted headers, the
// resolved column roles, and a preview of the first data rows.
//
// This is the operator's tool for the "needs manual column selection"
// state: it shows exactly which headers exist so the right override can be
// written into the config file.
//
// COMMAND USAGE:
//   poreconcile inspect --file <file>
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"poreconcile/internal/columns"
	"poreconcile/internal/header"
	"poreconcile/internal/ingest"
)

// inspectPath is the file to inspect.
var inspectPath string

// previewRows caps how many data rows the preview prints.
const previewRows = 5

// inspectCmd represents the 'inspect' command.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show header and column detection for a single file",
	Long: `The inspect command ingests one file, locates its header row, resolves
column roles, and prints the findings without reconciling anything. Use it
to understand why auto-detection picked (or failed to pick) a column, and
to discover the exact header names for config-file overrides.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect()
	},
}

// init registers the inspect command with the root command.
func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(&inspectPath, "file", "", "Path to the file to inspect (required)")
	inspectCmd.MarkFlagRequired("file")
}

// runInspect runs ingestion plus detection and prints the findings.
func runInspect() error {
	tables, err := ingest.ReadFile(inspectPath)
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n", inspectPath)
	fmt.Printf("Grids: %d\n", len(tables))
	for _, t := range tables {
		label := t.Sheet
		if label == "" {
			label = "(single grid)"
		}
		fmt.Printf("  - %s: %d row(s)\n", label, len(t.Cells))
	}

	located, err := header.Locate(tables, filepath.Base(inspectPath))
	if err != nil {
		return err
	}

	fmt.Println()
	if located.Table.Sheet != "" {
		fmt.Printf("Chosen sheet:  %s\n", located.Table.Sheet)
	}
	fmt.Printf("Header row:    %d\n", located.Table.HeaderRow+1)
	fmt.Printf("Auto-resolved: %v\n", located.AutoResolved)
	fmt.Printf("Headers:       %v\n", located.Table.Headers)

	ext := columns.DetectExtended(located.Table.Headers)
	fmt.Println("\nResolved roles:")
	printRole("sku", ext.SKU)
	printRole("price", ext.Price)
	printRole("name", ext.Name)
	printRole("qty", ext.Qty)
	printRole("delivery date", ext.DeliveryDate)
	printRole("po ref", ext.PORef)
	printRole("customer", ext.Customer)
	printRole("uom", ext.UOM)
	printRole("line total", ext.LineTotal)

	if !located.Roles.Valid() {
		fmt.Printf("\nNeeds manual column selection: missing %v\n", located.Roles.Missing())
	}

	fmt.Printf("\nData rows: %d\n", len(located.Table.Rows))
	for i, row := range located.Table.Rows {
		if i >= previewRows {
			fmt.Println("  ...")
			break
		}
		fmt.Printf("  %d: ", i+1)
		for _, h := range located.Table.Headers {
			fmt.Printf("%s=%q ", h, row[h])
		}
		fmt.Println()
	}

	return nil
}

// printRole prints one role assignment, marking unresolved roles.
func printRole(role, headerName string) {
	if headerName == "" {
		fmt.Printf("  %-14s (not found)\n", role)
		return
	}
	fmt.Printf("  %-14s %q\n", role, headerName)
}
