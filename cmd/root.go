// =============================================================================
// PO Reconciliation - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'reconcile', 'inspect') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (poreconcile)
//   ├── reconcileCmd (poreconcile reconcile)
//   ├── inspectCmd   (poreconcile inspect)
//   └── versionCmd   (poreconcile version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (e.g., --config, --verbose)
//   2. Initializing the configuration system
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
// This is the entry point for the CLI application.
var rootCmd = &cobra.Command{
	// Use is the one-line usage message.
	Use: "poreconcile",

	// Short is a short description shown in the 'help' output.
	Short: "PO Reconciliation - Check customer purchase orders against ERP price lists",

	// Long is a longer description shown in the 'help <command>' output.
	Long: `PO Reconciliation is a CLI tool that checks customer purchase orders
against an authoritative ERP price list, detects pricing discrepancies, and
classifies every line item by match quality.

Key Features:
  - Ingests CSV/TSV files, Excel workbooks, and text-layer PDFs
  - Finds the real header row inside loosely structured exports
  - Maps columns to semantic roles (SKU, price, name, quantity) automatically
  - Matches SKUs exactly or by core-number prefix against ERP variant SKUs
  - Classifies every line (Match / Tolerance / Exception / Warning / missing)
  - Writes a status-colored Excel report plus optional credit note,
    corrected re-invoice, and email draft

Example Usage:
  poreconcile reconcile --po order.csv --erp pricelist.xlsx
  poreconcile reconcile --po order.pdf --erp erp.xlsx --tolerance 0.05
  poreconcile inspect --file order.xlsx   # Show what was detected`,

	// Run is the function that will be executed when the root command is called
	// without any subcommands. In this case, we just print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Execute the root command. If there's an error, print it and exit.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init is called automatically when the package is loaded.
// It sets up the global flags shared by all subcommands.
func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================
	// Persistent flags are available to this command and all subcommands.

	// --config flag: Allows the user to specify a custom configuration file.
	// The configuration file is optional; built-in defaults apply without it.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (optional, defaults apply if missing)",
	)

	// --verbose flag: Enables verbose/debug output.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
