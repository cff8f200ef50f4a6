// =============================================================================
// PO Reconciliation - Main Entry Point
// =============================================================================
//
// This is the main entry point for the PO Reconciliation CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   poreconcile reconcile    - Reconcile a purchase order against an ERP price list
//   poreconcile inspect      - Show header/column detection for a single file
//   poreconcile version      - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"poreconcile/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
