// =============================================================================
// PO Reconciliation - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file. The
// configuration file is optional: when it does not exist, built-in defaults
// apply, so the tool works out of the box with nothing but two input files.
//
// CONFIGURATION SURFACE:
//   - tolerance        : maximum acceptable absolute price difference
//   - currency, locale : display formatting only, never the arithmetic
//   - output_dir       : where generated reports land
//   - po / erp columns : manual column-role overrides for exports whose
//                        headers auto-detection cannot resolve
//   - report           : which derived documents to generate
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// Tolerance is the maximum acceptable absolute price difference, in
	// currency units, before a line escalates from informational to
	// actionable. Must be >= 0.
	// Default: 0.02
	Tolerance float64 `yaml:"tolerance"`

	// Currency is the ISO 4217 code used for DISPLAY formatting in reports
	// and derived documents. The comparison arithmetic never reads it.
	// Default: "USD"
	Currency string `yaml:"currency"`

	// Locale is the BCP 47 tag controlling digit grouping and symbol
	// placement in displayed amounts.
	// Default: "en-US"
	Locale string `yaml:"locale"`

	// OutputDir is the directory where generated reports are written.
	// Default: "." (current directory)
	OutputDir string `yaml:"output_dir"`

	// PO holds settings for the purchase-order side of the comparison.
	PO SideConfig `yaml:"po"`

	// ERP holds settings for the ERP price-list side of the comparison.
	ERP SideConfig `yaml:"erp"`

	// Report selects which derived documents to generate alongside the
	// reconciliation workbook.
	Report ReportConfig `yaml:"report"`
}

// SideConfig holds per-side settings.
type SideConfig struct {
	// Columns overrides auto-detected column roles by exact header name.
	// Only needed when an export's headers defeat auto-detection; roles
	// left empty here keep their auto-detected assignment.
	Columns ColumnOverrides `yaml:"columns"`
}

// ColumnOverrides names headers for each semantic role.
type ColumnOverrides struct {
	SKU   string `yaml:"sku"`
	Price string `yaml:"price"`
	Name  string `yaml:"name"`
	Qty   string `yaml:"qty"`
}

// ReportConfig selects derived outputs.
type ReportConfig struct {
	// CreditNote adds a credit-note sheet reversing the PO at invoiced
	// prices.
	CreditNote bool `yaml:"credit_note"`

	// ReInvoice adds a corrected re-invoice sheet at list prices.
	ReInvoice bool `yaml:"re_invoice"`

	// EmailDraft writes a plain-text email draft next to the workbook.
	EmailDraft bool `yaml:"email_draft"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file at path. A missing file is not an
// error; defaults apply.
//
// RETURNS:
//   - The configuration with defaults applied and validated.
//   - An error when the file exists but cannot be parsed, or a value is
//     out of range.
func Load(path string) (*Config, error) {
	// Start from the defaults so keys absent from the file keep them.
	// An explicit "tolerance: 0" in the file is respected.
	config := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Optional file; run on defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Tolerance: 0.02,
		Currency:  "USD",
		Locale:    "en-US",
		OutputDir: ".",
	}
}

// validate checks the configuration for invalid values.
func validate(config *Config) error {
	if config.Tolerance < 0 {
		return fmt.Errorf("tolerance must be >= 0, got %v", config.Tolerance)
	}
	return nil
}
