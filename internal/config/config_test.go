package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, 0.02, cfg.Tolerance)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "en-US", cfg.Locale)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.False(t, cfg.Report.CreditNote)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "currency: EUR\nlocale: de-DE\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, "de-DE", cfg.Locale)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, 0.02, cfg.Tolerance)
	assert.Equal(t, ".", cfg.OutputDir)
}

func TestLoadExplicitZeroTolerance(t *testing.T) {
	path := writeConfig(t, "tolerance: 0\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	// Zero means exact-match mode, not "unset".
	assert.Equal(t, 0.0, cfg.Tolerance)
}

func TestLoadColumnOverrides(t *testing.T) {
	path := writeConfig(t, `
tolerance: 0.05
po:
  columns:
    sku: "Artikelnummer"
    price: "Einzelpreis"
report:
  credit_note: true
  email_draft: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.Tolerance)
	assert.Equal(t, "Artikelnummer", cfg.PO.Columns.SKU)
	assert.Equal(t, "Einzelpreis", cfg.PO.Columns.Price)
	assert.Empty(t, cfg.PO.Columns.Name)
	assert.Empty(t, cfg.ERP.Columns.SKU)
	assert.True(t, cfg.Report.CreditNote)
	assert.False(t, cfg.Report.ReInvoice)
	assert.True(t, cfg.Report.EmailDraft)
}

func TestLoadNegativeToleranceRejected(t *testing.T) {
	path := writeConfig(t, "tolerance: -0.01\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tolerance must be >= 0")
}

func TestLoadMalformedYAMLRejected(t *testing.T) {
	path := writeConfig(t, "tolerance: [not a number\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
