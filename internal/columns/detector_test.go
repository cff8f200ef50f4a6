package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectExactMatch(t *testing.T) {
	roles := Detect([]string{"SKU", "Unit Price", "Description", "Qty"})

	assert.Equal(t, "SKU", roles.SKU)
	assert.Equal(t, "Unit Price", roles.Price)
	assert.Equal(t, "Description", roles.Name)
	assert.Equal(t, "Qty", roles.Qty)
	assert.True(t, roles.Valid())
}

func TestDetectIsCaseAndSpaceInsensitive(t *testing.T) {
	roles := Detect([]string{"  sKu ", " UNIT PRICE "})

	assert.Equal(t, "  sKu ", roles.SKU)
	assert.Equal(t, " UNIT PRICE ", roles.Price)
}

func TestDetectSubstringMatch(t *testing.T) {
	// No exact alias, but the alias appears inside the header.
	roles := Detect([]string{"Customer SKU Code", "List Price (USD)", "Unit Qty"})

	assert.Equal(t, "Customer SKU Code", roles.SKU)
	assert.Equal(t, "List Price (USD)", roles.Price)
	assert.Equal(t, "Unit Qty", roles.Qty)
}

func TestDetectReverseSubstringMatch(t *testing.T) {
	// "quant" is contained in the alias "quantity".
	roles := Detect([]string{"SKU", "Price", "Quant"})
	assert.Equal(t, "Quant", roles.Qty)
}

func TestDetectReverseSubstringLengthGate(t *testing.T) {
	// A two-letter header must not match aliases that merely contain it.
	roles := Detect([]string{"qt", "Price"})
	assert.Empty(t, roles.Qty)
}

func TestDetectAliasOrderBreaksTies(t *testing.T) {
	// Both headers contain a price alias; "unit price" is declared before
	// "price", so the exact "Unit Price" wins over the earlier column.
	roles := Detect([]string{"Price Tier", "Unit Price"})
	assert.Equal(t, "Unit Price", roles.Price)
}

func TestDetectHeaderOrderBreaksTies(t *testing.T) {
	// Same alias matches two headers: the earliest header wins.
	roles := Detect([]string{"SKU A", "SKU B"})
	assert.Equal(t, "SKU A", roles.SKU)
}

func TestDetectUnresolvedRolesStayEmpty(t *testing.T) {
	roles := Detect([]string{"Foo", "Bar"})

	assert.False(t, roles.Valid())
	assert.Equal(t, []string{"sku", "price"}, roles.Missing())
}

func TestDetectIsDeterministic(t *testing.T) {
	headers := []string{"Item #", "Unit Qty", "Description", "Price", "Total Due"}
	first := Detect(headers)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Detect(headers))
	}
}

func TestDetectRealisticSupplierHeaders(t *testing.T) {
	// The header row from a real supplier order form.
	headers := []string{
		"Item #", "Unit Qty", "Description", "Price",
		"Order Rule Check", "Order Rule", "Total Due", "Status", "Notes",
	}
	roles := Detect(headers)

	assert.Equal(t, "Item #", roles.SKU)
	assert.Equal(t, "Price", roles.Price)
	assert.Equal(t, "Description", roles.Name)
	assert.Equal(t, "Unit Qty", roles.Qty)
}

func TestDetectExtended(t *testing.T) {
	headers := []string{
		"SKU", "Unit Price", "Description", "Qty",
		"Delivery Date", "PO Number", "Customer", "UOM", "Line Total",
	}
	ext := DetectExtended(headers)

	assert.Equal(t, "SKU", ext.SKU)
	assert.Equal(t, "Delivery Date", ext.DeliveryDate)
	assert.Equal(t, "PO Number", ext.PORef)
	assert.Equal(t, "Customer", ext.Customer)
	assert.Equal(t, "UOM", ext.UOM)
	assert.Equal(t, "Line Total", ext.LineTotal)
}

func TestMatchPassesAreIndependent(t *testing.T) {
	normalized := []string{"part number", "net price"}

	// Exact pass only sees identical strings.
	assert.Equal(t, 0, matchExact(normalized, []string{"part number"}))
	assert.Equal(t, -1, matchExact(normalized, []string{"part"}))

	// Substring pass finds the alias inside the header.
	assert.Equal(t, 1, matchSubstring(normalized, []string{"price"}))

	// Reverse pass finds the header inside the alias.
	assert.Equal(t, -1, matchReverseSubstring(normalized, []string{"price"}))
	assert.Equal(t, 1, matchReverseSubstring([]string{"sku", "net"}, []string{"net price"}))
}
