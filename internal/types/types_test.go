package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsedTableColumn(t *testing.T) {
	table := ParsedTable{
		Headers: []string{"SKU", "Price"},
		Rows: []map[string]string{
			{"SKU": "A100", "Price": "10.00"},
			{"SKU": "B200", "Price": ""},
		},
	}

	assert.Equal(t, []string{"A100", "B200"}, table.Column("SKU"))
	assert.Equal(t, []string{"10.00", ""}, table.Column("Price"))
	assert.Equal(t, []string{"", ""}, table.Column("Missing"))
}

func TestParsedTableHasHeader(t *testing.T) {
	table := ParsedTable{Headers: []string{"SKU", "Price"}}

	assert.True(t, table.HasHeader("Price"))
	assert.False(t, table.HasHeader("price"))
	assert.False(t, table.HasHeader("Qty"))
}

func TestIsRowEmpty(t *testing.T) {
	assert.True(t, IsRowEmpty(nil))
	assert.True(t, IsRowEmpty([]string{"", "  ", "\t"}))
	assert.False(t, IsRowEmpty([]string{"", "x"}))
}
