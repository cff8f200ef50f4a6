package ingest

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDelimitedRowsTab(t *testing.T) {
	lines := []string{
		"SKU\tPrice\tDescription",
		"11080\t12.99\tBall valve 1/2\"",
		"11082\t7.25\tHose clamp",
	}

	grid, ok := DetectDelimitedRows(lines)
	require.True(t, ok)
	require.Len(t, grid, 3)
	assert.Equal(t, []string{"SKU", "Price", "Description"}, grid[0])
	assert.Equal(t, []string{"11080", "12.99", "Ball valve 1/2\""}, grid[1])
}

func TestDetectDelimitedRowsMultiSpace(t *testing.T) {
	lines := []string{
		"SKU      Price    Description",
		"11080    12.99    Ball valve 1/2\"",
	}

	grid, ok := DetectDelimitedRows(lines)
	require.True(t, ok)
	assert.Equal(t, []string{"SKU", "Price", "Description"}, grid[0])

	// Single spaces inside a cell do not split it.
	assert.Equal(t, "Ball valve 1/2\"", grid[1][2])
}

func TestDetectDelimitedRowsPipe(t *testing.T) {
	lines := []string{
		"SKU | Price | Description",
		"11080 | 12.99 | Ball valve",
	}

	grid, ok := DetectDelimitedRows(lines)
	require.True(t, ok)
	assert.Equal(t, []string{"11080", "12.99", "Ball valve"}, grid[1])
}

func TestDetectDelimitedRowsToleratesMissingTrailingCell(t *testing.T) {
	lines := []string{
		"SKU\tPrice\tNotes",
		"11080\t12.99", // trailing empty cell dropped by the PDF renderer
	}

	_, ok := DetectDelimitedRows(lines)
	assert.True(t, ok)
}

func TestDetectDelimitedRowsConfirmationWindow(t *testing.T) {
	// The confirming line may appear anywhere in the four lines after the
	// first, so a stray annotation line between header and data is fine.
	lines := []string{
		"SKU\tPrice\tNotes",
		"continued from previous page",
		"11080\t12.99\tin stock",
	}

	grid, ok := DetectDelimitedRows(lines)
	require.True(t, ok)
	assert.Equal(t, []string{"11080", "12.99", "in stock"}, grid[2])
}

func TestDetectDelimitedRowsRejectsProse(t *testing.T) {
	lines := []string{
		"Dear customer,",
		"please find attached our latest price list.",
		"Kind regards",
	}

	grid, ok := DetectDelimitedRows(lines)
	assert.False(t, ok)
	assert.Nil(t, grid)
}

func TestDetectDelimitedRowsRejectsInconsistentSplit(t *testing.T) {
	// Tab splits the first line into 3 cells, but nothing in the
	// confirmation window comes close to that count.
	lines := []string{
		"a\tb\tc",
		"one",
		"two",
		"three",
		"four",
	}

	_, ok := DetectDelimitedRows(lines)
	assert.False(t, ok)
}

func TestExtractLinesGroupsAndOrders(t *testing.T) {
	// Spans arrive unordered; Y grows upward, so Y=700 is above Y=680.
	texts := []pdf.Text{
		{S: "12.99", X: 200, Y: 680.5, W: 30, FontSize: 10},
		{S: "SKU", X: 50, Y: 700, W: 25, FontSize: 10},
		{S: "Price", X: 200, Y: 699.8, W: 30, FontSize: 10},
		{S: "11080", X: 50, Y: 680, W: 35, FontSize: 10},
	}

	lines := extractLines(texts)
	require.Len(t, lines, 2)
	assert.Equal(t, "SKU  Price", lines[0])
	assert.Equal(t, "11080  12.99", lines[1])
}

func TestRenderLineKeepsWordSpacing(t *testing.T) {
	// A gap smaller than the font size is word spacing, not a column break.
	spans := []pdf.Text{
		{S: "Ball", X: 50, Y: 680, W: 20, FontSize: 10},
		{S: "valve", X: 74, Y: 680, W: 26, FontSize: 10},
		{S: "12.99", X: 200, Y: 680, W: 30, FontSize: 10},
	}

	lines := extractLines(spans)
	require.Len(t, lines, 1)
	assert.Equal(t, "Ball valve  12.99", lines[0])
}
