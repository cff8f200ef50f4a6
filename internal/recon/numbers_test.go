package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{name: "plain decimal", input: "21.99", want: 21.99, ok: true},
		{name: "integer", input: "5", want: 5, ok: true},
		{name: "leading currency symbol", input: "$13.50", want: 13.50, ok: true},
		{name: "euro symbol", input: "€9.99", want: 9.99, ok: true},
		{name: "thousands commas", input: "1,234.56", want: 1234.56, ok: true},
		{name: "surrounding spaces", input: "  10.00  ", want: 10, ok: true},
		{name: "accounting negative", input: "(12.34)", want: -12.34, ok: true},
		{name: "plain negative", input: "-3.5", want: -3.5, ok: true},
		{name: "empty", input: "", ok: false},
		{name: "words", input: "call for pricing", ok: false},
		{name: "mixed", input: "12 each", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseNumber(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.51, round2(13.50-12.99))
	assert.Equal(t, 2.35, round2(2.346))
	assert.Equal(t, -2.35, round2(-2.346))
	assert.Equal(t, 1.0, round2(0.999999))
}

func TestPercentDiff(t *testing.T) {
	assert.Equal(t, 10.0, percentDiff(1.0, 10.0))
	assert.Equal(t, -4.0, percentDiff(-0.51, 12.99))
	assert.Equal(t, 100.0, percentDiff(0.5, 0))
	assert.Equal(t, 0.0, percentDiff(0, 0))
}
