package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbol(t *testing.T) {
	assert.Equal(t, "$", Symbol("USD"))
	assert.Equal(t, "₹", Symbol("INR"))
	assert.Equal(t, "$", Symbol("XYZ"))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		code     string
		expected string
	}{
		{"small amount", 45, "USD", "$45"},
		{"rounds fractional", 1234.56, "USD", "$1,235"},
		{"thousands separator", 1234567, "USD", "$1,234,567"},
		{"rupee symbol", 85000, "INR", "₹85,000"},
		{"zero", 0, "USD", "$0"},
		{"negative", -1500, "USD", "-$1,500"},
		{"exactly three digits", 999, "USD", "$999"},
		{"four digits", 1000, "INR", "₹1,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAmount(tt.amount, tt.code))
		})
	}
}
