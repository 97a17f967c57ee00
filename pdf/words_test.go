package pdf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "Zero"},
		{5, "Five"},
		{15, "Fifteen"},
		{20, "Twenty"},
		{42, "Forty Two"},
		{100, "One Hundred"},
		{305, "Three Hundred Five"},
		{1000, "One Thousand"},
		{1500, "One Thousand Five Hundred"},
		{99999, "Ninety Nine Thousand Nine Hundred Ninety Nine"},
		{100000, "One Lakh"},
		{150000, "One Lakh Fifty Thousand"},
		{2350000, "Twenty Three Lakh Fifty Thousand"},
		{10000000, "One Crore"},
		{12000000, "One Crore Twenty Lakh"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, AmountInWords(tt.n), "n=%d", tt.n)
	}
}

func TestRupeesInWords(t *testing.T) {
	require.Equal(t, "Rupees Five Hundred Only", RupeesInWords(500.00))
	require.Equal(t, "Rupees Five Hundred and Fifty Paise Only", RupeesInWords(500.50))
	require.Equal(t, "Rupees Zero Only", RupeesInWords(0))

	// fractions that round up to a whole rupee must carry, never
	// read "One Hundred Paise"
	require.Equal(t, "Rupees Five Hundred Only", RupeesInWords(499.999))
	require.Equal(t, "Rupees One Only", RupeesInWords(0.999))
}
