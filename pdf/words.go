package pdf

import (
	"fmt"
	"math"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "Ten", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// AmountInWords renders a whole number in the Indian numbering system
// (thousand, lakh, crore).
func AmountInWords(n int64) string {
	if n == 0 {
		return "Zero"
	}
	return words(n)
}

func words(n int64) string {
	switch {
	case n < 20:
		return onesWords[n]
	case n < 100:
		s := tensWords[n/10]
		if n%10 != 0 {
			s += " " + onesWords[n%10]
		}
		return s
	case n < 1000:
		return segment(n, 100, "Hundred")
	case n < 100000:
		return segment(n, 1000, "Thousand")
	case n < 10000000:
		return segment(n, 100000, "Lakh")
	default:
		return segment(n, 10000000, "Crore")
	}
}

func segment(n, unit int64, name string) string {
	s := words(n/unit) + " " + name
	if rem := n % unit; rem != 0 {
		s += " " + words(rem)
	}
	return s
}

// RupeesInWords renders a currency amount, e.g.
// "Rupees Five Hundred and Twenty Five Paise Only".
func RupeesInWords(amount float64) string {
	rupees := int64(amount)
	paise := int64(math.Round((amount - float64(rupees)) * 100))
	if paise == 100 {
		// rounding carried the fraction into the next rupee
		rupees++
		paise = 0
	}
	if paise == 0 {
		return fmt.Sprintf("Rupees %s Only", AmountInWords(rupees))
	}
	return fmt.Sprintf("Rupees %s and %s Paise Only", AmountInWords(rupees), AmountInWords(paise))
}
