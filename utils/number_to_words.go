package utils

import (
	"math"
	"strings"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// indianScales splits a number the Indian way: crore, lakh, thousand, then hundreds.
var indianScales = []struct {
	size int64
	name string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	return strings.TrimSpace(tens[n/10] + " " + ones[n%10])
}

// NumberToWords spells a non-negative whole number using lakh and crore.
func NumberToWords(num int64) string {
	if num <= 0 {
		return ""
	}

	var parts []string
	for _, s := range indianScales {
		if num < s.size {
			continue
		}
		// count only exceeds 99 for crore
		count := num / s.size
		parts = append(parts, NumberToWords(count)+" "+s.name)
		num %= s.size
	}
	if num > 0 {
		parts = append(parts, belowHundred(num))
	}
	return strings.Join(parts, " ")
}

// AmountInWords renders an amount as "Rupees ... and ... Paise Only". The sign is
// dropped; callers label advances themselves.
func AmountInWords(amount float64) string {
	amount = math.Abs(amount)
	paiseTotal := int64(math.Round(amount * 100))
	rupees, paise := paiseTotal/100, paiseTotal%100

	if rupees == 0 && paise == 0 {
		return "Rupees Zero Only"
	}

	var b strings.Builder
	if rupees > 0 {
		b.WriteString("Rupees " + NumberToWords(rupees))
	}
	if paise > 0 {
		if b.Len() > 0 {
			b.WriteString(" and ")
		}
		b.WriteString(NumberToWords(paise) + " Paise")
	}
	b.WriteString(" Only")
	return b.String()
}
