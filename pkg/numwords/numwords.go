// Package numwords converts rupee amounts to their English word form using
// the Indian grouping convention (crore, lakh, thousand), as required for
// the "amount in words" line on a tax invoice.
package numwords

import "strings"

var ones = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}

var teens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}

var tens = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}

const (
	crore = 10_000_000
	lakh  = 100_000
)

// convertHundreds renders a group value in [1, 999] with a trailing space.
func convertHundreds(n int) string {
	var b strings.Builder
	if n > 99 {
		b.WriteString(ones[n/100])
		b.WriteString(" Hundred ")
		n %= 100
	}
	switch {
	case n > 19:
		b.WriteString(tens[n/10])
		b.WriteString(" ")
		n %= 10
	case n > 9:
		b.WriteString(teens[n-10])
		b.WriteString(" ")
		return b.String()
	}
	if n > 0 {
		b.WriteString(ones[n])
		b.WriteString(" ")
	}
	return b.String()
}

// Rupees converts a non-negative integer rupee amount to words, suffixed
// with "Rupees Only". Zero maps to the bare word "Zero" with no suffix.
// Negative input is a caller error and yields an empty amount.
func Rupees(num int) string {
	if num == 0 {
		return "Zero"
	}

	var b strings.Builder
	if crores := num / crore; crores > 0 {
		b.WriteString(convertHundreds(crores))
		b.WriteString("Crore ")
	}
	if lakhs := (num % crore) / lakh; lakhs > 0 {
		b.WriteString(convertHundreds(lakhs))
		b.WriteString("Lakh ")
	}
	if thousands := (num % lakh) / 1000; thousands > 0 {
		b.WriteString(convertHundreds(thousands))
		b.WriteString("Thousand ")
	}
	if hundreds := num % 1000; hundreds > 0 {
		b.WriteString(convertHundreds(hundreds))
	}

	return strings.TrimSpace(b.String()) + " Rupees Only"
}
