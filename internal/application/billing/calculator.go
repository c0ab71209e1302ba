// Package billing holds the pure tax and amount arithmetic for invoices.
// Everything here is side-effect free; amounts stay in full float64
// precision and are rounded to two decimals only when rendered.
package billing

import (
	"math"

	"github.com/billcraft/billcraft-api/internal/domain/entity"
)

// GSTRates holds the three independent tax component percentages. Intra-state
// invoices carry CGST+SGST, inter-state invoices carry IGST; the calculator
// does not care which combination is populated.
type GSTRates struct {
	CGST float64
	SGST float64
	IGST float64
}

// Sum returns the combined percentage applied to the subtotal
func (r GSTRates) Sum() float64 {
	return r.CGST + r.SGST + r.IGST
}

// LineItem is one invoice line as entered by the user
type LineItem struct {
	Description string
	Quantity    float64
	Rate        float64
}

// Amount returns quantity × rate for this line
func (l LineItem) Amount() float64 {
	return l.Quantity * l.Rate
}

// Amounts is the derived money breakdown for an invoice
type Amounts struct {
	Subtotal    float64
	TaxAmount   float64
	TotalAmount float64
	CGSTAmount  float64
	SGSTAmount  float64
	IGSTAmount  float64
	// RoundOff reconciles the displayed rounding: round(total) - total
	RoundOff float64
}

// Calculate derives all invoice amounts from the line items and resolved rates
func Calculate(items []LineItem, rates GSTRates) Amounts {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Amount()
	}

	taxAmount := subtotal * rates.Sum() / 100
	totalAmount := subtotal + taxAmount

	return Amounts{
		Subtotal:    subtotal,
		TaxAmount:   taxAmount,
		TotalAmount: totalAmount,
		CGSTAmount:  subtotal * rates.CGST / 100,
		SGSTAmount:  subtotal * rates.SGST / 100,
		IGSTAmount:  subtotal * rates.IGST / 100,
		RoundOff:    math.Round(totalAmount) - totalAmount,
	}
}

// ResolveRates applies the rate resolution policy. A manual override wins
// outright, with missing components defaulting to zero. Otherwise a taxable
// template supplies its stored rates; no template, or a non-taxable one,
// means zero tax. The same function runs at creation and at PDF
// regeneration; which template snapshot is passed in is up to the caller.
func ResolveRates(useManual bool, manual GSTRates, tpl *entity.InvoiceTemplate) GSTRates {
	if useManual {
		return manual
	}
	if tpl == nil {
		return GSTRates{}
	}
	cgst, sgst, igst := tpl.TaxRates()
	return GSTRates{CGST: cgst, SGST: sgst, IGST: igst}
}
