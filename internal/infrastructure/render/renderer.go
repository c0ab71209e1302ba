// Package render fills invoice layout HTML with invoice data. The layouts
// use flat {{fieldName}} placeholders rather than html/template constructs;
// the same layout files are served to the frontend for live preview, so the
// substitution rules here must stay in sync with what the preview shows.
package render

import (
	"fmt"
	"io/fs"
	"regexp"
	"strconv"
	"strings"
)

// DefaultLayout is used when a template carries no layout key
const DefaultLayout = "classic"

// ItemRow is one line of the invoice table
type ItemRow struct {
	SrNo        int
	Description string
	Quantity    float64
	Rate        float64
	Amount      float64
	GSTRate     string
}

// InvoiceData carries every substitutable field of an invoice layout.
// All values are pre-formatted strings; the renderer does not do any money
// arithmetic of its own.
type InvoiceData struct {
	InvoiceNo      string
	Date           string
	GenerationDate string
	ClientName     string
	ClientAddress  string
	ClientGSTIN    string
	CompanyName    string
	CompanyGSTIN   string
	CompanyAddress string
	CompanyCity    string
	CompanyPhone   string
	CompanyEmail   string
	Subtotal       string
	CGSTRate       string
	CGSTAmount     string
	SGSTRate       string
	SGSTAmount     string
	IGSTRate       string
	IGSTAmount     string
	RoundOff       string
	Total          string
	AmountInWords  string
	Note           string
	Items          []ItemRow
}

// labels are prepended to a handful of fields when the value is non-empty.
// The labeling is per-field, the layouts do not carry these prefixes.
var labels = map[string]string{
	"companyGSTIN": "GSTIN: ",
	"clientGSTIN":  "GSTIN: ",
	"companyPhone": "Phone: ",
	"companyEmail": "Email: ",
}

// Renderer loads layouts from a file system, normally the embedded web
// assets
type Renderer struct {
	layouts fs.FS
}

// NewRenderer creates a renderer over the given layout file system
func NewRenderer(layouts fs.FS) *Renderer {
	return &Renderer{layouts: layouts}
}

// Render loads the layout for the given key and substitutes all invoice
// fields. Unknown keys fall back to the default layout; a missing layout
// file is an error.
func (r *Renderer) Render(layoutKey string, data *InvoiceData) (string, error) {
	if layoutKey == "" {
		layoutKey = DefaultLayout
	}
	raw, err := fs.ReadFile(r.layouts, "templates/"+layoutKey+".html")
	if err != nil {
		if layoutKey == DefaultLayout {
			return "", fmt.Errorf("render: read layout %q: %w", layoutKey, err)
		}
		raw, err = fs.ReadFile(r.layouts, "templates/"+DefaultLayout+".html")
		if err != nil {
			return "", fmt.Errorf("render: read layout %q: %w", DefaultLayout, err)
		}
	}

	rendered := string(raw)
	rendered = replaceToken(rendered, "itemsRows", tableRows(data.Items))
	rendered = replaceToken(rendered, "itemsRowsMinimal", minimalRows(data.Items))

	for name, value := range data.fields() {
		if value != "" {
			if label, ok := labels[name]; ok {
				value = label + value
			}
		}
		rendered = replaceToken(rendered, name, value)
	}
	return rendered, nil
}

func (d *InvoiceData) fields() map[string]string {
	return map[string]string{
		"invoiceNo":        d.InvoiceNo,
		"date":             d.Date,
		"generationDate":   d.GenerationDate,
		"clientName":       d.ClientName,
		"clientAddress":    d.ClientAddress,
		"clientGSTIN":      d.ClientGSTIN,
		"companyName":      d.CompanyName,
		"companyGSTIN":     d.CompanyGSTIN,
		"companyAddress":   d.CompanyAddress,
		"companyCityState": d.CompanyCity,
		"companyPhone":     d.CompanyPhone,
		"companyEmail":     d.CompanyEmail,
		"subtotal":         d.Subtotal,
		"cgstRate":         d.CGSTRate,
		"cgstAmount":       d.CGSTAmount,
		"sgstRate":         d.SGSTRate,
		"sgstAmount":       d.SGSTAmount,
		"igstRate":         d.IGSTRate,
		"igstAmount":       d.IGSTAmount,
		"roundOff":         d.RoundOff,
		"total":            d.Total,
		"amountInWords":    d.AmountInWords,
		"note":             d.Note,
	}
}

// replaceToken substitutes every {{ name }} occurrence, tolerating
// whitespace inside the braces
func replaceToken(s, name, value string) string {
	token := regexp.MustCompile(`\{\{\s*` + regexp.QuoteMeta(name) + `\s*\}\}`)
	return token.ReplaceAllLiteralString(s, value)
}

// formatQuantity drops insignificant trailing zeros, so 2 renders as "2"
// and 2.5 as "2.5"
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// tableRows produces the <tr> markup used by the table-based layouts
func tableRows(items []ItemRow) string {
	var b strings.Builder
	for i, row := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, `
                <tr>
                    <td>%d</td>
                    <td>%s</td>
                    <td>%s</td>
                    <td>₹%.2f</td>
                    <td>₹%.2f</td>
                    <td>%s%%</td>
                </tr>`,
			row.SrNo, row.Description, formatQuantity(row.Quantity),
			row.Rate, row.Amount, row.GSTRate)
	}
	return b.String()
}

// minimalRows produces the flex-div markup the minimal layout uses instead
// of a table
func minimalRows(items []ItemRow) string {
	var b strings.Builder
	for i, row := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, `
            <div class="item-row">
                <div class="item-srno">%d</div>
                <div class="item-description">%s</div>
                <div class="item-quantity">%s</div>
                <div class="item-rate">₹%.2f</div>
                <div class="item-amount">₹%.2f</div>
                <div class="item-gst">%s%%</div>
            </div>`,
			row.SrNo, row.Description, formatQuantity(row.Quantity),
			row.Rate, row.Amount, row.GSTRate)
	}
	return b.String()
}
