package render

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(files map[string]string) *Renderer {
	mapFS := fstest.MapFS{}
	for name, body := range files {
		mapFS["templates/"+name] = &fstest.MapFile{Data: []byte(body)}
	}
	return NewRenderer(mapFS)
}

func TestRenderScalarSubstitution(t *testing.T) {
	r := newTestRenderer(map[string]string{
		"classic.html": `<h1>Invoice #{{invoiceNo}}</h1><p>{{ clientName }}</p><p>{{note}}</p>`,
	})

	html, err := r.Render("classic", &InvoiceData{
		InvoiceNo:  "42",
		ClientName: "Unique Traders",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Invoice #42")
	// whitespace inside the braces is tolerated
	assert.Contains(t, html, "<p>Unique Traders</p>")
	// empty values substitute as empty string, never a literal placeholder
	assert.Contains(t, html, "<p></p>")
	assert.NotContains(t, html, "{{")
}

func TestRenderLabelPrefixes(t *testing.T) {
	r := newTestRenderer(map[string]string{
		"classic.html": `{{companyGSTIN}}|{{clientGSTIN}}|{{companyPhone}}|{{companyEmail}}|{{companyName}}`,
	})

	html, err := r.Render("classic", &InvoiceData{
		CompanyGSTIN: "27AAPFU0939F1ZV",
		ClientGSTIN:  "29AAACB2894G1ZP",
		CompanyPhone: "9876543210",
		CompanyName:  "Acme Supplies",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "GSTIN: 27AAPFU0939F1ZV")
	assert.Contains(t, html, "GSTIN: 29AAACB2894G1ZP")
	assert.Contains(t, html, "Phone: 9876543210")
	// label only applies when the value is present
	assert.Contains(t, html, "||Acme Supplies")
	// unlabeled fields stay bare
	assert.NotContains(t, html, "Name: Acme")
}

func TestRenderItemRows(t *testing.T) {
	r := newTestRenderer(map[string]string{
		"classic.html": `<tbody>{{itemsRows}}</tbody>`,
		"minimal.html": `<div class="items">{{itemsRowsMinimal}}</div>`,
	})

	items := []ItemRow{
		{SrNo: 1, Description: "Consulting", Quantity: 2, Rate: 500, Amount: 1000, GSTRate: "18.0"},
		{SrNo: 2, Description: "Support", Quantity: 1.5, Rate: 1000, Amount: 1500, GSTRate: "18.0"},
	}

	table, err := r.Render("classic", &InvoiceData{Items: items})
	require.NoError(t, err)
	assert.Contains(t, table, "<td>Consulting</td>")
	assert.Contains(t, table, "<td>2</td>")
	assert.Contains(t, table, "<td>1.5</td>")
	assert.Contains(t, table, "<td>₹500.00</td>")
	assert.Contains(t, table, "<td>₹1500.00</td>")
	assert.Contains(t, table, "<td>18.0%</td>")

	minimal, err := r.Render("minimal", &InvoiceData{Items: items})
	require.NoError(t, err)
	assert.Contains(t, minimal, `<div class="item-description">Support</div>`)
	assert.Contains(t, minimal, `<div class="item-rate">₹1000.00</div>`)
	assert.NotContains(t, minimal, "<tr>")
}

func TestRenderUnknownLayoutFallsBack(t *testing.T) {
	r := newTestRenderer(map[string]string{
		"classic.html": `classic {{invoiceNo}}`,
	})

	html, err := r.Render("vaporwave", &InvoiceData{InvoiceNo: "7"})
	require.NoError(t, err)
	assert.Equal(t, "classic 7", html)

	html, err = r.Render("", &InvoiceData{InvoiceNo: "8"})
	require.NoError(t, err)
	assert.Equal(t, "classic 8", html)
}

func TestRenderMissingDefaultLayout(t *testing.T) {
	r := newTestRenderer(nil)

	_, err := r.Render("classic", &InvoiceData{})
	assert.Error(t, err)
}
