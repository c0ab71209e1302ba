package request

import "time"

// BusinessRequest represents a create/update business request
type BusinessRequest struct {
	GSTNumber string `json:"gst_number" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address" binding:"required"`
	State     string `json:"state" binding:"required"`
}

// CreateClientRequest represents a create client request. Only the GST
// number is accepted; everything else comes from the registry.
type CreateClientRequest struct {
	GSTNumber string `json:"gst_number" binding:"required"`
}

// CreateTemplateRequest represents a create template request
type CreateTemplateRequest struct {
	Name                string   `json:"name" binding:"required"`
	Description         *string  `json:"description"`
	CompanyLogo         *string  `json:"company_logo"`
	IsTaxable           bool     `json:"is_taxable"`
	CGSTRate            *float64 `json:"cgst_rate"`
	SGSTRate            *float64 `json:"sgst_rate"`
	IGSTRate            *float64 `json:"igst_rate"`
	InvoiceNumberStart  int      `json:"invoice_number_start"`
	InvoiceNumberPrefix string   `json:"invoice_number_prefix"`
	PDFTemplate         string   `json:"pdf_template"`
	PrimaryColor        string   `json:"primary_color"`
	SecondaryColor      string   `json:"secondary_color"`
	FontFamily          string   `json:"font_family"`
}

// UpdateTemplateRequest represents a partial template update
type UpdateTemplateRequest struct {
	Name                *string  `json:"name"`
	Description         *string  `json:"description"`
	CompanyLogo         *string  `json:"company_logo"`
	IsTaxable           *bool    `json:"is_taxable"`
	CGSTRate            *float64 `json:"cgst_rate"`
	SGSTRate            *float64 `json:"sgst_rate"`
	IGSTRate            *float64 `json:"igst_rate"`
	InvoiceNumberStart  *int     `json:"invoice_number_start"`
	InvoiceNumberPrefix *string  `json:"invoice_number_prefix"`
	PDFTemplate         *string  `json:"pdf_template"`
	PrimaryColor        *string  `json:"primary_color"`
	SecondaryColor      *string  `json:"secondary_color"`
	FontFamily          *string  `json:"font_family"`
	IsDefault           *bool    `json:"is_default"`
	IsActive            *bool    `json:"is_active"`
}

// InvoiceItemRequest is one requested invoice line
type InvoiceItemRequest struct {
	// Description may be omitted; unnamed items get a positional label
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	Rate        float64 `json:"rate" binding:"required,gte=0"`
}

// CreateInvoiceRequest represents a create invoice request
type CreateInvoiceRequest struct {
	ClientID     string               `json:"client_id" binding:"required,uuid"`
	TemplateID   *string              `json:"template_id" binding:"omitempty,uuid"`
	Date         *time.Time           `json:"date"`
	Note         *string              `json:"note"`
	Items        []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	UseManualGST bool                 `json:"use_manual_gst"`
	ManualCGST   *float64             `json:"manual_cgst"`
	ManualSGST   *float64             `json:"manual_sgst"`
	ManualIGST   *float64             `json:"manual_igst"`
}

// UpdateInvoiceRequest carries an invoice lifecycle action, either markPaid
// or regeneratePdf
type UpdateInvoiceRequest struct {
	Action string `json:"action" binding:"required,oneof=markPaid regeneratePdf"`
}
