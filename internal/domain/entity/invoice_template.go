package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceTemplate is a named preset of tax defaults, numbering scheme and PDF
// layout. Exactly one template per user may be the default; the first one a
// user creates is promoted automatically. Distinct from the HTML assets under
// web/templates, which PDFTemplate selects by key.
type InvoiceTemplate struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name                string         `gorm:"size:255;not null" json:"name"`
	Description         *string        `gorm:"type:text" json:"description,omitempty"`
	CompanyLogo         *string        `gorm:"size:255" json:"company_logo,omitempty"`
	IsTaxable           bool           `gorm:"default:false" json:"is_taxable"`
	CGSTRate            *float64       `gorm:"column:cgst_rate" json:"cgst_rate,omitempty"`
	SGSTRate            *float64       `gorm:"column:sgst_rate" json:"sgst_rate,omitempty"`
	IGSTRate            *float64       `gorm:"column:igst_rate" json:"igst_rate,omitempty"`
	InvoiceNumberStart  int            `gorm:"default:1" json:"invoice_number_start"`
	InvoiceNumberPrefix string         `gorm:"size:20;default:'INV'" json:"invoice_number_prefix"`
	PDFTemplate         string         `gorm:"size:50;default:'classic';column:pdf_template" json:"pdf_template"`
	PrimaryColor        string         `gorm:"size:20;default:'#667eea'" json:"primary_color"`
	SecondaryColor      string         `gorm:"size:20;default:'#f7fafc'" json:"secondary_color"`
	FontFamily          string         `gorm:"size:100;default:'Inter'" json:"font_family"`
	IsDefault           bool           `gorm:"default:false" json:"is_default"`
	IsActive            bool           `gorm:"default:true" json:"is_active"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Invoices []Invoice `gorm:"foreignKey:TemplateID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new template
func (t *InvoiceTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceTemplate model
func (InvoiceTemplate) TableName() string {
	return "invoice_templates"
}

// Rate returns a component rate, treating nil as zero
func rateOrZero(r *float64) float64 {
	if r == nil {
		return 0
	}
	return *r
}

// TaxRates returns the template's three component rates; all zero when the
// template is not taxable
func (t *InvoiceTemplate) TaxRates() (cgst, sgst, igst float64) {
	if !t.IsTaxable {
		return 0, 0, 0
	}
	return rateOrZero(t.CGSTRate), rateOrZero(t.SGSTRate), rateOrZero(t.IGSTRate)
}
