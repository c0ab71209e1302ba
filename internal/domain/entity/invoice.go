package entity

import (
	"time"

	"github.com/billcraft/billcraft-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice is an issued invoice. Amounts are frozen at creation time; the PDF
// artifact can be regenerated later against the template's current rates.
// InvoiceNo runs per user and is protected by a composite unique index plus a
// serializing allocation query, so concurrent creation cannot assign the same
// number twice.
type Invoice struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID          `gorm:"type:uuid;not null;index:idx_invoices_user_no,unique" json:"user_id"`
	InvoiceNo    int                `gorm:"not null;index:idx_invoices_user_no,unique" json:"invoice_no"`
	ClientID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"client_id"`
	TemplateID   *uuid.UUID         `gorm:"type:uuid;index" json:"template_id,omitempty"`
	Date         time.Time          `gorm:"type:date;not null" json:"date"`
	Amount       float64            `gorm:"not null" json:"amount"`
	TaxAmount    float64            `gorm:"not null" json:"tax_amount"`
	TotalAmount  float64            `gorm:"not null" json:"total_amount"`
	Note         *string            `gorm:"type:text" json:"note,omitempty"`
	UseManualGST bool               `gorm:"default:false;column:use_manual_gst" json:"use_manual_gst"`
	ManualCGST   *float64           `gorm:"column:manual_cgst" json:"manual_cgst,omitempty"`
	ManualSGST   *float64           `gorm:"column:manual_sgst" json:"manual_sgst,omitempty"`
	ManualIGST   *float64           `gorm:"column:manual_igst" json:"manual_igst,omitempty"`
	Status       enum.InvoiceStatus `gorm:"size:20;default:'UNPAID'" json:"status"`
	PaidAt       *time.Time         `json:"paid_at,omitempty"`
	PDFData      []byte             `gorm:"type:bytea;column:pdf_data" json:"-"`
	PDFStatus    enum.PDFStatus     `gorm:"size:20;default:'PENDING';column:pdf_status" json:"pdf_status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User     User             `gorm:"foreignKey:UserID" json:"-"`
	Client   *Client          `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Template *InvoiceTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	Items    []InvoiceItem    `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// HasPDF reports whether PDF bytes are stored for this invoice
func (i *Invoice) HasPDF() bool {
	return len(i.PDFData) > 0
}

// InvoiceItem is a single line on an invoice. Items are written atomically
// with their parent invoice and never mutated afterwards.
type InvoiceItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Description string    `gorm:"size:500;not null" json:"description"`
	Quantity    float64   `gorm:"not null" json:"quantity"`
	Price       float64   `gorm:"not null" json:"price"`
	GSTRate     float64   `gorm:"column:gst_rate" json:"gst_rate"`
	Amount      float64   `gorm:"not null" json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
