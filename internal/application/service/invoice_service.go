package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/billcraft/billcraft-api/internal/application/billing"
	"github.com/billcraft/billcraft-api/internal/domain/entity"
	"github.com/billcraft/billcraft-api/internal/domain/enum"
	"github.com/billcraft/billcraft-api/internal/domain/repository"
	"github.com/billcraft/billcraft-api/internal/infrastructure/pdf"
	"github.com/billcraft/billcraft-api/internal/infrastructure/render"
	"github.com/billcraft/billcraft-api/pkg/apperror"
	"github.com/billcraft/billcraft-api/pkg/numwords"
	"github.com/billcraft/billcraft-api/pkg/pagination"
	"github.com/google/uuid"
)

// Renderer fills an invoice layout with data
type Renderer interface {
	Render(layoutKey string, data *render.InvoiceData) (string, error)
}

// InvoiceService handles invoice creation, the PDF pipeline and lifecycle
// transitions. Amount fields are computed once at creation and never change;
// only the PDF artifact can be produced again later.
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	clientRepo   repository.ClientRepository
	templateRepo repository.TemplateRepository
	businessRepo repository.BusinessRepository
	renderer     Renderer
	pdfEngine    pdf.Engine
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	templateRepo repository.TemplateRepository,
	businessRepo repository.BusinessRepository,
	renderer Renderer,
	pdfEngine pdf.Engine,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		templateRepo: templateRepo,
		businessRepo: businessRepo,
		renderer:     renderer,
		pdfEngine:    pdfEngine,
	}
}

// InvoiceItemInput is one requested invoice line
type InvoiceItemInput struct {
	Description string
	Quantity    float64
	Rate        float64
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	UserID       uuid.UUID
	ClientID     uuid.UUID
	TemplateID   *uuid.UUID
	Date         *time.Time
	Note         *string
	Items        []InvoiceItemInput
	UseManualGST bool
	ManualCGST   *float64
	ManualSGST   *float64
	ManualIGST   *float64
}

// CreateInvoice validates the request, computes and freezes amounts, persists
// the invoice with the next sequence number, then renders and stores the PDF.
// The invoice row is committed before the render; a failed render leaves the
// row with PDF status FAILED rather than rolling it back.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if input.ClientID == uuid.Nil || len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("clientId and at least one item are required")
	}

	client, err := s.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	business, err := s.businessRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if business == nil || client.BusinessID != business.ID {
		return nil, apperror.NewNotFoundError("Client")
	}

	var template *entity.InvoiceTemplate
	if input.TemplateID != nil {
		template, err = s.templateRepo.GetByID(ctx, *input.TemplateID)
		if err != nil {
			return nil, err
		}
		if template != nil && template.UserID != input.UserID {
			return nil, apperror.NewNotFoundError("Template")
		}
	}

	manual := billing.GSTRates{
		CGST: deref(input.ManualCGST),
		SGST: deref(input.ManualSGST),
		IGST: deref(input.ManualIGST),
	}
	rates := billing.ResolveRates(input.UseManualGST, manual, template)

	lines := make([]billing.LineItem, 0, len(input.Items))
	for i, it := range input.Items {
		desc := it.Description
		if desc == "" {
			desc = fmt.Sprintf("Item %d", i+1)
		}
		lines = append(lines, billing.LineItem{
			Description: desc,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
		})
	}
	amounts := billing.Calculate(lines, rates)

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	invoice := &entity.Invoice{
		UserID:       input.UserID,
		ClientID:     input.ClientID,
		TemplateID:   input.TemplateID,
		Date:         date,
		Amount:       amounts.Subtotal,
		TaxAmount:    amounts.TaxAmount,
		TotalAmount:  amounts.TotalAmount,
		Note:         input.Note,
		UseManualGST: input.UseManualGST,
		Status:       enum.InvoiceStatusUnpaid,
		PDFStatus:    enum.PDFStatusPending,
	}
	if input.UseManualGST {
		invoice.ManualCGST = &rates.CGST
		invoice.ManualSGST = &rates.SGST
		invoice.ManualIGST = &rates.IGST
	}

	items := make([]entity.InvoiceItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, entity.InvoiceItem{
			Description: line.Description,
			Quantity:    line.Quantity,
			Price:       line.Rate,
			GSTRate:     rates.Sum(),
			Amount:      line.Amount(),
		})
	}

	if err := s.invoiceRepo.CreateWithItems(ctx, invoice, items); err != nil {
		return nil, err
	}
	invoice.Client = client
	invoice.Template = template

	s.generatePDF(ctx, invoice, business, rates)
	return invoice, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// generatePDF renders the invoice and stores the result. Failures are
// recorded on the invoice, never returned; the invoice itself is already
// committed.
func (s *InvoiceService) generatePDF(ctx context.Context, invoice *entity.Invoice, business *entity.Business, rates billing.GSTRates) {
	layoutKey := render.DefaultLayout
	if invoice.Template != nil && invoice.Template.PDFTemplate != "" {
		layoutKey = invoice.Template.PDFTemplate
	}

	html, err := s.renderer.Render(layoutKey, s.buildInvoiceData(invoice, business, rates))
	if err == nil {
		var pdfBytes []byte
		pdfBytes, err = s.pdfEngine.Render(ctx, html)
		if err == nil {
			if err = s.invoiceRepo.UpdatePDF(ctx, invoice.ID, pdfBytes, string(enum.PDFStatusReady)); err == nil {
				invoice.PDFData = pdfBytes
				invoice.PDFStatus = enum.PDFStatusReady
				return
			}
		}
	}

	log.Printf("invoice %s: pdf generation failed: %v", invoice.ID, err)
	invoice.PDFStatus = enum.PDFStatusFailed
	if uerr := s.invoiceRepo.UpdatePDF(ctx, invoice.ID, nil, string(enum.PDFStatusFailed)); uerr != nil {
		log.Printf("invoice %s: recording pdf failure: %v", invoice.ID, uerr)
	}
}

// buildInvoiceData flattens the invoice into the renderer's field set. The
// client or business may be gone; their fields render empty rather than
// failing the whole document.
func (s *InvoiceService) buildInvoiceData(invoice *entity.Invoice, business *entity.Business, rates billing.GSTRates) *render.InvoiceData {
	data := &render.InvoiceData{
		InvoiceNo:      fmt.Sprintf("%d", invoice.InvoiceNo),
		Date:           invoice.Date.Format("2006-01-02"),
		GenerationDate: time.Now().Format("2006-01-02"),
		Subtotal:       fmt.Sprintf("%.2f", invoice.Amount),
		CGSTRate:       fmt.Sprintf("%.1f", rates.CGST),
		CGSTAmount:     fmt.Sprintf("%.2f", invoice.Amount*rates.CGST/100),
		SGSTRate:       fmt.Sprintf("%.1f", rates.SGST),
		SGSTAmount:     fmt.Sprintf("%.2f", invoice.Amount*rates.SGST/100),
		IGSTRate:       fmt.Sprintf("%.1f", rates.IGST),
		IGSTAmount:     fmt.Sprintf("%.2f", invoice.Amount*rates.IGST/100),
		RoundOff:       fmt.Sprintf("%.2f", math.Round(invoice.TotalAmount)-invoice.TotalAmount),
		Total:          fmt.Sprintf("%.2f", invoice.TotalAmount),
		AmountInWords:  numwords.Rupees(int(math.Round(invoice.TotalAmount))),
	}
	if invoice.Note != nil {
		data.Note = *invoice.Note
	}
	if invoice.Client != nil {
		data.ClientName = invoice.Client.Name
		data.ClientAddress = invoice.Client.Address
		data.ClientGSTIN = invoice.Client.GSTNumber
	}
	if business != nil {
		data.CompanyName = business.Name
		data.CompanyGSTIN = business.GSTNumber
		data.CompanyAddress = business.Address
		data.CompanyCity = business.State
	} else {
		data.CompanyName = "BillCraft"
	}

	for i, item := range invoice.Items {
		data.Items = append(data.Items, render.ItemRow{
			SrNo:        i + 1,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Price,
			Amount:      item.Amount,
			GSTRate:     fmt.Sprintf("%.1f", item.GSTRate),
		})
	}
	return data
}

// ListInvoices lists the user's invoices, newest first
func (s *InvoiceService) ListInvoices(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// getOwned loads an invoice with relations and checks ownership
func (s *InvoiceService) getOwned(ctx context.Context, userID, invoiceID uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithRelations(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil || invoice.UserID != userID {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// GetInvoice returns one invoice with its client, template and items
func (s *InvoiceService) GetInvoice(ctx context.Context, userID, invoiceID uuid.UUID) (*entity.Invoice, error) {
	return s.getOwned(ctx, userID, invoiceID)
}

// MarkPaid transitions an invoice to PAID and stamps the payment time
func (s *InvoiceService) MarkPaid(ctx context.Context, userID, invoiceID uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.getOwned(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invoice.Status = enum.InvoiceStatusPaid
	invoice.PaidAt = &now

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// RegeneratePDF re-renders an invoice's PDF. Stored amounts stay untouched.
// Rates are re-derived from the frozen manual values when the manual flag was
// set, otherwise from the template's current rates, so a template edit is
// reflected in a regenerated document.
func (s *InvoiceService) RegeneratePDF(ctx context.Context, userID, invoiceID uuid.UUID) error {
	invoice, err := s.getOwned(ctx, userID, invoiceID)
	if err != nil {
		return err
	}

	business, err := s.businessRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	manual := billing.GSTRates{
		CGST: deref(invoice.ManualCGST),
		SGST: deref(invoice.ManualSGST),
		IGST: deref(invoice.ManualIGST),
	}
	rates := billing.ResolveRates(invoice.UseManualGST, manual, invoice.Template)

	s.generatePDF(ctx, invoice, business, rates)
	if invoice.PDFStatus == enum.PDFStatusFailed {
		return apperror.NewUpstreamError("PDF generation failed")
	}
	return nil
}

// DeleteInvoice removes an invoice and its items
func (s *InvoiceService) DeleteInvoice(ctx context.Context, userID, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if invoice == nil || invoice.UserID != userID {
		return apperror.NewNotFoundError("Invoice")
	}

	return s.invoiceRepo.Delete(ctx, invoiceID)
}

// InvoicePDF is the stored artifact with its display number
type InvoicePDF struct {
	InvoiceNo int
	Data      []byte
}

// GetPDF returns the stored PDF bytes for download
func (s *InvoiceService) GetPDF(ctx context.Context, userID, invoiceID uuid.UUID) (*InvoicePDF, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil || invoice.UserID != userID {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if !invoice.HasPDF() {
		return nil, apperror.NewNotFoundError("PDF")
	}

	return &InvoicePDF{InvoiceNo: invoice.InvoiceNo, Data: invoice.PDFData}, nil
}
