package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/billcraft/billcraft-api/internal/domain/entity"
	"github.com/billcraft/billcraft-api/internal/domain/enum"
	"github.com/billcraft/billcraft-api/internal/infrastructure/render"
	"github.com/billcraft/billcraft-api/pkg/apperror"
	"github.com/billcraft/billcraft-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes. They mirror the repository contracts, including the
// nil-on-not-found convention.

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*entity.Invoice
	// lastNo survives Delete, like the soft-deleted rows the real
	// allocation query counts: a deleted invoice's number is never reused
	lastNo map[uuid.UUID]int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: map[uuid.UUID]*entity.Invoice{},
		lastNo:   map[uuid.UUID]int{},
	}
}

func (r *fakeInvoiceRepo) CreateWithItems(_ context.Context, invoice *entity.Invoice, items []entity.InvoiceItem) error {
	if invoice.InvoiceNo == 0 {
		invoice.InvoiceNo = r.lastNo[invoice.UserID] + 1
	}
	if invoice.InvoiceNo > r.lastNo[invoice.UserID] {
		r.lastNo[invoice.UserID] = invoice.InvoiceNo
	}
	invoice.ID = uuid.New()
	for i := range items {
		items[i].InvoiceID = invoice.ID
	}
	invoice.Items = items
	stored := *invoice
	r.invoices[invoice.ID] = &stored
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetWithRelations(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeInvoiceRepo) Update(_ context.Context, invoice *entity.Invoice) error {
	cp := *invoice
	r.invoices[invoice.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) UpdatePDF(_ context.Context, id uuid.UUID, pdf []byte, status string) error {
	inv, ok := r.invoices[id]
	if !ok {
		return errors.New("invoice not found")
	}
	inv.PDFData = pdf
	inv.PDFStatus = enum.PDFStatus(status)
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, userID uuid.UUID, _ *pagination.PaginationParams) ([]entity.Invoice, int64, error) {
	var out []entity.Invoice
	for _, inv := range r.invoices {
		if inv.UserID == userID {
			out = append(out, *inv)
		}
	}
	return out, int64(len(out)), nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[uuid.UUID]*entity.Client{}}
}

func (r *fakeClientRepo) Create(_ context.Context, client *entity.Client) error {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	r.clients[client.ID] = client
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Client, error) {
	return r.clients[id], nil
}

func (r *fakeClientRepo) GetByGSTNumber(_ context.Context, businessID uuid.UUID, gstNumber string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.BusinessID == businessID && c.GSTNumber == gstNumber {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) List(_ context.Context, businessID uuid.UUID, _ *pagination.PaginationParams, _ string) ([]entity.Client, int64, error) {
	var out []entity.Client
	for _, c := range r.clients {
		if c.BusinessID == businessID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

type fakeTemplateRepo struct {
	templates map[uuid.UUID]*entity.InvoiceTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: map[uuid.UUID]*entity.InvoiceTemplate{}}
}

func (r *fakeTemplateRepo) Create(_ context.Context, t *entity.InvoiceTemplate) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now()
	r.templates[t.ID] = t
	return nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.InvoiceTemplate, error) {
	tpl, ok := r.templates[id]
	if !ok {
		return nil, nil
	}
	cp := *tpl
	return &cp, nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, t *entity.InvoiceTemplate) error {
	cp := *t
	r.templates[t.ID] = &cp
	return nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.templates, id)
	return nil
}

func (r *fakeTemplateRepo) List(_ context.Context, userID uuid.UUID) ([]entity.InvoiceTemplate, error) {
	var out []entity.InvoiceTemplate
	for _, t := range r.templates {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, t := range r.templates {
		if t.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeTemplateRepo) SetDefault(_ context.Context, userID, templateID uuid.UUID) error {
	for _, t := range r.templates {
		if t.UserID == userID {
			t.IsDefault = t.ID == templateID
		}
	}
	return nil
}

type fakeBusinessRepo struct {
	businesses map[uuid.UUID]*entity.Business
}

func newFakeBusinessRepo() *fakeBusinessRepo {
	return &fakeBusinessRepo{businesses: map[uuid.UUID]*entity.Business{}}
}

func (r *fakeBusinessRepo) Create(_ context.Context, b *entity.Business) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.businesses[b.ID] = b
	return nil
}

func (r *fakeBusinessRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Business, error) {
	return r.businesses[id], nil
}

func (r *fakeBusinessRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.Business, error) {
	for _, b := range r.businesses {
		if b.UserID == userID {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBusinessRepo) Update(_ context.Context, b *entity.Business) error {
	r.businesses[b.ID] = b
	return nil
}

// fakeRenderer records the last render call
type fakeRenderer struct {
	lastLayout string
	lastData   *render.InvoiceData
	err        error
}

func (r *fakeRenderer) Render(layoutKey string, data *render.InvoiceData) (string, error) {
	r.lastLayout = layoutKey
	r.lastData = data
	if r.err != nil {
		return "", r.err
	}
	return "<html>rendered</html>", nil
}

type fakePDFEngine struct {
	calls int
	err   error
}

func (e *fakePDFEngine) Render(_ context.Context, _ string) ([]byte, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

// invoiceFixture wires an InvoiceService around fakes with one user,
// business, client and a taxable 9+9 template
type invoiceFixture struct {
	svc       *InvoiceService
	invoices  *fakeInvoiceRepo
	clients   *fakeClientRepo
	templates *fakeTemplateRepo
	renderer  *fakeRenderer
	engine    *fakePDFEngine
	userID    uuid.UUID
	client    *entity.Client
	template  *entity.InvoiceTemplate
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()

	invoices := newFakeInvoiceRepo()
	clients := newFakeClientRepo()
	templates := newFakeTemplateRepo()
	businesses := newFakeBusinessRepo()
	renderer := &fakeRenderer{}
	engine := &fakePDFEngine{}

	userID := uuid.New()
	business := &entity.Business{
		UserID:    userID,
		GSTNumber: "27AAPFU0939F1ZV",
		Name:      "Acme Supplies",
		Address:   "Market Road, Pune",
		State:     "Maharashtra",
	}
	require.NoError(t, businesses.Create(context.Background(), business))

	client := &entity.Client{
		BusinessID: business.ID,
		GSTNumber:  "29AAACB2894G1ZP",
		Name:       "Unique Traders",
		Address:    "MG Road, Bengaluru",
		State:      "Karnataka",
	}
	require.NoError(t, clients.Create(context.Background(), client))

	nine := 9.0
	template := &entity.InvoiceTemplate{
		UserID:      userID,
		Name:        "Standard",
		IsTaxable:   true,
		CGSTRate:    &nine,
		SGSTRate:    &nine,
		PDFTemplate: "modern",
	}
	require.NoError(t, templates.Create(context.Background(), template))

	svc := NewInvoiceService(invoices, clients, templates, businesses, renderer, engine)
	return &invoiceFixture{
		svc:       svc,
		invoices:  invoices,
		clients:   clients,
		templates: templates,
		renderer:  renderer,
		engine:    engine,
		userID:    userID,
		client:    client,
		template:  template,
	}
}

func (f *invoiceFixture) createInput() *CreateInvoiceInput {
	return &CreateInvoiceInput{
		UserID:     f.userID,
		ClientID:   f.client.ID,
		TemplateID: &f.template.ID,
		Items: []InvoiceItemInput{
			{Description: "Consulting", Quantity: 2, Rate: 500},
			{Description: "Support", Quantity: 1, Rate: 1000},
		},
	}
}

func TestCreateInvoiceComputesAndFreezesAmounts(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.CreateInvoice(context.Background(), f.createInput())
	require.NoError(t, err)

	assert.Equal(t, 1, invoice.InvoiceNo)
	assert.InDelta(t, 2000.0, invoice.Amount, 1e-9)
	assert.InDelta(t, 360.0, invoice.TaxAmount, 1e-9)
	assert.InDelta(t, 2360.0, invoice.TotalAmount, 1e-9)
	assert.Equal(t, enum.InvoiceStatusUnpaid, invoice.Status)
	assert.Equal(t, enum.PDFStatusReady, invoice.PDFStatus)
	assert.True(t, invoice.HasPDF())

	require.Len(t, invoice.Items, 2)
	assert.InDelta(t, 18.0, invoice.Items[0].GSTRate, 1e-9)
	assert.InDelta(t, 1000.0, invoice.Items[0].Amount, 1e-9)

	// layout comes from the template, data from the frozen invoice
	assert.Equal(t, "modern", f.renderer.lastLayout)
	assert.Equal(t, "2360.00", f.renderer.lastData.Total)
	assert.Equal(t, "9.0", f.renderer.lastData.CGSTRate)
	assert.Equal(t, "180.00", f.renderer.lastData.CGSTAmount)
	assert.Equal(t, "Two Thousand Three Hundred Sixty Rupees Only", f.renderer.lastData.AmountInWords)
	assert.Equal(t, "Unique Traders", f.renderer.lastData.ClientName)
	assert.Equal(t, "Acme Supplies", f.renderer.lastData.CompanyName)
}

func TestCreateInvoiceValidation(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		UserID:   f.userID,
		ClientID: f.client.ID,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	input := f.createInput()
	input.ClientID = uuid.New()
	_, err = f.svc.CreateInvoice(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreateInvoiceRejectsForeignClient(t *testing.T) {
	f := newInvoiceFixture(t)

	stranger := &entity.Client{
		BusinessID: uuid.New(),
		GSTNumber:  "07AABCS1429B1Z1",
		Name:       "Someone Else",
	}
	require.NoError(t, f.clients.Create(context.Background(), stranger))

	input := f.createInput()
	input.ClientID = stranger.ID
	_, err := f.svc.CreateInvoice(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreateInvoiceSequenceIncrements(t *testing.T) {
	f := newInvoiceFixture(t)

	first, err := f.svc.CreateInvoice(context.Background(), f.createInput())
	require.NoError(t, err)
	second, err := f.svc.CreateInvoice(context.Background(), f.createInput())
	require.NoError(t, err)

	assert.Equal(t, 1, first.InvoiceNo)
	assert.Equal(t, 2, second.InvoiceNo)
}

func TestCreateInvoiceSequenceContinuesAfterDelete(t *testing.T) {
	f := newInvoiceFixture(t)

	first, err := f.svc.CreateInvoice(context.Background(), f.createInput())
	require.NoError(t, err)
	second, err := f.svc.CreateInvoice(context.Background(), f.createInput())
	require.NoError(t, err)
	require.Equal(t, 2, second.InvoiceNo)

	// Deleting the newest invoice must not free its number
	require.NoError(t, f.svc.DeleteInvoice(context.Background(), f.userID, second.ID))

	third, err := f.svc.CreateInvoice(context.Background(), f.createInput())
	require.NoError(t, err)
	assert.Equal(t, 3, third.InvoiceNo)
	assert.Equal(t, 1, first.InvoiceNo)
}

func TestCreateInvoiceLabelsUnnamedItems(t *testing.T) {
	f := newInvoiceFixture(t)

	input := f.createInput()
	input.Items = []InvoiceItemInput{
		{Description: "", Quantity: 1, Rate: 100},
		{Description: "Consulting", Quantity: 1, Rate: 200},
	}

	invoice, err := f.svc.CreateInvoice(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, invoice.Items, 2)
	assert.Equal(t, "Item 1", invoice.Items[0].Description)
	assert.Equal(t, "Consulting", invoice.Items[1].Description)
}

func TestCreateInvoiceManualOverrideWinsOverTemplate(t *testing.T) {
	f := newInvoiceFixture(t)

	igst := 18.0
	input := f.createInput()
	input.UseManualGST = true
	input.ManualIGST = &igst

	invoice, err := f.svc.CreateInvoice(context.Background(), input)
	require.NoError(t, err)

	// 18% IGST instead of the template's 9+9
	assert.InDelta(t, 360.0, invoice.TaxAmount, 1e-9)
	require.NotNil(t, invoice.ManualIGST)
	assert.InDelta(t, 18.0, *invoice.ManualIGST, 1e-9)
	require.NotNil(t, invoice.ManualCGST)
	assert.InDelta(t, 0.0, *invoice.ManualCGST, 1e-9)
	assert.Equal(t, "18.0", f.renderer.lastData.IGSTRate)
}

func TestCreateInvoiceWithoutTemplateIsUntaxed(t *testing.T) {
	f := newInvoiceFixture(t)

	input := f.createInput()
	input.TemplateID = nil

	invoice, err := f.svc.CreateInvoice(context.Background(), input)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, invoice.TaxAmount, 1e-9)
	assert.InDelta(t, 2000.0, invoice.TotalAmount, 1e-9)
	assert.Equal(t, render.DefaultLayout, f.renderer.lastLayout)
}

func TestCreateInvoicePDFFailureKeepsInvoice(t *testing.T) {
	f := newInvoiceFixture(t)
	f.engine.err = errors.New("chromium crashed")

	invoice, err := f.svc.CreateInvoice(context.Background(), f.createInput())
	require.NoError(t, err)

	assert.Equal(t, enum.PDFStatusFailed, invoice.PDFStatus)
	assert.False(t, invoice.HasPDF())

	// the row is committed and queryable despite the failed render
	stored, err := f.invoiceRepoGet(invoice.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2360.0, stored.TotalAmount, 1e-9)
	assert.Equal(t, enum.PDFStatusFailed, stored.PDFStatus)
}

func (f *invoiceFixture) invoiceRepoGet(id uuid.UUID) (*entity.Invoice, error) {
	return f.invoices.GetByID(context.Background(), id)
}

func TestMarkPaid(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.CreateInvoice(context.Background(), f.createInput())
	require.NoError(t, err)

	paid, err := f.svc.MarkPaid(context.Background(), f.userID, invoice.ID)
	require.NoError(t, err)

	assert.Equal(t, enum.InvoiceStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	assert.WithinDuration(t, time.Now(), *paid.PaidAt, time.Minute)
}

func TestMarkPaidRejectsForeignInvoice(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.CreateInvoice(context.Background(), f.createInput())
	require.NoError(t, err)

	_, err = f.svc.MarkPaid(context.Background(), uuid.New(), invoice.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestRegeneratePDFUsesTemplatesCurrentRates(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.CreateInvoice(context.Background(), f.createInput())
	require.NoError(t, err)

	// the template's rates change after the invoice was issued
	six := 6.0
	f.template.CGSTRate = &six
	f.template.SGSTRate = &six
	require.NoError(t, f.templates.Update(context.Background(), f.template))

	// wire the relation the way GetWithRelations would
	stored := f.invoices.invoices[invoice.ID]
	stored.Template = f.template
	stored.Client = f.client

	require.NoError(t, f.svc.RegeneratePDF(context.Background(), f.userID, invoice.ID))

	// rendered rates follow the template's current values
	assert.Equal(t, "6.0", f.renderer.lastData.CGSTRate)
	assert.Equal(t, "120.00", f.renderer.lastData.CGSTAmount)
	// frozen money fields stay what they were at creation
	assert.Equal(t, "2000.00", f.renderer.lastData.Subtotal)
	assert.Equal(t, "2360.00", f.renderer.lastData.Total)
}

func TestRegeneratePDFKeepsFrozenManualRates(t *testing.T) {
	f := newInvoiceFixture(t)

	igst := 12.0
	input := f.createInput()
	input.UseManualGST = true
	input.ManualIGST = &igst

	invoice, err := f.svc.CreateInvoice(context.Background(), input)
	require.NoError(t, err)

	// template edits must not leak into a manual-override invoice
	six := 6.0
	f.template.CGSTRate = &six
	require.NoError(t, f.templates.Update(context.Background(), f.template))
	stored := f.invoices.invoices[invoice.ID]
	stored.Template = f.template
	stored.Client = f.client

	require.NoError(t, f.svc.RegeneratePDF(context.Background(), f.userID, invoice.ID))

	assert.Equal(t, "12.0", f.renderer.lastData.IGSTRate)
	assert.Equal(t, "0.0", f.renderer.lastData.CGSTRate)
}

func TestRegeneratePDFSurvivesDeletedClient(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.CreateInvoice(context.Background(), f.createInput())
	require.NoError(t, err)

	require.NoError(t, f.clients.Delete(context.Background(), f.client.ID))
	// a deleted client simply fails to preload
	f.invoices.invoices[invoice.ID].Client = nil
	f.invoices.invoices[invoice.ID].Template = f.template

	require.NoError(t, f.svc.RegeneratePDF(context.Background(), f.userID, invoice.ID))
	assert.Equal(t, "", f.renderer.lastData.ClientName)
	assert.Equal(t, "2360.00", f.renderer.lastData.Total)
}

func TestGetPDF(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.CreateInvoice(context.Background(), f.createInput())
	require.NoError(t, err)

	pdfOut, err := f.svc.GetPDF(context.Background(), f.userID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.InvoiceNo, pdfOut.InvoiceNo)
	assert.NotEmpty(t, pdfOut.Data)

	_, err = f.svc.GetPDF(context.Background(), uuid.New(), invoice.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestGetPDFMissingArtifact(t *testing.T) {
	f := newInvoiceFixture(t)
	f.engine.err = errors.New("chromium crashed")

	invoice, err := f.svc.CreateInvoice(context.Background(), f.createInput())
	require.NoError(t, err)

	_, err = f.svc.GetPDF(context.Background(), f.userID, invoice.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestDeleteInvoice(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.CreateInvoice(context.Background(), f.createInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteInvoice(context.Background(), f.userID, invoice.ID))

	got, err := f.invoiceRepoGet(invoice.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
