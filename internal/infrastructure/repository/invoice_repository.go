package repository

import (
	"context"
	"errors"

	"github.com/billcraft/billcraft-api/internal/domain/entity"
	domainRepo "github.com/billcraft/billcraft-api/internal/domain/repository"
	"github.com/billcraft/billcraft-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// CreateWithItems allocates the next invoice number and writes the invoice
// and its items in one transaction. The max(invoice_no) read takes a row
// lock on the user's invoices, so two concurrent creates for the same user
// serialize; the composite unique index on (user_id, invoice_no) backstops
// the allocation if the lock is ever bypassed.
func (r *invoiceRepository) CreateWithItems(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if invoice.InvoiceNo == 0 {
			// Unscoped so soft-deleted invoices still count. Numbers are
			// never reused after deletion, and the unique index holds the
			// deleted row's (user_id, invoice_no) anyway.
			var last entity.Invoice
			err := tx.Unscoped().
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("user_id = ?", invoice.UserID).
				Order("invoice_no DESC").
				First(&last).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				invoice.InvoiceNo = 1
			case err != nil:
				return err
			default:
				invoice.InvoiceNo = last.InvoiceNo + 1
			}
		}

		if err := tx.Create(invoice).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		invoice.Items = items
		return nil
	})
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetWithRelations(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Template").
		Preload("Items").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) UpdatePDF(ctx context.Context, id uuid.UUID, pdf []byte, status string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"pdf_data":   pdf,
			"pdf_status": status,
		}).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&entity.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Invoice{}, "id = ?", id).Error
	})
}

func (r *invoiceRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	// pdf_data is omitted here; listing should not pull every stored PDF
	err := query.Omit("pdf_data").
		Offset(params.Offset()).Limit(params.PerPage).
		Preload("Client").
		Preload("Template").
		Preload("Items").
		Order("invoice_no DESC").
		Find(&invoices).Error

	return invoices, total, err
}
