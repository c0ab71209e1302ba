package repository

import (
	"context"

	"github.com/billcraft/billcraft-api/internal/domain/entity"
	"github.com/billcraft/billcraft-api/pkg/pagination"
	"github.com/google/uuid"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// CreateWithItems persists the invoice and its items in one transaction.
	// The next per-user invoice number is allocated inside the same
	// transaction under a row lock, so two concurrent creates for the same
	// user serialize instead of racing on max(invoice_no)+1.
	CreateWithItems(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// GetWithRelations preloads client, template and items
	GetWithRelations(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	// UpdatePDF overwrites the stored PDF bytes and status only
	UpdatePDF(ctx context.Context, id uuid.UUID, pdf []byte, status string) error
	// Delete removes the invoice and its items
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Invoice, int64, error)
}
