package repository

import (
	"context"

	"github.com/billcraft/billcraft-api/internal/domain/entity"
	"github.com/google/uuid"
)

// TemplateRepository defines the interface for invoice template operations
type TemplateRepository interface {
	Create(ctx context.Context, template *entity.InvoiceTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InvoiceTemplate, error)
	Update(ctx context.Context, template *entity.InvoiceTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]entity.InvoiceTemplate, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	// SetDefault marks one template as the user's default and clears the
	// flag on every other template in the same statement batch
	SetDefault(ctx context.Context, userID, templateID uuid.UUID) error
}
