package repository

import (
	"context"

	"github.com/billcraft/billcraft-api/internal/domain/entity"
	"github.com/billcraft/billcraft-api/pkg/pagination"
	"github.com/google/uuid"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	// GetByGSTNumber looks a client up within one business; nil when absent
	GetByGSTNumber(ctx context.Context, businessID uuid.UUID, gstNumber string) (*entity.Client, error)
	// Delete removes the client only. Invoices referencing it survive.
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns the business's clients with their invoices preloaded
	List(ctx context.Context, businessID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error)
}
