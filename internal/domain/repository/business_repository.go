package repository

import (
	"context"

	"github.com/billcraft/billcraft-api/internal/domain/entity"
	"github.com/google/uuid"
)

// BusinessRepository defines the interface for business data operations
type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)
	// GetByUserID returns the user's business, or nil when none exists
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Business, error)
	Update(ctx context.Context, business *entity.Business) error
}
