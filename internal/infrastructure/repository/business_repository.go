package repository

import (
	"context"
	"errors"

	"github.com/billcraft/billcraft-api/internal/domain/entity"
	domainRepo "github.com/billcraft/billcraft-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *gorm.DB) domainRepo.BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	return r.db.WithContext(ctx).Create(business).Error
}

func (r *businessRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	var business entity.Business
	err := r.db.WithContext(ctx).First(&business, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &business, err
}

func (r *businessRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Business, error) {
	var business entity.Business
	err := r.db.WithContext(ctx).First(&business, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &business, err
}

func (r *businessRepository) Update(ctx context.Context, business *entity.Business) error {
	return r.db.WithContext(ctx).Save(business).Error
}
