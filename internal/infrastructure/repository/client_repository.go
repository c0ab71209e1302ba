package repository

import (
	"context"
	"errors"

	"github.com/billcraft/billcraft-api/internal/domain/entity"
	domainRepo "github.com/billcraft/billcraft-api/internal/domain/repository"
	"github.com/billcraft/billcraft-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) domainRepo.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &client, err
}

func (r *clientRepository) GetByGSTNumber(ctx context.Context, businessID uuid.UUID, gstNumber string) (*entity.Client, error) {
	var client entity.Client
	err := r.db.WithContext(ctx).
		First(&client, "business_id = ? AND gst_number = ?", businessID, gstNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &client, err
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Client{}, "id = ?", id).Error
}

func (r *clientRepository) List(ctx context.Context, businessID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error) {
	var clients []entity.Client
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Client{}).
		Where("business_id = ?", businessID)

	if search != "" {
		query = query.Where("name ILIKE ? OR gst_number ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Invoices", func(db *gorm.DB) *gorm.DB {
			return db.Order("invoice_no DESC")
		}).
		Order("name ASC").
		Find(&clients).Error

	return clients, total, err
}
