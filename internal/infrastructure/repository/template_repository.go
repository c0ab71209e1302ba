package repository

import (
	"context"
	"errors"

	"github.com/billcraft/billcraft-api/internal/domain/entity"
	domainRepo "github.com/billcraft/billcraft-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new invoice template repository
func NewTemplateRepository(db *gorm.DB) domainRepo.TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(ctx context.Context, template *entity.InvoiceTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *templateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InvoiceTemplate, error) {
	var template entity.InvoiceTemplate
	err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &template, err
}

func (r *templateRepository) Update(ctx context.Context, template *entity.InvoiceTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *templateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.InvoiceTemplate{}, "id = ?", id).Error
}

func (r *templateRepository) List(ctx context.Context, userID uuid.UUID) ([]entity.InvoiceTemplate, error) {
	var templates []entity.InvoiceTemplate
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&templates).Error
	return templates, err
}

func (r *templateRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.InvoiceTemplate{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// SetDefault clears the default flag on every other template of the user and
// sets it on the given one, in a single transaction
func (r *templateRepository) SetDefault(ctx context.Context, userID, templateID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.InvoiceTemplate{}).
			Where("user_id = ? AND id <> ?", userID, templateID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&entity.InvoiceTemplate{}).
			Where("user_id = ? AND id = ?", userID, templateID).
			Update("is_default", true).Error
	})
}
