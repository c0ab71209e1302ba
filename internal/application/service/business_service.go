package service

import (
	"context"

	"github.com/billcraft/billcraft-api/internal/domain/entity"
	"github.com/billcraft/billcraft-api/internal/domain/repository"
	"github.com/billcraft/billcraft-api/pkg/apperror"
	"github.com/google/uuid"
)

// BusinessService handles the caller's own business record
type BusinessService struct {
	businessRepo repository.BusinessRepository
}

// NewBusinessService creates a new business service
func NewBusinessService(businessRepo repository.BusinessRepository) *BusinessService {
	return &BusinessService{businessRepo: businessRepo}
}

// GetBusiness returns the user's business, or nil when none is set up yet
func (s *BusinessService) GetBusiness(ctx context.Context, userID uuid.UUID) (*entity.Business, error) {
	return s.businessRepo.GetByUserID(ctx, userID)
}

// BusinessInput represents the create/update business input
type BusinessInput struct {
	UserID    uuid.UUID
	GSTNumber string
	Name      string
	Address   string
	State     string
}

func (i *BusinessInput) validate() error {
	var fieldErrors []apperror.FieldError
	if i.GSTNumber == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "gst_number", Message: "GST number is required"})
	}
	if i.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if i.Address == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "address", Message: "Address is required"})
	}
	if i.State == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "state", Message: "State is required"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateBusiness creates the user's business. Each user has at most one.
func (s *BusinessService) CreateBusiness(ctx context.Context, input *BusinessInput) (*entity.Business, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.businessRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewBadRequestError("Business already exists. Use PUT to update.")
	}

	business := &entity.Business{
		UserID:    input.UserID,
		GSTNumber: input.GSTNumber,
		Name:      input.Name,
		Address:   input.Address,
		State:     input.State,
	}

	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}

	return business, nil
}

// UpdateBusiness updates the user's existing business
func (s *BusinessService) UpdateBusiness(ctx context.Context, input *BusinessInput) (*entity.Business, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	business, err := s.businessRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NewNotFoundError("Business")
	}

	business.GSTNumber = input.GSTNumber
	business.Name = input.Name
	business.Address = input.Address
	business.State = input.State

	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}

	return business, nil
}
