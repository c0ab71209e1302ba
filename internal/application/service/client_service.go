package service

import (
	"context"

	"github.com/billcraft/billcraft-api/internal/domain/entity"
	"github.com/billcraft/billcraft-api/internal/domain/repository"
	"github.com/billcraft/billcraft-api/internal/infrastructure/gst"
	"github.com/billcraft/billcraft-api/pkg/apperror"
	"github.com/billcraft/billcraft-api/pkg/pagination"
	"github.com/google/uuid"
)

// ClientService handles client operations. A client row only ever comes into
// existence through a successful GST registry lookup; name, address and state
// are taken from the registry, not from caller input.
type ClientService struct {
	clientRepo   repository.ClientRepository
	businessRepo repository.BusinessRepository
	validator    gst.Validator
}

// NewClientService creates a new client service
func NewClientService(
	clientRepo repository.ClientRepository,
	businessRepo repository.BusinessRepository,
	validator gst.Validator,
) *ClientService {
	return &ClientService{
		clientRepo:   clientRepo,
		businessRepo: businessRepo,
		validator:    validator,
	}
}

// getBusiness loads the caller's business, which must exist before any
// client operation
func (s *ClientService) getBusiness(ctx context.Context, userID uuid.UUID) (*entity.Business, error) {
	business, err := s.businessRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NewBadRequestError("Please set up your business information first before adding clients")
	}
	return business, nil
}

// ListClients lists the user's clients with their invoices
func (s *ClientService) ListClients(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error) {
	business, err := s.getBusiness(ctx, userID)
	if err != nil {
		return nil, err
	}

	clients, total, err := s.clientRepo.List(ctx, business.ID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

// CreateClient validates the GST number against the registry and stores the
// client with the registry's data
func (s *ClientService) CreateClient(ctx context.Context, userID uuid.UUID, gstNumber string) (*entity.Client, error) {
	if gstNumber == "" {
		return nil, apperror.NewBadRequestError("GST number is required")
	}

	business, err := s.getBusiness(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.clientRepo.GetByGSTNumber(ctx, business.ID, gstNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewBadRequestError("Client with this GST number already exists")
	}

	data, err := s.validator.Validate(ctx, gstNumber)
	if err != nil {
		return nil, err
	}

	client := &entity.Client{
		BusinessID: business.ID,
		GSTNumber:  gstNumber,
		Name:       data.Name(),
		Address:    data.PrimaryAddress.Adr,
		State:      data.PrimaryAddress.Addr.StateCode,
		RegistryData: entity.RegistryData{
			Status:           data.Status,
			RegistrationDate: data.RegistrationDate,
			BusinessType:     data.BusinessType,
			TradeName:        data.TradeName,
			Jurisdiction:     data.Jurisdiction,
			NatureOfBusiness: data.NatureOfBusiness,
		},
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// GetClient returns a single client owned by the user's business
func (s *ClientService) GetClient(ctx context.Context, userID, clientID uuid.UUID) (*entity.Client, error) {
	business, err := s.getBusiness(ctx, userID)
	if err != nil {
		return nil, err
	}

	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.BusinessID != business.ID {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// DeleteClient removes a client. Its invoices are left untouched so historic
// billing stays queryable.
func (s *ClientService) DeleteClient(ctx context.Context, userID, clientID uuid.UUID) error {
	business, err := s.getBusiness(ctx, userID)
	if err != nil {
		return err
	}

	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client == nil || client.BusinessID != business.ID {
		return apperror.NewNotFoundError("Client")
	}

	return s.clientRepo.Delete(ctx, clientID)
}
