package service

import (
	"context"

	"github.com/billcraft/billcraft-api/internal/domain/entity"
	"github.com/billcraft/billcraft-api/internal/domain/repository"
	"github.com/billcraft/billcraft-api/pkg/apperror"
	"github.com/google/uuid"
)

// TemplateService handles invoice template operations
type TemplateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService creates a new template service
func NewTemplateService(templateRepo repository.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// ListTemplates lists the user's templates, oldest first
func (s *TemplateService) ListTemplates(ctx context.Context, userID uuid.UUID) ([]entity.InvoiceTemplate, error) {
	return s.templateRepo.List(ctx, userID)
}

// getOwned loads a template and checks ownership
func (s *TemplateService) getOwned(ctx context.Context, userID, templateID uuid.UUID) (*entity.InvoiceTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template == nil || template.UserID != userID {
		return nil, apperror.NewNotFoundError("Template")
	}
	return template, nil
}

// TemplateInput represents the create/update template input
type TemplateInput struct {
	UserID              uuid.UUID
	Name                string
	Description         *string
	CompanyLogo         *string
	IsTaxable           bool
	CGSTRate            *float64
	SGSTRate            *float64
	IGSTRate            *float64
	InvoiceNumberStart  int
	InvoiceNumberPrefix string
	PDFTemplate         string
	PrimaryColor        string
	SecondaryColor      string
	FontFamily          string
}

// CreateTemplate creates a template. The user's first template becomes the
// default automatically. Rates are persisted only for taxable templates.
func (s *TemplateService) CreateTemplate(ctx context.Context, input *TemplateInput) (*entity.InvoiceTemplate, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Template name is required")
	}

	template := &entity.InvoiceTemplate{
		UserID:              input.UserID,
		Name:                input.Name,
		Description:         input.Description,
		CompanyLogo:         input.CompanyLogo,
		IsTaxable:           input.IsTaxable,
		InvoiceNumberStart:  defaultInt(input.InvoiceNumberStart, 1),
		InvoiceNumberPrefix: defaultStr(input.InvoiceNumberPrefix, "INV"),
		PDFTemplate:         defaultStr(input.PDFTemplate, "classic"),
		PrimaryColor:        defaultStr(input.PrimaryColor, "#667eea"),
		SecondaryColor:      defaultStr(input.SecondaryColor, "#f7fafc"),
		FontFamily:          defaultStr(input.FontFamily, "Inter"),
		IsActive:            true,
	}
	if input.IsTaxable {
		template.CGSTRate = rateOrDefault(input.CGSTRate)
		template.SGSTRate = rateOrDefault(input.SGSTRate)
		template.IGSTRate = rateOrDefault(input.IGSTRate)
	}

	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, err
	}

	count, err := s.templateRepo.CountByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if count == 1 {
		if err := s.templateRepo.SetDefault(ctx, input.UserID, template.ID); err != nil {
			return nil, err
		}
		template.IsDefault = true
	}

	return template, nil
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func defaultInt(n, def int) int {
	if n == 0 {
		return def
	}
	return n
}

func rateOrDefault(r *float64) *float64 {
	if r == nil {
		zero := 0.0
		return &zero
	}
	return r
}

// UpdateTemplateInput represents the update template input
type UpdateTemplateInput struct {
	UserID              uuid.UUID
	ID                  uuid.UUID
	Name                *string
	Description         *string
	CompanyLogo         *string
	IsTaxable           *bool
	CGSTRate            *float64
	SGSTRate            *float64
	IGSTRate            *float64
	InvoiceNumberStart  *int
	InvoiceNumberPrefix *string
	PDFTemplate         *string
	PrimaryColor        *string
	SecondaryColor      *string
	FontFamily          *string
	IsDefault           *bool
	IsActive            *bool
}

// UpdateTemplate updates a template. Setting is_default promotes this
// template and demotes all others.
func (s *TemplateService) UpdateTemplate(ctx context.Context, input *UpdateTemplateInput) (*entity.InvoiceTemplate, error) {
	template, err := s.getOwned(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewBadRequestError("Template name is required")
		}
		template.Name = *input.Name
	}
	if input.Description != nil {
		template.Description = input.Description
	}
	if input.CompanyLogo != nil {
		template.CompanyLogo = input.CompanyLogo
	}
	if input.IsTaxable != nil {
		template.IsTaxable = *input.IsTaxable
		if !template.IsTaxable {
			template.CGSTRate = nil
			template.SGSTRate = nil
			template.IGSTRate = nil
		}
	}
	if template.IsTaxable {
		if input.CGSTRate != nil {
			template.CGSTRate = input.CGSTRate
		}
		if input.SGSTRate != nil {
			template.SGSTRate = input.SGSTRate
		}
		if input.IGSTRate != nil {
			template.IGSTRate = input.IGSTRate
		}
	}
	if input.InvoiceNumberStart != nil {
		template.InvoiceNumberStart = *input.InvoiceNumberStart
	}
	if input.InvoiceNumberPrefix != nil {
		template.InvoiceNumberPrefix = *input.InvoiceNumberPrefix
	}
	if input.PDFTemplate != nil {
		template.PDFTemplate = *input.PDFTemplate
	}
	if input.PrimaryColor != nil {
		template.PrimaryColor = *input.PrimaryColor
	}
	if input.SecondaryColor != nil {
		template.SecondaryColor = *input.SecondaryColor
	}
	if input.FontFamily != nil {
		template.FontFamily = *input.FontFamily
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	if err := s.templateRepo.Update(ctx, template); err != nil {
		return nil, err
	}

	if input.IsDefault != nil && *input.IsDefault && !template.IsDefault {
		if err := s.templateRepo.SetDefault(ctx, input.UserID, template.ID); err != nil {
			return nil, err
		}
		template.IsDefault = true
	}

	return template, nil
}

// DeleteTemplate deletes a template. The last remaining template cannot be
// deleted, a user always keeps at least one.
func (s *TemplateService) DeleteTemplate(ctx context.Context, userID, templateID uuid.UUID) error {
	template, err := s.getOwned(ctx, userID, templateID)
	if err != nil {
		return err
	}

	count, err := s.templateRepo.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if count == 1 {
		return apperror.NewBadRequestError("Cannot delete the only template")
	}

	if err := s.templateRepo.Delete(ctx, templateID); err != nil {
		return err
	}

	// Re-point the default at the oldest survivor if needed
	if template.IsDefault {
		remaining, err := s.templateRepo.List(ctx, userID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			return s.templateRepo.SetDefault(ctx, userID, remaining[0].ID)
		}
	}

	return nil
}
