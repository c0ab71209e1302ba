package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/billcraft/billcraft-api/internal/application/service"
	"github.com/billcraft/billcraft-api/internal/presentation/http/dto/request"
	"github.com/billcraft/billcraft-api/internal/presentation/http/dto/response"
)

// TemplateHandler handles invoice template HTTP requests
type TemplateHandler struct {
	templateService *service.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateService *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// List handles listing the user's templates, oldest first
func (h *TemplateHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	templates, err := h.templateService.ListTemplates(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Templates retrieved successfully", gin.H{
		"templates": templates,
	})
}

// Create handles creating an invoice template
func (h *TemplateHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), &service.TemplateInput{
		UserID:              *userID,
		Name:                req.Name,
		Description:         req.Description,
		CompanyLogo:         req.CompanyLogo,
		IsTaxable:           req.IsTaxable,
		CGSTRate:            req.CGSTRate,
		SGSTRate:            req.SGSTRate,
		IGSTRate:            req.IGSTRate,
		InvoiceNumberStart:  req.InvoiceNumberStart,
		InvoiceNumberPrefix: req.InvoiceNumberPrefix,
		PDFTemplate:         req.PDFTemplate,
		PrimaryColor:        req.PrimaryColor,
		SecondaryColor:      req.SecondaryColor,
		FontFamily:          req.FontFamily,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Template created successfully", gin.H{
		"template": template,
	})
}

// Update handles partially updating a template
func (h *TemplateHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid template ID")
		return
	}

	var req request.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), &service.UpdateTemplateInput{
		UserID:              *userID,
		ID:                  templateID,
		Name:                req.Name,
		Description:         req.Description,
		CompanyLogo:         req.CompanyLogo,
		IsTaxable:           req.IsTaxable,
		CGSTRate:            req.CGSTRate,
		SGSTRate:            req.SGSTRate,
		IGSTRate:            req.IGSTRate,
		InvoiceNumberStart:  req.InvoiceNumberStart,
		InvoiceNumberPrefix: req.InvoiceNumberPrefix,
		PDFTemplate:         req.PDFTemplate,
		PrimaryColor:        req.PrimaryColor,
		SecondaryColor:      req.SecondaryColor,
		FontFamily:          req.FontFamily,
		IsDefault:           req.IsDefault,
		IsActive:            req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Template updated successfully", gin.H{
		"template": template,
	})
}

// Delete handles deleting a template. The last remaining template cannot be
// deleted; deleting the default promotes another template.
func (h *TemplateHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid template ID")
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), *userID, templateID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Template deleted successfully", nil)
}
