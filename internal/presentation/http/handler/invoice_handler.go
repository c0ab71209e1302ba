package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/billcraft/billcraft-api/internal/application/service"
	"github.com/billcraft/billcraft-api/internal/presentation/http/dto/request"
	"github.com/billcraft/billcraft-api/internal/presentation/http/dto/response"
	"github.com/billcraft/billcraft-api/pkg/apperror"
	"github.com/billcraft/billcraft-api/pkg/pagination"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles listing the user's invoices, newest first
func (h *InvoiceHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Create handles creating an invoice. Amounts and tax rates are computed and
// frozen at creation time; the PDF is rendered after the invoice is saved.
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	var templateID *uuid.UUID
	if req.TemplateID != nil {
		id, err := uuid.Parse(*req.TemplateID)
		if err != nil {
			response.BadRequest(c, "Invalid template ID")
			return
		}
		templateID = &id
	}

	items := make([]service.InvoiceItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.InvoiceItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
		})
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		UserID:       *userID,
		ClientID:     clientID,
		TemplateID:   templateID,
		Date:         req.Date,
		Note:         req.Note,
		Items:        items,
		UseManualGST: req.UseManualGST,
		ManualCGST:   req.ManualCGST,
		ManualSGST:   req.ManualSGST,
		ManualIGST:   req.ManualIGST,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", gin.H{
		"invoice": invoice,
	})
}

// Get handles fetching a single invoice with its client, template and items
func (h *InvoiceHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), *userID, invoiceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", gin.H{
		"invoice": invoice,
	})
}

// Update handles invoice actions: marking paid and regenerating the PDF
func (h *InvoiceHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	switch req.Action {
	case "markPaid":
		invoice, err := h.invoiceService.MarkPaid(c.Request.Context(), *userID, invoiceID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Invoice marked as paid", gin.H{
			"invoice": invoice,
		})
	case "regeneratePdf":
		if err := h.invoiceService.RegeneratePDF(c.Request.Context(), *userID, invoiceID); err != nil {
			response.Error(c, err)
			return
		}
		invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), *userID, invoiceID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Invoice PDF regenerated successfully", gin.H{
			"invoice": invoice,
		})
	default:
		response.BadRequest(c, "Unknown action")
	}
}

// Delete handles deleting an invoice and its items
func (h *InvoiceHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), *userID, invoiceID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", nil)
}

// DownloadPDF streams the stored PDF for an invoice. Errors are plain text
// because the link is opened directly in the browser, not consumed as JSON.
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		c.String(401, "User not authenticated")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.String(400, "Invalid invoice ID")
		return
	}

	pdf, err := h.invoiceService.GetPDF(c.Request.Context(), *userID, invoiceID)
	if err != nil {
		appErr := apperror.GetAppError(err)
		c.String(appErr.Code, appErr.Message)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=invoice-%d.pdf", pdf.InvoiceNo))
	c.Header("Cache-Control", "private, max-age=0")
	c.Data(200, "application/pdf", pdf.Data)
}
