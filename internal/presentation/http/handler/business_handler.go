package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/billcraft/billcraft-api/internal/application/service"
	"github.com/billcraft/billcraft-api/internal/presentation/http/dto/request"
	"github.com/billcraft/billcraft-api/internal/presentation/http/dto/response"
)

// BusinessHandler handles business profile HTTP requests
type BusinessHandler struct {
	businessService *service.BusinessService
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(businessService *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// Get returns the current user's business profile. A user without a business
// gets a successful response with a null payload rather than a 404.
func (h *BusinessHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	business, err := h.businessService.GetBusiness(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business retrieved successfully", gin.H{
		"business": business,
	})
}

// Create handles creating the user's business profile
func (h *BusinessHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	business, err := h.businessService.CreateBusiness(c.Request.Context(), &service.BusinessInput{
		UserID:    *userID,
		GSTNumber: req.GSTNumber,
		Name:      req.Name,
		Address:   req.Address,
		State:     req.State,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Business created successfully", gin.H{
		"business": business,
	})
}

// Update handles updating the user's business profile
func (h *BusinessHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	business, err := h.businessService.UpdateBusiness(c.Request.Context(), &service.BusinessInput{
		UserID:    *userID,
		GSTNumber: req.GSTNumber,
		Name:      req.Name,
		Address:   req.Address,
		State:     req.State,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business updated successfully", gin.H{
		"business": business,
	})
}
