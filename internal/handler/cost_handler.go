package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/valencia-move/listings-backend/internal/models"
	"github.com/valencia-move/listings-backend/internal/service"
	"github.com/valencia-move/listings-backend/pkg/response"
)

// CostHandler handles the rent cost calculator
type CostHandler struct {
	costService *service.CostService
}

// NewCostHandler creates a new cost handler
func NewCostHandler(costService *service.CostService) *CostHandler {
	return &CostHandler{costService: costService}
}

// Calculate handles POST /api/v1/housing/cost
func (h *CostHandler) Calculate(c *gin.Context) {
	var req models.CostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	breakdown, err := h.costService.Calculate(req)
	if err != nil {
		response.BadRequest(c, "Please enter a valid monthly rent amount")
		return
	}

	response.Success(c, breakdown)
}
