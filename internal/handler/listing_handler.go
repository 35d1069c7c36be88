package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/valencia-move/listings-backend/internal/models"
	"github.com/valencia-move/listings-backend/internal/service"
	"github.com/valencia-move/listings-backend/pkg/response"
)

// ListingHandler handles HTTP requests for listings
type ListingHandler struct {
	listingService *service.ListingService
	log            *slog.Logger
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listingService *service.ListingService, log *slog.Logger) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		log:            log.With("component", "listing_handler"),
	}
}

// Search handles GET /api/v1/listings
func (h *ListingHandler) Search(c *gin.Context) {
	var raw models.RawFilters
	if err := c.ShouldBindQuery(&raw); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.listingService.Search(raw)
	if err != nil {
		h.log.Error("search failed", "error", err)
		response.InternalError(c, "Failed to filter listings")
		return
	}

	response.Success(c, result)
}

// Within handles GET /api/v1/listings/within
func (h *ListingHandler) Within(c *gin.Context) {
	var f models.ViewportFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, "Invalid viewport parameters")
		return
	}

	result, err := h.listingService.Within(f)
	if errors.Is(err, service.ErrInvalidViewport) {
		response.BadRequest(c, err.Error())
		return
	}
	if err != nil {
		h.log.Error("viewport search failed", "error", err)
		response.InternalError(c, "Failed to search viewport")
		return
	}

	response.Success(c, result)
}

// GetByID handles GET /api/v1/listings/:id
func (h *ListingHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid listing ID")
		return
	}

	detail, err := h.listingService.GetByID(id)
	if errors.Is(err, service.ErrListingNotFound) {
		response.NotFound(c, "Listing not found")
		return
	}
	if err != nil {
		h.log.Error("get listing failed", "id", id, "error", err)
		response.InternalError(c, "Failed to get listing")
		return
	}

	response.Success(c, detail)
}

// Options handles GET /api/v1/listings/options
func (h *ListingHandler) Options(c *gin.Context) {
	response.Success(c, h.listingService.Options())
}

// Reload handles POST /api/v1/admin/reload
func (h *ListingHandler) Reload(c *gin.Context) {
	if err := h.listingService.Reload(c.Request.Context()); err != nil {
		h.log.Error("reload failed", "error", err)
		response.InternalError(c, "Failed to reload listings")
		return
	}

	response.Success(c, gin.H{
		"count": len(h.listingService.Listings()),
	})
}
