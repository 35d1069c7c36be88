package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/valencia-move/listings-backend/internal/models"
	"github.com/valencia-move/listings-backend/internal/service"
	"github.com/valencia-move/listings-backend/internal/spatial"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates holds the server-rendered pages
var Templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	Criteria models.RawFilters
	Options  *models.FilterOptions
	Result   *models.ListingsResponse
	Cards    template.HTML
	Center   models.Coordinates
}

// PageHandler serves the listings page
type PageHandler struct {
	listingService *service.ListingService
	log            *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(listingService *service.ListingService, log *slog.Logger) *PageHandler {
	return &PageHandler{
		listingService: listingService,
		log:            log.With("component", "page_handler"),
	}
}

// Index handles GET /
func (h *PageHandler) Index(c *gin.Context) {
	var raw models.RawFilters
	if err := c.ShouldBindQuery(&raw); err != nil {
		c.String(http.StatusBadRequest, "invalid query parameters")
		return
	}

	result, err := h.listingService.Search(raw)
	if err != nil {
		h.log.Error("page render failed", "error", err)
		c.String(http.StatusInternalServerError, "failed to render listings")
		return
	}

	// Cards were produced by html/template and are already escaped.
	c.HTML(http.StatusOK, "index.html", pageData{
		Criteria: raw,
		Options:  h.listingService.Options(),
		Result:   result,
		Cards:    template.HTML(result.Cards),
		Center:   spatial.ValenciaCenter,
	})
}
