package discovery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meet0129/Travion.ai-sub000/internal/app/models"
)

// Handlers exposes the discovery engine over HTTP. defaultCap fills in
// per_category_cap when a request omits it, sourced from the same
// configuration as the pool target so the two surfaces agree.
type Handlers struct {
	service    Service
	defaultCap int
	logger     *zap.Logger
}

func NewHandlers(service Service, defaultCap int, logger *zap.Logger) *Handlers {
	return &Handlers{service: service, defaultCap: defaultCap, logger: logger}
}

type resolveRequest struct {
	Text string `json:"text" binding:"required"`
}

// ResolveDestination handles POST /api/discover/destination.
func (h *Handlers) ResolveDestination(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	anchor, err := h.service.ResolveDestination(c.Request.Context(), req.Text)
	if err != nil {
		h.logger.Warn("Destination resolution failed",
			zap.String("text", req.Text),
			zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, anchor)
}

type categoriesRequest struct {
	Anchor         models.GeoAnchor `json:"anchor" binding:"required"`
	Categories     []string         `json:"categories" binding:"required"`
	PerCategoryCap int              `json:"per_category_cap"`
}

// DiscoverCategories handles POST /api/discover/categories.
func (h *Handlers) DiscoverCategories(c *gin.Context) {
	var req categoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "anchor and categories are required"})
		return
	}
	if !models.ValidateCoordinates(req.Anchor.Latitude, req.Anchor.Longitude) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "anchor coordinate is invalid"})
		return
	}

	categories := make([]models.Category, 0, len(req.Categories))
	for _, raw := range req.Categories {
		category, err := models.ParseCategory(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		categories = append(categories, category)
	}

	perCap := req.PerCategoryCap
	if perCap <= 0 {
		perCap = h.defaultCap
	}

	results, err := h.service.DiscoverCategories(c.Request.Context(), req.Anchor, categories, perCap)
	if err != nil {
		h.logger.Error("Category discovery failed", zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// statusForError maps the engine error taxonomy to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrNotInPool):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidCategory):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrProviderUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
