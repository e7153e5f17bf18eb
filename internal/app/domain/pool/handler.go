package pool

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meet0129/Travion.ai-sub000/internal/app/models"
)

// Resolver is the slice of the discovery engine session creation needs.
type Resolver interface {
	ResolveDestination(ctx context.Context, destination string) (models.GeoAnchor, error)
}

// Handlers exposes session and pool operations over HTTP.
type Handlers struct {
	manager  *Manager
	resolver Resolver
	logger   *zap.Logger
}

func NewHandlers(manager *Manager, resolver Resolver, logger *zap.Logger) *Handlers {
	return &Handlers{manager: manager, resolver: resolver, logger: logger}
}

type createSessionRequest struct {
	Destination string             `json:"destination" binding:"required"`
	Seed        []models.PlaceItem `json:"seed,omitempty"`
}

// CreateSession handles POST /api/sessions.
func (h *Handlers) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "destination is required"})
		return
	}

	anchor, err := h.resolver.ResolveDestination(c.Request.Context(), req.Destination)
	if err != nil {
		h.logger.Warn("Session creation failed at resolution",
			zap.String("destination", req.Destination),
			zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	session := h.manager.CreateSession(c.Request.Context(), anchor, req.Seed)
	snapshot, err := h.manager.Snapshot(session.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, snapshot)
}

// GetSession handles GET /api/sessions/:id.
func (h *Handlers) GetSession(c *gin.Context) {
	snapshot, err := h.manager.Snapshot(c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

type seedRequest struct {
	Items []models.PlaceItem `json:"items"`
}

// Seed handles POST /api/sessions/:id/seed.
func (h *Handlers) Seed(c *gin.Context) {
	var req seedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snapshot, err := h.manager.Seed(c.Request.Context(), c.Param("id"), req.Items)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

type loadSuggestionsRequest struct {
	Categories []string `json:"categories" binding:"required"`
	Target     int      `json:"target"`
}

// LoadSuggestions handles POST /api/sessions/:id/suggestions.
func (h *Handlers) LoadSuggestions(c *gin.Context) {
	var req loadSuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "categories are required"})
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

	snapshot, err := h.manager.LoadSuggestions(c.Request.Context(), c.Param("id"), categories, req.Target)
	if err != nil {
		h.logger.Error("Loading suggestions failed",
			zap.String("session_id", c.Param("id")),
			zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

type placeRequest struct {
	PlaceID string `json:"place_id" binding:"required"`
}

// Accept handles POST /api/sessions/:id/accept.
func (h *Handlers) Accept(c *gin.Context) {
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "place_id is required"})
		return
	}

	snapshot, err := h.manager.Accept(c.Request.Context(), c.Param("id"), req.PlaceID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// Reject handles POST /api/sessions/:id/reject.
func (h *Handlers) Reject(c *gin.Context) {
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "place_id is required"})
		return
	}

	snapshot, err := h.manager.Reject(c.Request.Context(), c.Param("id"), req.PlaceID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// RemoveSelected handles POST /api/sessions/:id/selected/remove.
func (h *Handlers) RemoveSelected(c *gin.Context) {
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "place_id is required"})
		return
	}

	snapshot, err := h.manager.RemoveSelected(c.Request.Context(), c.Param("id"), req.PlaceID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// statusForError maps the engine error taxonomy to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrSessionNotFound):
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
