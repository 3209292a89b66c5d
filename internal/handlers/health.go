package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/greeting-service/internal/assets"
	"github.com/sebasr/greeting-service/internal/templates"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
	Assets string `json:"assets,omitempty"`
}

// HealthHandler reports liveness and whether the asset store answers.
type HealthHandler struct {
	store assets.Store
}

// NewHealthHandler creates a health handler. store may be nil.
func NewHealthHandler(store assets.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Check handles health check requests
// GET /api/v1/health
func (h *HealthHandler) Check(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
		return
	}

	ok, err := h.store.Exists(c.Request.Context(), templates.DefaultImage)
	switch {
	case err != nil:
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Assets: "unreachable"})
	case !ok:
		c.JSON(http.StatusOK, HealthResponse{Status: "ok", Assets: "default image missing"})
	default:
		c.JSON(http.StatusOK, HealthResponse{Status: "ok", Assets: "ok"})
	}
}
