// Package handlers contains HTTP request handlers for the greeting service.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sebasr/greeting-service/internal/greeting"
	"github.com/sebasr/greeting-service/internal/middleware"
	"github.com/sebasr/greeting-service/internal/models"
)

// Resolver produces a greeting for a request.
type Resolver interface {
	Resolve(ctx context.Context, req models.GenerationRequest) (models.GenerationResult, error)
}

// GreetingHandler handles greeting generation requests
type GreetingHandler struct {
	resolver Resolver
	logger   *zap.Logger
}

// NewGreetingHandler creates a new greeting handler
func NewGreetingHandler(resolver Resolver, logger *zap.Logger) *GreetingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GreetingHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// Generate builds a greeting message and optional image
// POST /generate_message
func (h *GreetingHandler) Generate(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON payload",
		})
		return
	}

	result, err := h.resolver.Resolve(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, greeting.ErrInvalidMode):
		c.JSON(http.StatusBadRequest, result)
	default:
		h.logger.Error("greeting resolution failed",
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate message",
		})
	}
}
