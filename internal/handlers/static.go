package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/greeting-service/internal/assets"
)

// StaticHandler serves images from the asset store.
type StaticHandler struct {
	store assets.Store
}

// NewStaticHandler creates a static asset handler
func NewStaticHandler(store assets.Store) *StaticHandler {
	return &StaticHandler{store: store}
}

// Serve writes the requested asset
// GET /static/*filepath
func (h *StaticHandler) Serve(c *gin.Context) {
	name, err := assets.CleanName(c.Param("filepath"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset name"})
		return
	}

	data, err := h.store.Read(c.Request.Context(), name)
	switch {
	case errors.Is(err, assets.ErrNotFound), errors.Is(err, assets.ErrInvalidName):
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read asset"})
		return
	}

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, contentType, data)
}
