package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/greeting-service/web"
)

// IndexHandler serves the single-page UI
func IndexHandler(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.Index)
}
