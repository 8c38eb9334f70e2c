package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves the root banner and the liveness probe. Both answer
// with bare JSON rather than the response envelope so probes stay trivial to
// parse.
type SystemHandler struct {
	appName string
	version string
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(appName, version string) *SystemHandler {
	return &SystemHandler{appName: appName, version: version}
}

// RegisterRoutes registers the system routes on the engine root, outside the
// /api prefix.
func (h *SystemHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
}

// Root returns the service banner.
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": h.appName,
		"version": h.version,
	})
}

// Health returns the liveness status.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.appName,
	})
}
