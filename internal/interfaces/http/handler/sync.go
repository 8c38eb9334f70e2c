package handler

import (
	"github.com/gin-gonic/gin"

	syncapp "github.com/chefcode/backend/internal/application/sync"
)

// SyncHandler serves the full-sync endpoint.
type SyncHandler struct {
	BaseHandler
	reconciler *syncapp.Reconciler
	auth       gin.HandlerFunc
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(reconciler *syncapp.Reconciler, auth gin.HandlerFunc) *SyncHandler {
	return &SyncHandler{reconciler: reconciler, auth: auth}
}

// RegisterRoutes registers the sync routes.
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sync-data", h.auth, h.Sync)
}

// Sync reconciles the client's complete state against the database in one
// transaction. Failures come back as the generic sync error; the cause is in
// the server log only.
func (h *SyncHandler) Sync(c *gin.Context) {
	var req syncapp.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.reconciler.Reconcile(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"message": "Data synchronized successfully",
		"synced":  result,
	})
}
