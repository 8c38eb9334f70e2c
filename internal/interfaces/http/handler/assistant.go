package handler

import (
	"github.com/gin-gonic/gin"

	assistantapp "github.com/chefcode/backend/internal/application/assistant"
)

// commandRequest is one assistant command plus optional conversation state.
type commandRequest struct {
	Command string         `json:"command" binding:"required"`
	Context map[string]any `json:"context"`
}

// confirmRequest echoes a pending confirmation back with the user's verdict.
type confirmRequest struct {
	ConfirmationID string `json:"confirmation_id" binding:"required"`
	Confirmed      bool   `json:"confirmed"`
}

// AssistantHandler serves the intent-driven assistant routes.
type AssistantHandler struct {
	BaseHandler
	service *assistantapp.Service
	auth    gin.HandlerFunc
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(service *assistantapp.Service, auth gin.HandlerFunc) *AssistantHandler {
	return &AssistantHandler{service: service, auth: auth}
}

// RegisterRoutes registers the assistant routes under their own prefix.
func (h *AssistantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/ai-assistant")
	g.POST("/command", h.auth, h.Command)
	g.POST("/confirm", h.auth, h.Confirm)
}

// Command detects the intent behind a natural-language command and either
// executes it or parks it behind a confirmation.
func (h *AssistantHandler) Command(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Missing required field: command")
		return
	}

	resp, err := h.service.Command(c.Request.Context(), req.Command, req.Context)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Confirm executes or cancels a parked mutation.
func (h *AssistantHandler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Missing required field: confirmation_id")
		return
	}

	resp, err := h.service.Confirm(c.Request.Context(), req.ConfirmationID, req.Confirmed)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
