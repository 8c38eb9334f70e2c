package handler

import (
	"github.com/gin-gonic/gin"

	chatapp "github.com/chefcode/backend/internal/application/chat"
)

// chatRequest is one natural-language inventory command.
type chatRequest struct {
	Prompt   string `json:"prompt" binding:"required"`
	Language string `json:"language"`
}

// Availability is implemented by the language model client; the health
// endpoints report it without issuing a model call.
type Availability interface {
	Available() bool
	Model() string
}

// ChatHandler serves the conversational inventory entry routes.
type ChatHandler struct {
	BaseHandler
	service      *chatapp.Service
	availability Availability
	auth         gin.HandlerFunc
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(service *chatapp.Service, availability Availability, auth gin.HandlerFunc) *ChatHandler {
	return &ChatHandler{service: service, availability: availability, auth: auth}
}

// RegisterRoutes registers the chat routes.
func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chatgpt-smart", h.auth, h.Parse)
	rg.GET("/chat/health", h.Health)
}

// Parse turns a chat command into an inventory add, or into a follow-up
// question when the price is missing.
func (h *ChatHandler) Parse(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Missing required field: prompt")
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	resp, err := h.service.Parse(c.Request.Context(), req.Prompt, req.Language)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Health reports whether the language model integration is configured.
func (h *ChatHandler) Health(c *gin.Context) {
	status := "ok"
	if !h.availability.Available() {
		status = "unconfigured"
	}
	h.Success(c, gin.H{
		"status":         status,
		"api_configured": h.availability.Available(),
		"model":          h.availability.Model(),
	})
}
