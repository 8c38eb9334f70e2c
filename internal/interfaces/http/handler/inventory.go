package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	inventoryapp "github.com/chefcode/backend/internal/application/inventory"
	"github.com/chefcode/backend/internal/domain/shared"
)

// InventoryHandler serves the inventory CRUD routes.
type InventoryHandler struct {
	BaseHandler
	service *inventoryapp.Service
	auth    gin.HandlerFunc
}

// NewInventoryHandler creates a new InventoryHandler. The auth middleware
// guards every mutating route; reads stay open.
func NewInventoryHandler(service *inventoryapp.Service, auth gin.HandlerFunc) *InventoryHandler {
	return &InventoryHandler{service: service, auth: auth}
}

// RegisterRoutes registers the inventory routes.
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/inventory")
	g.GET("", h.List)
	g.POST("", h.auth, h.Create)
	g.PUT("/:id", h.auth, h.Update)
	// The body-carrying delete is registered before the path-parameter one
	// so "/delete" never binds as an ID.
	g.DELETE("/delete", h.auth, h.DeleteByBody)
	g.DELETE("/:id", h.auth, h.Delete)
}

// List returns all inventory items.
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Create adds an inventory item through the price-only merge path.
func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if err := validateExpiryDate(req.ExpiryDate); err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.Created {
		h.Created(c, result)
		return
	}
	h.Success(c, result)
}

// Update applies a partial update to an item.
func (h *InventoryHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req inventoryapp.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.ExpiryDate != nil {
		if err := validateExpiryDate(req.ExpiryDate); err != nil {
			h.HandleError(c, err)
			return
		}
	}

	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete removes an item addressed by path parameter.
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Item deleted successfully"})
}

// DeleteByBody removes an item addressed by an ID in the request body. Kept
// for clients that cannot put IDs in DELETE paths.
func (h *InventoryHandler) DeleteByBody(c *gin.Context) {
	var req struct {
		ID uint `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Missing required field: id")
		return
	}
	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Item deleted successfully"})
}

// parseID parses a numeric path parameter.
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// validateExpiryDate rejects expiry dates in the past. The date is compared
// at day resolution: today is still acceptable.
func validateExpiryDate(raw *string) error {
	if raw == nil || *raw == "" {
		return nil
	}
	parsed := shared.ParseDate(*raw)
	if parsed == nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid expiry date format, expected YYYY-MM-DD")
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.Before(today) {
		return shared.NewDomainError("VALIDATION_ERROR", "Expiry date cannot be in the past")
	}
	return nil
}
