package handler

import (
	"github.com/gin-gonic/gin"

	taskapp "github.com/chefcode/backend/internal/application/task"
)

// TaskHandler serves the prep task routes.
type TaskHandler struct {
	BaseHandler
	service *taskapp.Service
	auth    gin.HandlerFunc
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service *taskapp.Service, auth gin.HandlerFunc) *TaskHandler {
	return &TaskHandler{service: service, auth: auth}
}

// RegisterRoutes registers the task routes.
func (h *TaskHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/tasks")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.auth, h.Create)
	g.PUT("/:id", h.auth, h.Update)
	g.PUT("/:id/status", h.auth, h.UpdateStatus)
	g.DELETE("/:id", h.auth, h.Delete)
}

// List returns all tasks.
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tasks)
}

// Get returns a single task by ID.
func (h *TaskHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}
	t, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Create stores a new task.
func (h *TaskHandler) Create(c *gin.Context) {
	var req taskapp.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	t, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, t)
}

// Update applies a partial update to a task.
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}
	var req taskapp.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	t, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// UpdateStatus moves a task through its workflow states.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Missing required field: status")
		return
	}
	t, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Delete removes a task by ID.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Task deleted successfully"})
}
