package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/calebgil/tandem/internal/middleware"
	"github.com/calebgil/tandem/internal/services"
	"github.com/calebgil/tandem/pkg/response"
)

// TodoHandler exposes the shared task and dream lists. Every successful
// mutation runs the matching notifier trigger so the partner finds out.
type TodoHandler struct {
	todos    *services.TodoService
	notifier *services.Notifier
}

// NewTodoHandler constructs a TodoHandler.
func NewTodoHandler(todos *services.TodoService, notifier *services.Notifier) *TodoHandler {
	return &TodoHandler{todos: todos, notifier: notifier}
}

type createTodoRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Description string          `json:"description"`
	DueDate     *time.Time      `json:"due_date"`
	Priority    string          `json:"priority" validate:"omitempty,oneof=low medium high"`
	Category    string          `json:"category" validate:"max=64"`
	ListType    string          `json:"list_type" validate:"omitempty,oneof=todo dream"`
	Subtasks    json.RawMessage `json:"subtasks"`
}

// Create adds an item and notifies the partner.
func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	uid := middleware.UserID(c)
	todo, err := h.todos.Create(c.Request.Context(), uid, services.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Category:    req.Category,
		ListType:    req.ListType,
		Subtasks:    req.Subtasks,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.notifier.TodoCreated(c.Request.Context(), uid, todo)

	response.Success(c, http.StatusCreated, todo)
}

// List returns the pair's items, optionally filtered by list type.
func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.todos.List(c.Request.Context(), middleware.UserID(c), c.Query("list_type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, todos)
}

// Get returns one item.
func (h *TodoHandler) Get(c *gin.Context) {
	todo, err := h.todos.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, todo)
}

// Update patches an item and notifies the partner about the most significant
// change.
func (h *TodoHandler) Update(c *gin.Context) {
	var patch services.TodoPatch
	if !bindAndValidate(c, &patch) {
		return
	}

	uid := middleware.UserID(c)
	before, after, err := h.todos.Update(c.Request.Context(), uid, c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.notifier.TodoUpdated(c.Request.Context(), uid, before, after)

	response.Success(c, http.StatusOK, after)
}

// Complete checks an item off and notifies the partner. Completing an
// already-completed item is a no-op.
func (h *TodoHandler) Complete(c *gin.Context) {
	uid := middleware.UserID(c)
	todo, alreadyDone, err := h.todos.Complete(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	if !alreadyDone {
		h.notifier.TodoCompleted(c.Request.Context(), uid, todo)
	}

	response.Success(c, http.StatusOK, todo)
}

// Delete removes an item and notifies the partner.
func (h *TodoHandler) Delete(c *gin.Context) {
	uid := middleware.UserID(c)
	todo, err := h.todos.Delete(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.notifier.TodoDeleted(c.Request.Context(), uid, todo)

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
