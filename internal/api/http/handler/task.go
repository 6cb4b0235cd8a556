package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/opentask-server/internal/logger"
	"github.com/dtroode/opentask-server/internal/model"
)

// TaskService defines task CRUD operations.
type TaskService interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, params model.CreateTaskParams) (model.Task, error)
	Get(ctx context.Context, id uuid.UUID) (model.Task, error)
	Update(ctx context.Context, id uuid.UUID, params model.UpdateTaskParams) (model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Task handles HTTP endpoints for task CRUD.
type Task struct {
	service TaskService
	logger  *logger.Logger
}

// NewTask creates a new Task handler.
func NewTask(service TaskService, logger *logger.Logger) *Task {
	return &Task{
		service: service,
		logger:  logger,
	}
}

// createTaskRequest is the legacy create body; due_date keeps its original
// wire name.
type createTaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Filename    string `json:"filename"`
}

type updateTaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
}

type taskSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DueDate     string    `json:"dueDate"`
	Filename    string    `json:"filename,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toTaskResponse(task model.Task) taskResponse {
	return taskResponse{
		ID:          task.ID.String(),
		Name:        task.Name,
		Description: task.Description,
		DueDate:     task.DueDate,
		Filename:    task.Filename,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func taskNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
}

// taskID parses the :id path parameter. A malformed id addresses no task,
// so it gets not-found semantics rather than a validation error.
func taskID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		taskNotFound(c)
		return uuid.Nil, false
	}
	return id, true
}

// List handles GET /tasks.
func (h *Task) List(c *gin.Context) {
	tasks, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]taskSummary, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskSummary{
			Name:        task.Name,
			Description: task.Description,
			DueDate:     task.DueDate,
		})
	}

	c.JSON(http.StatusOK, out)
}

// Create handles POST /api/tasks.
func (h *Task) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required"})
		return
	}

	task, err := h.service.Create(c.Request.Context(), model.CreateTaskParams{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
		Filename:    req.Filename,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task added successfully",
		"taskId":  task.ID.String(),
	})
}

// Get handles GET /tasks/:id.
func (h *Task) Get(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			taskNotFound(c)
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Update handles PUT /tasks/:id.
func (h *Task) Update(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	task, err := h.service.Update(c.Request.Context(), id, model.UpdateTaskParams{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			taskNotFound(c)
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /tasks/:id.
func (h *Task) Delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			taskNotFound(c)
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
