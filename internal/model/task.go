package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TaskStore defines persistence operations for tasks.
type TaskStore interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (Task, error)
	GetAll(ctx context.Context) ([]Task, error)
	Update(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Task represents a stored task entity. Tasks are not scoped to a user.
type Task struct {
	ID          uuid.UUID
	Name        string
	Description string
	DueDate     string
	Filename    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTaskParams contains parameters to create a task.
type CreateTaskParams struct {
	Name        string
	Description string
	DueDate     string
	Filename    string
}

// UpdateTaskParams contains parameters for a full-field task overwrite.
type UpdateTaskParams struct {
	Name        string
	Description string
	DueDate     string
}
