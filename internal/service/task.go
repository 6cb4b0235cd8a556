package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/opentask-server/internal/logger"
	"github.com/dtroode/opentask-server/internal/model"
)

// Task implements task CRUD over the store. Statements commit
// independently; there are no multi-statement transactions here.
type Task struct {
	store        model.TaskStore
	files        model.FileStorage
	logger       *logger.Logger
	queryTimeout time.Duration
}

func NewTask(
	store model.TaskStore,
	files model.FileStorage,
	logger *logger.Logger,
	queryTimeout time.Duration,
) *Task {
	return &Task{
		store:        store,
		files:        files,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

func (t *Task) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, t.queryTimeout)
}

// List returns all tasks. No pagination and no per-user scoping.
func (t *Task) List(ctx context.Context) ([]model.Task, error) {
	storeCtx, cancel := t.storeCtx(ctx)
	defer cancel()

	tasks, err := t.store.GetAll(storeCtx)
	if err != nil {
		t.logger.Error("Task service: failed to list tasks", "error", err.Error())
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create inserts a task. The filename reference is taken as-is; it is not
// checked against storage.
func (t *Task) Create(ctx context.Context, params model.CreateTaskParams) (model.Task, error) {
	now := time.Now()
	task := model.Task{
		ID:          uuid.New(),
		Name:        params.Name,
		Description: params.Description,
		DueDate:     params.DueDate,
		Filename:    params.Filename,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	storeCtx, cancel := t.storeCtx(ctx)
	defer cancel()

	saved, err := t.store.Create(storeCtx, task)
	if err != nil {
		t.logger.Error("Task service: failed to create task",
			"name", params.Name,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	t.logger.Info("Task service: task created", "task_id", saved.ID)
	return saved, nil
}

// Get fetches a task by ID.
func (t *Task) Get(ctx context.Context, id uuid.UUID) (model.Task, error) {
	storeCtx, cancel := t.storeCtx(ctx)
	defer cancel()

	task, err := t.store.GetByID(storeCtx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, model.ErrNotFound
		}
		t.logger.Error("Task service: failed to get task",
			"task_id", id,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// Update overwrites name, description and due date and returns the
// refreshed row.
func (t *Task) Update(ctx context.Context, id uuid.UUID, params model.UpdateTaskParams) (model.Task, error) {
	storeCtx, cancel := t.storeCtx(ctx)
	defer cancel()

	updated, err := t.store.Update(storeCtx, model.Task{
		ID:          id,
		Name:        params.Name,
		Description: params.Description,
		DueDate:     params.DueDate,
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, model.ErrNotFound
		}
		t.logger.Error("Task service: failed to update task",
			"task_id", id,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	t.logger.Info("Task service: task updated", "task_id", id)
	return updated, nil
}

// Delete removes the task row and, when the task referenced an uploaded
// file, removes the blob as well. The blob removal is best effort: the row
// is already gone, so a storage failure is logged and swallowed.
func (t *Task) Delete(ctx context.Context, id uuid.UUID) error {
	storeCtx, cancel := t.storeCtx(ctx)
	defer cancel()

	task, err := t.store.GetByID(storeCtx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		t.logger.Error("Task service: failed to get task for delete",
			"task_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to get task: %w", err)
	}

	deleteCtx, cancelDelete := t.storeCtx(ctx)
	defer cancelDelete()

	if err := t.store.Delete(deleteCtx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		t.logger.Error("Task service: failed to delete task",
			"task_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if task.Filename != "" {
		if err := t.files.Delete(ctx, task.Filename); err != nil && !errors.Is(err, model.ErrNotFound) {
			t.logger.Error("Task service: failed to delete attached file",
				"task_id", id,
				"filename", task.Filename,
				"error", err.Error())
		}
	}

	t.logger.Info("Task service: task deleted", "task_id", id)
	return nil
}
