package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/opentask-server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

type TaskRepository struct {
	db *Connection
}

func NewTaskRepository(db *Connection) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `INSERT INTO tasks (id, name, description, due_date, filename, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, name, description, due_date, filename, created_at, updated_at`

	var savedTask model.Task
	err := r.db.QueryRow(ctx, query,
		task.ID, task.Name, task.Description, task.DueDate, task.Filename,
		task.CreatedAt, task.UpdatedAt,
	).Scan(
		&savedTask.ID, &savedTask.Name, &savedTask.Description, &savedTask.DueDate,
		&savedTask.Filename, &savedTask.CreatedAt, &savedTask.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return savedTask, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Task, error) {
	query := `SELECT id, name, description, due_date, filename, created_at, updated_at
			  FROM tasks WHERE id = $1`

	var task model.Task
	err := r.db.QueryRow(ctx, query, id).Scan(
		&task.ID, &task.Name, &task.Description, &task.DueDate,
		&task.Filename, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) GetAll(ctx context.Context) ([]model.Task, error) {
	query := `SELECT id, name, description, due_date, filename, created_at, updated_at
			  FROM tasks
			  ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var task model.Task
		err := rows.Scan(
			&task.ID, &task.Name, &task.Description, &task.DueDate,
			&task.Filename, &task.CreatedAt, &task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	return tasks, nil
}

// Update overwrites name, description and due date in a single statement and
// echoes the refreshed row, so no second read races against concurrent writers.
func (r *TaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `UPDATE tasks
			  SET name = $2, description = $3, due_date = $4, updated_at = now()
			  WHERE id = $1
			  RETURNING id, name, description, due_date, filename, created_at, updated_at`

	var savedTask model.Task
	err := r.db.QueryRow(ctx, query,
		task.ID, task.Name, task.Description, task.DueDate,
	).Scan(
		&savedTask.ID, &savedTask.Name, &savedTask.Description, &savedTask.DueDate,
		&savedTask.Filename, &savedTask.CreatedAt, &savedTask.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return savedTask, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM tasks WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
