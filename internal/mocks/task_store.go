package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/opentask-server/internal/model"
)

// TaskStore is a testify mock of model.TaskStore.
type TaskStore struct {
	mock.Mock
}

func (m *TaskStore) Create(ctx context.Context, task model.Task) (model.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskStore) GetAll(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *TaskStore) Update(ctx context.Context, task model.Task) (model.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
