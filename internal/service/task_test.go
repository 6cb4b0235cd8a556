package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/opentask-server/internal/mocks"
	"github.com/dtroode/opentask-server/internal/model"
	"github.com/dtroode/opentask-server/internal/testutil"
)

func newTaskService(store model.TaskStore, files model.FileStorage) *Task {
	return NewTask(store, files, testutil.MakeNoopLogger(), testQueryTimeout)
}

func TestTask_Create(t *testing.T) {
	ctx := context.Background()
	store := &mocks.TaskStore{}
	store.On("Create", mock.Anything, mock.MatchedBy(func(task model.Task) bool {
		return task.ID != uuid.Nil && task.Name == "A" &&
			task.Description == "d" && task.DueDate == "2024-01-01"
	})).Return(model.Task{ID: uuid.New(), Name: "A"}, nil)

	svc := newTaskService(store, &mocks.FileStorage{})

	saved, err := svc.Create(ctx, model.CreateTaskParams{
		Name:        "A",
		Description: "d",
		DueDate:     "2024-01-01",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	store.AssertExpectations(t)
}

func TestTask_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	store := &mocks.TaskStore{}
	store.On("Update", mock.Anything, mock.Anything).Return(model.Task{}, model.ErrNotFound)

	svc := newTaskService(store, &mocks.FileStorage{})

	_, err := svc.Update(ctx, id, model.UpdateTaskParams{Name: "B"})
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestTask_Delete_RemovesAttachedFile(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	store := &mocks.TaskStore{}
	store.On("GetByID", mock.Anything, id).Return(model.Task{ID: id, Filename: "blob.pdf"}, nil)
	store.On("Delete", mock.Anything, id).Return(nil)

	files := &mocks.FileStorage{}
	files.On("Delete", mock.Anything, "blob.pdf").Return(nil)

	svc := newTaskService(store, files)

	require.NoError(t, svc.Delete(ctx, id))
	files.AssertExpectations(t)
}

func TestTask_Delete_NoAttachedFile(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	store := &mocks.TaskStore{}
	store.On("GetByID", mock.Anything, id).Return(model.Task{ID: id}, nil)
	store.On("Delete", mock.Anything, id).Return(nil)

	files := &mocks.FileStorage{}

	svc := newTaskService(store, files)

	require.NoError(t, svc.Delete(ctx, id))
	files.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTask_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	store := &mocks.TaskStore{}
	store.On("GetByID", mock.Anything, id).Return(model.Task{}, model.ErrNotFound)

	svc := newTaskService(store, &mocks.FileStorage{})

	require.ErrorIs(t, svc.Delete(ctx, id), model.ErrNotFound)
}

func TestTask_Delete_StorageFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	store := &mocks.TaskStore{}
	store.On("GetByID", mock.Anything, id).Return(model.Task{ID: id, Filename: "gone.bin"}, nil)
	store.On("Delete", mock.Anything, id).Return(nil)

	files := &mocks.FileStorage{}
	files.On("Delete", mock.Anything, "gone.bin").Return(assert.AnError)

	svc := newTaskService(store, files)

	// The row is already gone; blob cleanup failure must not fail the call.
	require.NoError(t, svc.Delete(ctx, id))
}

func TestTask_List(t *testing.T) {
	ctx := context.Background()
	store := &mocks.TaskStore{}
	store.On("GetAll", mock.Anything).Return([]model.Task{{Name: "A"}, {Name: "B"}}, nil)

	svc := newTaskService(store, &mocks.FileStorage{})

	tasks, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}
