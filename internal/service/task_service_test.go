package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice int64 = 1
	bob   int64 = 2
)

func strPtr(s string) *string { return &s }

func statusPtr(s domain.TaskStatus) *domain.TaskStatus { return &s }

func TestCreateTask(t *testing.T) {
	t.Parallel()

	tasks := mocks.NewMockTaskStore()
	svc := service.NewTaskService(tasks, nil)

	task, err := svc.CreateTask(context.Background(), alice, "buy milk", nil)

	require.NoError(t, err)
	assert.Equal(t, int64(1), task.ID)
	assert.Equal(t, alice, task.UserID)
	assert.Equal(t, domain.TaskStatusTodo, task.Status)
	assert.Nil(t, task.Description)

	_, err = svc.CreateTask(context.Background(), alice, "  ", nil)
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
}

func TestListTasks_OnlyOwnTasks(t *testing.T) {
	t.Parallel()

	svc := service.NewTaskService(mocks.NewMockTaskStore(), nil)
	ctx := context.Background()
	_, err := svc.CreateTask(ctx, alice, "a1", nil)
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, bob, "b1", strPtr("bob's"))
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, alice, "a2", nil)
	require.NoError(t, err)

	aliceTasks, err := svc.ListTasks(ctx, alice)
	require.NoError(t, err)
	require.Len(t, aliceTasks, 2)
	for _, task := range aliceTasks {
		assert.Equal(t, alice, task.UserID)
	}

	none, err := svc.ListTasks(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (service.TaskService, *mocks.MockTaskStore, *domain.Task) {
		t.Helper()
		tasks := mocks.NewMockTaskStore()
		svc := service.NewTaskService(tasks, nil)
		task, err := svc.CreateTask(context.Background(), alice, "buy milk", strPtr("2 litres"))
		require.NoError(t, err)
		return svc, tasks, task
	}

	t.Run("status only leaves title and description", func(t *testing.T) {
		t.Parallel()
		svc, tasks, task := setup(t)

		updated, err := svc.UpdateTask(context.Background(), alice, task.ID,
			domain.TaskPatch{Status: statusPtr(domain.TaskStatusDone)})

		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusDone, updated.Status)

		stored, err := tasks.GetByID(context.Background(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusDone, stored.Status)
		assert.Equal(t, "buy milk", stored.Title)
		assert.Equal(t, "2 litres", *stored.Description)
	})

	t.Run("missing task is not found", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := setup(t)

		_, err := svc.UpdateTask(context.Background(), alice, 999,
			domain.TaskPatch{Title: strPtr("x")})

		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("other user's task is forbidden and untouched", func(t *testing.T) {
		t.Parallel()
		svc, tasks, task := setup(t)

		_, err := svc.UpdateTask(context.Background(), bob, task.ID,
			domain.TaskPatch{Title: strPtr("hijacked")})

		assert.ErrorIs(t, err, service.ErrNotOwned)
		assert.Equal(t, 0, tasks.UpdateCalls)
		stored, err := tasks.GetByID(context.Background(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, "buy milk", stored.Title)
	})

	t.Run("not found wins over ownership", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := setup(t)

		_, err := svc.UpdateTask(context.Background(), bob, 999,
			domain.TaskPatch{Title: strPtr("x")})

		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.NotErrorIs(t, err, service.ErrNotOwned)
	})

	t.Run("empty patch saves nothing", func(t *testing.T) {
		t.Parallel()
		svc, tasks, task := setup(t)

		got, err := svc.UpdateTask(context.Background(), alice, task.ID, domain.TaskPatch{})

		require.NoError(t, err)
		assert.Equal(t, "buy milk", got.Title)
		assert.Equal(t, task.UpdatedAt, got.UpdatedAt)
		assert.Equal(t, 0, tasks.UpdateCalls)
	})

	t.Run("empty patch still checks ownership", func(t *testing.T) {
		t.Parallel()
		svc, _, task := setup(t)

		_, err := svc.UpdateTask(context.Background(), bob, task.ID, domain.TaskPatch{})

		assert.ErrorIs(t, err, service.ErrNotOwned)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		t.Parallel()
		svc, tasks, task := setup(t)

		_, err := svc.UpdateTask(context.Background(), alice, task.ID,
			domain.TaskPatch{Status: statusPtr("archived")})

		assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
		assert.Equal(t, 0, tasks.UpdateCalls)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		t.Parallel()
		svc, tasks, task := setup(t)
		tasks.UpdateFn = func(ctx context.Context, task *domain.Task) error {
			return store.ErrInternal
		}

		_, err := svc.UpdateTask(context.Background(), alice, task.ID,
			domain.TaskPatch{Title: strPtr("x")})

		assert.ErrorIs(t, err, store.ErrInternal)
		var serviceErr *service.ServiceError
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, "update_task", serviceErr.Operation)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	tasks := mocks.NewMockTaskStore()
	svc := service.NewTaskService(tasks, nil)
	ctx := context.Background()
	task, err := svc.CreateTask(ctx, alice, "buy milk", nil)
	require.NoError(t, err)

	err = svc.DeleteTask(ctx, bob, task.ID)
	assert.ErrorIs(t, err, service.ErrNotOwned)
	assert.Equal(t, 0, tasks.DeleteCalls)

	require.NoError(t, svc.DeleteTask(ctx, alice, task.ID))

	_, err = tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	err = svc.DeleteTask(ctx, alice, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}
