package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskRepository defines the task persistence operations the service layer needs.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
}

// TaskService provides the task operations available to an authenticated user.
//
// Update and Delete always look the task up first, then check ownership,
// then mutate: a missing task yields store.ErrTaskNotFound, a task owned by
// someone else yields ErrNotOwned and is left untouched.
type TaskService interface {
	CreateTask(ctx context.Context, userID int64, title string, description *string) (*domain.Task, error)
	ListTasks(ctx context.Context, userID int64) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID int64) error
}

type taskServiceImpl struct {
	tasks  TaskRepository
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks TaskRepository, logger *slog.Logger) TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
	}
}

// CreateTask implements TaskService.CreateTask.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	userID int64,
	title string,
	description *string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(userID, title, description)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			redact.ErrorAttr(err),
			slog.Int64("user_id", userID))
		return nil, NewServiceError("create_task", "failed to save task", err)
	}

	return task, nil
}

// ListTasks implements TaskService.ListTasks.
func (s *taskServiceImpl) ListTasks(ctx context.Context, userID int64) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list tasks",
			redact.ErrorAttr(err),
			slog.Int64("user_id", userID))
		return nil, NewServiceError("list_tasks", "failed to list tasks", err)
	}

	return tasks, nil
}

// UpdateTask implements TaskService.UpdateTask.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	userID, taskID int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.loadOwned(ctx, "update_task", userID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		log.Debug("empty task update, nothing to save", slog.Int64("task_id", taskID))
		return task, nil
	}

	if err := task.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, NewServiceError("update_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to update task",
			redact.ErrorAttr(err),
			slog.Int64("task_id", taskID))
		return nil, NewServiceError("update_task", "failed to save task", err)
	}

	return task, nil
}

// DeleteTask implements TaskService.DeleteTask.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.loadOwned(ctx, "delete_task", userID, taskID); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return NewServiceError("delete_task", "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to delete task",
			redact.ErrorAttr(err),
			slog.Int64("task_id", taskID))
		return NewServiceError("delete_task", "failed to delete task", err)
	}

	return nil
}

func (s *taskServiceImpl) loadOwned(ctx context.Context, operation string, userID, taskID int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, NewServiceError(operation, "task not found", store.ErrTaskNotFound)
		}
		log.Error("failed to load task",
			redact.ErrorAttr(err),
			slog.Int64("task_id", taskID))
		return nil, NewServiceError(operation, "failed to load task", err)
	}

	if !task.IsOwnedBy(userID) {
		log.Warn("task access denied",
			slog.Int64("task_id", taskID),
			slog.Int64("user_id", userID))
		return nil, NewServiceError(operation, "task belongs to another user", ErrNotOwned)
	}

	return task, nil
}
