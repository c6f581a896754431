package impl

import (
	"context"
	"log/slog"

	deliverycontext "taskboard/internal/delivery/context"
	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	"taskboard/internal/domain/service"
	"taskboard/internal/usecase"
	"taskboard/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const taskDeletedMessage = "Task deleted successfully"

// taskService implements the TaskUsecase interface.
type taskService struct {
	taskRepo  repository.TaskRepository
	validator service.InputValidator
	logger    *slog.Logger
}

// TaskServiceParams holds dependencies for TaskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TaskRepo  repository.TaskRepository
	Validator service.InputValidator
	Logger    *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		taskRepo:  params.TaskRepo,
		validator: params.Validator,
		logger:    params.Logger,
	}
}

func (srv *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateTask stores a task owned by the caller.
func (srv *taskService) CreateTask(ctx context.Context, claims *service.Claims, input *usecase.CreateTaskInput) (*entity.Task, error) {
	if claims == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	if fields := srv.validator.Validate(input); len(fields) > 0 {
		return nil, domainerrors.NewValidationError(fields)
	}

	newTask := repository.NewTask{
		Title:    util.SanitizeInput(input.Title),
		Status:   entity.TaskStatusPending,
		Priority: entity.TaskPriorityMedium,
		OwnerID:  claims.Subject,
	}
	if input.Description != nil {
		newTask.Description = util.SanitizeInput(*input.Description)
	}
	if input.Status != nil && *input.Status != "" {
		newTask.Status = entity.TaskStatus(*input.Status)
	}
	if input.Priority != nil && *input.Priority != "" {
		newTask.Priority = entity.TaskPriority(*input.Priority)
	}

	task, err := srv.taskRepo.CreateTask(ctx, newTask)
	if err != nil {
		srv.log(ctx).Error("Failed to create task", slog.Any("ownerID", claims.Subject), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to create task")
	}

	srv.log(ctx).Debug("Task created", slog.Any("taskID", task.ID), slog.Any("ownerID", task.OwnerID))

	return task, nil
}

// ListTasks returns every task to administrators and the caller's own tasks to everyone else.
func (srv *taskService) ListTasks(ctx context.Context, claims *service.Claims) ([]*entity.Task, error) {
	if claims == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	if claims.IsAdministrator() {
		return srv.taskRepo.ListAllTasks(ctx), nil
	}

	return srv.taskRepo.ListTasksByOwner(ctx, claims.Subject), nil
}

// GetTask returns one task the caller may see.
func (srv *taskService) GetTask(ctx context.Context, claims *service.Claims, taskID uuid.UUID) (*entity.Task, error) {
	return srv.findAuthorized(ctx, claims, taskID)
}

// UpdateTask applies the fields present in input. Existence and access are
// checked before the input is validated.
func (srv *taskService) UpdateTask(ctx context.Context, claims *service.Claims, taskID uuid.UUID, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	if _, err := srv.findAuthorized(ctx, claims, taskID); err != nil {
		return nil, err
	}

	if fields := srv.validator.Validate(input); len(fields) > 0 {
		return nil, domainerrors.NewValidationError(fields)
	}

	updated, ok := srv.taskRepo.UpdateTask(ctx, taskID, buildTaskPatch(input))
	if !ok {
		// Deleted between the lookup and the update.
		return nil, domainerrors.ErrTaskNotFound.WrapMessage("task vanished during update")
	}

	srv.log(ctx).Debug("Task updated", slog.Any("taskID", taskID))

	return updated, nil
}

// DeleteTask removes a task the caller may modify.
func (srv *taskService) DeleteTask(ctx context.Context, claims *service.Claims, taskID uuid.UUID) (*usecase.DeleteTaskOutput, error) {
	if _, err := srv.findAuthorized(ctx, claims, taskID); err != nil {
		return nil, err
	}

	if !srv.taskRepo.DeleteTask(ctx, taskID) {
		return nil, domainerrors.ErrTaskNotFound.WrapMessage("task vanished during delete")
	}

	srv.log(ctx).Info("Task deleted", slog.Any("taskID", taskID), slog.Any("actorID", claims.Subject))

	return &usecase.DeleteTaskOutput{Message: taskDeletedMessage}, nil
}

func (srv *taskService) findAuthorized(ctx context.Context, claims *service.Claims, taskID uuid.UUID) (*entity.Task, error) {
	if claims == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	task, ok := srv.taskRepo.FindTaskByID(ctx, taskID)
	if !ok {
		return nil, domainerrors.ErrTaskNotFound
	}

	if err := service.AuthorizeOwnerOrAdmin(claims, task.OwnerID); err != nil {
		srv.log(ctx).Warn("Task access denied", slog.Any("taskID", taskID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrForbidden, err.Error())
	}

	return task, nil
}

// buildTaskPatch sanitizes the present fields. Empty title, status and
// priority are treated as absent; an empty description clears it.
func buildTaskPatch(input *usecase.UpdateTaskInput) entity.TaskPatch {
	var patch entity.TaskPatch

	if input.Title != nil && *input.Title != "" {
		title := util.SanitizeInput(*input.Title)
		patch.Title = &title
	}
	if input.Description != nil {
		description := util.SanitizeInput(*input.Description)
		patch.Description = &description
	}
	if input.Status != nil && *input.Status != "" {
		status := entity.TaskStatus(*input.Status)
		patch.Status = &status
	}
	if input.Priority != nil && *input.Priority != "" {
		priority := entity.TaskPriority(*input.Priority)
		patch.Priority = &priority
	}

	return patch
}
