package handler

import (
	"log/slog"
	"net/http"

	"taskboard/internal/delivery/api/middleware"
	"taskboard/internal/delivery/api/response"
	deliverycontext "taskboard/internal/delivery/context"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// TaskHandlerParams holds dependencies for TaskHandler, injected by Fx.
type TaskHandlerParams struct {
	fx.In

	TaskUC usecase.TaskUsecase
	Logger *slog.Logger
}

// TaskHandler holds dependencies for task handlers.
type TaskHandler struct {
	taskUC usecase.TaskUsecase
	logger *slog.Logger
}

// NewTaskHandler is the constructor for TaskHandler.
func NewTaskHandler(params TaskHandlerParams) *TaskHandler {
	return &TaskHandler{
		taskUC: params.TaskUC,
		logger: params.Logger,
	}
}

// log returns the request-scoped logger, falling back to the handler's own.
func (h *TaskHandler) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
}

// CreateTask handles task creation for the caller.
func (h *TaskHandler) CreateTask(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	var input usecase.CreateTaskInput
	if err := c.Bind(&input); err != nil {
		h.log(c).Warn("Rejected request body", slog.String("path", c.Path()), slog.Any("error", err))

		return response.HandleAppError(c, domainerrors.ErrInvalidRequestBody)
	}

	task, err := h.taskUC.CreateTask(c.Request().Context(), claims, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, task)
}

// ListTasks handles listing the tasks visible to the caller.
func (h *TaskHandler) ListTasks(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	tasks, err := h.taskUC.ListTasks(c.Request().Context(), claims)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tasks)
}

// GetTask handles fetching one task.
func (h *TaskHandler) GetTask(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		h.log(c).Debug("Task id is not a UUID", slog.String("id", c.Param("id")))

		return response.HandleAppError(c, domainerrors.ErrTaskNotFound)
	}

	task, err := h.taskUC.GetTask(c.Request().Context(), claims, taskID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, task)
}

// UpdateTask handles partial updates. PUT and PATCH share it.
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		h.log(c).Debug("Task id is not a UUID", slog.String("id", c.Param("id")))

		return response.HandleAppError(c, domainerrors.ErrTaskNotFound)
	}

	var input usecase.UpdateTaskInput
	if err := c.Bind(&input); err != nil {
		h.log(c).Warn("Rejected request body", slog.String("path", c.Path()), slog.Any("error", err))

		return response.HandleAppError(c, domainerrors.ErrInvalidRequestBody)
	}

	task, err := h.taskUC.UpdateTask(c.Request().Context(), claims, taskID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, task)
}

// DeleteTask handles task deletion.
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		h.log(c).Debug("Task id is not a UUID", slog.String("id", c.Param("id")))

		return response.HandleAppError(c, domainerrors.ErrTaskNotFound)
	}

	output, err := h.taskUC.DeleteTask(c.Request().Context(), claims, taskID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// parseTaskID reads the :id path parameter. Ids the store could never have
// issued are reported as missing rather than malformed.
func parseTaskID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}
