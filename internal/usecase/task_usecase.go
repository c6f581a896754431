package usecase

import (
	"context"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/service"

	"github.com/google/uuid"
)

// CreateTaskInput defines the data required to create a task.
// Omitted status and priority fall back to pending and medium.
type CreateTaskInput struct {
	Title       string  `json:"title" validate:"required,trimmed_min=3"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// UpdateTaskInput carries a partial update. Nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string `json:"title" validate:"omitempty,trimmed_min=3"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// DeleteTaskOutput confirms a deletion.
type DeleteTaskOutput struct {
	Message string `json:"message"`
}

// TaskUsecase defines the task operations. Every call acts on behalf of the
// given claims; administrators see and modify every task.
type TaskUsecase interface {
	CreateTask(ctx context.Context, claims *service.Claims, input *CreateTaskInput) (*entity.Task, error)
	ListTasks(ctx context.Context, claims *service.Claims) ([]*entity.Task, error)
	GetTask(ctx context.Context, claims *service.Claims, taskID uuid.UUID) (*entity.Task, error)
	UpdateTask(ctx context.Context, claims *service.Claims, taskID uuid.UUID, input *UpdateTaskInput) (*entity.Task, error)
	DeleteTask(ctx context.Context, claims *service.Claims, taskID uuid.UUID) (*DeleteTaskOutput, error)
}
