package repository

import (
	"context"

	"taskboard/internal/domain/entity"

	"github.com/google/uuid"
)

// NewTask holds the caller-supplied fields of a task about to be created.
type NewTask struct {
	Title       string
	Description string
	Status      entity.TaskStatus
	Priority    entity.TaskPriority
	OwnerID     uuid.UUID
}

// TaskRepository defines the operations on the task table.
// Lookups report absence with a false second result, never with an error.
type TaskRepository interface {
	CreateTask(ctx context.Context, input NewTask) (*entity.Task, error)
	FindTaskByID(ctx context.Context, id uuid.UUID) (*entity.Task, bool)

	// ListTasksByOwner returns the owner's tasks in insertion order.
	ListTasksByOwner(ctx context.Context, ownerID uuid.UUID) []*entity.Task

	// ListAllTasks returns every task in insertion order.
	ListAllTasks(ctx context.Context) []*entity.Task

	// UpdateTask merges the patch and refreshes UpdatedAt. ID, owner and CreatedAt never change.
	UpdateTask(ctx context.Context, id uuid.UUID, patch entity.TaskPatch) (*entity.Task, bool)

	// DeleteTask reports whether a task existed and was removed.
	DeleteTask(ctx context.Context, id uuid.UUID) bool
}
