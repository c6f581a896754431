package impl

import (
	"context"
	"net/http"
	"testing"

	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_EndToEnd(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	out, err := fx.accounts.Register(ctx, &usecase.RegisterInput{Email: "a@x.com", Password: "secret1", FullName: "A B"})
	require.NoError(t, err)
	claims := fx.authenticate(t, out.Token)

	task, err := fx.tasks.CreateTask(ctx, claims, &usecase.CreateTaskInput{Title: "Buy milk"})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusPending, task.Status)
	assert.Equal(t, entity.TaskPriorityMedium, task.Priority)
	assert.Equal(t, out.User.ID, task.OwnerID)
	assert.Empty(t, task.Description)

	listed, err := fx.tasks.ListTasks(ctx, claims)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, task.ID, listed[0].ID)

	updated, err := fx.tasks.UpdateTask(ctx, claims, task.ID, &usecase.UpdateTaskInput{Status: strPtr("completed")})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusCompleted, updated.Status)
	assert.Equal(t, "Buy milk", updated.Title)
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)

	deleted, err := fx.tasks.DeleteTask(ctx, claims, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Task deleted successfully", deleted.Message)

	listed, err = fx.tasks.ListTasks(ctx, claims)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestTaskService_CreateTask_SanitizesAndAppliesChoices(t *testing.T) {
	fx := createTestServices(t)
	claims := fx.register(t, "a@x.com", "A B")

	task, err := fx.tasks.CreateTask(context.Background(), claims, &usecase.CreateTaskInput{
		Title:       "  <i>Ship</i> release ",
		Description: strPtr(" notes <here> "),
		Status:      strPtr("in_progress"),
		Priority:    strPtr("high"),
	})
	require.NoError(t, err)

	assert.Equal(t, "iShip/i release", task.Title)
	assert.Equal(t, "notes here", task.Description)
	assert.Equal(t, entity.TaskStatusInProgress, task.Status)
	assert.Equal(t, entity.TaskPriorityHigh, task.Priority)
}

func TestTaskService_CreateTask_ValidationFailed(t *testing.T) {
	fx := createTestServices(t)
	claims := fx.register(t, "a@x.com", "A B")

	_, err := fx.tasks.CreateTask(context.Background(), claims, &usecase.CreateTaskInput{
		Title:    "  ab  ",
		Status:   strPtr("done"),
		Priority: strPtr("urgent"),
	})
	requireAppError(t, err, http.StatusBadRequest, "VALIDATION_FAILED")

	var verr *domainerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []domainerrors.FieldError{
		{Field: "title", Message: "Title must be at least 3 characters long"},
		{Field: "status", Message: "Invalid status. Must be: pending, in_progress, or completed"},
		{Field: "priority", Message: "Invalid priority. Must be: low, medium, or high"},
	}, verr.Fields())

	assert.Empty(t, fx.store.ListAllTasks(context.Background()))
}

func TestTaskService_ListTasks_ScopedByRole(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	alice := fx.register(t, "alice@x.com", "Alice")
	bob := fx.register(t, "bob@x.com", "Bob")
	admin := fx.loginAdmin(t)

	_, err := fx.tasks.CreateTask(ctx, alice, &usecase.CreateTaskInput{Title: "Alice one"})
	require.NoError(t, err)
	_, err = fx.tasks.CreateTask(ctx, bob, &usecase.CreateTaskInput{Title: "Bob one"})
	require.NoError(t, err)
	_, err = fx.tasks.CreateTask(ctx, alice, &usecase.CreateTaskInput{Title: "Alice two"})
	require.NoError(t, err)

	aliceTasks, err := fx.tasks.ListTasks(ctx, alice)
	require.NoError(t, err)
	require.Len(t, aliceTasks, 2)
	for _, task := range aliceTasks {
		assert.Equal(t, alice.Subject, task.OwnerID)
	}

	all, err := fx.tasks.ListTasks(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Alice one", all[0].Title)
	assert.Equal(t, "Bob one", all[1].Title)
	assert.Equal(t, "Alice two", all[2].Title)
}

func TestTaskService_OwnerOrAdmin(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	alice := fx.register(t, "alice@x.com", "Alice")
	bob := fx.register(t, "bob@x.com", "Bob")
	admin := fx.loginAdmin(t)

	task, err := fx.tasks.CreateTask(ctx, alice, &usecase.CreateTaskInput{Title: "Private"})
	require.NoError(t, err)

	_, err = fx.tasks.GetTask(ctx, bob, task.ID)
	appErr := requireAppError(t, err, http.StatusForbidden, "FORBIDDEN")
	assert.Equal(t, "Access denied", appErr.Message())

	_, err = fx.tasks.UpdateTask(ctx, bob, task.ID, &usecase.UpdateTaskInput{Title: strPtr("Hijacked")})
	requireAppError(t, err, http.StatusForbidden, "FORBIDDEN")

	_, err = fx.tasks.DeleteTask(ctx, bob, task.ID)
	requireAppError(t, err, http.StatusForbidden, "FORBIDDEN")

	got, err := fx.tasks.GetTask(ctx, admin, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Title)

	updated, err := fx.tasks.UpdateTask(ctx, admin, task.ID, &usecase.UpdateTaskInput{Priority: strPtr("low")})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskPriorityLow, updated.Priority)
	assert.Equal(t, alice.Subject, updated.OwnerID, "ownership never moves")

	_, err = fx.tasks.DeleteTask(ctx, admin, task.ID)
	require.NoError(t, err)
}

func TestTaskService_NotFound(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	claims := fx.register(t, "a@x.com", "A B")
	missing := uuid.New()

	_, err := fx.tasks.GetTask(ctx, claims, missing)
	requireAppError(t, err, http.StatusNotFound, "TASK_NOT_FOUND")

	_, err = fx.tasks.UpdateTask(ctx, claims, missing, &usecase.UpdateTaskInput{Title: strPtr("Anything")})
	requireAppError(t, err, http.StatusNotFound, "TASK_NOT_FOUND")

	_, err = fx.tasks.DeleteTask(ctx, claims, missing)
	requireAppError(t, err, http.StatusNotFound, "TASK_NOT_FOUND")
}

func TestTaskService_NotFoundBeforeValidation(t *testing.T) {
	fx := createTestServices(t)
	claims := fx.register(t, "a@x.com", "A B")

	_, err := fx.tasks.UpdateTask(context.Background(), claims, uuid.New(), &usecase.UpdateTaskInput{Status: strPtr("bogus")})
	requireAppError(t, err, http.StatusNotFound, "TASK_NOT_FOUND")
}

func TestTaskService_UpdateTask_PartialFields(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()
	claims := fx.register(t, "a@x.com", "A B")

	task, err := fx.tasks.CreateTask(ctx, claims, &usecase.CreateTaskInput{
		Title:       "Write report",
		Description: strPtr("quarterly"),
		Priority:    strPtr("high"),
	})
	require.NoError(t, err)

	updated, err := fx.tasks.UpdateTask(ctx, claims, task.ID, &usecase.UpdateTaskInput{
		Title:       strPtr(""),
		Description: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Write report", updated.Title, "empty title is ignored")
	assert.Empty(t, updated.Description, "empty description clears it")
	assert.Equal(t, entity.TaskPriorityHigh, updated.Priority)
	assert.Equal(t, entity.TaskStatusPending, updated.Status)

	_, err = fx.tasks.UpdateTask(ctx, claims, task.ID, &usecase.UpdateTaskInput{Title: strPtr(" ab ")})
	requireAppError(t, err, http.StatusBadRequest, "VALIDATION_FAILED")
}

func TestTaskService_RequiresClaims(t *testing.T) {
	fx := createTestServices(t)
	ctx := context.Background()

	_, err := fx.tasks.CreateTask(ctx, nil, &usecase.CreateTaskInput{Title: "Buy milk"})
	requireAppError(t, err, http.StatusUnauthorized, "UNAUTHENTICATED")

	_, err = fx.tasks.ListTasks(ctx, nil)
	requireAppError(t, err, http.StatusUnauthorized, "UNAUTHENTICATED")

	_, err = fx.tasks.GetTask(ctx, nil, uuid.New())
	requireAppError(t, err, http.StatusUnauthorized, "UNAUTHENTICATED")
}
