package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"taskboard/config"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/service"
	"taskboard/internal/infra/auth"
	"taskboard/internal/infra/persistence/memory"
	"taskboard/internal/infra/validation"
	"taskboard/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedAdminEmail    = "admin@example.com"
	seedAdminPassword = "admin123"
)

// serviceFixtures wires both services over a freshly seeded store.
type serviceFixtures struct {
	accounts usecase.AccountUsecase
	tasks    usecase.TaskUsecase
	store    *memory.Store
	hasher   service.PasswordHasher
	tokens   service.TokenService
	validate service.InputValidator
	logger   *slog.Logger
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.ApplyDefaults()

	return cfg
}

func createTestServices(t *testing.T) serviceFixtures {
	t.Helper()

	cfg := newTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)

	store, err := memory.New(context.Background(), memory.StoreParams{Config: cfg, Hasher: hasher, Logger: logger})
	require.NoError(t, err)

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	validate, err := validation.New()
	require.NoError(t, err)

	return serviceFixtures{
		accounts: NewAccountService(AccountServiceParams{
			AccountRepo:  store,
			Hasher:       hasher,
			TokenService: tokens,
			Validator:    validate,
			Logger:       logger,
		}),
		tasks: NewTaskService(TaskServiceParams{
			TaskRepo:  store,
			Validator: validate,
			Logger:    logger,
		}),
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		validate: validate,
		logger:   logger,
	}
}

// register creates an account and returns its verified claims.
func (f serviceFixtures) register(t *testing.T, email, fullName string) *service.Claims {
	t.Helper()

	out, err := f.accounts.Register(context.Background(), &usecase.RegisterInput{
		Email:    email,
		Password: "secret1",
		FullName: fullName,
	})
	require.NoError(t, err)

	return f.authenticate(t, out.Token)
}

func (f serviceFixtures) loginAdmin(t *testing.T) *service.Claims {
	t.Helper()

	out, err := f.accounts.Login(context.Background(), &usecase.LoginInput{Email: seedAdminEmail, Password: seedAdminPassword})
	require.NoError(t, err)

	return f.authenticate(t, out.Token)
}

func (f serviceFixtures) authenticate(t *testing.T, token string) *service.Claims {
	t.Helper()

	claims, err := f.accounts.Authenticate(context.Background(), "Bearer "+token)
	require.NoError(t, err)

	return claims
}

// requireAppError asserts the error carries the expected status and code.
func requireAppError(t *testing.T, err error, httpCode int, errorCode string) domainerrors.AppError {
	t.Helper()

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, httpCode, appErr.HTTPCode())
	require.Equal(t, errorCode, appErr.ErrorCode())

	return appErr
}

func strPtr(s string) *string { return &s }
