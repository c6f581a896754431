// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "taskboard/internal/delivery/context"
	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/repository"
	"taskboard/internal/domain/service"
	"taskboard/internal/usecase"
	"taskboard/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	validator    service.InputValidator
	logger       *slog.Logger

	// registerMu makes the duplicate check and the insert one step.
	registerMu sync.Mutex
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Validator    service.InputValidator
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		validator:    params.Validator,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the input, stores a standard account and issues its first token.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if fields := srv.validator.Validate(input); len(fields) > 0 {
		return nil, domainerrors.NewValidationError(fields)
	}

	email := util.NormalizeEmail(input.Email)
	fullName := util.SanitizeInput(input.FullName)

	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	if _, exists := srv.accountRepo.FindAccountByEmail(ctx, email); exists {
		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.String("email", email), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to hash password")
	}

	account, err := srv.createIfAbsent(ctx, repository.NewAccount{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         entity.RoleStandard,
	})
	if err != nil {
		return nil, err
	}

	output, err := srv.issueSession(ctx, account)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", account.ID))

	return output, nil
}

// createIfAbsent re-checks the email under registerMu so that two concurrent
// registrations of one address cannot both succeed.
func (srv *accountService) createIfAbsent(ctx context.Context, input repository.NewAccount) (*entity.Account, error) {
	srv.registerMu.Lock()
	defer srv.registerMu.Unlock()

	if _, exists := srv.accountRepo.FindAccountByEmail(ctx, input.Email); exists {
		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("email registered concurrently")
	}

	account, err := srv.accountRepo.CreateAccount(ctx, input)
	if err != nil {
		srv.log(ctx).Error("Failed to create account", slog.String("email", input.Email), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to create account")
	}

	return account, nil
}

// Login checks the credentials. Unknown email and wrong password are indistinguishable to the caller.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if fields := srv.validator.Validate(input); len(fields) > 0 {
		return nil, domainerrors.NewValidationError(fields)
	}

	email := util.NormalizeEmail(input.Email)

	account, ok := srv.accountRepo.FindAccountByEmail(ctx, email)
	if !ok {
		srv.log(ctx).Debug("Login for unknown email", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("account not found")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Debug("Login with wrong password", slog.Any("accountID", account.ID))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	return srv.issueSession(ctx, account)
}

func (srv *accountService) issueSession(ctx context.Context, account *entity.Account) (*usecase.AuthOutput, error) {
	token, err := srv.tokenService.Issue(account.ID, account.Email, account.Role)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to issue token")
	}

	return &usecase.AuthOutput{User: account.Public(), Token: token}, nil
}

// Authenticate extracts the bearer token and verifies it. Every verification
// failure is reported as the same unauthenticated error.
func (srv *accountService) Authenticate(ctx context.Context, authHeader string) (*service.Claims, error) {
	token, ok := service.ExtractBearerToken(authHeader)
	if !ok {
		return nil, domainerrors.ErrMissingToken
	}

	claims, err := srv.tokenService.Verify(token)
	if err != nil {
		srv.log(ctx).Debug("Token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrUnauthenticated.WrapMessage(err.Error())
	}

	return claims, nil
}

// VerifySession resolves the claims to the current account record.
func (srv *accountService) VerifySession(ctx context.Context, claims *service.Claims) (*entity.PublicAccount, error) {
	if claims == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	account, ok := srv.accountRepo.FindAccountByID(ctx, claims.Subject)
	if !ok {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("session subject no longer exists")
	}

	return account.Public(), nil
}

// ListAccounts returns every account in creation order.
func (srv *accountService) ListAccounts(ctx context.Context, claims *service.Claims) ([]*entity.PublicAccount, error) {
	if claims == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	if err := service.AuthorizeAdmin(claims); err != nil {
		srv.log(ctx).Warn("Account listing denied", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrAdminRequired, err.Error())
	}

	accounts := srv.accountRepo.ListAccounts(ctx)
	out := make([]*entity.PublicAccount, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, account.Public())
	}

	return out, nil
}
