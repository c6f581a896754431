// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/service"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email_format"`
	Password string `json:"password" validate:"required,min=6,max_bytes=72"`
	FullName string `json:"fullName" validate:"required,trimmed_min=2"`
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email_format"`
	Password string `json:"password" validate:"required,min=6"`
}

// --- Output DTOs ---

// AuthOutput is returned by Register and Login.
type AuthOutput struct {
	User  *entity.PublicAccount `json:"user"`
	Token string                `json:"token"`
}

// AccountUsecase defines the account and session operations.
// This is the contract that the delivery layer depends on.
type AccountUsecase interface {
	// Register creates a standard account and signs the caller in.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	// Login exchanges credentials for a session token.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	// Authenticate resolves an Authorization header to the session claims.
	Authenticate(ctx context.Context, authHeader string) (*service.Claims, error)
	// VerifySession returns the account behind an authenticated session.
	VerifySession(ctx context.Context, claims *service.Claims) (*entity.PublicAccount, error)
	// ListAccounts returns every account. Administrators only.
	ListAccounts(ctx context.Context, claims *service.Claims) ([]*entity.PublicAccount, error)
}
