// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"taskboard/internal/domain/entity"

	"github.com/google/uuid"
)

// NewAccount holds the caller-supplied fields of an account about to be created.
type NewAccount struct {
	Email        string
	PasswordHash string
	FullName     string
	Role         entity.Role
}

// AccountRepository defines the operations on the account table and its email index.
// Lookups report absence with a false second result, never with an error.
type AccountRepository interface {
	// CreateAccount assigns an id and timestamps and indexes the lower-cased email.
	// Email uniqueness is the caller's responsibility.
	CreateAccount(ctx context.Context, input NewAccount) (*entity.Account, error)

	// FindAccountByEmail looks the account up through the case-insensitive email index.
	FindAccountByEmail(ctx context.Context, email string) (*entity.Account, bool)

	// FindAccountByID retrieves a single account by its id.
	FindAccountByID(ctx context.Context, id uuid.UUID) (*entity.Account, bool)

	// ListAccounts returns every account in insertion order.
	ListAccounts(ctx context.Context) []*entity.Account

	// UpdateAccount merges the patch, refreshes UpdatedAt and keeps ID and CreatedAt.
	UpdateAccount(ctx context.Context, id uuid.UUID, patch entity.AccountPatch) (*entity.Account, bool)
}
