// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered person able to log in and own tasks.
type Account struct {
	ID           uuid.UUID // Assigned by the store, immutable afterwards.
	Email        string    // Lower-cased login identifier, unique across accounts.
	PasswordHash string    // bcrypt digest, never leaves the service layer.
	FullName     string    // Display name.
	Role         Role      // RoleStandard unless provisioned otherwise.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountPatch lists the account fields that may change after creation.
// A nil field is left untouched.
type AccountPatch struct {
	Email        *string
	PasswordHash *string
	FullName     *string
	Role         *Role
}

// PublicAccount is the projection of an Account that is safe to return to callers.
type PublicAccount struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public strips the password hash.
func (a *Account) Public() *PublicAccount {
	return &PublicAccount{
		ID:        a.ID,
		Email:     a.Email,
		FullName:  a.FullName,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// IsAdministrator reports whether the account holds the administrator role.
func (a *Account) IsAdministrator() bool {
	return a.Role == RoleAdministrator
}
