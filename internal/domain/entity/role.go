// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role an account can have in the system.
type Role string

const (
	// RoleStandard is assigned to every self-registered account.
	RoleStandard Role = "standard"
	// RoleAdministrator may list all accounts and act on every task.
	RoleAdministrator Role = "administrator"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleStandard, RoleAdministrator:
		return true
	default:
		return false
	}
}
