package service

import (
	"fmt"

	"github.com/google/uuid"
)

// AccessDeniedError is returned by the authorization gate. Reason is meant for logs.
type AccessDeniedError struct {
	Reason string
}

func (e *AccessDeniedError) Error() string {
	return "access denied: " + e.Reason
}

// AuthorizeOwnerOrAdmin permits administrators and the owner of the resource.
func AuthorizeOwnerOrAdmin(claims *Claims, ownerID uuid.UUID) error {
	if claims == nil {
		return &AccessDeniedError{Reason: "no identity"}
	}
	if claims.IsAdministrator() || claims.Subject == ownerID {
		return nil
	}

	return &AccessDeniedError{Reason: fmt.Sprintf("account %s does not own a resource of %s", claims.Subject, ownerID)}
}

// AuthorizeAdmin permits administrators only.
func AuthorizeAdmin(claims *Claims) error {
	if claims == nil {
		return &AccessDeniedError{Reason: "no identity"}
	}
	if claims.IsAdministrator() {
		return nil
	}

	return &AccessDeniedError{Reason: fmt.Sprintf("account %s is not an administrator", claims.Subject)}
}
