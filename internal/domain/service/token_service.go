package service

import (
	"strings"
	"time"

	"taskboard/internal/domain/entity"
	"taskboard/internal/errors"

	"github.com/google/uuid"
)

// Token verification failures. Callers outside the token service should
// collapse all of them into a single unauthenticated response.
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
)

const bearerPrefix = "Bearer "

// Claims is the identity carried by a session token.
type Claims struct {
	Subject   uuid.UUID
	Email     string
	Role      entity.Role
	ExpiresAt time.Time
}

// IsAdministrator reports whether the claims carry the administrator role.
func (c *Claims) IsAdministrator() bool {
	return c.Role == entity.RoleAdministrator
}

// TokenService defines the interface for issuing and verifying session tokens.
// Tokens are stateless: they are never stored and only expire.
type TokenService interface {
	// Issue mints a signed token valid for the configured window.
	Issue(subject uuid.UUID, email string, role entity.Role) (string, error)

	// Verify checks shape, signature and expiry, in that order, and returns the embedded claims.
	Verify(token string) (*Claims, error)
}

// ExtractBearerToken returns the token from an Authorization header of the
// form "Bearer <token>". Any other shape yields ok == false.
func ExtractBearerToken(header string) (token string, ok bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}

	token = header[len(bearerPrefix):]
	if token == "" {
		return "", false
	}

	return token, true
}
