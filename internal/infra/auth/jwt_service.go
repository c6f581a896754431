// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"time"

	"taskboard/config"
	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/service"
	"taskboard/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultTokenTTL = 24 * time.Hour
	tokenSegments   = 3
)

// sessionClaims is the JSON body of a session token.
type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using HS256-signed JWTs.
type jwtService struct {
	secret []byte           // Key for the HMAC over header and claims.
	ttl    time.Duration    // Validity window added to the issue time.
	now    func() time.Time // Clock used for issuing and expiry checks.
	parser *jwt.Parser
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	return NewJWTServiceWithClock(cfg, time.Now)
}

// NewJWTServiceWithClock is NewJWTService with an explicit clock.
func NewJWTServiceWithClock(cfg *config.Config, now func() time.Time) (service.TokenService, error) {
	if cfg == nil || cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	ttl := defaultTokenTTL
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	s := &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    ttl,
		now:    now,
	}
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
		// jwt rejects now == exp; a token stays valid through its exp instant.
		jwt.WithLeeway(time.Nanosecond),
	)

	return s, nil
}

// Issue creates a token for the account that expires ttl after now.
func (s *jwtService) Issue(subject uuid.UUID, email string, role entity.Role) (string, error) {
	issuedAt := s.now()
	claims := sessionClaims{
		Email: email,
		Role:  role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return token, nil
}

// Verify parses the token and reports why it is unusable, if it is.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	if len(strings.Split(tokenString, ".")) != tokenSegments {
		return nil, service.ErrMalformedToken
	}

	claims := &sessionClaims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(service.ErrMalformedToken, "subject is not an account id")
	}

	role := entity.Role(claims.Role)
	if !role.IsValid() {
		return nil, errors.Wrapf(service.ErrMalformedToken, "unknown role %q", claims.Role)
	}

	return &service.Claims{
		Subject:   subject,
		Email:     claims.Email,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// classifyParseError maps jwt parser errors onto the three token failures.
// The signature is checked before the claims, so a forged expired token
// reports a signature error.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return errors.Wrap(service.ErrMalformedToken, err.Error())
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.Wrap(service.ErrTokenExpired, err.Error())
	default:
		return errors.Wrap(service.ErrInvalidSignature, err.Error())
	}
}
