package middleware

import (
	"log/slog"

	"taskboard/internal/delivery/api/response"
	deliverycontext "taskboard/internal/delivery/context"
	"taskboard/internal/domain/entity"
	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/service"
	"taskboard/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const headerAuthorization = "Authorization"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	Logger    *slog.Logger
}

// AuthMiddleware provides middleware for session authentication and authorization.
type AuthMiddleware struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{accountUC: params.AccountUC, logger: params.Logger}
}

// Authenticate verifies the bearer token and stores the claims for handlers.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx := req.Context()

		claims, err := m.accountUC.Authenticate(ctx, req.Header.Get(headerAuthorization))
		if err != nil {
			return response.HandleAppError(c, err)
		}

		deliverycontext.SetClaims(c, claims)

		logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger).With(slog.String("account_id", claims.Subject.String()))
		c.SetRequest(req.WithContext(deliverycontext.WithLogger(ctx, logger)))

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the caller holds a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := GetClaims(c)
			if !ok {
				return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
			}

			if claims.Role != requiredRole {
				if requiredRole == entity.RoleAdministrator {
					return response.HandleAppError(c, domainerrors.ErrAdminRequired)
				}

				return response.HandleAppError(c, domainerrors.ErrForbidden)
			}

			return next(c)
		}
	}
}

// GetClaims returns the claims stored by Authenticate.
func GetClaims(c echo.Context) (*service.Claims, bool) {
	return deliverycontext.GetClaims(c)
}
