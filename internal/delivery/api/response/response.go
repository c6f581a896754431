// Package response renders every API reply in one envelope.
package response

import (
	"net/http"

	domainerrors "taskboard/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Envelope is the body of every response. Exactly one of Data and Error is set.
type Envelope struct {
	Success    bool       `json:"success"`
	Data       any        `json:"data,omitempty"`
	Error      *ErrorInfo `json:"error,omitempty"`
	StatusCode int        `json:"statusCode"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code        string                    `json:"code"`                  // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Message     string                    `json:"message"`               // User-friendly error message
	FieldErrors []domainerrors.FieldError `json:"fieldErrors,omitempty"` // Per-field failures, 400 only
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, Envelope{
		Success:    true,
		Data:       data,
		StatusCode: statusCode,
	})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, fieldErrors []domainerrors.FieldError) error {
	if statusCode != http.StatusBadRequest {
		fieldErrors = nil
	}

	return c.JSON(statusCode, Envelope{
		Success: false,
		Error: &ErrorInfo{
			Code:        errorCode,
			Message:     message,
			FieldErrors: fieldErrors,
		},
		StatusCode: statusCode,
	})
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context) error {
	return FromAppError(c, domainerrors.ErrInternalError)
}

// FromAppError renders an AppError, attaching field errors for validation failures.
func FromAppError(c echo.Context, appErr domainerrors.AppError) error {
	var fields []domainerrors.FieldError
	var verr *domainerrors.ValidationError
	if errors.As(appErr, &verr) {
		fields = verr.Fields()
	}

	return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), fields)
}

// HandleAppError handles application errors, converting domain errors to appropriate HTTP responses.
// Anything else is returned for the centralized error handler.
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return FromAppError(c, appErr)
	}

	return errors.WithStack(err)
}
