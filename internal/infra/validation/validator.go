// Package validation implements the InputValidator with go-playground/validator.
package validation

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/domain/service"
	"taskboard/internal/errors"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// messages maps field and failed tag to the text shown to the caller.
// Fields without an entry fall back to a generic message.
var messages = map[string]map[string]string{
	"email": {
		"required":     "Email is required",
		"email_format": "Invalid email format",
	},
	"password": {
		"required":  "Password is required",
		"min":       "Password must be at least 6 characters long",
		"max_bytes": "Password must be at most 72 bytes",
	},
	"fullName": {
		"required":    "Full name is required",
		"trimmed_min": "Full name must be at least 2 characters long",
	},
	"title": {
		"required":    "Title is required",
		"trimmed_min": "Title must be at least 3 characters long",
	},
	"status": {
		"required": "Status is required",
		"oneof":    "Invalid status. Must be: pending, in_progress, or completed",
	},
	"priority": {
		"required": "Priority is required",
		"oneof":    "Invalid priority. Must be: low, medium, or high",
	},
}

type inputValidator struct {
	validate *validator.Validate
}

// New builds the validator and registers the custom tags.
func New() (service.InputValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json field names so that messages line up with the request body.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	if err := v.RegisterValidation("email_format", validateEmailFormat); err != nil {
		return nil, errors.Wrap(err, "register email_format")
	}
	if err := v.RegisterValidation("trimmed_min", validateTrimmedMin); err != nil {
		return nil, errors.Wrap(err, "register trimmed_min")
	}
	if err := v.RegisterValidation("max_bytes", validateMaxBytes); err != nil {
		return nil, errors.Wrap(err, "register max_bytes")
	}

	return &inputValidator{validate: v}, nil
}

// Validate returns one FieldError per failing field, in struct order.
func (iv *inputValidator) Validate(input any) []domainerrors.FieldError {
	err := iv.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domainerrors.FieldError{{Field: "", Message: err.Error()}}
	}

	fields := make([]domainerrors.FieldError, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		if seen[fe.Field()] {
			continue
		}
		seen[fe.Field()] = true
		fields = append(fields, domainerrors.FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}

	return fields
}

func messageFor(fe validator.FieldError) string {
	if byTag, ok := messages[fe.Field()]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
	}

	return fe.Field() + " is invalid"
}

func validateEmailFormat(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

// validateTrimmedMin checks the rune length after trimming surrounding whitespace.
func validateTrimmedMin(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= limit
}

// validateMaxBytes bounds the encoded length, which is what bcrypt limits.
func validateMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return len(fl.Field().String()) <= limit
}
