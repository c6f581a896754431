package service

import domainerrors "taskboard/internal/domain/errors"

// InputValidator checks request payloads field by field.
// An empty result means the input passed.
type InputValidator interface {
	Validate(input any) []domainerrors.FieldError
}
