package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError reports a single invalid configuration value
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
}

// ValidationError collects every failed validation rule
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "config error: " + strings.Join(parts, "; ")
}

func newValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config error: %w", err)
	}

	out := &ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		msg := "failed rule " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out.Errors = append(out.Errors, FieldError{Field: fe.Namespace(), Message: msg})
	}
	return out
}
