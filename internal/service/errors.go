package service

import (
	"errors"
	"strings"

	"github.com/comment-dashboard-api/internal/validation"
)

// ErrCommentNotFound is returned when the target comment does not exist
var ErrCommentNotFound = errors.New("comment not found")

// ValidationError is returned when a request is rejected before touching the store
type ValidationError struct {
	Errors []validation.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func newValidationError(errs []validation.FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}
