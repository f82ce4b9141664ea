package services

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUsernameTaken      = errors.New("username is already registered")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrCategoryExists     = errors.New("a category with this name already exists")
	ErrPresetCategory     = errors.New("preset categories cannot be deleted")
	ErrCategoryForbidden  = errors.New("not authorized to use this category")
	ErrInternal           = errors.New("internal server error")
)

// ValidationError carries every failed check for a request so the caller can
// report all problems at once instead of stopping at the first.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}
