package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors the service layer returns. Controllers map these onto HTTP
// statuses; anything unrecognized is treated as an internal error.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrQuizUnavailable    = errors.New("quiz is not available")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrDuplicateQuestion  = errors.New("question already exists")
	ErrDuplicateQuizTitle = errors.New("a quiz with this title already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRegistered    = errors.New("email is already registered")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrAttemptExpired     = errors.New("attempt has expired")
)

// ValidationError carries the names of the request fields that failed
// validation so the client can highlight them.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError for the given field names.
func NewValidationError(fields ...string) error {
	return &ValidationError{Fields: fields}
}

// AsValidationError extracts a ValidationError from err if present.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
