package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Run-fatal and per-document error categories. Configuration, discovery and
// conversion errors terminate the run; document and extraction errors are
// scoped to a single input and recorded in its outcome.
var (
	ErrConfiguration      = errors.New("configuration error")
	ErrDiscovery          = errors.New("discovery error")
	ErrConversion         = errors.New("conversion error")
	ErrNoData             = errors.New("no data to convert")
	ErrDocumentUnreadable = errors.New("document unreadable")
	ErrModelUnavailable   = errors.New("model unavailable")
	ErrMalformedOutput    = errors.New("malformed model output")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
