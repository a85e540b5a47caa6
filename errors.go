package activitydb

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrBackendUnavailable is the startup-probe failure. The backend
	// selector absorbs it and routes the process to the fallback store;
	// later callers never see it.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrInvalidConfig reports a configuration that cannot bind any
	// backend.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ErrorWithContext adds additional context to errors for better
// debugging and logging
type ErrorWithContext struct {
	Err     error
	Context map[string]interface{}
}

func (e *ErrorWithContext) Error() string {
	if len(e.Context) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v (context: %+v)", e.Err, e.Context)
}

func (e *ErrorWithContext) Unwrap() error {
	return e.Err
}

// WithContext adds context to an error
func WithContext(err error, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ErrorWithContext{
		Err:     err,
		Context: context,
	}
}

// IsBackendUnavailable checks if an error is a startup probe failure
func IsBackendUnavailable(err error) bool {
	return errors.Is(err, ErrBackendUnavailable)
}
