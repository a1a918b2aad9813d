package core

import (
	"errors"
	"fmt"
)

// Status codes from the host error table.
const (
	StatusOK                = 0
	SysInvalidInputParam    = -130000
	SysInternalNullInputErr = -154000
)

var (
	// ErrNullInput reports a required argument that was absent.
	ErrNullInput = errors.New("null input")
	// ErrInvalidParameter reports an argument that could not be used, either
	// because it did not resolve to text or because its value is not accepted.
	ErrInvalidParameter = errors.New("invalid input parameter")
)

// StatusError ties an error to the status code handed back to the host.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v (status %d)", e.Err, e.Code)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// NullInputError returns a StatusError for absent arguments.
func NullInputError(format string, args ...any) error {
	return &StatusError{
		Code: SysInternalNullInputErr,
		Err:  fmt.Errorf("%w: %s", ErrNullInput, fmt.Sprintf(format, args...)),
	}
}

// InvalidParameterError returns a StatusError for unusable arguments.
func InvalidParameterError(format string, args ...any) error {
	return &StatusError{
		Code: SysInvalidInputParam,
		Err:  fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...)),
	}
}

// StatusCode maps err to a host status code. Errors that carry no code are
// reported as invalid input.
func StatusCode(err error) int {
	if err == nil {
		return StatusOK
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return SysInvalidInputParam
}

// StatusName returns the host name of a status code.
func StatusName(code int) string {
	switch code {
	case StatusOK:
		return "OK"
	case SysInvalidInputParam:
		return "SYS_INVALID_INPUT_PARAM"
	case SysInternalNullInputErr:
		return "SYS_INTERNAL_NULL_INPUT_ERR"
	default:
		return fmt.Sprintf("STATUS_%d", code)
	}
}
