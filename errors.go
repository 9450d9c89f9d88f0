package execution

import (
	"errors"
	"fmt"

	"github.com/blockberries/execution/types"
)

// ErrEmptyValue is reported when JSON decoding is requested for an
// empty payload. This most commonly means the called function returns
// nothing.
var ErrEmptyValue = errors.New("the function call returned an empty value, which cannot be parsed")

// ExecutionError signals that the called function's own logic
// failed on chain. It carries the structured error.
type ExecutionError struct {
	Err types.TxExecutionError
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution failed: %s", e.Err.Error())
}

// NewExecutionError creates a new ExecutionError.
func NewExecutionError(err types.TxExecutionError) *ExecutionError {
	return &ExecutionError{Err: err}
}

// IsExecution checks whether an error is an ExecutionError and returns it.
func IsExecution(err error) (*ExecutionError, bool) {
	var e *ExecutionError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// DataConversionError signals that a payload could not be decoded
// into the requested format.
type DataConversionError struct {
	Format string
	Err    error
}

func (e *DataConversionError) Error() string {
	return fmt.Sprintf("cannot decode value as %s: %v", e.Format, e.Err)
}

func (e *DataConversionError) Unwrap() error { return e.Err }

// NewDataConversionError creates a new DataConversionError.
func NewDataConversionError(format string, err error) *DataConversionError {
	return &DataConversionError{Format: format, Err: err}
}

// IsDataConversion checks whether an error is a DataConversionError
// and returns it.
func IsDataConversion(err error) (*DataConversionError, bool) {
	var e *DataConversionError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// StatusError signals a status that is neither success nor failure:
// an outcome whose execution is pending or unknown, or a final
// result that has not reached a terminal status.
type StatusError struct {
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("execution pending or unknown (status %s)", e.Status)
}

// NewStatusError creates a new StatusError.
func NewStatusError(status string) *StatusError {
	return &StatusError{Status: status}
}

// IsStatus checks whether an error is a StatusError and returns it.
func IsStatus(err error) (*StatusError, bool) {
	var e *StatusError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
