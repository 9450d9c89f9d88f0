package execution

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/blockberries/execution/types"
)

// FinalResult is the unclassified outcome of a transaction submission.
// Only the top-level status decides between success and failure;
// receipt statuses never do. Use IntoResult to classify it.
type FinalResult struct {
	*ExecutionDetails
	status types.FinalExecutionStatus
}

// NewFinalResult builds a FinalResult from a transport view.
func NewFinalResult(view types.FinalExecutionOutcomeView) *FinalResult {
	return &FinalResult{
		ExecutionDetails: newExecutionDetails(view),
		status:           view.Status.Clone(),
	}
}

// Status returns the top-level status.
func (r *FinalResult) Status() types.FinalExecutionStatus { return r.status.Clone() }

// IsSuccess returns true if the top-level status is SuccessValue.
func (r *FinalResult) IsSuccess() bool {
	return r.status.Kind == types.FinalStatusSuccessValue
}

// IsFailure returns true if the top-level status is Failure.
func (r *FinalResult) IsFailure() bool {
	return r.status.Kind == types.FinalStatusFailure
}

// IsPending returns true if the transaction has not reached a
// terminal status. Such a result classifies to neither branch.
func (r *FinalResult) IsPending() bool {
	return !r.status.IsTerminal()
}

// IntoResult classifies the result. On success it returns an
// *ExecutionSuccess holding the top-level payload. On failure the
// error is an *ExecutionFailure carrying the on-chain error. A
// non-terminal status yields a *StatusError. No payload decoding
// happens here.
//
// Both branches share this result's details; nothing is copied.
func (r *FinalResult) IntoResult() (*ExecutionSuccess, error) {
	switch r.status.Kind {
	case types.FinalStatusSuccessValue:
		return &ExecutionSuccess{
			ExecutionDetails: r.ExecutionDetails,
			value:            valueFromBytes(r.status.Value),
		}, nil
	case types.FinalStatusFailure:
		if r.status.Failure == nil {
			return nil, NewStatusError("Failure without error")
		}
		return nil, &ExecutionFailure{
			ExecutionDetails: r.ExecutionDetails,
			err:              *r.status.Failure,
		}
	default:
		return nil, NewStatusError(r.status.Kind.String())
	}
}

// JSON classifies the result and decodes its payload as JSON. A
// failed result returns its *ExecutionFailure.
func (r *FinalResult) JSON(v any) error {
	s, err := r.IntoResult()
	if err != nil {
		return err
	}
	return s.JSON(v)
}

// Binary classifies the result and decodes its payload as cramberry
// binary.
func (r *FinalResult) Binary(v any) error {
	s, err := r.IntoResult()
	if err != nil {
		return err
	}
	return s.Binary(v)
}

// RawBytes classifies the result and returns its payload bytes.
func (r *FinalResult) RawBytes() ([]byte, error) {
	s, err := r.IntoResult()
	if err != nil {
		return nil, err
	}
	return s.RawBytes()
}

func (r *FinalResult) MarshalZerologObject(e *zerolog.Event) {
	e.Stringer("status", r.status.Kind)
	r.marshalDetails(e)
}

// ExecutionSuccess is a transaction whose top-level status succeeded.
// Individual receipts may still have failed; see Failures.
type ExecutionSuccess struct {
	*ExecutionDetails
	value Value
}

// Value returns the top-level payload.
func (s *ExecutionSuccess) Value() Value { return s.value }

func (s *ExecutionSuccess) JSON(v any) error { return s.value.JSON(v) }

func (s *ExecutionSuccess) Binary(v any) error { return s.value.Binary(v) }

func (s *ExecutionSuccess) RawBytes() ([]byte, error) { return s.value.RawBytes() }

func (s *ExecutionSuccess) MarshalZerologObject(e *zerolog.Event) {
	e.Str("value", s.value.String())
	s.marshalDetails(e)
}

// ExecutionFailure is a transaction whose top-level status failed. It
// is an error, and it keeps the same details as a success so that
// logs and receipts can still be inspected.
type ExecutionFailure struct {
	*ExecutionDetails
	err types.TxExecutionError
}

// TxError returns the structured on-chain error.
func (f *ExecutionFailure) TxError() types.TxExecutionError { return f.err.Clone() }

func (f *ExecutionFailure) Error() string {
	return NewExecutionError(f.err).Error()
}

// Unwrap exposes the failure as an *ExecutionError.
func (f *ExecutionFailure) Unwrap() error {
	return NewExecutionError(f.err)
}

func (f *ExecutionFailure) MarshalZerologObject(e *zerolog.Event) {
	e.Str("error", f.err.Error())
	f.marshalDetails(e)
}

// IsFailure checks whether an error is an ExecutionFailure and
// returns it.
func IsFailure(err error) (*ExecutionFailure, bool) {
	var f *ExecutionFailure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Execution pairs a caller-level value with the result of the
// transaction that produced it, e.g. the id of a deployed contract.
type Execution[T any] struct {
	Result  T
	Details *FinalResult
}

// IntoResult returns the value if the transaction succeeded, and the
// classification error otherwise.
func (e Execution[T]) IntoResult() (T, error) {
	if _, err := e.Details.IntoResult(); err != nil {
		var zero T
		return zero, err
	}
	return e.Result, nil
}

func (e Execution[T]) IsSuccess() bool { return e.Details.IsSuccess() }

func (e Execution[T]) IsFailure() bool { return e.Details.IsFailure() }
