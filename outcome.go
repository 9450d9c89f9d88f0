package execution

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/blockberries/execution/types"
)

// Outcome is the execution metadata of a transaction or of one
// receipt it generated.
type Outcome struct {
	// Hash of the transaction or receipt that produced this outcome.
	TransactionHash types.CryptoHash
	// Hash of the block the outcome was recorded in.
	BlockHash types.CryptoHash
	// Logs emitted by this step, in order.
	Logs []string
	// Receipts generated by this step.
	ReceiptIDs  []types.CryptoHash
	GasBurnt    types.Gas
	TokensBurnt types.Balance
	// Signer for the transaction, receiver for a receipt.
	ExecutorID types.AccountID

	status types.ExecutionStatusView
}

func newOutcome(view types.ExecutionOutcomeWithIDView) Outcome {
	return Outcome{
		TransactionHash: view.ID,
		BlockHash:       view.BlockHash,
		Logs:            slices.Clone(view.Outcome.Logs),
		ReceiptIDs:      slices.Clone(view.Outcome.ReceiptIDs),
		GasBurnt:        view.Outcome.GasBurnt,
		TokensBurnt:     view.Outcome.TokensBurnt,
		ExecutorID:      view.Outcome.ExecutorID,
		status:          view.Outcome.Status.Clone(),
	}
}

// clone returns a copy of o that shares no slices with it.
func (o Outcome) clone() Outcome {
	o.Logs = slices.Clone(o.Logs)
	o.ReceiptIDs = slices.Clone(o.ReceiptIDs)
	o.status = o.status.Clone()
	return o
}

// Status returns the raw status of this step.
func (o Outcome) Status() types.ExecutionStatusView { return o.status.Clone() }

// IsSuccess returns true if the step produced a value or forwarded
// its result to another receipt.
func (o Outcome) IsSuccess() bool {
	switch o.status.Kind {
	case types.ExecutionStatusSuccessValue, types.ExecutionStatusSuccessReceiptID:
		return true
	default:
		return false
	}
}

// IsFailure returns true if the step failed or its status is still
// unknown. A pending step is never reported as a success.
func (o Outcome) IsFailure() bool {
	switch o.status.Kind {
	case types.ExecutionStatusFailure, types.ExecutionStatusUnknown:
		return true
	default:
		return false
	}
}

// IntoResult converts the status of this step into either its value or
// the receipt it forwarded to. A failed step yields an
// *ExecutionError, an unknown one a *StatusError.
func (o Outcome) IntoResult() (ValueOrReceiptID, error) {
	switch o.status.Kind {
	case types.ExecutionStatusSuccessValue:
		v := valueFromBytes(o.status.Value)
		return ValueOrReceiptID{value: &v}, nil
	case types.ExecutionStatusSuccessReceiptID:
		id := o.status.ReceiptID
		return ValueOrReceiptID{receiptID: &id}, nil
	case types.ExecutionStatusFailure:
		if o.status.Failure == nil {
			return ValueOrReceiptID{}, NewStatusError("Failure without error")
		}
		return ValueOrReceiptID{}, NewExecutionError(*o.status.Failure)
	default:
		return ValueOrReceiptID{}, NewStatusError(o.status.Kind.String())
	}
}

func (o Outcome) MarshalZerologObject(e *zerolog.Event) {
	e.Stringer("id", o.TransactionHash).
		Stringer("block", o.BlockHash).
		Str("executor", string(o.ExecutorID)).
		Uint64("gasBurnt", uint64(o.GasBurnt)).
		Stringer("tokensBurnt", o.TokensBurnt).
		Stringer("status", o.status.Kind).
		Int("logs", len(o.Logs))
}

// ValueOrReceiptID is the success of a single step: either a value,
// or the id of the receipt the step handed its result to.
type ValueOrReceiptID struct {
	value     *Value
	receiptID *types.CryptoHash
}

// Value returns the value, if the step produced one.
func (r ValueOrReceiptID) Value() (Value, bool) {
	if r.value == nil {
		return Value{}, false
	}
	return *r.value, true
}

// ReceiptID returns the forwarded receipt id, if the step forwarded.
func (r ValueOrReceiptID) ReceiptID() (types.CryptoHash, bool) {
	if r.receiptID == nil {
		return types.CryptoHash{}, false
	}
	return *r.receiptID, true
}
