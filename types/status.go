package types

import (
	"bytes"
	"fmt"
	"strconv"
)

// ExecutionStatusKind enumerates the per-outcome statuses.
type ExecutionStatusKind uint8

const (
	// ExecutionStatusUnknown means execution is pending or the
	// status could not be determined.
	ExecutionStatusUnknown ExecutionStatusKind = iota
	ExecutionStatusFailure
	ExecutionStatusSuccessValue
	// ExecutionStatusSuccessReceiptID means the outcome forwarded its
	// result to another receipt.
	ExecutionStatusSuccessReceiptID
)

func (k ExecutionStatusKind) String() string {
	switch k {
	case ExecutionStatusUnknown:
		return "Unknown"
	case ExecutionStatusFailure:
		return "Failure"
	case ExecutionStatusSuccessValue:
		return "SuccessValue"
	case ExecutionStatusSuccessReceiptID:
		return "SuccessReceiptId"
	default:
		return fmt.Sprintf("ExecutionStatusKind(%d)", uint8(k))
	}
}

// ExecutionStatusView is the status of one transaction or receipt
// outcome. Exactly one of Value, ReceiptID, Failure is meaningful,
// selected by Kind.
type ExecutionStatusView struct {
	Kind      ExecutionStatusKind `cramberry:"1"`
	Value     []byte              `cramberry:"2"`
	ReceiptID CryptoHash          `cramberry:"3"`
	Failure   *TxExecutionError   `cramberry:"4"`
}

// Clone returns a copy that shares no memory with s.
func (s ExecutionStatusView) Clone() ExecutionStatusView {
	s.Value = bytes.Clone(s.Value)
	if s.Failure != nil {
		f := s.Failure.Clone()
		s.Failure = &f
	}
	return s
}

func SuccessValueStatus(value []byte) ExecutionStatusView {
	return ExecutionStatusView{Kind: ExecutionStatusSuccessValue, Value: value}
}

func SuccessReceiptIDStatus(id CryptoHash) ExecutionStatusView {
	return ExecutionStatusView{Kind: ExecutionStatusSuccessReceiptID, ReceiptID: id}
}

func FailureStatus(err TxExecutionError) ExecutionStatusView {
	return ExecutionStatusView{Kind: ExecutionStatusFailure, Failure: &err}
}

func UnknownStatus() ExecutionStatusView {
	return ExecutionStatusView{Kind: ExecutionStatusUnknown}
}

func (s ExecutionStatusView) validate() error {
	switch s.Kind {
	case ExecutionStatusUnknown, ExecutionStatusSuccessValue, ExecutionStatusSuccessReceiptID:
		return nil
	case ExecutionStatusFailure:
		if s.Failure == nil {
			return fmt.Errorf("%w: failure status without an error", ErrInvalidView)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown execution status kind %d", ErrInvalidView, s.Kind)
	}
}

func (s ExecutionStatusView) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case ExecutionStatusUnknown:
		return []byte(strconv.Quote(s.Kind.String())), nil
	case ExecutionStatusSuccessValue:
		// []byte is rendered as standard base64, as on the wire.
		return json.Marshal(map[string][]byte{s.Kind.String(): nonNil(s.Value)})
	case ExecutionStatusSuccessReceiptID:
		return json.Marshal(map[string]CryptoHash{s.Kind.String(): s.ReceiptID})
	case ExecutionStatusFailure:
		return json.Marshal(map[string]*TxExecutionError{s.Kind.String(): s.Failure})
	default:
		return nil, fmt.Errorf("marshal execution status: unknown kind %d", s.Kind)
	}
}

func (s *ExecutionStatusView) UnmarshalJSON(data []byte) error {
	name, body, err := decodeVariant(data)
	if err != nil {
		return fmt.Errorf("execution status: %w", err)
	}
	*s = ExecutionStatusView{}
	switch name {
	case ExecutionStatusUnknown.String():
		s.Kind = ExecutionStatusUnknown
	case ExecutionStatusSuccessValue.String():
		s.Kind = ExecutionStatusSuccessValue
		if err := unmarshalValue(body, &s.Value); err != nil {
			return fmt.Errorf("execution status: %w", err)
		}
	case ExecutionStatusSuccessReceiptID.String():
		s.Kind = ExecutionStatusSuccessReceiptID
		if err := json.Unmarshal(body, &s.ReceiptID); err != nil {
			return fmt.Errorf("execution status: %w", err)
		}
	case ExecutionStatusFailure.String():
		s.Kind = ExecutionStatusFailure
		s.Failure = new(TxExecutionError)
		if err := json.Unmarshal(body, s.Failure); err != nil {
			return fmt.Errorf("execution status: %w", err)
		}
	default:
		return fmt.Errorf("execution status: unknown variant %q", name)
	}
	return nil
}

// FinalExecutionStatusKind enumerates the top-level statuses of a
// transaction submission.
type FinalExecutionStatusKind uint8

const (
	// FinalStatusNotStarted means the transaction is not known yet.
	FinalStatusNotStarted FinalExecutionStatusKind = iota
	// FinalStatusStarted means the transaction is still executing.
	FinalStatusStarted
	FinalStatusFailure
	FinalStatusSuccessValue
)

func (k FinalExecutionStatusKind) String() string {
	switch k {
	case FinalStatusNotStarted:
		return "NotStarted"
	case FinalStatusStarted:
		return "Started"
	case FinalStatusFailure:
		return "Failure"
	case FinalStatusSuccessValue:
		return "SuccessValue"
	default:
		return fmt.Sprintf("FinalExecutionStatusKind(%d)", uint8(k))
	}
}

// FinalExecutionStatus is the top-level status of a transaction.
type FinalExecutionStatus struct {
	Kind    FinalExecutionStatusKind `cramberry:"1"`
	Value   []byte                   `cramberry:"2"`
	Failure *TxExecutionError        `cramberry:"3"`
}

// Clone returns a copy that shares no memory with s.
func (s FinalExecutionStatus) Clone() FinalExecutionStatus {
	s.Value = bytes.Clone(s.Value)
	if s.Failure != nil {
		f := s.Failure.Clone()
		s.Failure = &f
	}
	return s
}

func FinalSuccess(value []byte) FinalExecutionStatus {
	return FinalExecutionStatus{Kind: FinalStatusSuccessValue, Value: value}
}

func FinalFailure(err TxExecutionError) FinalExecutionStatus {
	return FinalExecutionStatus{Kind: FinalStatusFailure, Failure: &err}
}

func FinalStarted() FinalExecutionStatus {
	return FinalExecutionStatus{Kind: FinalStatusStarted}
}

func FinalNotStarted() FinalExecutionStatus {
	return FinalExecutionStatus{Kind: FinalStatusNotStarted}
}

// IsTerminal returns true for SuccessValue and Failure.
func (s FinalExecutionStatus) IsTerminal() bool {
	return s.Kind == FinalStatusSuccessValue || s.Kind == FinalStatusFailure
}

func (s FinalExecutionStatus) validate() error {
	switch s.Kind {
	case FinalStatusNotStarted, FinalStatusStarted, FinalStatusSuccessValue:
		return nil
	case FinalStatusFailure:
		if s.Failure == nil {
			return fmt.Errorf("%w: final failure status without an error", ErrInvalidView)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown final status kind %d", ErrInvalidView, s.Kind)
	}
}

func (s FinalExecutionStatus) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case FinalStatusNotStarted, FinalStatusStarted:
		return []byte(strconv.Quote(s.Kind.String())), nil
	case FinalStatusSuccessValue:
		return json.Marshal(map[string][]byte{s.Kind.String(): nonNil(s.Value)})
	case FinalStatusFailure:
		return json.Marshal(map[string]*TxExecutionError{s.Kind.String(): s.Failure})
	default:
		return nil, fmt.Errorf("marshal final status: unknown kind %d", s.Kind)
	}
}

func (s *FinalExecutionStatus) UnmarshalJSON(data []byte) error {
	name, body, err := decodeVariant(data)
	if err != nil {
		return fmt.Errorf("final status: %w", err)
	}
	*s = FinalExecutionStatus{}
	switch name {
	case FinalStatusNotStarted.String():
		s.Kind = FinalStatusNotStarted
	case FinalStatusStarted.String():
		s.Kind = FinalStatusStarted
	case FinalStatusSuccessValue.String():
		s.Kind = FinalStatusSuccessValue
		if err := unmarshalValue(body, &s.Value); err != nil {
			return fmt.Errorf("final status: %w", err)
		}
	case FinalStatusFailure.String():
		s.Kind = FinalStatusFailure
		s.Failure = new(TxExecutionError)
		if err := json.Unmarshal(body, s.Failure); err != nil {
			return fmt.Errorf("final status: %w", err)
		}
	default:
		return fmt.Errorf("final status: unknown variant %q", name)
	}
	return nil
}

// unmarshalValue decodes a base64 success payload. An absent payload
// decodes to an empty, non-nil slice.
func unmarshalValue(body []byte, out *[]byte) error {
	if len(body) == 0 {
		*out = []byte{}
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return err
	}
	*out = nonNil(*out)
	return nil
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
