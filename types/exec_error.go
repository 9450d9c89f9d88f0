package types

import (
	"bytes"
	"fmt"
	"strconv"
)

// TxExecutionErrorKind tells whether an execution error was raised by
// an action or by transaction validation.
type TxExecutionErrorKind uint8

const (
	ActionError TxExecutionErrorKind = iota + 1
	InvalidTxError
)

func (k TxExecutionErrorKind) String() string {
	switch k {
	case ActionError:
		return "ActionError"
	case InvalidTxError:
		return "InvalidTxError"
	default:
		return fmt.Sprintf("TxExecutionErrorKind(%d)", uint8(k))
	}
}

// TxExecutionError is the structured on-chain error carried by a
// failed transaction or receipt.
type TxExecutionError struct {
	Kind TxExecutionErrorKind `cramberry:"1"`
	// Index of the failing action. Meaningful only when HasIndex is set,
	// which happens for ActionErrors tied to a specific action.
	Index uint64 `cramberry:"2"`
	// Variant name, e.g. "AccountDoesNotExist".
	Name string `cramberry:"3"`
	// Variant payload as raw JSON. Empty for unit variants.
	Detail   []byte `cramberry:"4"`
	HasIndex bool   `cramberry:"5"`
}

// NewActionError builds an ActionError failing at the given action.
func NewActionError(index uint64, name string, detail []byte) TxExecutionError {
	return TxExecutionError{Kind: ActionError, Index: index, HasIndex: true, Name: name, Detail: detail}
}

// NewInvalidTxError builds an InvalidTxError.
func NewInvalidTxError(name string, detail []byte) TxExecutionError {
	return TxExecutionError{Kind: InvalidTxError, Name: name, Detail: detail}
}

func (e TxExecutionError) Error() string {
	var buf bytes.Buffer
	buf.WriteString(e.Kind.String())
	if e.HasIndex {
		fmt.Fprintf(&buf, " at action %d", e.Index)
	}
	buf.WriteString(": ")
	buf.WriteString(e.Name)
	if len(e.Detail) > 0 {
		buf.WriteByte(' ')
		buf.Write(e.Detail)
	}
	return buf.String()
}

// Equal compares two errors field by field.
func (e TxExecutionError) Equal(other TxExecutionError) bool {
	if e.Kind != other.Kind || e.Name != other.Name || !bytes.Equal(e.Detail, other.Detail) {
		return false
	}
	if e.HasIndex != other.HasIndex {
		return false
	}
	return !e.HasIndex || e.Index == other.Index
}

// Clone returns a copy with its own Detail buffer.
func (e TxExecutionError) Clone() TxExecutionError {
	e.Detail = bytes.Clone(e.Detail)
	return e
}

// ActionIndex returns the index of the failing action, if any.
func (e TxExecutionError) ActionIndex() (uint64, bool) {
	return e.Index, e.HasIndex
}

func (e TxExecutionError) variant() ([]byte, error) {
	if len(e.Detail) == 0 {
		return []byte(strconv.Quote(e.Name)), nil
	}
	return json.Marshal(map[string]jsonRaw{e.Name: e.Detail})
}

// MarshalJSON produces the externally tagged form:
//
//	{"ActionError":{"index":0,"kind":{"AccountDoesNotExist":{...}}}}
//	{"InvalidTxError":"Expired"}
func (e TxExecutionError) MarshalJSON() ([]byte, error) {
	variant, err := e.variant()
	if err != nil {
		return nil, err
	}
	switch e.Kind {
	case ActionError:
		ae := actionErrorJSON{Kind: variant}
		if e.HasIndex {
			index := e.Index
			ae.Index = &index
		}
		return json.Marshal(map[string]actionErrorJSON{ActionError.String(): ae})
	case InvalidTxError:
		return json.Marshal(map[string]jsonRaw{InvalidTxError.String(): variant})
	default:
		return nil, fmt.Errorf("marshal tx execution error: unknown kind %d", e.Kind)
	}
}

func (e *TxExecutionError) UnmarshalJSON(data []byte) error {
	name, body, err := decodeVariant(data)
	if err != nil {
		return fmt.Errorf("tx execution error: %w", err)
	}
	switch name {
	case ActionError.String():
		var ae actionErrorJSON
		if err := json.Unmarshal(body, &ae); err != nil {
			return fmt.Errorf("tx execution error: %w", err)
		}
		e.Kind = ActionError
		e.Index, e.HasIndex = 0, ae.Index != nil
		if ae.Index != nil {
			e.Index = *ae.Index
		}
		e.Name, e.Detail, err = decodeVariant(ae.Kind)
	case InvalidTxError.String():
		e.Kind = InvalidTxError
		e.Index, e.HasIndex = 0, false
		e.Name, e.Detail, err = decodeVariant(body)
	default:
		return fmt.Errorf("tx execution error: unknown kind %q", name)
	}
	if err != nil {
		return fmt.Errorf("tx execution error: %w", err)
	}
	return nil
}

type actionErrorJSON struct {
	Index *uint64 `json:"index"`
	Kind  jsonRaw `json:"kind"`
}

// jsonRaw is a raw JSON fragment.
type jsonRaw []byte

func (r jsonRaw) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

func (r *jsonRaw) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

// decodeVariant splits an externally tagged enum value into its name
// and payload. Unit variants are plain strings and have no payload.
func decodeVariant(data []byte) (string, []byte, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", nil, fmt.Errorf("empty variant")
	}
	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return "", nil, err
		}
		return name, nil, nil
	}
	var obj map[string]jsonRaw
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", nil, err
	}
	if len(obj) != 1 {
		return "", nil, fmt.Errorf("expected a single variant, got %d keys", len(obj))
	}
	for name, body := range obj {
		if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
			body = nil
		}
		return name, []byte(body), nil
	}
	panic("unreachable")
}
