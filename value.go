package execution

import (
	"encoding/base64"

	"github.com/blockberries/execution/codec"
)

// Decoder is implemented by every result that carries a decodable
// payload.
type Decoder interface {
	// JSON decodes the payload as JSON text into v.
	JSON(v any) error
	// Binary decodes the payload as cramberry binary into v.
	Binary(v any) error
	// RawBytes returns the payload without interpreting it.
	RawBytes() ([]byte, error)
}

var (
	_ Decoder = Value{}
	_ Decoder = (*ExecutionSuccess)(nil)
	_ Decoder = (*FinalResult)(nil)
	_ Decoder = (*ViewResult)(nil)
)

// AsJSON decodes the payload of d as JSON into a fresh T.
func AsJSON[T any](d Decoder) (T, error) {
	var out T
	if err := d.JSON(&out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// AsBinary decodes the payload of d as cramberry binary into a fresh T.
func AsBinary[T any](d Decoder) (T, error) {
	var out T
	if err := d.Binary(&out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Value is the payload returned by a successful call. It is kept in
// its standard base64 form and decoded on every request; decoding
// never modifies it.
type Value struct {
	repr string
}

// NewValue wraps a payload already encoded with standard base64.
func NewValue(encoded string) Value {
	return Value{repr: encoded}
}

func valueFromBytes(raw []byte) Value {
	return Value{repr: base64.StdEncoding.EncodeToString(raw)}
}

// String returns the base64 form.
func (v Value) String() string { return v.repr }

// RawBytes returns the payload bytes.
func (v Value) RawBytes() ([]byte, error) {
	buf, err := base64.StdEncoding.DecodeString(v.repr)
	if err != nil {
		return nil, NewDataConversionError("base64", err)
	}
	return buf, nil
}

func (v Value) JSON(out any) error {
	buf, err := v.RawBytes()
	if err != nil {
		return err
	}
	return decodeJSON(buf, out)
}

func (v Value) Binary(out any) error {
	buf, err := v.RawBytes()
	if err != nil {
		return err
	}
	return decodeWith(codec.Binary, buf, out)
}

func decodeJSON(buf []byte, out any) error {
	if len(buf) == 0 {
		return NewDataConversionError(codec.JSON.Name(), ErrEmptyValue)
	}
	return decodeWith(codec.JSON, buf, out)
}

func decodeWith(c codec.Codec, buf []byte, out any) error {
	if err := c.Unmarshal(buf, out); err != nil {
		return NewDataConversionError(c.Name(), err)
	}
	return nil
}
