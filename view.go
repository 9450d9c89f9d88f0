package execution

import (
	"slices"

	"github.com/blockberries/execution/codec"
	"github.com/blockberries/execution/types"
)

// ViewResult is the output of a read-only function call. View calls
// produce no receipts and burn no gas, and the payload arrives as raw
// bytes.
type ViewResult struct {
	// Result is the payload returned by the function.
	Result []byte
	// Logs emitted by the function.
	Logs []string
}

// NewViewResult builds a ViewResult from a transport view.
func NewViewResult(r types.CallResult) *ViewResult {
	return &ViewResult{
		Result: slices.Clone(r.Result),
		Logs:   slices.Clone(r.Logs),
	}
}

func (r *ViewResult) JSON(v any) error {
	return decodeJSON(r.Result, v)
}

func (r *ViewResult) Binary(v any) error {
	return decodeWith(codec.Binary, r.Result, v)
}

// RawBytes returns a copy of the payload. It never fails.
func (r *ViewResult) RawBytes() ([]byte, error) {
	return slices.Clone(r.Result), nil
}
