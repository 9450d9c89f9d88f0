// Package execution turns the protocol-level outcome of a blockchain
// call into values user code can inspect and decode.
//
// A transaction submission yields a [FinalResult]: the top-level
// status plus the outcome of the transaction and of every receipt it
// generated. [FinalResult.IntoResult] classifies it into an
// [ExecutionSuccess] or an [ExecutionFailure]. Both keep the full
// [ExecutionDetails], so logs, gas and failing receipts stay available
// whichever way the call went. Success payloads are decoded on demand
// with JSON or cramberry binary, see [AsJSON] and [AsBinary].
//
// Read-only calls yield a [ViewResult] with the same decode methods.
package execution

import (
	"context"

	"github.com/blockberries/execution/types"
)

// Provider delivers protocol views from a node. Implementations own
// transport, retries and fault tolerance; the views they return must
// carry terminal or pending statuses only as reported by the node.
//
// Both methods MUST be safe for concurrent use.
type Provider interface {
	// FinalOutcome returns the final execution outcome of a
	// submitted transaction.
	FinalOutcome(ctx context.Context, req types.TxStatusRequest) (types.FinalExecutionOutcomeView, error)

	// CallFunction runs a read-only contract function.
	CallFunction(ctx context.Context, req types.ViewRequest) (types.CallResult, error)
}

// Connection is what user code talks to. Both the gRPC client and the
// in-process adapter implement it.
type Connection interface {
	// TxStatus fetches and wraps the final outcome of a transaction.
	// The returned result is unclassified; call IntoResult on it.
	TxStatus(ctx context.Context, req types.TxStatusRequest) (*FinalResult, error)

	// View calls a read-only function.
	View(ctx context.Context, req types.ViewRequest) (*ViewResult, error)

	// Close terminates the connection.
	Close() error
}
