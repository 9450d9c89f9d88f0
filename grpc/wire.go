package execgrpc

import "github.com/blockberries/execution/types"

// Transport-specific wrapper types for RPCs whose parameters don't map
// to a single view struct.

// TxStatusBatchRequest carries the transactions queried by the
// FinalOutcomes server-streaming RPC. Views are streamed back in
// request order.
type TxStatusBatchRequest struct {
	Requests []types.TxStatusRequest `cramberry:"1"`
}
