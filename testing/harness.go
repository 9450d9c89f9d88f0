package executiontest

import (
	"context"
	"testing"

	"github.com/blockberries/execution"
	"github.com/blockberries/execution/server"
	"github.com/blockberries/execution/types"
)

// Harness provides a convenient test harness for provider
// implementers and for code that consumes classified results.
type Harness struct {
	t   *testing.T
	srv *server.Server
}

// NewHarness creates a test harness wrapping the given provider.
func NewHarness(t *testing.T, p execution.Provider, opts ...server.Option) *Harness {
	t.Helper()
	return &Harness{t: t, srv: server.New(p, opts...)}
}

// Server returns the underlying server for direct access.
func (h *Harness) Server() *server.Server {
	return h.srv
}

// TxStatus fetches and classifies a transaction, failing the test on
// a transport or validation error.
func (h *Harness) TxStatus(req types.TxStatusRequest) *execution.FinalResult {
	h.t.Helper()
	view, err := h.srv.FinalOutcome(context.Background(), req)
	if err != nil {
		h.t.Fatalf("FinalOutcome (tx=%s) failed: %v", req.TxHash, err)
	}
	return execution.NewFinalResult(view)
}

// MustSucceed fetches a transaction and fails the test unless it
// succeeded.
func (h *Harness) MustSucceed(req types.TxStatusRequest) *execution.ExecutionSuccess {
	h.t.Helper()
	success, err := h.TxStatus(req).IntoResult()
	if err != nil {
		h.t.Fatalf("tx %s: expected success, got %v", req.TxHash, err)
	}
	return success
}

// MustFail fetches a transaction and fails the test unless it failed
// on chain.
func (h *Harness) MustFail(req types.TxStatusRequest) *execution.ExecutionFailure {
	h.t.Helper()
	_, err := h.TxStatus(req).IntoResult()
	failure, ok := execution.IsFailure(err)
	if !ok {
		h.t.Fatalf("tx %s: expected failure, got %v", req.TxHash, err)
	}
	return failure
}

// View runs a view call, failing the test on error.
func (h *Harness) View(contract types.AccountID, method string, args []byte) *execution.ViewResult {
	h.t.Helper()
	result, err := h.srv.CallFunction(context.Background(), types.ViewRequest{
		ContractID: contract,
		MethodName: method,
		Args:       args,
	})
	if err != nil {
		h.t.Fatalf("View %s.%s failed: %v", contract, method, err)
	}
	return execution.NewViewResult(result)
}
