// Package executiontest provides test utilities for code built on the
// execution package: a configurable mock provider, view builders, a
// test harness and a provider conformance suite.
package executiontest

import (
	"context"
	"sync/atomic"

	"github.com/blockberries/execution"
	"github.com/blockberries/execution/types"
)

// Compile-time interface check.
var _ execution.Provider = (*MockProvider)(nil)

// MockProvider is a configurable execution.Provider. Unconfigured
// methods return a successful transaction with an empty payload and
// an empty view result.
type MockProvider struct {
	// Configurable handlers. If nil, defaults are used.
	FinalOutcomeFn func(context.Context, types.TxStatusRequest) (types.FinalExecutionOutcomeView, error)
	CallFunctionFn func(context.Context, types.ViewRequest) (types.CallResult, error)

	// Call counters (atomic for concurrent access).
	FinalOutcomeCalls atomic.Int64
	CallFunctionCalls atomic.Int64
}

func (m *MockProvider) FinalOutcome(ctx context.Context, req types.TxStatusRequest) (types.FinalExecutionOutcomeView, error) {
	m.FinalOutcomeCalls.Add(1)
	if m.FinalOutcomeFn != nil {
		return m.FinalOutcomeFn(ctx, req)
	}
	signer := req.SenderID
	if signer == "" {
		signer = DefaultSigner
	}
	return FinalView(types.FinalSuccess(nil), TxOutcome(signer, 1_000)), nil
}

func (m *MockProvider) CallFunction(ctx context.Context, req types.ViewRequest) (types.CallResult, error) {
	m.CallFunctionCalls.Add(1)
	if m.CallFunctionFn != nil {
		return m.CallFunctionFn(ctx, req)
	}
	return types.CallResult{}, nil
}

// StaticProvider returns a provider that answers every transaction
// query with view and every view call with call.
func StaticProvider(view types.FinalExecutionOutcomeView, call types.CallResult) *MockProvider {
	return &MockProvider{
		FinalOutcomeFn: func(context.Context, types.TxStatusRequest) (types.FinalExecutionOutcomeView, error) {
			return view, nil
		},
		CallFunctionFn: func(context.Context, types.ViewRequest) (types.CallResult, error) {
			return call, nil
		},
	}
}
