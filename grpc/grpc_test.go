package execgrpc_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/blockberries/execution"
	execgrpc "github.com/blockberries/execution/grpc"
	executiontest "github.com/blockberries/execution/testing"
	"github.com/blockberries/execution/types"
)

// startServer starts a gRPC server on a random port and returns
// the listener address and a cleanup function.
func startServer(t *testing.T, gs *execgrpc.GRPCServer) (string, func()) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	s := grpc.NewServer()
	gs.Register(s)

	go func() {
		// Serve returns once the server is stopped.
		_ = s.Serve(lis)
	}()

	return lis.Addr().String(), func() {
		gs.Stop(s)
	}
}

func dial(t *testing.T, addr string) *execgrpc.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := execgrpc.Dial(ctx, addr,
		execgrpc.WithDialOptions(grpc.WithTransportCredentials(insecure.NewCredentials())),
	)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	return client
}

func TestGRPC_TxStatusSuccess(t *testing.T) {
	view := executiontest.FunctionCall(types.FinalSuccess([]byte(`"hello"`)),
		executiontest.SuccessReceipt(executiontest.DefaultContract, 3_000_000_000, []byte(`"hello"`), "set status"),
		executiontest.SuccessReceipt(executiontest.DefaultSigner, 223_000_000, nil),
	)
	addr, cleanup := startServer(t, execgrpc.NewGRPCServer(executiontest.StaticProvider(view, types.CallResult{})))
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	result, err := client.TxStatus(context.Background(), types.TxStatusRequest{
		TxHash:   view.TransactionOutcome.ID,
		SenderID: executiontest.DefaultSigner,
	})
	if err != nil {
		t.Fatalf("TxStatus: %v", err)
	}
	if !result.IsSuccess() {
		t.Fatalf("expected success, got %s", result.Status().Kind)
	}
	if got := len(result.Outcomes()); got != 3 {
		t.Fatalf("expected 3 outcomes, got %d", got)
	}
	want := view.TransactionOutcome.Outcome.GasBurnt + 3_000_000_000 + 223_000_000
	if result.TotalGasBurnt() != want {
		t.Fatalf("gas: got %d, want %d", result.TotalGasBurnt(), want)
	}
	if logs := result.Logs(); len(logs) != 1 || logs[0] != "set status" {
		t.Fatalf("unexpected logs %v", logs)
	}

	s, err := execution.AsJSON[string](result)
	if err != nil {
		t.Fatalf("AsJSON: %v", err)
	}
	if s != "hello" {
		t.Fatalf("expected hello, got %q", s)
	}
}

func TestGRPC_TxStatusFailure(t *testing.T) {
	txErr := executiontest.AccountDoesNotExist("nobody.test.near")
	view := executiontest.FunctionCall(types.FinalFailure(txErr),
		executiontest.FailedReceipt(executiontest.DefaultContract, 1_000, txErr),
	)
	addr, cleanup := startServer(t, execgrpc.NewGRPCServer(executiontest.StaticProvider(view, types.CallResult{})))
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	result, err := client.TxStatus(context.Background(), types.TxStatusRequest{TxHash: view.TransactionOutcome.ID})
	if err != nil {
		t.Fatalf("TxStatus: %v", err)
	}
	_, err = result.IntoResult()
	failure, ok := execution.IsFailure(err)
	if !ok {
		t.Fatalf("expected ExecutionFailure, got %v", err)
	}
	if !failure.TxError().Equal(txErr) {
		t.Fatalf("error changed over the wire: %v", failure.TxError())
	}
	if got := len(failure.ReceiptFailures()); got != 1 {
		t.Fatalf("expected 1 receipt failure, got %d", got)
	}
}

func TestGRPC_View(t *testing.T) {
	call := types.CallResult{Result: []byte(`{"count":7}`), Logs: []string{"read"}}
	addr, cleanup := startServer(t, execgrpc.NewGRPCServer(executiontest.StaticProvider(types.FinalExecutionOutcomeView{}, call)))
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	result, err := client.View(context.Background(), types.ViewRequest{
		ContractID: executiontest.DefaultContract,
		MethodName: "get_count",
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	var out struct {
		Count int `json:"count"`
	}
	if err := result.JSON(&out); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if out.Count != 7 {
		t.Fatalf("expected 7, got %d", out.Count)
	}
	if len(result.Logs) != 1 || result.Logs[0] != "read" {
		t.Fatalf("unexpected logs %v", result.Logs)
	}
}

func TestGRPC_InvalidViewIsDataLoss(t *testing.T) {
	view := executiontest.FunctionCall(types.FinalExecutionStatus{Kind: types.FinalStatusFailure})
	addr, cleanup := startServer(t, execgrpc.NewGRPCServer(executiontest.StaticProvider(view, types.CallResult{})))
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	_, err := client.TxStatus(context.Background(), types.TxStatusRequest{})
	if code := status.Code(err); code != codes.DataLoss {
		t.Fatalf("expected DataLoss, got %v (%v)", code, err)
	}
}

func TestGRPC_ProviderErrorPropagates(t *testing.T) {
	p := &executiontest.MockProvider{
		FinalOutcomeFn: func(context.Context, types.TxStatusRequest) (types.FinalExecutionOutcomeView, error) {
			return types.FinalExecutionOutcomeView{}, errors.New("unknown transaction")
		},
	}
	addr, cleanup := startServer(t, execgrpc.NewGRPCServer(p))
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	_, err := client.TxStatus(context.Background(), types.TxStatusRequest{})
	if code := status.Code(err); code != codes.Unknown {
		t.Fatalf("expected Unknown, got %v (%v)", code, err)
	}
	if p.FinalOutcomeCalls.Load() != 1 {
		t.Fatalf("expected 1 provider call, got %d", p.FinalOutcomeCalls.Load())
	}
}

func TestGRPC_TxStatusesStreamsInOrder(t *testing.T) {
	p := &executiontest.MockProvider{
		FinalOutcomeFn: func(_ context.Context, req types.TxStatusRequest) (types.FinalExecutionOutcomeView, error) {
			return executiontest.FinalView(types.FinalSuccess(nil), executiontest.TxOutcome(req.SenderID, 1_000)), nil
		},
	}
	addr, cleanup := startServer(t, execgrpc.NewGRPCServer(p))
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	senders := []types.AccountID{"alice.test.near", "bob.test.near", "carol.test.near"}
	reqs := make([]types.TxStatusRequest, len(senders))
	for i, s := range senders {
		reqs[i] = types.TxStatusRequest{SenderID: s}
	}

	results, err := client.TxStatuses(context.Background(), reqs)
	if err != nil {
		t.Fatalf("TxStatuses: %v", err)
	}
	if len(results) != len(senders) {
		t.Fatalf("expected %d results, got %d", len(senders), len(results))
	}
	for i, r := range results {
		if got := r.Outcome().ExecutorID; got != senders[i] {
			t.Fatalf("result %d: executor %s, want %s", i, got, senders[i])
		}
	}
}

func TestGRPC_ClosedServerIsUnavailable(t *testing.T) {
	gs := execgrpc.NewGRPCServer(&executiontest.MockProvider{})
	addr, cleanup := startServer(t, gs)
	defer cleanup()

	client := dial(t, addr)
	defer client.Close()

	if err := gs.Server().Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	_, err := client.TxStatus(context.Background(), types.TxStatusRequest{})
	if code := status.Code(err); code != codes.Unavailable {
		t.Fatalf("expected Unavailable, got %v (%v)", code, err)
	}
}
