package statusmessage

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/blockberries/execution"
	execgrpc "github.com/blockberries/execution/grpc"
	"github.com/blockberries/execution/local"
	executiontest "github.com/blockberries/execution/testing"
	"github.com/blockberries/execution/types"
)

const (
	contract types.AccountID = "status.test.near"
	alice    types.AccountID = "alice.test.near"
	bob      types.AccountID = "bob.test.near"
)

// seeded returns a provider with a fixed history and the requests
// naming its transactions.
func seeded(t *testing.T) (*App, []types.TxStatusRequest) {
	t.Helper()
	app := New(contract)
	calls := []struct {
		signer types.AccountID
		method string
		args   []byte
	}{
		{alice, "set_status", SetStatusArgs("hello")},
		{bob, "set_status", SetStatusArgs("hi")},
		{alice, "no_such_method", nil},
		{bob, "set_status", []byte(`{"msg":1}`)},
	}
	reqs := make([]types.TxStatusRequest, 0, len(calls))
	for _, c := range calls {
		req, err := app.Call(c.signer, c.method, c.args)
		if err != nil {
			t.Fatalf("Call %s: %v", c.method, err)
		}
		reqs = append(reqs, req)
	}
	return app, reqs
}

func TestStatusMessage_Compliance(t *testing.T) {
	_, reqs := seeded(t)
	executiontest.RunComplianceSuite(t, func() execution.Provider {
		app, _ := seeded(t)
		return app
	}, reqs)
}

func TestStatusMessage_SetAndGet(t *testing.T) {
	app := New(contract)
	h := executiontest.NewHarness(t, app)

	req, err := app.Call(alice, "set_status", SetStatusArgs("hello"))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	success := h.MustSucceed(req)

	// set_status returns nothing.
	if _, err := execution.AsJSON[string](success); !errors.Is(err, execution.ErrEmptyValue) {
		t.Errorf("expected ErrEmptyValue, got %v", err)
	}
	raw, err := success.RawBytes()
	if err != nil || len(raw) != 0 {
		t.Errorf("expected empty payload, got %q (%v)", raw, err)
	}

	logs := success.Logs()
	if len(logs) != 1 || logs[0] != "alice.test.near set_status with message hello" {
		t.Errorf("unexpected logs %v", logs)
	}
	if got, want := success.TotalGasBurnt(), ConvertGas+CallGas+RefundGas; got != want {
		t.Errorf("gas: got %d, want %d", got, want)
	}
	if got := len(success.Outcomes()); got != 3 {
		t.Errorf("expected 3 outcomes, got %d", got)
	}

	view := h.View(contract, "get_status", GetStatusArgs(alice))
	msg, err := execution.AsJSON[*string](view)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg == nil || *msg != "hello" {
		t.Errorf("expected hello, got %v", msg)
	}

	view = h.View(contract, "get_status", GetStatusArgs(bob))
	msg, err = execution.AsJSON[*string](view)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg != nil {
		t.Errorf("expected null for bob, got %q", *msg)
	}
}

func TestStatusMessage_UnknownMethodFails(t *testing.T) {
	app := New(contract)
	h := executiontest.NewHarness(t, app)

	req, err := app.Call(alice, "no_such_method", nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	failure := h.MustFail(req)

	txErr := failure.TxError()
	if txErr.Kind != types.ActionError || txErr.Name != "FunctionCallError" {
		t.Errorf("unexpected error %v", txErr)
	}
	if _, ok := execution.IsExecution(failure); !ok {
		t.Error("failure should unwrap to an ExecutionError")
	}
	// The refund receipt still succeeds.
	if got := len(failure.ReceiptFailures()); got != 1 {
		t.Errorf("expected 1 receipt failure, got %d", got)
	}
	if got := len(failure.ReceiptOutcomes()); got != 2 {
		t.Errorf("expected 2 receipt outcomes, got %d", got)
	}
	if _, ok := app.Status(alice); ok {
		t.Error("failed call should not store a status")
	}
}

func TestStatusMessage_BadArgsPanics(t *testing.T) {
	app := New(contract)
	h := executiontest.NewHarness(t, app)

	req, err := app.Call(bob, "set_status", []byte("not json"))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	failure := h.MustFail(req)
	if failure.TxError().Name != "FunctionCallError" {
		t.Errorf("unexpected error %v", failure.TxError())
	}
}

func TestStatusMessage_UnknownTransaction(t *testing.T) {
	app := New(contract)
	_, err := app.FinalOutcome(context.Background(), types.TxStatusRequest{TxHash: types.HashBytes([]byte("x"))})
	if !errors.Is(err, ErrUnknownTransaction) {
		t.Fatalf("expected ErrUnknownTransaction, got %v", err)
	}

	req, err := app.Call(alice, "set_status", SetStatusArgs("a"))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	req.SenderID = bob
	if _, err := app.FinalOutcome(context.Background(), req); !errors.Is(err, ErrUnknownTransaction) {
		t.Fatalf("expected ErrUnknownTransaction for wrong sender, got %v", err)
	}
}

func TestStatusMessage_InvalidSigner(t *testing.T) {
	app := New(contract)
	if _, err := app.Call("A", "set_status", SetStatusArgs("a")); err == nil {
		t.Fatal("expected invalid signer to be rejected")
	}
}

func TestStatusMessage_Local(t *testing.T) {
	app := New(contract)
	conn := local.NewConnection(app)
	defer conn.Close()

	req, err := app.Call(alice, "set_status", SetStatusArgs("local"))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	result, err := conn.TxStatus(context.Background(), req)
	if err != nil {
		t.Fatalf("TxStatus: %v", err)
	}
	if !result.IsSuccess() {
		t.Fatalf("expected success, got %s", result.Status().Kind)
	}
}

func TestStatusMessage_GRPC(t *testing.T) {
	app := New(contract)
	gs := execgrpc.NewGRPCServer(app)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := grpc.NewServer()
	gs.Register(s)
	go func() { _ = s.Serve(lis) }()
	defer gs.Stop(s)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := execgrpc.Dial(ctx, lis.Addr().String(),
		execgrpc.WithDialOptions(grpc.WithTransportCredentials(insecure.NewCredentials())))
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer client.Close()

	req, err := app.Call(alice, "set_status", SetStatusArgs("over the wire"))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	result, err := client.TxStatus(ctx, req)
	if err != nil {
		t.Fatalf("TxStatus: %v", err)
	}
	if _, err := result.IntoResult(); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	view, err := client.View(ctx, types.ViewRequest{
		ContractID: contract,
		MethodName: "get_status",
		Args:       GetStatusArgs(alice),
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	msg, err := execution.AsJSON[string](view)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg != "over the wire" {
		t.Errorf("expected message, got %q", msg)
	}
}
