// Package statusmessage implements an in-memory execution provider
// hosting a single status-message contract. It demonstrates how a
// provider turns function calls into outcome views.
//
// Contract methods:
//
//	set_status {"message": string}    stores the signer's message, returns nothing
//	get_status {"account_id": string} view, returns the stored message or null
package statusmessage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/holiman/uint256"

	"github.com/blockberries/execution"
	"github.com/blockberries/execution/codec"
	"github.com/blockberries/execution/types"
)

// Compile-time interface check.
var _ execution.Provider = (*App)(nil)

// Gas charged by the simulated runtime.
const (
	ConvertGas types.Gas = 2_428_000_000_000
	CallGas    types.Gas = 3_000_000_000_000
	RefundGas  types.Gas = 223_182_562_500

	// GasPrice in yocto units.
	GasPrice = 100_000_000
)

// ErrUnknownTransaction is returned for a transaction never submitted
// to this provider.
var ErrUnknownTransaction = errors.New("unknown transaction")

// App is a minimal provider that runs the status-message contract.
type App struct {
	mu       sync.RWMutex
	contract types.AccountID
	statuses map[types.AccountID]string
	txs      map[types.CryptoHash]types.FinalExecutionOutcomeView
	nonce    uint64
	block    types.CryptoHash
}

// New creates a provider with the contract deployed on contract.
func New(contract types.AccountID) *App {
	return &App{
		contract: contract,
		statuses: make(map[types.AccountID]string),
		txs:      make(map[types.CryptoHash]types.FinalExecutionOutcomeView),
		block:    types.HashBytes([]byte("genesis")),
	}
}

// Contract returns the account the contract is deployed on.
func (app *App) Contract() types.AccountID { return app.contract }

// Call submits a function call transaction signed by signer and
// executes it immediately. It returns the request that fetches the
// transaction's final outcome.
func (app *App) Call(signer types.AccountID, method string, args []byte) (types.TxStatusRequest, error) {
	if err := signer.Validate(); err != nil {
		return types.TxStatusRequest{}, fmt.Errorf("signer: %w", err)
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	app.nonce++
	txHash := types.HashBytes(fmt.Appendf(nil, "%s|%d|%s|%x", signer, app.nonce, method, args))
	app.block = types.HashBytes(append(app.block[:], txHash[:]...))

	receiptID := types.HashBytes(append(txHash[:], 'r'))
	refundID := types.HashBytes(append(receiptID[:], 'r'))

	status, logs := app.execute(signer, method, args)
	final := types.FinalSuccess(status.Value)
	if status.Kind == types.ExecutionStatusFailure {
		final = types.FinalFailure(*status.Failure)
	}

	view := types.FinalExecutionOutcomeView{
		Status: final,
		TransactionOutcome: types.ExecutionOutcomeWithIDView{
			ID:        txHash,
			BlockHash: app.block,
			Outcome: types.ExecutionOutcomeView{
				ReceiptIDs:  []types.CryptoHash{receiptID},
				GasBurnt:    ConvertGas,
				TokensBurnt: tokensFor(ConvertGas),
				ExecutorID:  signer,
				Status:      types.SuccessReceiptIDStatus(receiptID),
			},
		},
		ReceiptsOutcome: []types.ExecutionOutcomeWithIDView{
			{
				ID:        receiptID,
				BlockHash: app.block,
				Outcome: types.ExecutionOutcomeView{
					Logs:        logs,
					ReceiptIDs:  []types.CryptoHash{refundID},
					GasBurnt:    CallGas,
					TokensBurnt: tokensFor(CallGas),
					ExecutorID:  app.contract,
					Status:      status,
				},
			},
			{
				ID:        refundID,
				BlockHash: app.block,
				Outcome: types.ExecutionOutcomeView{
					GasBurnt:    RefundGas,
					TokensBurnt: tokensFor(RefundGas),
					ExecutorID:  signer,
					Status:      types.SuccessValueStatus([]byte{}),
				},
			},
		},
	}
	app.txs[txHash] = view
	return types.TxStatusRequest{TxHash: txHash, SenderID: signer}, nil
}

// execute runs method on the contract. Must hold app.mu.
func (app *App) execute(signer types.AccountID, method string, args []byte) (types.ExecutionStatusView, []string) {
	switch method {
	case "set_status":
		var in struct {
			Message *string `json:"message"`
		}
		if err := codec.JSON.Unmarshal(args, &in); err != nil || in.Message == nil {
			return types.FailureStatus(contractPanic("Failed to deserialize input from JSON.")), nil
		}
		app.statuses[signer] = *in.Message
		log := fmt.Sprintf("%s set_status with message %s", signer, *in.Message)
		return types.SuccessValueStatus([]byte{}), []string{log}
	default:
		detail := []byte(`{"MethodResolveError":"MethodNotFound"}`)
		return types.FailureStatus(types.NewActionError(0, "FunctionCallError", detail)), nil
	}
}

func (app *App) FinalOutcome(ctx context.Context, req types.TxStatusRequest) (types.FinalExecutionOutcomeView, error) {
	if err := ctx.Err(); err != nil {
		return types.FinalExecutionOutcomeView{}, err
	}
	app.mu.RLock()
	defer app.mu.RUnlock()

	view, ok := app.txs[req.TxHash]
	if !ok {
		return types.FinalExecutionOutcomeView{}, fmt.Errorf("%w: %s", ErrUnknownTransaction, req.TxHash)
	}
	if req.SenderID != "" && req.SenderID != view.TransactionOutcome.Outcome.ExecutorID {
		return types.FinalExecutionOutcomeView{}, fmt.Errorf("%w: %s signed by %s", ErrUnknownTransaction, req.TxHash, req.SenderID)
	}
	return view, nil
}

func (app *App) CallFunction(ctx context.Context, req types.ViewRequest) (types.CallResult, error) {
	if err := ctx.Err(); err != nil {
		return types.CallResult{}, err
	}
	if req.ContractID != app.contract {
		return types.CallResult{}, fmt.Errorf("account %s has no contract", req.ContractID)
	}
	if req.MethodName != "get_status" {
		return types.CallResult{}, fmt.Errorf("method %s not found", req.MethodName)
	}

	var in struct {
		AccountID types.AccountID `json:"account_id"`
	}
	if err := codec.JSON.Unmarshal(req.Args, &in); err != nil {
		return types.CallResult{}, fmt.Errorf("get_status: %w", err)
	}

	app.mu.RLock()
	msg, ok := app.statuses[in.AccountID]
	app.mu.RUnlock()

	result := []byte("null")
	if ok {
		result = []byte(strconv.Quote(msg))
	}
	return types.CallResult{Result: result}, nil
}

// Status returns the stored message of account.
func (app *App) Status(account types.AccountID) (string, bool) {
	app.mu.RLock()
	defer app.mu.RUnlock()
	msg, ok := app.statuses[account]
	return msg, ok
}

func contractPanic(msg string) types.TxExecutionError {
	detail, _ := codec.JSON.Marshal(map[string]string{
		"ExecutionError": "Smart contract panicked: " + msg,
	})
	return types.NewActionError(0, "FunctionCallError", detail)
}

func tokensFor(gas types.Gas) types.Balance {
	v := new(uint256.Int).Mul(uint256.NewInt(uint64(gas)), uint256.NewInt(GasPrice))
	b, err := types.NewBalance(v)
	if err != nil {
		panic(err)
	}
	return b
}

// SetStatusArgs encodes the arguments of set_status.
func SetStatusArgs(message string) []byte {
	b, _ := codec.JSON.Marshal(map[string]string{"message": message})
	return b
}

// GetStatusArgs encodes the arguments of get_status.
func GetStatusArgs(account types.AccountID) []byte {
	b, _ := codec.JSON.Marshal(map[string]types.AccountID{"account_id": account})
	return b
}
