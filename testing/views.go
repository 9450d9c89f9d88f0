package executiontest

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"github.com/blockberries/execution/types"
)

const (
	// DefaultSigner signs transactions built by this package.
	DefaultSigner types.AccountID = "alice.test.near"
	// DefaultContract receives the receipts built by this package.
	DefaultContract types.AccountID = "contract.test.near"

	// GasPrice converts gas into tokens burnt, in yocto units.
	GasPrice = 100_000_000
)

// BlockHash is the block every built outcome is recorded in.
var BlockHash = types.HashBytes([]byte("block"))

// TokensFor returns the tokens burnt for gas at GasPrice.
func TokensFor(gas types.Gas) types.Balance {
	v := new(uint256.Int).Mul(uint256.NewInt(uint64(gas)), uint256.NewInt(GasPrice))
	b, err := types.NewBalance(v)
	if err != nil {
		panic(err)
	}
	return b
}

func outcomeID(kind string, executor types.AccountID, gas types.Gas, extra ...string) types.CryptoHash {
	return types.HashBytes([]byte(fmt.Sprintf("%s|%s|%d|%s", kind, executor, gas, strings.Join(extra, "|"))))
}

// TxOutcome builds a transaction outcome signed by signer. The
// transaction converts into its first receipt when receipts are
// given, and succeeds with an empty value otherwise.
func TxOutcome(signer types.AccountID, gas types.Gas, receiptIDs ...types.CryptoHash) types.ExecutionOutcomeWithIDView {
	status := types.SuccessValueStatus([]byte{})
	if len(receiptIDs) > 0 {
		status = types.SuccessReceiptIDStatus(receiptIDs[0])
	}
	return types.ExecutionOutcomeWithIDView{
		ID:        outcomeID("tx", signer, gas),
		BlockHash: BlockHash,
		Outcome: types.ExecutionOutcomeView{
			ReceiptIDs:  receiptIDs,
			GasBurnt:    gas,
			TokensBurnt: TokensFor(gas),
			ExecutorID:  signer,
			Status:      status,
		},
	}
}

// Receipt builds a receipt outcome executed on executor.
func Receipt(executor types.AccountID, gas types.Gas, status types.ExecutionStatusView, logs ...string) types.ExecutionOutcomeWithIDView {
	return types.ExecutionOutcomeWithIDView{
		ID:        outcomeID("receipt", executor, gas, append([]string{status.Kind.String()}, logs...)...),
		BlockHash: BlockHash,
		Outcome: types.ExecutionOutcomeView{
			Logs:        logs,
			GasBurnt:    gas,
			TokensBurnt: TokensFor(gas),
			ExecutorID:  executor,
			Status:      status,
		},
	}
}

// SuccessReceipt builds a receipt that returned value.
func SuccessReceipt(executor types.AccountID, gas types.Gas, value []byte, logs ...string) types.ExecutionOutcomeWithIDView {
	return Receipt(executor, gas, types.SuccessValueStatus(value), logs...)
}

// FailedReceipt builds a receipt that failed with err.
func FailedReceipt(executor types.AccountID, gas types.Gas, err types.TxExecutionError, logs ...string) types.ExecutionOutcomeWithIDView {
	return Receipt(executor, gas, types.FailureStatus(err), logs...)
}

// FinalView assembles a final outcome view.
func FinalView(status types.FinalExecutionStatus, tx types.ExecutionOutcomeWithIDView, receipts ...types.ExecutionOutcomeWithIDView) types.FinalExecutionOutcomeView {
	return types.FinalExecutionOutcomeView{
		Status:             status,
		TransactionOutcome: tx,
		ReceiptsOutcome:    receipts,
	}
}

// FunctionCall builds a typical function call: the transaction
// converts into one receipt per given receipt outcome, linked by id.
func FunctionCall(status types.FinalExecutionStatus, receipts ...types.ExecutionOutcomeWithIDView) types.FinalExecutionOutcomeView {
	ids := make([]types.CryptoHash, len(receipts))
	for i, r := range receipts {
		ids[i] = r.ID
	}
	return FinalView(status, TxOutcome(DefaultSigner, 2_428_000_000_000, ids...), receipts...)
}

// AccountDoesNotExist is the error of a call to a missing account.
func AccountDoesNotExist(account types.AccountID) types.TxExecutionError {
	return types.NewActionError(0, "AccountDoesNotExist", []byte(fmt.Sprintf(`{"account_id":%q}`, account)))
}
