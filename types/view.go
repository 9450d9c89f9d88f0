package types

import (
	"bytes"
	"fmt"
)

// ExecutionOutcomeView is the execution metadata of one transaction or
// receipt as reported by the node.
type ExecutionOutcomeView struct {
	// Log lines emitted during execution.
	Logs []string `cramberry:"1" json:"logs"`
	// Receipts generated by this execution step.
	ReceiptIDs []CryptoHash `cramberry:"2" json:"receipt_ids"`
	GasBurnt   Gas          `cramberry:"3" json:"gas_burnt"`
	// Tokens burnt for the gas. Not always GasBurnt times the gas
	// price, since the prepaid price may differ from the actual one.
	TokensBurnt Balance `cramberry:"4" json:"tokens_burnt"`
	// Signer for a transaction, receiver for a receipt.
	ExecutorID AccountID           `cramberry:"5" json:"executor_id"`
	Status     ExecutionStatusView `cramberry:"6" json:"status"`
}

// ExecutionOutcomeWithIDView attaches identifiers to an outcome.
type ExecutionOutcomeWithIDView struct {
	ID        CryptoHash           `cramberry:"1" json:"id"`
	BlockHash CryptoHash           `cramberry:"2" json:"block_hash"`
	Outcome   ExecutionOutcomeView `cramberry:"3" json:"outcome"`
}

func (v ExecutionOutcomeWithIDView) validate() error {
	if v.Outcome.ExecutorID != "" {
		if err := v.Outcome.ExecutorID.Validate(); err != nil {
			return fmt.Errorf("%w: outcome %s: %v", ErrInvalidView, v.ID, err)
		}
	}
	if err := v.Outcome.Status.validate(); err != nil {
		return fmt.Errorf("outcome %s: %w", v.ID, err)
	}
	return nil
}

// FinalExecutionOutcomeView is the full result of a transaction
// submission: the top-level status, the transaction outcome and every
// receipt outcome in execution order.
type FinalExecutionOutcomeView struct {
	Status             FinalExecutionStatus         `cramberry:"1" json:"status"`
	TransactionOutcome ExecutionOutcomeWithIDView   `cramberry:"2" json:"transaction_outcome"`
	ReceiptsOutcome    []ExecutionOutcomeWithIDView `cramberry:"3" json:"receipts_outcome"`
}

// Validate rejects views whose statuses or identifiers are malformed.
// The error wraps ErrInvalidView.
func (v FinalExecutionOutcomeView) Validate() error {
	if err := v.Status.validate(); err != nil {
		return err
	}
	if err := v.TransactionOutcome.validate(); err != nil {
		return fmt.Errorf("transaction: %w", err)
	}
	for i, receipt := range v.ReceiptsOutcome {
		if err := receipt.validate(); err != nil {
			return fmt.Errorf("receipt %d: %w", i, err)
		}
	}
	return nil
}

// CallResult is the response of a view function call.
type CallResult struct {
	Result []byte   `cramberry:"1" json:"result"`
	Logs   []string `cramberry:"2" json:"logs"`
}

func (r *CallResult) UnmarshalJSON(data []byte) error {
	var aux struct {
		Result jsonRaw  `json:"result"`
		Logs   []string `json:"logs"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("call result: %w", err)
	}
	r.Logs = aux.Logs
	r.Result = nil
	raw := bytes.TrimSpace(aux.Result)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return nil
	case raw[0] == '[':
		// The node returns the result as an array of byte values.
		var ints []int
		if err := json.Unmarshal(raw, &ints); err != nil {
			return fmt.Errorf("call result: %w", err)
		}
		out := make([]byte, len(ints))
		for i, n := range ints {
			if n < 0 || n > 0xff {
				return fmt.Errorf("call result: byte %d out of range: %d", i, n)
			}
			out[i] = byte(n)
		}
		r.Result = out
	default:
		if err := json.Unmarshal(raw, &r.Result); err != nil {
			return fmt.Errorf("call result: %w", err)
		}
	}
	return nil
}

// TxStatusRequest asks for the final outcome of a submitted
// transaction.
type TxStatusRequest struct {
	TxHash   CryptoHash `cramberry:"1" json:"tx_hash"`
	SenderID AccountID  `cramberry:"2" json:"sender_account_id"`
}

// ViewRequest calls a read-only contract function.
type ViewRequest struct {
	ContractID AccountID `cramberry:"1" json:"account_id"`
	MethodName string    `cramberry:"2" json:"method_name"`
	Args       []byte    `cramberry:"3" json:"args_base64"`
}
