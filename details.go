package execution

import (
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/blockberries/execution/types"
)

// Diagnostics is the read-only view over an executed transaction that
// every stage of a result exposes, successful or not.
type Diagnostics interface {
	Outcome() Outcome
	Outcomes() []Outcome
	ReceiptOutcomes() []Outcome
	Failures() []Outcome
	ReceiptFailures() []Outcome
	Logs() []string
	TotalGasBurnt() types.Gas
	TotalTokensBurnt() *uint256.Int
}

var (
	_ Diagnostics = (*ExecutionDetails)(nil)
	_ Diagnostics = (*FinalResult)(nil)
	_ Diagnostics = (*ExecutionSuccess)(nil)
	_ Diagnostics = (*ExecutionFailure)(nil)
)

// ExecutionDetails groups the outcome of a transaction with the
// outcomes of all receipts it generated, in execution order. It is
// immutable once built; accessors return deep copies.
type ExecutionDetails struct {
	transaction   Outcome
	receipts      []Outcome
	totalGasBurnt types.Gas
}

func newExecutionDetails(view types.FinalExecutionOutcomeView) *ExecutionDetails {
	d := &ExecutionDetails{
		transaction: newOutcome(view.TransactionOutcome),
		receipts:    make([]Outcome, len(view.ReceiptsOutcome)),
	}
	d.totalGasBurnt = d.transaction.GasBurnt
	for i, r := range view.ReceiptsOutcome {
		d.receipts[i] = newOutcome(r)
		d.totalGasBurnt += d.receipts[i].GasBurnt
	}
	return d
}

// Outcome returns the transaction outcome alone.
func (d *ExecutionDetails) Outcome() Outcome {
	return d.transaction.clone()
}

// Outcomes returns the transaction outcome followed by every receipt
// outcome.
func (d *ExecutionDetails) Outcomes() []Outcome {
	out := make([]Outcome, 0, 1+len(d.receipts))
	out = append(out, d.transaction.clone())
	return append(out, d.ReceiptOutcomes()...)
}

// ReceiptOutcomes returns the receipt outcomes only.
func (d *ExecutionDetails) ReceiptOutcomes() []Outcome {
	out := make([]Outcome, len(d.receipts))
	for i, r := range d.receipts {
		out[i] = r.clone()
	}
	return out
}

// Failures returns every failed outcome, the transaction first if it
// failed. Outcomes with an unknown status count as failed.
func (d *ExecutionDetails) Failures() []Outcome {
	var out []Outcome
	if d.transaction.IsFailure() {
		out = append(out, d.transaction.clone())
	}
	return append(out, d.ReceiptFailures()...)
}

// ReceiptFailures is Failures restricted to receipts.
func (d *ExecutionDetails) ReceiptFailures() []Outcome {
	var out []Outcome
	for _, r := range d.receipts {
		if r.IsFailure() {
			out = append(out, r.clone())
		}
	}
	return out
}

// Logs returns the logs of every outcome, in outcome order.
func (d *ExecutionDetails) Logs() []string {
	var logs []string
	logs = append(logs, d.transaction.Logs...)
	for _, r := range d.receipts {
		logs = append(logs, r.Logs...)
	}
	return logs
}

// TotalGasBurnt is the gas burnt by the transaction and all receipts.
func (d *ExecutionDetails) TotalGasBurnt() types.Gas {
	return d.totalGasBurnt
}

// TotalTokensBurnt sums the tokens burnt by every outcome.
func (d *ExecutionDetails) TotalTokensBurnt() *uint256.Int {
	total := d.transaction.TokensBurnt.Int()
	for _, r := range d.receipts {
		total.Add(total, r.TokensBurnt.Int())
	}
	return total
}

func (d *ExecutionDetails) marshalDetails(e *zerolog.Event) {
	arr := zerolog.Arr()
	for _, r := range d.receipts {
		arr.Object(r)
	}
	e.Uint64("totalGasBurnt", uint64(d.totalGasBurnt)).
		Object("transaction", d.transaction).
		Array("receipts", arr)
}
