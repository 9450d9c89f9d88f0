package executiontest

import (
	"bytes"
	"slices"
	"sync"
	"testing"

	"github.com/blockberries/execution"
	"github.com/blockberries/execution/codec"
	"github.com/blockberries/execution/types"
)

// RunComplianceSuite checks that every transaction a provider reports
// aggregates and classifies consistently.
//
// The factory function should return a fresh provider instance for
// each subtest. reqs names the transactions to query; each must be
// known to every instance the factory returns.
func RunComplianceSuite(t *testing.T, factory func() execution.Provider, reqs []types.TxStatusRequest) {
	t.Helper()

	t.Run("outcomes_start_with_transaction", func(t *testing.T) {
		h := NewHarness(t, factory())
		for _, req := range reqs {
			r := h.TxStatus(req)
			outcomes := r.Outcomes()
			if len(outcomes) != len(r.ReceiptOutcomes())+1 {
				t.Errorf("tx %s: %d outcomes for %d receipts", req.TxHash, len(outcomes), len(r.ReceiptOutcomes()))
			}
			if outcomes[0].TransactionHash != r.Outcome().TransactionHash {
				t.Errorf("tx %s: first outcome is not the transaction outcome", req.TxHash)
			}
		}
	})

	t.Run("total_gas_is_sum", func(t *testing.T) {
		h := NewHarness(t, factory())
		for _, req := range reqs {
			r := h.TxStatus(req)
			var sum types.Gas
			for _, o := range r.Outcomes() {
				sum += o.GasBurnt
			}
			if r.TotalGasBurnt() != sum {
				t.Errorf("tx %s: total gas %d, sum %d", req.TxHash, r.TotalGasBurnt(), sum)
			}
		}
	})

	t.Run("logs_are_concatenated", func(t *testing.T) {
		h := NewHarness(t, factory())
		for _, req := range reqs {
			r := h.TxStatus(req)
			var want []string
			for _, o := range r.Outcomes() {
				want = append(want, o.Logs...)
			}
			if !slices.Equal(r.Logs(), want) {
				t.Errorf("tx %s: logs %v, want %v", req.TxHash, r.Logs(), want)
			}
		}
	})

	t.Run("failures_are_failed_outcomes", func(t *testing.T) {
		h := NewHarness(t, factory())
		for _, req := range reqs {
			r := h.TxStatus(req)
			var want []types.CryptoHash
			for _, o := range r.Outcomes() {
				if o.IsFailure() {
					want = append(want, o.TransactionHash)
				}
			}
			var got []types.CryptoHash
			for _, o := range r.Failures() {
				got = append(got, o.TransactionHash)
			}
			if !slices.Equal(got, want) {
				t.Errorf("tx %s: failures out of order or incomplete", req.TxHash)
			}
		}
	})

	t.Run("classification_is_exclusive", func(t *testing.T) {
		h := NewHarness(t, factory())
		for _, req := range reqs {
			r := h.TxStatus(req)
			n := 0
			for _, b := range []bool{r.IsSuccess(), r.IsFailure(), r.IsPending()} {
				if b {
					n++
				}
			}
			if n != 1 {
				t.Errorf("tx %s: status %s matches %d classes", req.TxHash, r.Status().Kind, n)
			}

			success, err := r.IntoResult()
			switch {
			case r.IsSuccess():
				if err != nil || success == nil {
					t.Errorf("tx %s: success classified but IntoResult returned %v", req.TxHash, err)
				}
			case r.IsFailure():
				if _, ok := execution.IsFailure(err); !ok {
					t.Errorf("tx %s: failure classified but IntoResult returned %v", req.TxHash, err)
				}
			default:
				if _, ok := execution.IsStatus(err); !ok {
					t.Errorf("tx %s: pending but IntoResult returned %v", req.TxHash, err)
				}
			}
		}
	})

	t.Run("decoding_is_idempotent", func(t *testing.T) {
		h := NewHarness(t, factory())
		for _, req := range reqs {
			r := h.TxStatus(req)
			if !r.IsSuccess() {
				continue
			}
			first, err1 := r.RawBytes()
			second, err2 := r.RawBytes()
			if err1 != nil || err2 != nil {
				t.Errorf("tx %s: raw bytes: %v, %v", req.TxHash, err1, err2)
				continue
			}
			if !bytes.Equal(first, second) {
				t.Errorf("tx %s: repeated decode differs", req.TxHash)
			}
		}
	})

	t.Run("deterministic_views", func(t *testing.T) {
		h1 := NewHarness(t, factory())
		h2 := NewHarness(t, factory())
		for _, req := range reqs {
			v1, err1 := h1.Server().FinalOutcome(t.Context(), req)
			v2, err2 := h2.Server().FinalOutcome(t.Context(), req)
			if err1 != nil || err2 != nil {
				t.Fatalf("tx %s: %v, %v", req.TxHash, err1, err2)
			}
			b1, err := codec.Binary.Marshal(&v1)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			b2, err := codec.Binary.Marshal(&v2)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if !bytes.Equal(b1, b2) {
				t.Errorf("tx %s: views differ between instances", req.TxHash)
			}
		}
	})

	t.Run("concurrent_queries", func(t *testing.T) {
		h := NewHarness(t, factory())
		var wg sync.WaitGroup
		for _, req := range reqs {
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := h.Server().FinalOutcome(t.Context(), req); err != nil {
						t.Errorf("tx %s: %v", req.TxHash, err)
					}
				}()
			}
		}
		wg.Wait()
	})
}
