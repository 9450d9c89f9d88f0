package inspect

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"

	"github.com/blockberries/execution"
	"github.com/blockberries/execution/cmd/execinspect/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteSummary prints a human-readable report of r: its status, the
// aggregated gas and logs, every failed outcome and, for a successful
// result, the payload rendered according to decode.
func WriteSummary(w io.Writer, r *execution.FinalResult, decode string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "transaction:\t%s\n", r.Outcome().TransactionHash)
	fmt.Fprintf(tw, "signer:\t%s\n", r.Outcome().ExecutorID)
	fmt.Fprintf(tw, "status:\t%s\n", r.Status().Kind)
	fmt.Fprintf(tw, "outcomes:\t%d\n", len(r.Outcomes()))
	fmt.Fprintf(tw, "gas burnt:\t%d\n", r.TotalGasBurnt())
	fmt.Fprintf(tw, "tokens burnt:\t%s\n", r.TotalTokensBurnt().Dec())
	if err := tw.Flush(); err != nil {
		return err
	}

	if logs := r.Logs(); len(logs) > 0 {
		fmt.Fprintln(w, "logs:")
		for _, l := range logs {
			fmt.Fprintf(w, "  %s\n", l)
		}
	}
	if failures := r.Failures(); len(failures) > 0 {
		fmt.Fprintln(w, "failures:")
		for _, o := range failures {
			reason := "unknown status"
			if f := o.Status().Failure; f != nil {
				reason = f.Error()
			}
			fmt.Fprintf(w, "  %s on %s: %s\n", o.TransactionHash, o.ExecutorID, reason)
		}
	}

	success, err := r.IntoResult()
	if err != nil {
		if failure, ok := execution.IsFailure(err); ok {
			fmt.Fprintf(w, "error: %s\n", failure.TxError())
			return nil
		}
		fmt.Fprintf(w, "pending: %v\n", err)
		return nil
	}
	return writeValue(w, success, decode)
}

func writeValue(w io.Writer, s *execution.ExecutionSuccess, decode string) error {
	switch decode {
	case config.DecodeNone:
		return nil
	case config.DecodeBase64:
		_, err := fmt.Fprintf(w, "value (base64): %s\n", s.Value())
		return err
	case config.DecodeRaw:
		raw, err := s.RawBytes()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "value (raw): %s\n", strconv.Quote(string(raw)))
		return err
	default:
		var v any
		if err := s.JSON(&v); err != nil {
			return err
		}
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "value (json): %s\n", out)
		return err
	}
}
