package status

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/blockberries/execution"
	"github.com/blockberries/execution/cmd/execinspect/internal/config"
	"github.com/blockberries/execution/cmd/execinspect/internal/inspect"
	execgrpc "github.com/blockberries/execution/grpc"
	"github.com/blockberries/execution/internal/logging"
	"github.com/blockberries/execution/types"
)

var logger = logging.NewLogger("statusCommand")

const dialTimeout = 5 * time.Second

// GetCommand returns the status command, which fetches a transaction
// from a running outcome service.
func GetCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [tx-hash]",
		Short: "Fetch and summarize a transaction from an outcome service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := types.ParseCryptoHash(args[0])
			if err != nil {
				return err
			}
			client, err := Dial(cmd.Context(), cfg.Addr)
			if err != nil {
				return err
			}
			defer client.Close()

			result, err := client.TxStatus(cmd.Context(), types.TxStatusRequest{TxHash: hash, SenderID: cfg.Sender})
			if err != nil {
				logger.Error().Err(err).Stringer(logging.FieldTxHash, hash).Msg("Failed to fetch the transaction")
				return err
			}
			return inspect.WriteSummary(cmd.OutOrStdout(), result, cfg.Decode)
		},
		SilenceUsage: true,
	}
	return cmd
}

// GetViewCommand returns the view command, which runs a read-only
// call against the configured contract.
func GetViewCommand(cfg *config.Config) *cobra.Command {
	var args string
	cmd := &cobra.Command{
		Use:   "view [method]",
		Short: "Call a view function on the configured contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, params []string) error {
			client, err := Dial(cmd.Context(), cfg.Addr)
			if err != nil {
				return err
			}
			defer client.Close()

			result, err := client.View(cmd.Context(), types.ViewRequest{
				ContractID: cfg.Contract,
				MethodName: params[0],
				Args:       []byte(args),
			})
			if err != nil {
				logger.Error().Err(err).Str(logging.FieldMethod, params[0]).Msg("View call failed")
				return err
			}
			return writeView(cmd.OutOrStdout(), result, cfg.Decode)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&args, "args", "{}", "JSON arguments of the call")
	return cmd
}

func writeView(w io.Writer, r *execution.ViewResult, decode string) error {
	for _, l := range r.Logs {
		fmt.Fprintf(w, "log: %s\n", l)
	}
	switch decode {
	case config.DecodeNone:
		return nil
	case config.DecodeJSON:
		var v any
		if err := r.JSON(&v); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%v\n", v)
		return err
	case config.DecodeBase64:
		raw, err := r.RawBytes()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, base64.StdEncoding.EncodeToString(raw))
		return err
	default:
		raw, err := r.RawBytes()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", raw)
		return err
	}
}

// Dial connects to the outcome service at addr without transport
// security.
func Dial(ctx context.Context, addr string) (*execgrpc.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	return execgrpc.Dial(ctx, addr,
		execgrpc.WithDialOptions(grpc.WithTransportCredentials(insecure.NewCredentials())),
		execgrpc.WithClientLogger(logger),
	)
}
