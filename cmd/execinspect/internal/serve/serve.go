package serve

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/blockberries/execution/cmd/execinspect/internal/config"
	"github.com/blockberries/execution/example/statusmessage"
	execgrpc "github.com/blockberries/execution/grpc"
	"github.com/blockberries/execution/internal/logging"
	"github.com/blockberries/execution/server"
	"github.com/blockberries/execution/types"
)

var logger = logging.NewLogger("serveCommand")

// GetCommand returns the serve command. It hosts the status-message
// demo provider over gRPC until interrupted.
func GetCommand(cfg *config.Config) *cobra.Command {
	var seed map[string]string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the status-message demo provider over gRPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := statusmessage.New(cfg.Contract)
			if err := Seed(app, seed); err != nil {
				return err
			}

			lis, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", cfg.Addr, err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return Run(ctx, app, lis)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringToStringVar(&seed, "seed", nil, "signer=message pairs submitted as set_status calls on startup")
	return cmd
}

// Seed submits one set_status call per signer, in signer order, and
// logs the resulting transaction hashes.
func Seed(app *statusmessage.App, seed map[string]string) error {
	signers := make([]string, 0, len(seed))
	for s := range seed {
		signers = append(signers, s)
	}
	sort.Strings(signers)

	for _, s := range signers {
		req, err := app.Call(types.AccountID(s), "set_status", statusmessage.SetStatusArgs(seed[s]))
		if err != nil {
			return err
		}
		logger.Info().
			Str(logging.FieldSender, s).
			Stringer(logging.FieldTxHash, req.TxHash).
			Msg("Seeded transaction")
	}
	return nil
}

// Run serves app on lis until ctx is done.
func Run(ctx context.Context, app *statusmessage.App, lis net.Listener) error {
	gs := execgrpc.NewGRPCServer(app, server.WithLogger(logger))
	s := grpc.NewServer()
	gs.Register(s)

	go func() {
		<-ctx.Done()
		gs.Stop(s)
	}()

	logger.Info().Str(logging.FieldAddr, lis.Addr().String()).Msg("Serving outcome service")
	return s.Serve(lis)
}
