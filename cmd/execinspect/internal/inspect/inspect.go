package inspect

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blockberries/execution"
	"github.com/blockberries/execution/cmd/execinspect/internal/config"
	"github.com/blockberries/execution/codec"
	"github.com/blockberries/execution/internal/logging"
	"github.com/blockberries/execution/types"
)

var logger = logging.NewLogger("inspectCommand")

// GetCommand returns the inspect command. cfg is filled in by the
// root command before RunE is called.
func GetCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Summarize a final execution outcome stored as JSON",
		Long: "Reads a final execution outcome in node JSON format " +
			"(the result of an EXPERIMENTAL_tx_status or tx RPC call) and prints " +
			"its classification, aggregated gas, logs and failures.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ReadFile(args[0])
			if err != nil {
				logger.Error().Err(err).Str("file", args[0]).Msg("Failed to read the outcome")
				return err
			}
			return WriteSummary(cmd.OutOrStdout(), result, cfg.Decode)
		},
		SilenceUsage: true,
	}
}

// ReadFile loads and validates a JSON FinalExecutionOutcomeView.
func ReadFile(path string) (*execution.FinalResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var view types.FinalExecutionOutcomeView
	if err := codec.JSON.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := view.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return execution.NewFinalResult(view), nil
}
