package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blockberries/execution/cmd/execinspect/internal/config"
	"github.com/blockberries/execution/cmd/execinspect/internal/inspect"
	"github.com/blockberries/execution/cmd/execinspect/internal/serve"
	"github.com/blockberries/execution/cmd/execinspect/internal/status"
	"github.com/blockberries/execution/internal/logging"
)

type RootCommand struct {
	baseCmd  *cobra.Command
	viper    *viper.Viper
	config   config.Config
	cfgFile  string
	logLevel string
}

var logger = logging.NewLogger("root")

func newRootCommand() *RootCommand {
	rc := &RootCommand{viper: config.New()}
	rc.baseCmd = &cobra.Command{
		Use:   "execinspect",
		Short: "Inspect transaction execution outcomes",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("log-level") {
				if err := logging.SetupGlobalLevel(rc.logLevel); err != nil {
					return err
				}
			} else {
				logging.SetLevelFromEnv()
			}
			cfg, err := config.Load(rc.viper, rc.cfgFile, cmd.Flags(), logger)
			if err != nil {
				return err
			}
			rc.config = *cfg
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rc.baseCmd.PersistentFlags()
	flags.StringVarP(&rc.cfgFile, "config", "c", "", "The path to the config file")
	flags.StringVarP(&rc.logLevel, "log-level", "l", "", "Log level: trace|debug|info|warn|error|fatal|panic (default $LOG_LEVEL or info)")
	flags.String(config.AddrField, config.Defaults[config.AddrField].(string), "Address of the outcome service")
	flags.String(config.SenderField, "", "Signer of the queried transaction")
	flags.String(config.ContractField, config.Defaults[config.ContractField].(string), "Contract account for view calls and serve")
	flags.String(config.DecodeField, config.DecodeJSON, "Payload rendering: json|raw|base64|none")

	rc.registerSubCommands()
	return rc
}

// registerSubCommands adds all subcommands to the root command
func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		inspect.GetCommand(&rc.config),
		status.GetCommand(&rc.config),
		status.GetViewCommand(&rc.config),
		serve.GetCommand(&rc.config),
	)
}

// Execute runs the root command and handles any errors
func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		os.Exit(1)
	}
}

func main() {
	newRootCommand().Execute()
}
