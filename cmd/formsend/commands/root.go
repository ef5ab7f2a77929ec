package commands

import (
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formsend/pkg/config"
)

var (
	configPath string
	envFile    string
	logLevel   string
	cfg        config.Config
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "formsend",
		Short:        "Validate and send demo form submissions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(config.WithFile(configPath), config.WithEnvFile(envFile))
			if err != nil {
				return err
			}
			if logLevel != "" {
				loaded.Log.Level = logLevel
			}
			level, err := loaded.Log.HlogLevel()
			if err != nil {
				return err
			}
			hlog.SetLevel(level)
			hlog.SetOutput(cmd.ErrOrStderr())
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $FORMSEND_CONFIG)")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with FORMSEND_* overrides")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, notice, warn, error, fatal)")

	root.AddCommand(serveCmd(), submitCmd(), routesCmd(), lintRulesCmd())
	return root
}
