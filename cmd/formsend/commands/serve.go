package commands

import (
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formsend/pkg/echo"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo echo server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverCfg := cfg.Server
			if addr != "" {
				serverCfg.Address = addr
			}
			h := echo.NewServer(serverCfg, echo.NewMetrics())
			hlog.Infof("formsend: echo server listening on %s", serverCfg.Address)
			h.Spin()
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.address)")
	return cmd
}
