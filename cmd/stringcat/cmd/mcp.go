package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stringcat/stringcat/internal/mcpserver"
	"github.com/stringcat/stringcat/internal/server"
	"github.com/stringcat/stringcat/pkg/logging"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp [path]",
	Short: "Serve MCP tools over stdio",
	Long: `Serve the catalog as MCP tools on stdin/stdout.

When a web host or port is configured the browser UI is served alongside the
MCP transport; a web server failure never stops the MCP service.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	manager, err := newManager(args)
	if err != nil {
		return err
	}
	logger := logging.Default()

	var webSrv *server.Server
	if webConfigured(cmd) {
		cfg := server.DefaultConfig()
		cfg.Host = viper.GetString("web_host")
		cfg.Port = viper.GetInt("web_port")
		webSrv = server.New(manager, logger, cfg)
		go func() {
			if err := webSrv.ListenAndServe(); err != nil {
				logger.Warn().
					Err(err).
					Msg("Web server stopped, MCP server continues")
			}
		}()
	}

	err = mcpserver.New(manager, logger, Version).ServeStdio()

	if webSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = webSrv.Shutdown(shutdownCtx)
	}
	return err
}
