package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stringcat/stringcat/internal/server"
	"github.com/stringcat/stringcat/pkg/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve [path]",
	Short: "Serve the web UI and HTTP API",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	manager, err := newManager(args)
	if err != nil {
		return err
	}
	logger := logging.Default()

	cfg := server.DefaultConfig()
	cfg.Host = viper.GetString("web_host")
	cfg.Port = viper.GetInt("web_port")
	srv := server.New(manager, logger, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
