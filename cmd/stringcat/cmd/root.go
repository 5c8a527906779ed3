// Package cmd implements the stringcat command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stringcat/stringcat/pkg/logging"
	"github.com/stringcat/stringcat/pkg/store"
)

var (
	// Version is set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stringcat",
	Short: "MCP and web server for Apple .xcstrings string catalogs",
	Long: `Stringcat edits Apple .xcstrings string catalogs while preserving the
exact byte format Xcode writes, so version control diffs stay minimal.

It exposes the catalog as MCP tools over stdio for agent-driven translation
workflows, and optionally serves a small web UI for manual editing. With no
catalog path configured it runs in dynamic-path mode, where every request
names the catalog file it targets.`,
}

// Execute runs the root command with signal-aware context.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("path", "", "default .xcstrings catalog file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("web-host", "127.0.0.1", "web UI bind host")
	rootCmd.PersistentFlags().Int("web-port", 8765, "web UI bind port")

	for viperKey, flag := range map[string]string{
		"path":      "path",
		"log_level": "log-level",
		"web_host":  "web-host",
		"web_port":  "web-port",
	} {
		if err := viper.BindPFlag(viperKey, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("Failed to bind %s flag: %v", flag, err))
		}
	}
}

// initConfig reads .env files and environment variables.
func initConfig() {
	// .env.local overrides .env, real environment overrides both
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}

	viper.SetEnvPrefix("STRINGCAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Legacy environment names used by earlier releases
	_ = viper.BindEnv("path", "STRINGCAT_PATH", "STRINGS_PATH", "XCSTRINGS_PATH")
	_ = viper.BindEnv("web_host", "STRINGCAT_WEB_HOST", "WEB_HOST", "XCSTRINGS_WEB_HOST")
	_ = viper.BindEnv("web_port", "STRINGCAT_WEB_PORT", "WEB_PORT", "XCSTRINGS_WEB_PORT")

	if level := viper.GetString("log_level"); level != "" {
		logging.SetLevel(level)
	}
}

// catalogPath resolves the default catalog: the --path flag or environment
// first, then the positional argument. Empty means dynamic-path mode.
func catalogPath(args []string) string {
	if path := viper.GetString("path"); path != "" {
		return path
	}
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// newManager builds the store manager for the resolved catalog path.
func newManager(args []string) (*store.Manager, error) {
	path := catalogPath(args)
	manager, err := store.NewManager(path)
	if err != nil {
		return nil, err
	}
	if path == "" {
		logging.Info().Msg("No catalog path configured, running in dynamic-path mode")
		if len(manager.AvailablePaths()) == 0 {
			logging.Info().Msg("No .xcstrings files discovered at startup")
		}
	}
	return manager, nil
}

// webConfigured reports whether the web server was explicitly requested via
// flags or environment.
func webConfigured(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("web-host") ||
		cmd.Flags().Changed("web-port") ||
		envSet("STRINGCAT_WEB_HOST", "WEB_HOST", "XCSTRINGS_WEB_HOST") ||
		envSet("STRINGCAT_WEB_PORT", "WEB_PORT", "XCSTRINGS_WEB_PORT")
}

func envSet(names ...string) bool {
	for _, name := range names {
		if _, ok := os.LookupEnv(name); ok {
			return true
		}
	}
	return false
}
