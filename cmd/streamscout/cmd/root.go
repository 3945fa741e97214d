// Package cmd implements the streamscout CLI commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/streamscout/streamscout/internal/config"
	"github.com/streamscout/streamscout/internal/observability"
	"github.com/streamscout/streamscout/internal/version"
	"github.com/streamscout/streamscout/pkg/streamcheck"
)

var cfg *config.Config

// rootCmd represents the base command: resolve a single URL into a
// stream/redirect/playlist/error tree and print it as JSON.
var rootCmd = &cobra.Command{
	Use:     "streamscout <url>",
	Short:   "Resolve a URL into a classified audio/video stream tree",
	Version: version.Short(),
	Long: `streamscout resolves a single HTTP(S) URL that may point to a direct
media stream, a playlist, or a redirect, into a tree of outcomes. Each leaf
is either a classified stream (with extracted Icecast/Shoutcast/HLS
metadata) or a typed error.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initApp()
	},
	RunE: runCheck,
}

func init() {
	rootCmd.PersistentFlags().Int("timeout", 10, "TCP/TLS connect and read timeout, in seconds")
	rootCmd.PersistentFlags().Int("max-depth", 5, "maximum redirect/playlist recursion depth")
	rootCmd.PersistentFlags().Int("retries", 5, "retry attempts if no stream leaf is found")
	rootCmd.PersistentFlags().Bool("early-exit", false, "stop a playlist at the first child that resolves to a stream")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "log format (json, text)")

	mustBindPFlag("tcp_timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	mustBindPFlag("max_depth", rootCmd.PersistentFlags().Lookup("max-depth"))
	mustBindPFlag("retries", rootCmd.PersistentFlags().Lookup("retries"))
	mustBindPFlag("early_exit", rootCmd.PersistentFlags().Lookup("early-exit"))
	mustBindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	mustBindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("executing root command: %w", err)
	}
	return nil
}

// initApp loads configuration and wires up the process-wide logger.
func initApp() error {
	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded

	logger := observability.NewLogger(cfg.Logging)
	observability.SetDefault(logger)
	return nil
}

// runCheck resolves the single positional URL argument and prints the
// resulting tree as JSON on stdout.
func runCheck(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.MaxDepth)*cfg.TCPTimeout()*2)
	defer cancel()

	logger := observability.LoggerFromContext(ctx)
	logger.Info("checking url", "url", rawURL)

	result := streamcheck.CheckTree(ctx, rawURL, streamcheck.Options{
		TCPTimeout: cfg.TCPTimeout(),
		MaxDepth:   cfg.MaxDepth,
		Retries:    cfg.Retries,
		EarlyExit:  cfg.EarlyExit,
		Logger:     logger,
	})

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}

// mustBindPFlag binds a viper key to a cobra flag and panics if binding
// fails. Ensures lint-compliant error handling for viper.BindPFlag.
func mustBindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("failed to bind flag %q to key %q: %v", flag.Name, key, err))
	}
}
