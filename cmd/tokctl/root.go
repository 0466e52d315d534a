package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/config"
	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/directory"
	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/lifecycle"
	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/telemetry"
	"github.com/Brahim-semlali/life-cycle-token-sub000/pkg/logging"
)

// Version is stamped by the release build.
var Version = "0.3.0"

var (
	configDir    string
	directoryURL string
	operatorID   string
	logLevel     string
	jsonOutput   bool

	cfg     *config.Config
	log     *slog.Logger
	manager *lifecycle.Manager
)

var rootCmd = &cobra.Command{
	Use:           "tokctl",
	Short:         "Operator console for payment token lifecycle management",
	Long: `tokctl manages the lifecycle of tokenized payment credentials held at
the Token Directory Service.

Tokens move between four states: Inactive, Active, Suspended and
Deactivated (terminal). Every transition is validated locally before it
reaches the directory, and every accepted transition is confirmed by a
follow-up read. A request the directory has not yet confirmed shows as
pending; use 'tokctl pending' and 'tokctl cancel' to inspect or discard
it.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(configDir)
		if err != nil {
			return err
		}
		if configDir == "" {
			// No explicit config dir: a config.yaml in the working
			// directory still wins over the built-in defaults.
			local := config.LoadLocalWithEnv(".")
			if directoryURL == "" && local.DirectoryURL != "" {
				cfg.DirectoryURL = strings.TrimRight(local.DirectoryURL, "/")
			}
			if operatorID == "" && local.OperatorID != "" {
				cfg.OperatorID = local.OperatorID
			}
		}
		if directoryURL != "" {
			cfg.DirectoryURL = directoryURL
		}
		if operatorID != "" {
			cfg.OperatorID = operatorID
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		log = logging.New(logging.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})

		if err := telemetry.Init(cmd.Context(), "tokctl", Version); err != nil {
			// Telemetry is best-effort; the console still works without it.
			log.Warn("telemetry init failed", "error", err)
		}

		opts := []lifecycle.Option{
			lifecycle.WithLogger(log),
			lifecycle.WithOperatorID(cfg.OperatorID),
		}
		if telemetry.Enabled() {
			metrics, err := telemetry.NewLifecycleMetrics()
			if err != nil {
				log.Warn("metric registration failed", "error", err)
			} else {
				opts = append(opts, lifecycle.WithMetrics(metrics))
			}
		}
		client := directory.NewClient(cfg.DirectoryURL).WithTimeout(cfg.RequestTimeout)
		manager = lifecycle.New(client, opts...)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, _ []string) {
		telemetry.Shutdown(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory containing config.yaml")
	rootCmd.PersistentFlags().StringVar(&directoryURL, "directory-url", "", "Token Directory Service base URL")
	rootCmd.PersistentFlags().StringVar(&operatorID, "operator", "", "operator identity stamped on transitions")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of formatted text")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(suspendCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(deactivateCmd)
	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}

// outputJSON writes v as indented JSON to stdout.
func outputJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
