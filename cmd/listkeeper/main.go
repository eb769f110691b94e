// listkeeper: named lists over MCP
//
// A small MCP server that keeps named lists of items (groceries, todo,
// packing...) and persists every change as one JSON snapshot.
//
// Usage:
//
//	listkeeper serve              # Start MCP server (stdio transport)
//	listkeeper run < actions.jsonl
//	listkeeper validate "peanut butter" "the bread of life"
//	listkeeper version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HendryAvila/listkeeper/internal/config"
	"github.com/HendryAvila/listkeeper/internal/logging"
	lkserver "github.com/HendryAvila/listkeeper/internal/server"
	"github.com/HendryAvila/listkeeper/internal/session"
)

var (
	// Global flags
	configPath string
	backend    string
	dataDir    string
	sessionID  string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

// newSession as a session id asks for a freshly generated one.
const newSession = "new"

var rootCmd = &cobra.Command{
	Use:   "listkeeper",
	Short: "Named lists over MCP",
	Long: `listkeeper keeps named lists of items and saves every change as a
single JSON snapshot, on disk, in SQLite or in memory.

Add it to your AI tool's MCP config:

  {
    "mcpServers": {
      "listkeeper": {
        "command": "listkeeper",
        "args": ["serve"]
      }
    }
  }`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "listkeeper v%s\n", lkserver.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.listkeeper/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Storage backend: file, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory")
	rootCmd.PersistentFlags().StringVar(&sessionID, "session", "", "Session id (namespaces the snapshot); \"new\" generates one")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(serveCmd, runCmd, validateCmd, versionCmd)
}

// setup loads the config, applies flag overrides and builds the logger.
// Flags beat environment variables, which beat the config file.
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("session") {
		cfg.SessionID = sessionID
	}
	generated := cfg.SessionID == newSession || cfg.SessionID == ""
	if generated {
		cfg.SessionID = session.NewID()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err = logging.New(cfg.Logging, verbose)
	if err != nil {
		return err
	}
	if generated {
		logger.Info("generated session id", zap.String("session", cfg.SessionID))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
