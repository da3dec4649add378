package cmd

import (
	"fmt"
	"os"

	"sbml-builder/backend/common"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	configFile string
	portFlag   int
)

var rootCmd = &cobra.Command{
	Use:     "sbml-builder",
	Short:   "HTTP gateway for building and simulating SBML models",
	Version: common.Version,
	Long: `sbml-builder stores SBML models in PostgreSQL and forwards model
construction to the ccapp engine and simulation to the simulator engine.

Examples:

  sbml-builder serve
  sbml-builder db init
  sbml-builder db check
`,
	// Running without a subcommand starts the server.
	RunE: runServe,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "optional ini config file (overridden by environment)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dbCmd)
}

// loadConfig reads the configuration and applies the --port override.
func loadConfig() (*common.Config, error) {
	cfg, err := common.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	if portFlag > 0 {
		cfg.Port = portFlag
	}
	if err := common.SetupLogger(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	return cfg, nil
}
