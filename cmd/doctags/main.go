// Command doctags generates help-tag index files for documentation
// trees and serves them to editor hosts over MCP.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/doctags/doctags-mcp/internal/config"
	"github.com/doctags/doctags-mcp/internal/storage"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "doctags",
	Short: "Help-tag index generator for documentation trees",
	Long: `doctags scans documentation roots for tag definitions, writes sorted
tags index files per root and per translation language, and exposes the
generator and a tag-lookup catalog to editor hosts over MCP.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("doctags %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", storage.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", storage.DriverName)
	},
}

func main() {
	// Diagnostics go to stderr; stdout is reserved for MCP in serve mode.
	log.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $DOCTAGS_CONFIG, then ~/.doctags/config.yaml)")
	rootCmd.AddCommand(versionCmd, generateCmd, serveCmd, watchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
