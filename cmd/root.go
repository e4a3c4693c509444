package cmd

import (
	"fmt"
	"os"

	"github.com/nijaru/video-api/config"
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "video-api",
	Short: "REST API for managing video records",
	Long: `video-api serves a JSON REST API for video records (name, views, likes)
backed by SQLite or PostgreSQL.

Quick start:
  video-api serve            # Start the HTTP server
  video-api migrate up       # Apply database migrations
  video-api openapi -o api.json`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: $CONFIG_FILE)")
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}
