package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-linkedin-doppelganger/internal/config"
)

var (
	// Global flags
	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "scraper",
	Short: "Collect the recent posts of a LinkedIn profile",
	Long: `scraper logs in to LinkedIn with a real browser, opens a profile's
posts page and prints the most recent distinct posts.

Credentials are read from LINKEDIN_EMAIL and LINKEDIN_PASSWORD (environment or
.env). Nothing is written to disk: no cookies, no cache, no result files.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error), overrides the config")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig loads the config file and applies the global flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}
