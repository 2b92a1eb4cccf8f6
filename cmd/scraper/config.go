package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"go-linkedin-doppelganger/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration after merging the config file, .env, the
environment and defaults. Secrets are masked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return showConfig(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func showConfig(w io.Writer, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg.Redacted())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}

	status := "missing"
	if cfg.HasCredentials() {
		status = "set"
	}
	_, err = fmt.Fprintf(w, "# credentials: %s (from LINKEDIN_EMAIL / LINKEDIN_PASSWORD)\n", status)
	return err
}
