package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/csg33k/staffdesk/internal/config"
	"github.com/csg33k/staffdesk/internal/seed"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	flagConfig string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:           "staffdesk",
	Short:         "Staff desk is an employee onboarding dashboard",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return setupLogging(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ./staffdesk.yaml if present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

func setupLogging(c config.Config) error {
	lvl, err := c.Level()
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if c.LogFormat == config.FormatJSON {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
	return nil
}

// loadSeed returns the configured seed file, or the built-in sample data.
func loadSeed(c config.Config) (seed.Data, error) {
	if c.SeedFile == "" {
		return seed.Default(), nil
	}
	d, err := seed.Load(c.SeedFile)
	if err != nil {
		return seed.Data{}, fmt.Errorf("load seed %s: %w", c.SeedFile, err)
	}
	return d, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the staffdesk version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "staffdesk", version)
	},
}
