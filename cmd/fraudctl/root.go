package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/internal/config"
	"github.com/JaimeStill/fraudguard/pkg/logging"
)

var (
	configPath string
	serverURL  string
)

var rootCmd = &cobra.Command{
	Use:           "fraudctl",
	Short:         "Operate a fraudguard deployment",
	Long:          "Publishes and verifies trained artifacts against the configured storage backend, and sends records to a running fraudguard server.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.BaseConfigFile, "base config file (overlay selected by FRAUDGUARD_ENV)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "http://localhost:8080", "fraudguard server URL")
}

// loadConfig reads configuration and builds the logger for commands that
// touch storage directly.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	return cfg, logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
