package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/fraudguard/internal/artifacts"
	"github.com/JaimeStill/fraudguard/pkg/storage"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate the configured artifacts",
	Long:  "Loads the classifier, scaler, and feature list from the configured storage exactly as the server does at startup, and reports what was found.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		store, err := storage.New(&cfg.Storage, logger)
		if err != nil {
			return err
		}

		a, err := artifacts.New(store, &cfg.Artifacts, logger).Load(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "classifier  %T  %s\n", a.Classifier, store.Locate(cfg.Artifacts.Classifier))
		fmt.Fprintf(out, "scaler      fitted=%t  %s\n", a.Scaler.Fitted(), store.Locate(cfg.Artifacts.Scaler))
		fmt.Fprintf(out, "features    %d  %s\n", a.Schema.Len(), store.Locate(cfg.Artifacts.Features))

		_, scaled := a.Schema.Index(cfg.Artifacts.AmountFeature)
		fmt.Fprintf(out, "amount      %s  scaled=%t\n", cfg.Artifacts.AmountFeature, scaled && a.Scaler.Fitted())
		return nil
	},
}

func init() { rootCmd.AddCommand(checkCmd) }
