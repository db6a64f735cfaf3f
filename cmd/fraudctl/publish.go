package main

import (
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JaimeStill/fraudguard/internal/artifacts"
	"github.com/JaimeStill/fraudguard/pkg/model"
	"github.com/JaimeStill/fraudguard/pkg/storage"
)

var publishDir string

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload artifacts from a local directory",
	Long:  "Validates the classifier, scaler, and feature list found in --dir under their configured key names, then uploads all three to the configured storage. Nothing is uploaded if any file fails validation.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		files, err := readArtifacts(publishDir, &cfg.Artifacts)
		if err != nil {
			return err
		}

		store, err := storage.New(&cfg.Storage, logger)
		if err != nil {
			return err
		}

		for _, f := range files {
			if err := store.Upload(ctx, f.key, bytes.NewReader(f.data), f.contentType); err != nil {
				return fmt.Errorf("publish %s: %w", f.kind, err)
			}
			logger.Info("artifact published", zap.String("kind", string(f.kind)), zap.String("location", store.Locate(f.key)))
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s -> %s\n", f.kind, store.Locate(f.key))
		}
		return nil
	},
}

type artifactFile struct {
	kind        artifacts.Kind
	key         string
	data        []byte
	contentType string
}

// readArtifacts reads and decodes all three artifacts from dir so a corrupt
// file is rejected before anything is uploaded.
func readArtifacts(dir string, cfg *artifacts.Config) ([]artifactFile, error) {
	decoders := map[artifacts.Kind]func([]byte) error{
		artifacts.KindClassifier: func(b []byte) error {
			_, err := model.DecodeClassifier(bytes.NewReader(b))
			return err
		},
		artifacts.KindScaler: func(b []byte) error {
			_, err := model.DecodeScaler(bytes.NewReader(b))
			return err
		},
		artifacts.KindFeatures: func(b []byte) error {
			_, err := artifacts.ReadSchema(bytes.NewReader(b))
			return err
		},
	}

	var files []artifactFile
	for _, kind := range []artifacts.Kind{artifacts.KindClassifier, artifacts.KindScaler, artifacts.KindFeatures} {
		key := cfg.Key(kind)
		path := filepath.Join(dir, filepath.FromSlash(key))

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &artifacts.LoadError{Kind: kind, Location: path, Reason: artifacts.ErrMissingArtifact, Err: err}
		}
		if err := decoders[kind](data); err != nil {
			return nil, &artifacts.LoadError{Kind: kind, Location: path, Reason: artifacts.ErrCorruptArtifact, Err: err}
		}

		contentType := "application/json"
		if kind == artifacts.KindFeatures {
			contentType = "text/csv"
		}
		files = append(files, artifactFile{kind: kind, key: key, data: data, contentType: contentType})
	}
	return files, nil
}

func init() {
	publishCmd.Flags().StringVar(&publishDir, "dir", ".", "directory holding the artifact files")
	rootCmd.AddCommand(publishCmd)
}
