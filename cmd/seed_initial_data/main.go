package main

import (
	"context"
	"fmt"
	"os"

	"cobible/internal/adapter"
	"cobible/internal/app"
	"cobible/internal/config"
	"cobible/internal/dataset"
	"cobible/internal/domain"
	"cobible/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var datasetNames = []string{domain.DatasetShortcuts, domain.DatasetQuiz, domain.DatasetFlashcards}

var rootCmd = &cobra.Command{
	Use:   "seed_initial_data",
	Short: "Populate the shortcut store and optionally publish the datasets to redis",
	Long: "Loads the configured datasets and inserts the shortcuts when the store is empty. " +
		"With --publish the raw datasets are first copied into redis so hosts running with content.source=redis can read them.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		publish, _ := cmd.Flags().GetBool("publish")
		fromDir, _ := cmd.Flags().GetString("from-dir")
		return run(cmd.Context(), publish, fromDir)
	},
}

func init() {
	rootCmd.Flags().Bool("publish", false, "publish the raw datasets to redis before loading")
	rootCmd.Flags().String("from-dir", "", "read the datasets to publish from this directory instead of the embedded copy")
}

func run(ctx context.Context, publish bool, fromDir string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Get()

	container, err := app.NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if publish {
		if container.Cache == nil {
			return fmt.Errorf("--publish requires redis.address")
		}

		var origin domain.ContentSource = dataset.NewEmbeddedSource()
		if fromDir != "" {
			origin = dataset.NewFileSource(fromDir)
		}
		if err := publishDatasets(ctx, origin, adapter.NewCacheContentSource(container.Cache)); err != nil {
			return err
		}
	}

	report, err := container.Content.Load(ctx)
	if err != nil {
		return err
	}
	log.Info("Initial data seeding process completed",
		zap.Int("shortcuts", report.Shortcuts),
		zap.Int("shortcuts_inserted", report.ShortcutsInserted),
		zap.Int("quiz_questions", report.QuizQuestions),
		zap.Int("flashcards", report.Flashcards),
		zap.Int("dropped_rows", report.Dropped))
	return nil
}

func publishDatasets(ctx context.Context, origin domain.ContentSource, target *adapter.CacheContentSource) error {
	log := logger.Get()
	for _, name := range datasetNames {
		raw, err := origin.Read(ctx, name)
		if err != nil {
			log.Warn("Skipping dataset that cannot be read", zap.String("dataset", name), zap.Error(err))
			continue
		}
		if err := target.Publish(ctx, name, raw); err != nil {
			return err
		}
		log.Info("Published dataset", zap.String("dataset", name), zap.Int("bytes", len(raw)))
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
