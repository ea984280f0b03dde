package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cobible/internal/app"
	"cobible/internal/config"
	"cobible/internal/logger"
	"cobible/internal/session"

	"github.com/spf13/cobra"
)

// deps is built by the root command before any subcommand runs.
var deps *app.Container

var rootCmd = &cobra.Command{
	Use:   "cobible",
	Short: "Java and Python cheat-sheets, quizzes and flashcards in the terminal",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		if !verbose {
			cfg.Logger.Level = "error"
		}
		if err := logger.Initialize(cfg.Logger); err != nil {
			return err
		}

		// PostRun is skipped when a command fails.
		if deps != nil {
			deps.Close()
		}
		deps, err = app.NewContainer(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		_, err = deps.Content.Load(cmd.Context())
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if deps != nil {
			deps.Close()
			deps = nil
		}
		_ = logger.Sync()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log at the configured level instead of errors only")
}

// selectCategories returns the requested categories, every category with all,
// or the default selection holding the first available category.
func selectCategories(language, kind string, requested []string, all bool) ([]string, error) {
	available, err := deps.Content.Categories(language, kind)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, fmt.Errorf("no %s content for language %q", kind, language)
	}

	selection := session.NewSelection(available)
	if len(requested) == 0 && !all {
		return selection.Selected(), nil
	}

	for _, category := range available {
		want := all
		for _, r := range requested {
			if r == category {
				want = true
			}
		}
		if want != selection.IsSelected(category) {
			selection.Toggle(category)
		}
	}
	for _, r := range requested {
		if !selection.IsSelected(r) {
			return nil, fmt.Errorf("unknown category %q, available: %v", r, available)
		}
	}
	return selection.Selected(), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
