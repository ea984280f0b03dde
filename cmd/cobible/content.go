package main

import (
	"fmt"
	"strings"

	"cobible/internal/service"

	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages of every dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, kind := range []string{service.KindShortcut, service.KindQuiz, service.KindFlashcard} {
			languages, err := deps.Content.LanguagesOf(kind)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-10s %s\n", kind, strings.Join(languages, ", "))
		}
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories of a language",
	RunE: func(cmd *cobra.Command, args []string) error {
		language, _ := cmd.Flags().GetString("language")
		kind, _ := cmd.Flags().GetString("kind")

		categories, err := deps.Content.Categories(language, kind)
		if err != nil {
			return err
		}
		for _, c := range categories {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

var shortcutsCmd = &cobra.Command{
	Use:   "shortcuts",
	Short: "Search the cheat-sheet of a language",
	RunE: func(cmd *cobra.Command, args []string) error {
		language, _ := cmd.Flags().GetString("language")
		search, _ := cmd.Flags().GetString("search")
		title, _ := cmd.Flags().GetString("title")
		out := cmd.OutOrStdout()

		if title != "" {
			shortcut, err := deps.Content.ShortcutByTitle(cmd.Context(), language, title)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d. %s (%s)\n%s\n\n    %s\n", shortcut.Number, shortcut.Title, shortcut.Language, shortcut.Explanation, shortcut.Code)
			return nil
		}

		shortcuts, err := deps.Content.Shortcuts(cmd.Context(), language, search)
		if err != nil {
			return err
		}
		if len(shortcuts) == 0 {
			fmt.Fprintln(out, "No shortcuts found.")
			return nil
		}
		for _, s := range shortcuts {
			fmt.Fprintf(out, "%3d. %-24s %s\n     %s\n", s.Number, s.Title, s.Explanation, s.Code)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd, categoriesCmd, shortcutsCmd)

	categoriesCmd.Flags().StringP("language", "l", "Java", "language")
	categoriesCmd.Flags().StringP("kind", "k", service.KindQuiz, "dataset kind: shortcut, quiz or flashcard")

	shortcutsCmd.Flags().StringP("language", "l", "Java", "language")
	shortcutsCmd.Flags().StringP("search", "s", "", "case-insensitive title substring")
	shortcutsCmd.Flags().StringP("title", "t", "", "show the shortcut with this exact title")
}
