package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"cobible/internal/service"
	"cobible/internal/session"

	"github.com/spf13/cobra"
)

const flashcardHelp = "[f]lip  [n]ext  [p]revious  [s]huffle  [q]uit"

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Study question and answer cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		language, _ := cmd.Flags().GetString("language")
		requested, _ := cmd.Flags().GetStringSlice("category")
		all, _ := cmd.Flags().GetBool("all")

		categories, err := selectCategories(language, service.KindFlashcard, requested, all)
		if err != nil {
			return err
		}

		snap, err := deps.Sessions.StartFlashcards(cmd.Context(), language, categories)
		if err != nil {
			return err
		}
		defer deps.Sessions.CloseFlashcards(snap.ID)

		out := cmd.OutOrStdout()
		if snap.Total == 0 {
			fmt.Fprintf(out, "No flashcards available for %s in %s.\n", language, strings.Join(categories, ", "))
			return nil
		}

		lines := readLines(cmd.InOrStdin())
		for {
			printCard(out, snap)
			fmt.Fprintf(out, "%s > ", flashcardHelp)

			line, err := nextLine(cmd.Context(), lines)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				return err
			}

			switch strings.ToLower(line) {
			case "f", "":
				snap, err = deps.Sessions.Flip(snap.ID)
			case "n":
				snap, err = deps.Sessions.Next(snap.ID)
			case "p":
				snap, err = deps.Sessions.Previous(snap.ID)
			case "s":
				snap, err = deps.Sessions.Shuffle(snap.ID)
			case "q":
				return nil
			default:
				fmt.Fprintf(out, "Unknown command %q\n", line)
			}
			if err != nil {
				return err
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(flashcardsCmd)

	flashcardsCmd.Flags().StringP("language", "l", "Java", "language")
	flashcardsCmd.Flags().StringSliceP("category", "c", nil, "category to study, repeatable (default: the first category)")
	flashcardsCmd.Flags().Bool("all", false, "study every category")
}

func printCard(out io.Writer, snap session.FlashcardSnapshot) {
	card := snap.Card
	if card == nil {
		return
	}
	fmt.Fprintf(out, "\nCard %d/%d [%s]\nQ: %s\n", snap.CurrentIndex+1, snap.Total, card.Category, card.Question)
	if snap.IsFlipped {
		fmt.Fprintf(out, "A: %s\n", card.Answer)
	}
}
