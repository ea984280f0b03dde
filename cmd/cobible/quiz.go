package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cobible/internal/domain"
	"cobible/internal/service"
	"cobible/internal/session"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const watchInterval = 200 * time.Millisecond

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Play a timed multiple-choice quiz",
	Long: "Answer each question with A, B, C or D. An empty line submits no answer and q quits. " +
		"When the countdown reaches zero the question is submitted with no answer.",
	RunE: func(cmd *cobra.Command, args []string) error {
		language, _ := cmd.Flags().GetString("language")
		requested, _ := cmd.Flags().GetStringSlice("category")
		all, _ := cmd.Flags().GetBool("all")
		count, _ := cmd.Flags().GetInt("count")

		categories, err := selectCategories(language, service.KindQuiz, requested, all)
		if err != nil {
			return err
		}

		opts := service.QuizOptions{Language: language, Categories: categories, Count: count}
		if cmd.Flags().Changed("seconds") {
			seconds, _ := cmd.Flags().GetInt("seconds")
			opts.Seconds = &seconds
		}

		snap, err := deps.Sessions.StartQuiz(cmd.Context(), opts)
		if err != nil {
			return err
		}
		defer deps.Sessions.CloseQuiz(snap.ID)

		out := cmd.OutOrStdout()
		lines := readLines(cmd.InOrStdin())
		for {
			if snap.State != session.InProgress.String() {
				fmt.Fprintf(out, "No questions available for %s in %s.\n", language, strings.Join(categories, ", "))
				return nil
			}

			again, err := playQuiz(cmd.Context(), deps.Sessions, snap, lines, out)
			if err != nil || !again {
				return err
			}
			if snap, err = deps.Sessions.ReplayQuiz(snap.ID); err != nil {
				return err
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(quizCmd)

	quizCmd.Flags().StringP("language", "l", "Java", "language")
	quizCmd.Flags().StringSliceP("category", "c", nil, "category to draw from, repeatable (default: the first category)")
	quizCmd.Flags().Bool("all", false, "draw from every category")
	quizCmd.Flags().IntP("count", "n", 0, "number of questions (default: quiz.question_count)")
	quizCmd.Flags().IntP("seconds", "s", 0, "seconds per question, 0 disables the countdown (default: quiz.seconds_per_question)")
}

// readLines feeds input lines to the returned channel until EOF. The reader
// goroutine outlives the command when the input never ends, which is fine for
// a process that exits afterwards.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
	}()
	return lines
}

// errQuit ends a game on q or end of input.
var errQuit = errors.New("quit")

// playQuiz runs a started quiz to completion and reports whether the player
// wants another round. A watcher polls the session so a countdown expiry is
// shown without waiting for input.
func playQuiz(ctx context.Context, sessions service.SessionService, snap session.QuizSnapshot, lines <-chan string, out io.Writer) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	expired := make(chan int, 1)
	g, gctx := errgroup.WithContext(ctx)

	if snap.CountdownActive {
		g.Go(func() error {
			return watchCountdown(gctx, sessions, snap.ID, expired)
		})
	}

	var again bool
	g.Go(func() error {
		defer cancel()
		final, err := runQuestions(gctx, sessions, snap, lines, expired, out)
		if errors.Is(err, errQuit) {
			fmt.Fprintln(out, "Bye.")
			return nil
		}
		if err != nil {
			return err
		}

		printSummary(out, final)
		fmt.Fprint(out, "Play again? [y/N] ")
		answer, err := nextLine(gctx, lines)
		again = err == nil && strings.EqualFold(answer, "y")
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return false, err
	}
	return again, nil
}

// watchCountdown reports the index of every question submitted without an
// answer. It is the only sender on expired and keeps only the latest index.
func watchCountdown(ctx context.Context, sessions service.SessionService, id string, expired chan int) error {
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	notified := -1
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		snap, err := sessions.Quiz(id)
		if err != nil {
			return err
		}
		if snap.State != session.InProgress.String() {
			return nil
		}
		if snap.HasAnswered && snap.SelectedOption == nil && snap.CurrentIndex != notified {
			notified = snap.CurrentIndex
			select {
			case <-expired:
			default:
			}
			expired <- notified
		}
	}
}

func runQuestions(ctx context.Context, sessions service.SessionService, snap session.QuizSnapshot, lines <-chan string, expired <-chan int, out io.Writer) (session.QuizSnapshot, error) {
	var err error
	for snap.State == session.InProgress.String() {
		printQuestion(out, snap)

		if !snap.HasAnswered {
			snap, err = awaitAnswer(ctx, sessions, snap, lines, expired, out)
			if err != nil {
				return snap, err
			}
		}
		printFeedback(out, snap)

		fmt.Fprint(out, "Press Enter to continue. ")
		if line, err := nextLine(ctx, lines); err != nil {
			return snap, err
		} else if strings.EqualFold(line, "q") {
			return snap, errQuit
		}

		if snap, err = sessions.Advance(ctx, snap.ID); err != nil {
			return snap, err
		}
	}
	return snap, nil
}

func awaitAnswer(ctx context.Context, sessions service.SessionService, snap session.QuizSnapshot, lines <-chan string, expired <-chan int, out io.Writer) (session.QuizSnapshot, error) {
	fmt.Fprint(out, "Your answer: ")
	for {
		select {
		case <-ctx.Done():
			return snap, ctx.Err()
		case index := <-expired:
			if index != snap.CurrentIndex {
				continue
			}
			fmt.Fprintln(out, "\nTime's up!")
			return sessions.Quiz(snap.ID)
		case line, ok := <-lines:
			if !ok || strings.EqualFold(line, "q") {
				return snap, errQuit
			}

			var option *int
			if line != "" {
				index, valid := domain.OptionIndex(line)
				if !valid {
					fmt.Fprint(out, "Answer with A, B, C or D: ")
					continue
				}
				option = &index
			}
			return sessions.Answer(ctx, snap.ID, option)
		}
	}
}

func nextLine(ctx context.Context, lines <-chan string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lines:
		if !ok {
			return "", errQuit
		}
		return line, nil
	}
}

func printQuestion(out io.Writer, snap session.QuizSnapshot) {
	q := snap.Question
	if q == nil {
		return
	}
	fmt.Fprintf(out, "\nQuestion %d/%d [%s]", snap.CurrentIndex+1, snap.Total, q.Category)
	if snap.CountdownActive {
		fmt.Fprintf(out, " %ds", snap.RemainingSeconds)
	}
	fmt.Fprintf(out, "\n%s\n", q.Text)
	for i, option := range q.Options {
		fmt.Fprintf(out, "  %s) %s\n", domain.OptionLetter(i), option)
	}
}

func printFeedback(out io.Writer, snap session.QuizSnapshot) {
	if snap.CorrectOption == nil {
		return
	}
	correct := domain.OptionLetter(*snap.CorrectOption)
	switch {
	case snap.SelectedOption == nil:
		fmt.Fprintf(out, "No answer. The correct answer is %s.\n", correct)
	case *snap.SelectedOption == *snap.CorrectOption:
		fmt.Fprintln(out, "Correct!")
	default:
		fmt.Fprintf(out, "Wrong. The correct answer is %s.\n", correct)
	}
}

func printSummary(out io.Writer, snap session.QuizSnapshot) {
	fmt.Fprintf(out, "\nScore: %d/%d\n", snap.Score, snap.Total)
	if snap.Accuracy != nil {
		fmt.Fprintf(out, "Accuracy: %d%%\n", *snap.Accuracy)
	}
}
