package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CONTENT_SOURCE", "embedded")
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLanguagesCommand(t *testing.T) {
	out, err := execute(t, "", "languages")
	require.NoError(t, err)

	assert.Contains(t, out, "shortcut")
	assert.Contains(t, out, "Java, Python")
}

func TestCategoriesCommand(t *testing.T) {
	out, err := execute(t, "", "categories", "--language", "Java")
	require.NoError(t, err)

	assert.Equal(t, "Basics\nCollections\nErrors\n", out)
}

func TestShortcutsCommand(t *testing.T) {
	t.Run("search", func(t *testing.T) {
		out, err := execute(t, "", "shortcuts", "--language", "Python", "--search", "PRI")
		require.NoError(t, err)
		assert.Contains(t, out, "Print")
		assert.Contains(t, out, "print(x)")
	})

	t.Run("by title", func(t *testing.T) {
		out, err := execute(t, "", "shortcuts", "--language", "Python", "--title", "Print")
		require.NoError(t, err)
		assert.Contains(t, out, "1. Print (Python)")
	})

	t.Run("no match", func(t *testing.T) {
		out, err := execute(t, "", "shortcuts", "--search", "does-not-exist")
		require.NoError(t, err)
		assert.Contains(t, out, "No shortcuts found.")
	})
}

func TestQuizCommand(t *testing.T) {
	t.Run("plays to completion", func(t *testing.T) {
		// A, continue, no answer, continue, decline another round
		out, err := execute(t, "A\n\n\n\nn\n", "quiz", "--count", "2", "--seconds", "0")
		require.NoError(t, err)

		assert.Contains(t, out, "Question 1/2 [Basics]")
		assert.Contains(t, out, "Question 2/2 [Basics]")
		assert.Contains(t, out, "No answer. The correct answer is")
		assert.Contains(t, out, "Score: ")
		assert.Contains(t, out, "Play again?")
	})

	t.Run("play again replays the session", func(t *testing.T) {
		out, err := execute(t, "A\n\ny\nB\n\nn\n", "quiz", "--count", "1", "--seconds", "0")
		require.NoError(t, err)

		assert.Equal(t, 2, strings.Count(out, "Question 1/1 [Basics]"))
		assert.Equal(t, 2, strings.Count(out, "Score: "))
	})

	t.Run("rejects unknown letters", func(t *testing.T) {
		out, err := execute(t, "x\nq\n", "quiz", "--count", "1", "--seconds", "0")
		require.NoError(t, err)

		assert.Contains(t, out, "Answer with A, B, C or D")
		assert.Contains(t, out, "Bye.")
	})

	t.Run("end of input quits", func(t *testing.T) {
		out, err := execute(t, "", "quiz", "--seconds", "0")
		require.NoError(t, err)
		assert.Contains(t, out, "Bye.")
	})

	t.Run("every category", func(t *testing.T) {
		out, err := execute(t, "q\n", "quiz", "--all", "--count", "20", "--seconds", "0")
		require.NoError(t, err)
		assert.Contains(t, out, "/13 [")
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := execute(t, "", "quiz", "--category", "Nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown category")
	})
}

func TestFlashcardsCommand(t *testing.T) {
	out, err := execute(t, "f\nn\np\nq\n", "flashcards", "--language", "Java", "--category", "Basics")
	require.NoError(t, err)

	assert.Contains(t, out, "Card 1/4 [Basics]")
	assert.Contains(t, out, "Card 2/4 [Basics]")
	assert.Contains(t, out, "A: ")
}
