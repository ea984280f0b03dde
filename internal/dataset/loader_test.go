package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cobible/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields are trimmed",
			line: " 1 , Print ,Prints text",
			want: []string{"1", "Print", "Prints text"},
		},
		{
			name: "delimiter inside quotes is literal",
			line: `1,"a, b",c`,
			want: []string{"1", "a, b", "c"},
		},
		{
			name: "quotes are dropped",
			line: `"x"`,
			want: []string{"x"},
		},
		{
			name: "unterminated quote runs to end of line",
			line: `a,"b,c`,
			want: []string{"a", "b,c"},
		},
		{
			name: "empty fields are kept",
			line: "a,,",
			want: []string{"a", "", ""},
		},
		{
			name: "empty line is one empty field",
			line: "",
			want: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitFields(tt.line, Delimiter))
		})
	}
}

func TestLoadShortcuts(t *testing.T) {
	t.Run("single row", func(t *testing.T) {
		result := LoadShortcuts("N,Title,Explanation,Code,Lang\n1,Print,Prints text,println(x),Java")

		require.Len(t, result.Records, 1)
		assert.Equal(t, 0, result.Dropped)
		assert.Equal(t, domain.Shortcut{
			Number:      1,
			Title:       "Print",
			Explanation: "Prints text",
			Code:        "println(x)",
			Language:    "Java",
		}, result.Records[0])
	})

	t.Run("optional category column", func(t *testing.T) {
		result := LoadShortcuts("header\n2,Loop,Loops,\"for (a, b)\",Python,Control flow\r\n")

		require.Len(t, result.Records, 1)
		assert.Equal(t, "for (a, b)", result.Records[0].Code)
		assert.Equal(t, "Control flow", result.Records[0].Category)
	})

	t.Run("malformed rows are dropped", func(t *testing.T) {
		raw := strings.Join([]string{
			"number,title,explanation,code,language",
			"x,Print,Prints,print(x),Python", // non-integer ordinal
			"3,Print,Prints,print(x)",        // too few columns
			"4,Print,Prints,print(x),",       // empty language
			"",                               // blank, not counted
			"5,Print,Prints,print(x),Python",
		}, "\n")

		result := LoadShortcuts(raw)
		require.Len(t, result.Records, 1)
		assert.Equal(t, 5, result.Records[0].Number)
		assert.Equal(t, 3, result.Dropped)
	})

	t.Run("header only and empty input", func(t *testing.T) {
		assert.Empty(t, LoadShortcuts("number,title").Records)

		empty := LoadShortcuts("")
		assert.NotNil(t, empty.Records)
		assert.Empty(t, empty.Records)
	})
}

func TestLoadQuizQuestions(t *testing.T) {
	t.Run("one malformed row out of ten", func(t *testing.T) {
		lines := []string{"language,category,question,A,B,C,D,answer"}
		for i := 0; i < 9; i++ {
			lines = append(lines, fmt.Sprintf("Java,Basics,Question %d?,a,b,c,d,C", i))
		}
		lines = append(lines, "Java,Basics,Short row?,a,b,c")

		result := LoadQuizQuestions(strings.Join(lines, "\n"))
		assert.Len(t, result.Records, 9)
		assert.Equal(t, 1, result.Dropped)
	})

	t.Run("answer letter maps to option index", func(t *testing.T) {
		result := LoadQuizQuestions("h\nPython,Errors,Which raises?,throw,raise,panic,error,b")

		require.Len(t, result.Records, 1)
		q := result.Records[0]
		assert.Equal(t, 1, q.CorrectIndex)
		assert.Equal(t, [4]string{"throw", "raise", "panic", "error"}, q.Options)
		assert.Equal(t, "Errors", q.Category)
		assert.Equal(t, "Which raises?", q.Text)
	})

	t.Run("unknown answer letter is dropped", func(t *testing.T) {
		result := LoadQuizQuestions("h\nJava,Basics,Q?,a,b,c,d,E")
		assert.Empty(t, result.Records)
		assert.Equal(t, 1, result.Dropped)
	})
}

func TestLoadFlashcards(t *testing.T) {
	raw := "id,language,question,answer,category\n" +
		"j1,Java,What is the JVM?,A virtual machine,Basics\n" +
		"j2,Java,\"a, b?\",\"c, d\",OOP\n" +
		"j3,,No language,x,Basics\n"

	result := LoadFlashcards(raw)
	require.Len(t, result.Records, 2)
	assert.Equal(t, 1, result.Dropped)
	assert.Equal(t, domain.Flashcard{
		ID:       "j2",
		Language: "Java",
		Category: "OOP",
		Question: "a, b?",
		Answer:   "c, d",
	}, result.Records[1])
}

func TestSources(t *testing.T) {
	ctx := context.Background()

	t.Run("bundled datasets parse without drops", func(t *testing.T) {
		src := NewEmbeddedSource()

		shortcuts := LoadShortcuts(ReadOrEmpty(ctx, src, domain.DatasetShortcuts))
		assert.NotEmpty(t, shortcuts.Records)
		assert.Zero(t, shortcuts.Dropped)

		quiz := LoadQuizQuestions(ReadOrEmpty(ctx, src, domain.DatasetQuiz))
		assert.NotEmpty(t, quiz.Records)
		assert.Zero(t, quiz.Dropped)

		cards := LoadFlashcards(ReadOrEmpty(ctx, src, domain.DatasetFlashcards))
		assert.NotEmpty(t, cards.Records)
		assert.Zero(t, cards.Dropped)
	})

	t.Run("file source", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "shortcuts.csv"), []byte("h\n1,A,B,C,Java"), 0o600))

		src := NewFileSource(dir)
		raw, err := src.Read(ctx, domain.DatasetShortcuts)
		require.NoError(t, err)
		assert.Len(t, LoadShortcuts(raw).Records, 1)
	})

	t.Run("missing resource degrades to empty", func(t *testing.T) {
		src := NewFileSource(t.TempDir())

		_, err := src.Read(ctx, domain.DatasetQuiz)
		assert.ErrorIs(t, err, os.ErrNotExist)

		raw := ReadOrEmpty(ctx, src, domain.DatasetQuiz)
		assert.Empty(t, raw)
		assert.Empty(t, LoadQuizQuestions(raw).Records)

		_, err = NewEmbeddedSource().Read(ctx, "missing")
		assert.Error(t, err)
	})
}
