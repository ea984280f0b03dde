package dataset

import (
	"strconv"
	"strings"

	"cobible/internal/domain"
	"cobible/internal/validation"
)

// Minimum column counts of the canonical dataset layouts.
const (
	ShortcutColumns  = 5 // number, title, explanation, code, language [, category]
	QuizColumns      = 8 // language, category, question, A, B, C, D, answer letter
	FlashcardColumns = 5 // id, language, question, answer, category
)

// Result holds the accepted records of one load and the number of rows dropped
// as malformed. Blank lines are neither accepted nor dropped.
type Result[T any] struct {
	Records []T
	Dropped int
}

// RowParser converts the fields of one row into a record. It reports false
// when the row cannot be parsed.
type RowParser[T any] func(fields []string) (T, bool)

// Load parses raw delimited text. The first line is a header and is skipped.
// Rows with fewer than expectedColumns fields, or rejected by parse, are dropped.
func Load[T any](raw string, expectedColumns int, parse RowParser[T]) Result[T] {
	result := Result[T]{Records: []T{}}
	if raw == "" {
		return result
	}

	lines := strings.Split(raw, "\n")
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := SplitFields(line, Delimiter)
		if len(fields) < expectedColumns {
			result.Dropped++
			continue
		}

		record, ok := parse(fields)
		if !ok {
			result.Dropped++
			continue
		}
		result.Records = append(result.Records, record)
	}

	return result
}

// LoadShortcuts parses the shortcut dataset.
func LoadShortcuts(raw string) Result[domain.Shortcut] {
	return Load(raw, ShortcutColumns, parseShortcut)
}

// LoadQuizQuestions parses the quiz dataset.
func LoadQuizQuestions(raw string) Result[domain.QuizQuestion] {
	return Load(raw, QuizColumns, parseQuizQuestion)
}

// LoadFlashcards parses the flashcard dataset.
func LoadFlashcards(raw string) Result[domain.Flashcard] {
	return Load(raw, FlashcardColumns, parseFlashcard)
}

func parseShortcut(fields []string) (domain.Shortcut, bool) {
	number, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.Shortcut{}, false
	}

	s := domain.Shortcut{
		Number:      number,
		Title:       fields[1],
		Explanation: fields[2],
		Code:        fields[3],
		Language:    fields[4],
	}
	if len(fields) > ShortcutColumns {
		s.Category = fields[5]
	}
	return s, valid(s)
}

func parseQuizQuestion(fields []string) (domain.QuizQuestion, bool) {
	correct, ok := domain.OptionIndex(fields[7])
	if !ok {
		return domain.QuizQuestion{}, false
	}

	q := domain.QuizQuestion{
		Language:     fields[0],
		Category:     fields[1],
		Text:         fields[2],
		Options:      [domain.OptionCount]string{fields[3], fields[4], fields[5], fields[6]},
		CorrectIndex: correct,
	}
	return q, valid(q)
}

func parseFlashcard(fields []string) (domain.Flashcard, bool) {
	f := domain.Flashcard{
		ID:       fields[0],
		Language: fields[1],
		Question: fields[2],
		Answer:   fields[3],
		Category: fields[4],
	}
	return f, valid(f)
}

func valid(record any) bool {
	return len(validation.Default().Struct(record)) == 0
}
