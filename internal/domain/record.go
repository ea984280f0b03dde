package domain

import (
	"strings"
	"time"
)

// Record is one catalog entry. Language is a case-sensitive tag such as
// "Java" or "Python"; Category is a free-form grouping and may be empty.
type Record interface {
	RecordLanguage() string
	RecordCategory() string
}

// Shortcut is a cheat-sheet entry for a single language.
type Shortcut struct {
	ID          int64  `json:"id,omitempty"`
	Number      int    `json:"number"`
	Title       string `json:"title" validate:"required"`
	Explanation string `json:"explanation"`
	Code        string `json:"code"`
	Language    string `json:"language" validate:"required"`
	Category    string `json:"category,omitempty"`
}

func (s Shortcut) RecordLanguage() string { return s.Language }
func (s Shortcut) RecordCategory() string { return s.Category }

// OptionCount is the fixed number of choices of a quiz question.
const OptionCount = 4

var optionLetters = [OptionCount]string{"A", "B", "C", "D"}

// QuizQuestion is a multiple-choice question with exactly four options.
type QuizQuestion struct {
	Language     string              `json:"language" validate:"required"`
	Category     string              `json:"category"`
	Text         string              `json:"question" validate:"required"`
	Options      [OptionCount]string `json:"options"`
	CorrectIndex int                 `json:"correct_index" validate:"gte=0,lte=3"`
}

func (q QuizQuestion) RecordLanguage() string { return q.Language }
func (q QuizQuestion) RecordCategory() string { return q.Category }

// IsCorrect reports whether option is the correct choice.
func (q QuizQuestion) IsCorrect(option int) bool {
	return option == q.CorrectIndex
}

// CorrectLetter returns the letter (A-D) of the correct option.
func (q QuizQuestion) CorrectLetter() string {
	return OptionLetter(q.CorrectIndex)
}

// OptionLetter maps an option index to its letter, or "" when out of range.
func OptionLetter(index int) string {
	if index < 0 || index >= OptionCount {
		return ""
	}
	return optionLetters[index]
}

// OptionIndex maps a stored answer letter (A-D, any case) to its option index.
func OptionIndex(letter string) (int, bool) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	for i, l := range optionLetters {
		if l == letter {
			return i, true
		}
	}
	return 0, false
}

// Flashcard is a question/answer pair.
type Flashcard struct {
	ID       string `json:"id,omitempty"`
	Language string `json:"language" validate:"required"`
	Category string `json:"category"`
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"`
}

func (f Flashcard) RecordLanguage() string { return f.Language }
func (f Flashcard) RecordCategory() string { return f.Category }

// Favorite is a named bookmark kept per language.
type Favorite struct {
	ID        string    `json:"id"`
	Language  string    `json:"language"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// QuizResult is the outcome of a completed quiz session.
type QuizResult struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Language    string    `json:"language"`
	Categories  []string  `json:"categories"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	Accuracy    int       `json:"accuracy"`
	CompletedAt time.Time `json:"completed_at"`
}
