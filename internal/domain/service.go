package domain

import "context"

// Dataset names understood by every ContentSource.
const (
	DatasetShortcuts  = "shortcuts"
	DatasetQuiz       = "quizz"
	DatasetFlashcards = "flashcards"
)

// ContentSource returns the raw delimited text of a named dataset.
// A missing dataset is reported as an error; loaders turn it into empty content.
type ContentSource interface {
	Read(ctx context.Context, name string) (string, error)
}

// ShortcutRepository is the store-agnostic read port for shortcuts.
type ShortcutRepository interface {
	// FetchAll returns every shortcut ordered by language then number.
	FetchAll(ctx context.Context) ([]Shortcut, error)

	// FetchByTitle returns the first shortcut with the exact title, or nil when none exists.
	FetchByTitle(ctx context.Context, title string) (*Shortcut, error)
}

// ShortcutStore is a ShortcutRepository that can be populated.
type ShortcutStore interface {
	ShortcutRepository

	// Count returns the number of stored shortcuts.
	Count(ctx context.Context) (int, error)

	// InsertAll stores the given shortcuts in one transaction.
	InsertAll(ctx context.Context, shortcuts []Shortcut) error
}

// FavoriteRepository persists named favorites.
type FavoriteRepository interface {
	Add(ctx context.Context, favorite *Favorite) error
	ListByLanguage(ctx context.Context, language string) ([]Favorite, error)
	Delete(ctx context.Context, id string) error
}

// ResultRepository persists outcomes of completed quiz sessions.
type ResultRepository interface {
	Save(ctx context.Context, result *QuizResult) error
	ListRecent(ctx context.Context, language string, limit int) ([]QuizResult, error)
}

// TransactionManager runs fn inside one store transaction. Repositories pick
// the transaction up from the context passed to fn.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
