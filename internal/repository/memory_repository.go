package repository

import (
	"context"
	"sort"
	"sync"

	"cobible/internal/domain"
)

// MemoryShortcutRepository is a domain.ShortcutStore kept in process memory,
// used when no database is configured.
type MemoryShortcutRepository struct {
	mu        sync.RWMutex
	shortcuts []domain.Shortcut
	nextID    int64
}

func NewMemoryShortcutRepository() *MemoryShortcutRepository {
	return &MemoryShortcutRepository{nextID: 1}
}

func (r *MemoryShortcutRepository) FetchAll(_ context.Context) ([]domain.Shortcut, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Shortcut{}, r.shortcuts...), nil
}

func (r *MemoryShortcutRepository) FetchByTitle(_ context.Context, title string) (*domain.Shortcut, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.shortcuts {
		if s.Title == title {
			found := s
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryShortcutRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.shortcuts), nil
}

// InsertAll assigns ids and keeps the store ordered like the database adapter.
func (r *MemoryShortcutRepository) InsertAll(_ context.Context, shortcuts []domain.Shortcut) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range shortcuts {
		s.ID = r.nextID
		r.nextID++
		r.shortcuts = append(r.shortcuts, s)
	}
	sort.SliceStable(r.shortcuts, func(i, j int) bool {
		a, b := r.shortcuts[i], r.shortcuts[j]
		if a.Language != b.Language {
			return a.Language < b.Language
		}
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return a.ID < b.ID
	})
	return nil
}

// MemoryFavoriteRepository is a domain.FavoriteRepository kept in process memory.
type MemoryFavoriteRepository struct {
	mu        sync.RWMutex
	favorites []domain.Favorite
}

func NewMemoryFavoriteRepository() *MemoryFavoriteRepository {
	return &MemoryFavoriteRepository{}
}

func (r *MemoryFavoriteRepository) Add(_ context.Context, favorite *domain.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.favorites = append(r.favorites, *favorite)
	return nil
}

// ListByLanguage returns the favorites of a language, newest first.
func (r *MemoryFavoriteRepository) ListByLanguage(_ context.Context, language string) ([]domain.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Favorite{}
	for i := len(r.favorites) - 1; i >= 0; i-- {
		if r.favorites[i].Language == language {
			out = append(out, r.favorites[i])
		}
	}
	return out, nil
}

func (r *MemoryFavoriteRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, f := range r.favorites {
		if f.ID == id {
			r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFoundError("favorite " + id + " not found")
}

// MemoryResultRepository is a domain.ResultRepository kept in process memory.
type MemoryResultRepository struct {
	mu      sync.RWMutex
	results []domain.QuizResult
}

func NewMemoryResultRepository() *MemoryResultRepository {
	return &MemoryResultRepository{}
}

func (r *MemoryResultRepository) Save(_ context.Context, result *domain.QuizResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, *result)
	return nil
}

// ListRecent returns up to limit results, newest first. An empty language
// lists every language.
func (r *MemoryResultRepository) ListRecent(_ context.Context, language string, limit int) ([]domain.QuizResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.QuizResult{}
	for i := len(r.results) - 1; i >= 0 && len(out) < limit; i-- {
		if language == "" || r.results[i].Language == language {
			out = append(out, r.results[i])
		}
	}
	return out, nil
}
