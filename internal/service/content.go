package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"cobible/internal/cache"
	"cobible/internal/catalog"
	"cobible/internal/dataset"
	"cobible/internal/domain"
	"cobible/internal/logger"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Dataset kinds accepted by category queries.
const (
	KindShortcut  = "shortcut"
	KindQuiz      = "quiz"
	KindFlashcard = "flashcard"
)

// LoadReport summarizes one content load.
type LoadReport struct {
	Shortcuts         int `json:"shortcuts"`
	QuizQuestions     int `json:"quiz_questions"`
	Flashcards        int `json:"flashcards"`
	Dropped           int `json:"dropped"`
	ShortcutsInserted int `json:"shortcuts_inserted"`
}

// ContentService loads the datasets and answers catalog queries.
type ContentService interface {
	Load(ctx context.Context) (*LoadReport, error)
	Languages() []string
	LanguagesOf(kind string) ([]string, error)
	Categories(language, kind string) ([]string, error)
	Shortcuts(ctx context.Context, language, query string) ([]domain.Shortcut, error)
	ShortcutByTitle(ctx context.Context, language, title string) (*domain.Shortcut, error)
	QuizCatalog() *catalog.Catalog[domain.QuizQuestion]
	FlashcardCatalog() *catalog.Catalog[domain.Flashcard]
}

type contentService struct {
	source    domain.ContentSource
	shortcuts domain.ShortcutStore
	txManager domain.TransactionManager
	cache     domain.Cache // optional

	mu          sync.RWMutex
	shortcutCat *catalog.Catalog[domain.Shortcut]
	quizCat     *catalog.Catalog[domain.QuizQuestion]
	cardCat     *catalog.Catalog[domain.Flashcard]
}

// NewContentService creates a content service. cache may be nil.
func NewContentService(
	source domain.ContentSource,
	shortcuts domain.ShortcutStore,
	txManager domain.TransactionManager,
	cache domain.Cache,
) ContentService {
	return &contentService{
		source:      source,
		shortcuts:   shortcuts,
		txManager:   txManager,
		cache:       cache,
		shortcutCat: catalog.Index([]domain.Shortcut{}),
		quizCat:     catalog.Index([]domain.QuizQuestion{}),
		cardCat:     catalog.Index([]domain.Flashcard{}),
	}
}

// Load reads the three datasets concurrently, populates an empty shortcut
// store and rebuilds every catalog. Missing datasets load as empty content.
func (s *contentService) Load(ctx context.Context) (*LoadReport, error) {
	var (
		shortcuts dataset.Result[domain.Shortcut]
		questions dataset.Result[domain.QuizQuestion]
		cards     dataset.Result[domain.Flashcard]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		shortcuts = dataset.LoadShortcuts(dataset.ReadOrEmpty(gctx, s.source, domain.DatasetShortcuts))
		return nil
	})
	g.Go(func() error {
		questions = dataset.LoadQuizQuestions(dataset.ReadOrEmpty(gctx, s.source, domain.DatasetQuiz))
		return nil
	})
	g.Go(func() error {
		cards = dataset.LoadFlashcards(dataset.ReadOrEmpty(gctx, s.source, domain.DatasetFlashcards))
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	inserted, err := s.populateShortcuts(ctx, shortcuts.Records)
	if err != nil {
		return nil, err
	}

	stored, err := s.shortcuts.FetchAll(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to fetch shortcuts", err)
	}

	s.mu.Lock()
	s.shortcutCat = catalog.Index(stored)
	s.quizCat = catalog.Index(questions.Records)
	s.cardCat = catalog.Index(cards.Records)
	s.mu.Unlock()

	report := &LoadReport{
		Shortcuts:         len(stored),
		QuizQuestions:     len(questions.Records),
		Flashcards:        len(cards.Records),
		Dropped:           shortcuts.Dropped + questions.Dropped + cards.Dropped,
		ShortcutsInserted: inserted,
	}
	logger.Get().Info("Content loaded",
		zap.Int("shortcuts", report.Shortcuts),
		zap.Int("quiz_questions", report.QuizQuestions),
		zap.Int("flashcards", report.Flashcards),
		zap.Int("dropped_rows", report.Dropped),
		zap.Int("shortcuts_inserted", report.ShortcutsInserted))
	return report, nil
}

// populateShortcuts inserts the dataset shortcuts only when the store is empty.
func (s *contentService) populateShortcuts(ctx context.Context, records []domain.Shortcut) (int, error) {
	inserted := 0
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		count, err := s.shortcuts.Count(txCtx)
		if err != nil {
			return err
		}
		if count > 0 || len(records) == 0 {
			return nil
		}
		if err := s.shortcuts.InsertAll(txCtx, records); err != nil {
			return err
		}
		inserted = len(records)
		return nil
	})
	if err != nil {
		return 0, domain.NewInternalError("Failed to populate shortcut store", err)
	}
	return inserted, nil
}

// Languages returns every language present in any dataset.
func (s *contentService) Languages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := lo.Uniq(lo.Flatten([][]string{
		s.shortcutCat.Languages(),
		s.quizCat.Languages(),
		s.cardCat.Languages(),
	}))
	sort.Strings(all)
	return all
}

// LanguagesOf returns the languages of one dataset kind.
func (s *contentService) LanguagesOf(kind string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch kind {
	case KindShortcut:
		return s.shortcutCat.Languages(), nil
	case KindQuiz:
		return s.quizCat.Languages(), nil
	case KindFlashcard:
		return s.cardCat.Languages(), nil
	default:
		return nil, invalidKind(kind)
	}
}

// Categories returns the sorted categories of a language in one dataset kind.
func (s *contentService) Categories(language, kind string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch kind {
	case KindShortcut:
		return s.shortcutCat.Categories(language), nil
	case KindQuiz:
		return s.quizCat.Categories(language), nil
	case KindFlashcard:
		return s.cardCat.Categories(language), nil
	default:
		return nil, invalidKind(kind)
	}
}

// Shortcuts returns the shortcuts of a language ordered by number, filtered
// by a case-insensitive title substring when query is not empty.
func (s *contentService) Shortcuts(_ context.Context, language, query string) ([]domain.Shortcut, error) {
	if language == "" {
		return nil, domain.NewInvalidInputError("language is required")
	}

	s.mu.RLock()
	all := s.shortcutCat.Filter(language, s.shortcutCat.Categories(language))
	s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(query))
	matches := lo.Filter(all, func(sc domain.Shortcut, _ int) bool {
		return needle == "" || strings.Contains(strings.ToLower(sc.Title), needle)
	})
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Number < matches[j].Number
	})
	return matches, nil
}

// ShortcutByTitle looks a shortcut up by exact title through the repository.
// When language is set and the repository's first match belongs to another
// language, the language's own entry is used instead.
func (s *contentService) ShortcutByTitle(ctx context.Context, language, title string) (*domain.Shortcut, error) {
	if title == "" {
		return nil, domain.NewInvalidInputError("title is required")
	}

	key := cache.ShortcutTitleKey(language, title)
	if cached := s.cachedShortcut(ctx, key); cached != nil {
		return cached, nil
	}

	found, err := s.shortcuts.FetchByTitle(ctx, title)
	if err != nil {
		return nil, domain.NewInternalError("Failed to fetch shortcut", err)
	}

	if found == nil || (language != "" && found.Language != language) {
		found = s.findInCatalog(language, title)
	}
	if found == nil {
		return nil, domain.NewShortcutNotFoundError(title)
	}

	s.cacheShortcut(ctx, key, found)
	return found, nil
}

func (s *contentService) findInCatalog(language, title string) *domain.Shortcut {
	if language == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.shortcutCat.Filter(language, s.shortcutCat.Categories(language))
	if match, ok := lo.Find(all, func(sc domain.Shortcut) bool { return sc.Title == title }); ok {
		return &match
	}
	return nil
}

func (s *contentService) cachedShortcut(ctx context.Context, key string) *domain.Shortcut {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Shortcut cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	var shortcut domain.Shortcut
	if err := json.Unmarshal([]byte(raw), &shortcut); err != nil {
		logger.Get().Warn("Discarding malformed cached shortcut", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &shortcut
}

func (s *contentService) cacheShortcut(ctx context.Context, key string, shortcut *domain.Shortcut) {
	if s.cache == nil {
		return
	}

	b, err := json.Marshal(shortcut)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(b), cache.ShortcutTTL); err != nil {
		logger.Get().Warn("Shortcut cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *contentService) QuizCatalog() *catalog.Catalog[domain.QuizQuestion] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quizCat
}

func (s *contentService) FlashcardCatalog() *catalog.Catalog[domain.Flashcard] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cardCat
}

func invalidKind(kind string) error {
	return domain.NewInvalidInputError(fmt.Sprintf("unknown kind %q, expected %s, %s or %s",
		kind, KindShortcut, KindQuiz, KindFlashcard))
}
