package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"cobible/internal/config"
	"cobible/internal/domain"
	"cobible/internal/logger"
	"cobible/internal/sampler"
	"cobible/internal/session"

	"go.uber.org/zap"
)

// DefaultMaxSessions bounds live sessions per kind; the least recently used
// session is closed when the bound is reached.
const DefaultMaxSessions = 1024

// QuizOptions configures a new quiz session.
type QuizOptions struct {
	Language   string
	Categories []string
	// Count of questions; zero uses the configured default.
	Count int
	// Seconds per question; nil uses the configured default, zero disables the countdown.
	Seconds *int
}

// SessionService keeps the live sessions of a multi-client host. Each session
// is guarded by its own mutex and quiz countdowns run on their own goroutine.
type SessionService interface {
	StartQuiz(ctx context.Context, opts QuizOptions) (session.QuizSnapshot, error)
	Quiz(id string) (session.QuizSnapshot, error)
	Answer(ctx context.Context, id string, option *int) (session.QuizSnapshot, error)
	Advance(ctx context.Context, id string) (session.QuizSnapshot, error)
	ResetQuiz(id string) (session.QuizSnapshot, error)
	// ReplayQuiz starts the session again with its last language, categories and timing.
	ReplayQuiz(id string) (session.QuizSnapshot, error)
	CloseQuiz(id string) error

	StartFlashcards(ctx context.Context, language string, categories []string) (session.FlashcardSnapshot, error)
	Flashcards(id string) (session.FlashcardSnapshot, error)
	Flip(id string) (session.FlashcardSnapshot, error)
	Next(id string) (session.FlashcardSnapshot, error)
	Previous(id string) (session.FlashcardSnapshot, error)
	Shuffle(id string) (session.FlashcardSnapshot, error)
	CloseFlashcards(id string) error

	// Shutdown stops every countdown and closes every session.
	Shutdown()
}

type quizEntry struct {
	mu       sync.Mutex
	session  *session.QuizSession
	cancel   context.CancelFunc
	recorded bool
	lastUsed atomic.Int64
}

func (e *quizEntry) touch()        { e.lastUsed.Store(time.Now().UnixNano()) }
func (e *quizEntry) usedAt() int64 { return e.lastUsed.Load() }

// stop cancels the countdown driver. Callers hold e.mu.
func (e *quizEntry) stop() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

type flashcardEntry struct {
	mu       sync.Mutex
	session  *session.FlashcardSession
	lastUsed atomic.Int64
}

func (e *flashcardEntry) touch()        { e.lastUsed.Store(time.Now().UnixNano()) }
func (e *flashcardEntry) usedAt() int64 { return e.lastUsed.Load() }

// leastRecentlyUsed returns the key of the entry touched longest ago.
func leastRecentlyUsed[E interface{ usedAt() int64 }](entries map[string]E) string {
	var (
		oldestID string
		oldest   int64
	)
	for id, e := range entries {
		if oldestID == "" || e.usedAt() < oldest {
			oldestID, oldest = id, e.usedAt()
		}
	}
	return oldestID
}

type sessionService struct {
	content     ContentService
	results     ResultService
	sampler     *sampler.Sampler
	cfg         config.QuizConfig
	maxSessions int

	baseCtx context.Context
	stopAll context.CancelFunc

	mu         sync.Mutex
	quizzes    map[string]*quizEntry
	flashcards map[string]*flashcardEntry
}

// NewSessionService creates the live session registry.
func NewSessionService(
	content ContentService,
	results ResultService,
	smp *sampler.Sampler,
	cfg config.QuizConfig,
) SessionService {
	baseCtx, stopAll := context.WithCancel(context.Background())
	return &sessionService{
		content:     content,
		results:     results,
		sampler:     smp,
		cfg:         cfg,
		maxSessions: DefaultMaxSessions,
		baseCtx:     baseCtx,
		stopAll:     stopAll,
		quizzes:     make(map[string]*quizEntry),
		flashcards:  make(map[string]*flashcardEntry),
	}
}

func (s *sessionService) StartQuiz(_ context.Context, opts QuizOptions) (session.QuizSnapshot, error) {
	if opts.Language == "" || len(opts.Categories) == 0 {
		return session.QuizSnapshot{}, domain.NewInvalidInputError("language and at least one category are required")
	}

	count := opts.Count
	if count <= 0 {
		count = s.cfg.QuestionCount
	}
	seconds := s.cfg.SecondsPerQuestion
	if opts.Seconds != nil {
		seconds = *opts.Seconds
	}

	q := session.NewQuizSession(s.content.QuizCatalog(), s.sampler)
	started := q.Start(opts.Language, opts.Categories, count, seconds)

	entry := &quizEntry{session: q}
	entry.touch()
	s.registerQuiz(q.ID(), entry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if started && q.Ticking() {
		s.startCountdown(entry)
	}

	logger.Get().Info("Quiz session started",
		zap.String("session_id", q.ID()),
		zap.String("language", opts.Language),
		zap.Strings("categories", opts.Categories),
		zap.Int("questions", q.Len()),
		zap.Int("seconds_per_question", seconds))
	return q.Snapshot(), nil
}

// startCountdown delivers ticks until the current question is answered, by the
// player or on expiry. Callers hold e.mu.
func (s *sessionService) startCountdown(e *quizEntry) {
	e.stop()
	ctx, cancel := context.WithCancel(s.baseCtx)
	e.cancel = cancel

	go session.RunCountdown(ctx, s.cfg.TickInterval, func() bool {
		e.mu.Lock()
		defer e.mu.Unlock()

		if ctx.Err() != nil {
			return false
		}
		e.session.Tick()
		return e.session.Ticking()
	})
}

func (s *sessionService) Quiz(id string) (session.QuizSnapshot, error) {
	return s.withQuiz(id, func(*quizEntry) {})
}

func (s *sessionService) Answer(_ context.Context, id string, option *int) (session.QuizSnapshot, error) {
	if option != nil && (*option < 0 || *option >= domain.OptionCount) {
		return session.QuizSnapshot{}, domain.NewInvalidInputError("option must be between 0 and 3")
	}

	return s.withQuiz(id, func(e *quizEntry) {
		var answered bool
		if option == nil {
			answered = e.session.AnswerNone()
		} else {
			answered = e.session.Answer(*option)
		}
		if answered {
			e.stop()
		}
	})
}

// Advance moves to the next question and records the result once the quiz completes.
func (s *sessionService) Advance(ctx context.Context, id string) (session.QuizSnapshot, error) {
	return s.withQuiz(id, func(e *quizEntry) {
		if !e.session.Advance() {
			return
		}
		if e.session.State() != session.Complete {
			if e.session.Ticking() {
				s.startCountdown(e)
			}
			return
		}

		e.stop()
		if e.recorded {
			return
		}
		e.recorded = true

		accuracy, _ := e.session.Accuracy()
		result := &domain.QuizResult{
			SessionID:  e.session.ID(),
			Language:   e.session.Language(),
			Categories: e.session.Categories(),
			Score:      e.session.Score(),
			Total:      e.session.Len(),
			Accuracy:   accuracy,
		}
		if err := s.results.Record(ctx, result); err != nil {
			logger.Get().Error("Failed to record quiz result",
				zap.String("session_id", e.session.ID()),
				zap.Error(err))
		}
	})
}

func (s *sessionService) ResetQuiz(id string) (session.QuizSnapshot, error) {
	return s.withQuiz(id, func(e *quizEntry) {
		e.stop()
		e.session.Reset()
		e.recorded = false
	})
}

func (s *sessionService) ReplayQuiz(id string) (session.QuizSnapshot, error) {
	return s.withQuiz(id, func(e *quizEntry) {
		e.stop()
		if !e.session.Replay() {
			return
		}
		e.recorded = false
		if e.session.Ticking() {
			s.startCountdown(e)
		}
		logger.Get().Info("Quiz session replayed",
			zap.String("session_id", e.session.ID()),
			zap.Int("questions", e.session.Len()))
	})
}

func (s *sessionService) CloseQuiz(id string) error {
	s.mu.Lock()
	entry, ok := s.quizzes[id]
	delete(s.quizzes, id)
	s.mu.Unlock()

	if !ok {
		return domain.NewSessionNotFoundError(id)
	}
	closeQuiz(entry)

	logger.Get().Info("Quiz session closed", zap.String("session_id", id))
	return nil
}

func (s *sessionService) withQuiz(id string, fn func(e *quizEntry)) (session.QuizSnapshot, error) {
	s.mu.Lock()
	entry, ok := s.quizzes[id]
	s.mu.Unlock()
	if !ok {
		return session.QuizSnapshot{}, domain.NewSessionNotFoundError(id)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.session.Closed() {
		return session.QuizSnapshot{}, domain.NewSessionNotFoundError(id)
	}

	fn(entry)
	entry.touch()
	return entry.session.Snapshot(), nil
}

func (s *sessionService) registerQuiz(id string, entry *quizEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.quizzes) >= s.maxSessions {
		oldestID := leastRecentlyUsed(s.quizzes)
		closeQuiz(s.quizzes[oldestID])
		delete(s.quizzes, oldestID)
		logger.Get().Info("Evicted least recently used quiz session", zap.String("session_id", oldestID))
	}
	s.quizzes[id] = entry
}

func closeQuiz(e *quizEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stop()
	e.session.Close()
}

func (s *sessionService) StartFlashcards(_ context.Context, language string, categories []string) (session.FlashcardSnapshot, error) {
	if language == "" || len(categories) == 0 {
		return session.FlashcardSnapshot{}, domain.NewInvalidInputError("language and at least one category are required")
	}

	f := session.NewFlashcardSession(s.content.FlashcardCatalog(), s.sampler)
	n := f.LoadGroups(language, categories)

	entry := &flashcardEntry{session: f}
	entry.touch()
	s.registerFlashcards(f.ID(), entry)

	logger.Get().Info("Flashcard session started",
		zap.String("session_id", f.ID()),
		zap.String("language", language),
		zap.Strings("categories", categories),
		zap.Int("cards", n))
	return f.Snapshot(), nil
}

func (s *sessionService) Flashcards(id string) (session.FlashcardSnapshot, error) {
	return s.withFlashcards(id, func(*session.FlashcardSession) {})
}

func (s *sessionService) Flip(id string) (session.FlashcardSnapshot, error) {
	return s.withFlashcards(id, func(f *session.FlashcardSession) { f.Flip() })
}

func (s *sessionService) Next(id string) (session.FlashcardSnapshot, error) {
	return s.withFlashcards(id, func(f *session.FlashcardSession) { f.Next() })
}

func (s *sessionService) Previous(id string) (session.FlashcardSnapshot, error) {
	return s.withFlashcards(id, func(f *session.FlashcardSession) { f.Previous() })
}

func (s *sessionService) Shuffle(id string) (session.FlashcardSnapshot, error) {
	return s.withFlashcards(id, func(f *session.FlashcardSession) { f.Shuffle() })
}

func (s *sessionService) CloseFlashcards(id string) error {
	s.mu.Lock()
	entry, ok := s.flashcards[id]
	delete(s.flashcards, id)
	s.mu.Unlock()

	if !ok {
		return domain.NewSessionNotFoundError(id)
	}

	entry.mu.Lock()
	entry.session.Close()
	entry.mu.Unlock()
	return nil
}

func (s *sessionService) withFlashcards(id string, fn func(f *session.FlashcardSession)) (session.FlashcardSnapshot, error) {
	s.mu.Lock()
	entry, ok := s.flashcards[id]
	s.mu.Unlock()
	if !ok {
		return session.FlashcardSnapshot{}, domain.NewSessionNotFoundError(id)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.session.Closed() {
		return session.FlashcardSnapshot{}, domain.NewSessionNotFoundError(id)
	}

	fn(entry.session)
	entry.touch()
	return entry.session.Snapshot(), nil
}

func (s *sessionService) registerFlashcards(id string, entry *flashcardEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.flashcards) >= s.maxSessions {
		oldestID := leastRecentlyUsed(s.flashcards)
		oldest := s.flashcards[oldestID]
		oldest.mu.Lock()
		oldest.session.Close()
		oldest.mu.Unlock()
		delete(s.flashcards, oldestID)
	}
	s.flashcards[id] = entry
}

func (s *sessionService) Shutdown() {
	s.stopAll()

	s.mu.Lock()
	quizzes := s.quizzes
	s.quizzes = make(map[string]*quizEntry)
	s.flashcards = make(map[string]*flashcardEntry)
	s.mu.Unlock()

	for _, e := range quizzes {
		closeQuiz(e)
	}
	logger.Get().Info("Session service stopped", zap.Int("closed_quiz_sessions", len(quizzes)))
}
