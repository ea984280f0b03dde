// Package session implements the quiz and flashcard state machines.
//
// Sessions are not safe for concurrent use. A host that delivers events from
// several goroutines must serialize calls on a session, as service.SessionService does.
package session

import (
	"cobible/internal/catalog"
	"cobible/internal/domain"
	"cobible/internal/sampler"
	"cobible/internal/util"
)

// QuizState is the lifecycle state of a quiz session.
type QuizState int

const (
	SelectingCategories QuizState = iota
	InProgress
	Complete
)

func (s QuizState) String() string {
	switch s {
	case SelectingCategories:
		return "selecting_categories"
	case InProgress:
		return "in_progress"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// QuizSession runs one multiple-choice quiz. Transition methods report false
// when called outside their legal state and leave the session unchanged.
type QuizSession struct {
	id      string
	catalog *catalog.Catalog[domain.QuizQuestion]
	sampler *sampler.Sampler

	language   string
	categories []string
	count      int
	seconds    int

	items        []domain.QuizQuestion
	state        QuizState
	currentIndex int
	score        int
	answered     bool
	selected     *int
	remaining    int
	ticking      bool
	closed       bool
}

// NewQuizSession creates a session in SelectingCategories.
func NewQuizSession(c *catalog.Catalog[domain.QuizQuestion], s *sampler.Sampler) *QuizSession {
	return &QuizSession{
		id:      util.NewULID(),
		catalog: c,
		sampler: s,
		state:   SelectingCategories,
	}
}

func (q *QuizSession) ID() string        { return q.id }
func (q *QuizSession) State() QuizState  { return q.state }
func (q *QuizSession) Score() int        { return q.score }
func (q *QuizSession) CurrentIndex() int { return q.currentIndex }
func (q *QuizSession) Len() int          { return len(q.items) }
func (q *QuizSession) Language() string  { return q.language }
func (q *QuizSession) Closed() bool      { return q.closed }

// Ticking reports whether the current question is counting down.
func (q *QuizSession) Ticking() bool { return q.ticking }

// Categories returns the categories of the last start request.
func (q *QuizSession) Categories() []string {
	return append([]string{}, q.categories...)
}

// Answered returns how many questions have been answered so far.
func (q *QuizSession) Answered() int {
	if q.answered {
		return q.currentIndex + 1
	}
	return q.currentIndex
}

// Start samples up to count questions and begins the first one with a
// countdown of seconds. A non-positive seconds disables the countdown. It
// reports false, leaving the session in SelectingCategories, when categories
// is empty or the sample comes back empty.
func (q *QuizSession) Start(language string, categories []string, count, seconds int) bool {
	if q.closed || len(categories) == 0 {
		return false
	}

	q.reset()
	q.language = language
	q.categories = append([]string{}, categories...)
	q.count = count
	q.seconds = seconds

	items := sampler.Sample(q.sampler, q.catalog, language, categories, count)
	if len(items) == 0 {
		return false
	}

	q.items = items
	q.state = InProgress
	q.arm()
	return true
}

// Replay resets the session and starts it again with the last arguments.
func (q *QuizSession) Replay() bool {
	if q.closed || len(q.categories) == 0 {
		return false
	}
	return q.Start(q.language, q.categories, q.count, q.seconds)
}

// Tick advances the countdown by one unit. When it reaches zero on an
// unanswered question the question is submitted with no answer. It reports
// whether the countdown was running.
func (q *QuizSession) Tick() bool {
	if q.closed || q.state != InProgress || q.answered || !q.ticking {
		return false
	}

	q.remaining--
	if q.remaining <= 0 {
		q.remaining = 0
		q.answer(nil)
	}
	return true
}

// Answer submits option (0-3) for the current question. Out of range options
// are rejected.
func (q *QuizSession) Answer(option int) bool {
	if option < 0 || option >= domain.OptionCount {
		return false
	}
	return q.answer(&option)
}

// AnswerNone submits the current question without a choice; it scores as
// incorrect.
func (q *QuizSession) AnswerNone() bool {
	return q.answer(nil)
}

func (q *QuizSession) answer(option *int) bool {
	if q.closed || q.state != InProgress || q.answered {
		return false
	}

	q.answered = true
	q.selected = option
	q.ticking = false
	if option != nil && q.items[q.currentIndex].IsCorrect(*option) {
		q.score++
	}
	return true
}

// Advance moves past an answered question, completing the quiz after the last one.
func (q *QuizSession) Advance() bool {
	if q.closed || q.state != InProgress || !q.answered {
		return false
	}

	q.clearAnswer()
	if q.currentIndex+1 == len(q.items) {
		q.currentIndex = len(q.items)
		q.state = Complete
		q.ticking = false
		return true
	}

	q.currentIndex++
	q.arm()
	return true
}

// Reset discards the sampled questions and returns to SelectingCategories.
func (q *QuizSession) Reset() {
	if q.closed {
		return
	}
	q.reset()
}

// Close disposes of the session. Every later event is ignored.
func (q *QuizSession) Close() {
	q.closed = true
	q.ticking = false
}

// Accuracy returns the score as a whole percentage of the question count. It
// is only defined once the quiz is complete.
func (q *QuizSession) Accuracy() (int, bool) {
	if q.state != Complete {
		return 0, false
	}
	return util.Percent(q.score, len(q.items))
}

// Current returns the question being asked.
func (q *QuizSession) Current() (domain.QuizQuestion, bool) {
	if q.state != InProgress {
		return domain.QuizQuestion{}, false
	}
	return q.items[q.currentIndex], true
}

func (q *QuizSession) reset() {
	q.items = nil
	q.state = SelectingCategories
	q.currentIndex = 0
	q.score = 0
	q.clearAnswer()
	q.remaining = 0
	q.ticking = false
}

func (q *QuizSession) clearAnswer() {
	q.answered = false
	q.selected = nil
}

func (q *QuizSession) arm() {
	q.remaining = q.seconds
	q.ticking = q.seconds > 0
}
