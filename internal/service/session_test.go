package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cobible/internal/config"
	"cobible/internal/domain"
	"cobible/internal/sampler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sessionQuiz = "language,category,question,a,b,c,d,answer\n" +
	"Java,Basics,Q1,a,b,c,d,A\n" +
	"Java,Basics,Q2,a,b,c,d,B\n" +
	"Java,Basics,Q3,a,b,c,d,C\n" +
	"Java,Basics,Q4,a,b,c,d,D\n" +
	"Java,Errors,Q5,a,b,c,d,A\n"

const sessionCards = "id,language,question,answer,category\n" +
	"c1,Java,Q1,A1,Basics\n" +
	"c2,Java,Q2,A2,Basics\n" +
	"c3,Java,Q3,A3,OOP\n"

func intPtr(v int) *int { return &v }

func newSessionTestService(t *testing.T, results ResultService, cfg config.QuizConfig) SessionService {
	t.Helper()
	content, _ := loadedContent(t, mapSource{
		domain.DatasetQuiz:       sessionQuiz,
		domain.DatasetFlashcards: sessionCards,
	})
	keepOrder := sampler.NewWithShuffle(func(int, func(i, j int)) {})

	svc := NewSessionService(content, results, keepOrder, cfg)
	t.Cleanup(svc.Shutdown)
	return svc
}

func quizConfig() config.QuizConfig {
	return config.QuizConfig{QuestionCount: 2, SecondsPerQuestion: 0, TickInterval: time.Hour}
}

func requireCode(t *testing.T, err error, code domain.ErrorCode) {
	t.Helper()
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestSessionService_QuizRun(t *testing.T) {
	repo := new(MockResultRepository)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(r *domain.QuizResult) bool {
		return r.Language == "Java" && r.Score == 2 && r.Total == 3 && r.Accuracy == 66 &&
			assert.ObjectsAreEqual([]string{"Basics"}, r.Categories)
	})).Return(nil).Once()

	svc := newSessionTestService(t, NewResultService(repo), quizConfig())
	ctx := context.Background()

	snap, err := svc.StartQuiz(ctx, QuizOptions{Language: "Java", Categories: []string{"Basics"}, Count: 3})
	require.NoError(t, err)
	require.Equal(t, "in_progress", snap.State)
	assert.Equal(t, 3, snap.Total)
	assert.False(t, snap.CountdownActive)
	id := snap.ID

	snap, err = svc.Answer(ctx, id, intPtr(0))
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Score)
	require.NotNil(t, snap.CorrectOption)
	assert.Equal(t, 0, *snap.CorrectOption)

	_, err = svc.Advance(ctx, id)
	require.NoError(t, err)
	_, err = svc.Answer(ctx, id, intPtr(1))
	require.NoError(t, err)
	_, err = svc.Advance(ctx, id)
	require.NoError(t, err)
	_, err = svc.Answer(ctx, id, nil)
	require.NoError(t, err)

	snap, err = svc.Advance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "complete", snap.State)
	assert.Equal(t, 2, snap.Score)
	require.NotNil(t, snap.Accuracy)
	assert.Equal(t, 66, *snap.Accuracy)

	_, err = svc.Advance(ctx, id)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestSessionService_StartQuizDefaults(t *testing.T) {
	svc := newSessionTestService(t, NewResultService(new(MockResultRepository)), config.QuizConfig{
		QuestionCount: 2, SecondsPerQuestion: 15, TickInterval: time.Hour,
	})

	snap, err := svc.StartQuiz(context.Background(), QuizOptions{Language: "Java", Categories: []string{"Basics", "Errors"}})
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Total)
	assert.Equal(t, 15, snap.RemainingSeconds)
	assert.True(t, snap.CountdownActive)

	snap, err = svc.StartQuiz(context.Background(), QuizOptions{Language: "Rust", Categories: []string{"Basics"}})
	require.NoError(t, err)
	assert.Equal(t, "selecting_categories", snap.State, "empty sample keeps category selection")
	assert.Equal(t, 0, snap.Total)

	_, err = svc.StartQuiz(context.Background(), QuizOptions{Language: "Java"})
	requireCode(t, err, domain.ErrInvalidInput)
}

func TestSessionService_AnswerValidation(t *testing.T) {
	svc := newSessionTestService(t, NewResultService(new(MockResultRepository)), quizConfig())
	snap, err := svc.StartQuiz(context.Background(), QuizOptions{Language: "Java", Categories: []string{"Basics"}})
	require.NoError(t, err)

	_, err = svc.Answer(context.Background(), snap.ID, intPtr(4))
	requireCode(t, err, domain.ErrInvalidInput)

	_, err = svc.Answer(context.Background(), snap.ID, intPtr(-1))
	requireCode(t, err, domain.ErrInvalidInput)

	current, err := svc.Quiz(snap.ID)
	require.NoError(t, err)
	assert.False(t, current.HasAnswered)
}

func TestSessionService_CountdownAutoSubmits(t *testing.T) {
	svc := newSessionTestService(t, NewResultService(new(MockResultRepository)), config.QuizConfig{
		QuestionCount: 2, SecondsPerQuestion: 2, TickInterval: 5 * time.Millisecond,
	})

	snap, err := svc.StartQuiz(context.Background(), QuizOptions{Language: "Java", Categories: []string{"Basics"}})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		current, err := svc.Quiz(snap.ID)
		return err == nil && current.HasAnswered
	}, 2*time.Second, 5*time.Millisecond)

	current, err := svc.Quiz(snap.ID)
	require.NoError(t, err)
	assert.Nil(t, current.SelectedOption)
	assert.Equal(t, 0, current.RemainingSeconds)
	assert.Equal(t, 0, current.Score)

	next, err := svc.Advance(context.Background(), snap.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, next.CurrentIndex)
	assert.True(t, next.CountdownActive, "countdown re-arms for the next question")
}

func TestSessionService_ResultFailureIsNotReturned(t *testing.T) {
	repo := new(MockResultRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	svc := newSessionTestService(t, NewResultService(repo), quizConfig())
	ctx := context.Background()

	snap, err := svc.StartQuiz(ctx, QuizOptions{Language: "Java", Categories: []string{"Errors"}})
	require.NoError(t, err)
	_, err = svc.Answer(ctx, snap.ID, intPtr(0))
	require.NoError(t, err)

	snap, err = svc.Advance(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "complete", snap.State)
	repo.AssertExpectations(t)
}

func TestSessionService_ResetAndClose(t *testing.T) {
	svc := newSessionTestService(t, NewResultService(new(MockResultRepository)), quizConfig())
	ctx := context.Background()

	snap, err := svc.StartQuiz(ctx, QuizOptions{Language: "Java", Categories: []string{"Basics"}})
	require.NoError(t, err)
	_, err = svc.Answer(ctx, snap.ID, intPtr(0))
	require.NoError(t, err)

	reset, err := svc.ResetQuiz(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "selecting_categories", reset.State)
	assert.Equal(t, 0, reset.Score)
	assert.Nil(t, reset.Question)

	require.NoError(t, svc.CloseQuiz(snap.ID))
	_, err = svc.Quiz(snap.ID)
	requireCode(t, err, domain.ErrSessionNotFound)
	requireCode(t, svc.CloseQuiz(snap.ID), domain.ErrSessionNotFound)

	_, err = svc.Answer(ctx, "01HZZZZZZZZZZZZZZZZZZZZZZZ", nil)
	requireCode(t, err, domain.ErrSessionNotFound)
}

func countdownRunning(svc SessionService, id string) bool {
	impl := svc.(*sessionService)
	impl.mu.Lock()
	entry := impl.quizzes[id]
	impl.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.cancel != nil
}

func TestSessionService_AnswerStopsCountdown(t *testing.T) {
	svc := newSessionTestService(t, NewResultService(new(MockResultRepository)), config.QuizConfig{
		QuestionCount: 2, SecondsPerQuestion: 5, TickInterval: time.Hour,
	})
	ctx := context.Background()

	snap, err := svc.StartQuiz(ctx, QuizOptions{Language: "Java", Categories: []string{"Basics"}})
	require.NoError(t, err)
	assert.True(t, countdownRunning(svc, snap.ID))

	snap, err = svc.Answer(ctx, snap.ID, intPtr(0))
	require.NoError(t, err)
	assert.False(t, snap.CountdownActive)
	assert.False(t, countdownRunning(svc, snap.ID))

	snap, err = svc.Advance(ctx, snap.ID)
	require.NoError(t, err)
	assert.True(t, snap.CountdownActive)
	assert.True(t, countdownRunning(svc, snap.ID), "next question starts a new countdown")

	_, err = svc.Answer(ctx, snap.ID, nil)
	require.NoError(t, err)
	snap, err = svc.Advance(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "complete", snap.State)
	assert.False(t, countdownRunning(svc, snap.ID))
}

func TestSessionService_ReplayAfterReset(t *testing.T) {
	svc := newSessionTestService(t, NewResultService(new(MockResultRepository)), config.QuizConfig{
		QuestionCount: 2, SecondsPerQuestion: 2, TickInterval: 5 * time.Millisecond,
	})
	ctx := context.Background()

	snap, err := svc.StartQuiz(ctx, QuizOptions{Language: "Java", Categories: []string{"Basics"}})
	require.NoError(t, err)

	reset, err := svc.ResetQuiz(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "selecting_categories", reset.State)
	assert.False(t, reset.CountdownActive)

	replayed, err := svc.ReplayQuiz(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, replayed.ID)
	assert.Equal(t, "in_progress", replayed.State)
	assert.Equal(t, 2, replayed.Total)
	assert.Equal(t, []string{"Basics"}, replayed.Categories)
	assert.True(t, replayed.CountdownActive)

	assert.Eventually(t, func() bool {
		current, err := svc.Quiz(snap.ID)
		return err == nil && current.HasAnswered && current.SelectedOption == nil
	}, 2*time.Second, 5*time.Millisecond, "countdown runs again after replay")

	_, err = svc.ReplayQuiz("01HZZZZZZZZZZZZZZZZZZZZZZZ")
	requireCode(t, err, domain.ErrSessionNotFound)
}

func TestSessionService_ReplayRecordsEachRun(t *testing.T) {
	repo := new(MockResultRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Twice()
	svc := newSessionTestService(t, NewResultService(repo), quizConfig())
	ctx := context.Background()

	snap, err := svc.StartQuiz(ctx, QuizOptions{Language: "Java", Categories: []string{"Errors"}})
	require.NoError(t, err)

	for run := 0; run < 2; run++ {
		if run > 0 {
			snap, err = svc.ReplayQuiz(snap.ID)
			require.NoError(t, err)
			require.Equal(t, "in_progress", snap.State)
		}
		_, err = svc.Answer(ctx, snap.ID, intPtr(0))
		require.NoError(t, err)
		snap, err = svc.Advance(ctx, snap.ID)
		require.NoError(t, err)
		require.Equal(t, "complete", snap.State)
	}

	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "Save", 2)
}

func TestSessionService_EvictsLeastRecentlyUsed(t *testing.T) {
	svc := newSessionTestService(t, NewResultService(new(MockResultRepository)), quizConfig())
	svc.(*sessionService).maxSessions = 2
	ctx := context.Background()
	opts := QuizOptions{Language: "Java", Categories: []string{"Basics"}}

	first, err := svc.StartQuiz(ctx, opts)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := svc.StartQuiz(ctx, opts)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	_, err = svc.Quiz(first.ID)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	_, err = svc.StartQuiz(ctx, opts)
	require.NoError(t, err)

	_, err = svc.Quiz(first.ID)
	assert.NoError(t, err)
	_, err = svc.Quiz(second.ID)
	requireCode(t, err, domain.ErrSessionNotFound)
}

func TestSessionService_Flashcards(t *testing.T) {
	svc := newSessionTestService(t, NewResultService(new(MockResultRepository)), quizConfig())
	ctx := context.Background()

	snap, err := svc.StartFlashcards(ctx, "Java", []string{"OOP", "Basics"})
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Total)
	require.NotNil(t, snap.Card)
	assert.Equal(t, "c1", snap.Card.ID)
	assert.Empty(t, snap.Card.Answer)
	id := snap.ID

	snap, err = svc.Flip(id)
	require.NoError(t, err)
	assert.True(t, snap.IsFlipped)
	assert.Equal(t, "A1", snap.Card.Answer)

	snap, err = svc.Next(id)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.False(t, snap.IsFlipped)

	snap, err = svc.Previous(id)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.CurrentIndex)

	snap, err = svc.Shuffle(id)
	require.NoError(t, err)
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.Equal(t, 3, snap.Total)

	snap, err = svc.Flashcards(id)
	require.NoError(t, err)
	assert.Equal(t, id, snap.ID)

	require.NoError(t, svc.CloseFlashcards(id))
	_, err = svc.Flip(id)
	requireCode(t, err, domain.ErrSessionNotFound)

	_, err = svc.StartFlashcards(ctx, "Java", nil)
	requireCode(t, err, domain.ErrInvalidInput)
}

func TestSessionService_Shutdown(t *testing.T) {
	svc := newSessionTestService(t, NewResultService(new(MockResultRepository)), config.QuizConfig{
		QuestionCount: 2, SecondsPerQuestion: 30, TickInterval: time.Millisecond,
	})

	quiz, err := svc.StartQuiz(context.Background(), QuizOptions{Language: "Java", Categories: []string{"Basics"}})
	require.NoError(t, err)
	cards, err := svc.StartFlashcards(context.Background(), "Java", []string{"Basics"})
	require.NoError(t, err)

	svc.Shutdown()

	_, err = svc.Quiz(quiz.ID)
	requireCode(t, err, domain.ErrSessionNotFound)
	_, err = svc.Flashcards(cards.ID)
	requireCode(t, err, domain.ErrSessionNotFound)
}
