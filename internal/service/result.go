package service

import (
	"context"
	"time"

	"cobible/internal/domain"
	"cobible/internal/logger"
	"cobible/internal/util"

	"go.uber.org/zap"
)

const (
	DefaultResultLimit = 20
	MaxResultLimit     = 100
)

// ResultService records and lists outcomes of completed quizzes.
type ResultService interface {
	Record(ctx context.Context, result *domain.QuizResult) error
	Recent(ctx context.Context, language string, limit int) ([]domain.QuizResult, error)
}

type resultService struct {
	repo domain.ResultRepository
	now  func() time.Time
}

func NewResultService(repo domain.ResultRepository) ResultService {
	return &resultService{repo: repo, now: time.Now}
}

// Record assigns an id and completion time and stores the result.
func (s *resultService) Record(ctx context.Context, result *domain.QuizResult) error {
	result.ID = util.NewULID()
	result.CompletedAt = s.now().UTC()

	if err := s.repo.Save(ctx, result); err != nil {
		return domain.NewInternalError("Failed to save quiz result", err)
	}

	logger.Get().Info("Quiz result recorded",
		zap.String("session_id", result.SessionID),
		zap.String("language", result.Language),
		zap.Int("score", result.Score),
		zap.Int("total", result.Total),
		zap.Int("accuracy", result.Accuracy))
	return nil
}

// Recent lists results newest first. A non-positive limit uses the default;
// larger limits are capped.
func (s *resultService) Recent(ctx context.Context, language string, limit int) ([]domain.QuizResult, error) {
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	if limit > MaxResultLimit {
		limit = MaxResultLimit
	}

	results, err := s.repo.ListRecent(ctx, language, limit)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quiz results", err)
	}
	return results, nil
}
