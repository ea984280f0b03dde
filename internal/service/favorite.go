package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"cobible/internal/domain"
	"cobible/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FavoriteService manages named favorites per language.
type FavoriteService interface {
	Add(ctx context.Context, language, name string) (*domain.Favorite, error)
	List(ctx context.Context, language string) ([]domain.Favorite, error)
	Delete(ctx context.Context, id string) error
}

type favoriteService struct {
	repo domain.FavoriteRepository
	now  func() time.Time
}

func NewFavoriteService(repo domain.FavoriteRepository) FavoriteService {
	return &favoriteService{repo: repo, now: time.Now}
}

func (s *favoriteService) Add(ctx context.Context, language, name string) (*domain.Favorite, error) {
	language = strings.TrimSpace(language)
	name = strings.TrimSpace(name)
	if language == "" || name == "" {
		return nil, domain.NewInvalidInputError("language and name are required")
	}

	favorite := &domain.Favorite{
		ID:        uuid.NewString(),
		Language:  language,
		Name:      name,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Add(ctx, favorite); err != nil {
		return nil, domain.NewInternalError("Failed to add favorite", err)
	}

	logger.Get().Debug("Favorite added", zap.String("id", favorite.ID), zap.String("language", language))
	return favorite, nil
}

func (s *favoriteService) List(ctx context.Context, language string) ([]domain.Favorite, error) {
	if language == "" {
		return nil, domain.NewInvalidInputError("language is required")
	}

	favorites, err := s.repo.ListByLanguage(ctx, language)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list favorites", err)
	}
	return favorites, nil
}

func (s *favoriteService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.NewInvalidInputError("favorite id must be a UUID")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return domain.NewInternalError("Failed to delete favorite", err)
	}
	return nil
}
