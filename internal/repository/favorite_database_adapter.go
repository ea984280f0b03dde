package repository

import (
	"context"
	"fmt"

	"cobible/internal/domain"
	"cobible/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// FavoriteDatabaseAdapter implements domain.FavoriteRepository using sqlx.
type FavoriteDatabaseAdapter struct {
	db *sqlx.DB
}

func NewFavoriteDatabaseAdapter(db *sqlx.DB) *FavoriteDatabaseAdapter {
	return &FavoriteDatabaseAdapter{db: db}
}

func (a *FavoriteDatabaseAdapter) Add(ctx context.Context, favorite *domain.Favorite) error {
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`INSERT INTO favorites (id, language, name, created_at) VALUES (?, ?, ?, ?)`)

	if _, err := exec.ExecContext(ctx, query,
		favorite.ID, favorite.Language, favorite.Name, favorite.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// ListByLanguage returns the favorites of a language, newest first.
func (a *FavoriteDatabaseAdapter) ListByLanguage(ctx context.Context, language string) ([]domain.Favorite, error) {
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`SELECT
		id "id",
		language "language",
		name "name",
		created_at "created_at"
	FROM favorites
	WHERE language = ?
	ORDER BY created_at DESC, id`)

	var rows []models.Favorite
	if err := exec.SelectContext(ctx, &rows, query, language); err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	favorites := make([]domain.Favorite, 0, len(rows))
	for _, r := range rows {
		favorites = append(favorites, domain.Favorite{
			ID:        r.ID,
			Language:  r.Language,
			Name:      r.Name,
			CreatedAt: r.CreatedAt,
		})
	}
	return favorites, nil
}

// Delete removes a favorite. A missing id is reported as NOT_FOUND.
func (a *FavoriteDatabaseAdapter) Delete(ctx context.Context, id string) error {
	exec := GetExecutor(ctx, a.db)
	result, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM favorites WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("favorite %s not found", id))
	}
	return nil
}
