package repository

import (
	"context"
	"fmt"

	"cobible/internal/domain"
	"cobible/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// ResultDatabaseAdapter implements domain.ResultRepository using sqlx.
type ResultDatabaseAdapter struct {
	db *sqlx.DB
}

func NewResultDatabaseAdapter(db *sqlx.DB) *ResultDatabaseAdapter {
	return &ResultDatabaseAdapter{db: db}
}

func (a *ResultDatabaseAdapter) Save(ctx context.Context, result *domain.QuizResult) error {
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`INSERT INTO quiz_results
		(id, session_id, language, categories, score, total, accuracy, completed_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	if _, err := exec.ExecContext(ctx, query,
		result.ID,
		result.SessionID,
		result.Language,
		models.StringSlice(result.Categories),
		result.Score,
		result.Total,
		result.Accuracy,
		result.CompletedAt,
	); err != nil {
		return fmt.Errorf("failed to save quiz result: %w", err)
	}
	return nil
}

// ListRecent returns up to limit results, newest first. An empty language
// lists every language.
func (a *ResultDatabaseAdapter) ListRecent(ctx context.Context, language string, limit int) ([]domain.QuizResult, error) {
	exec := GetExecutor(ctx, a.db)

	query := `SELECT
		id "id",
		session_id "session_id",
		language "language",
		categories "categories",
		score "score",
		total "total",
		accuracy "accuracy",
		completed_at "completed_at"
	FROM quiz_results`
	var args []any
	if language != "" {
		query += `
	WHERE language = ?`
		args = append(args, language)
	}
	query += `
	ORDER BY completed_at DESC, id DESC
	` + limitClause(exec.DriverName(), limit)

	var rows []models.QuizResult
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list quiz results: %w", err)
	}

	results := make([]domain.QuizResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, domain.QuizResult{
			ID:          r.ID,
			SessionID:   r.SessionID,
			Language:    r.Language,
			Categories:  []string(r.Categories),
			Score:       r.Score,
			Total:       r.Total,
			Accuracy:    r.Accuracy,
			CompletedAt: r.CompletedAt,
		})
	}
	return results, nil
}
