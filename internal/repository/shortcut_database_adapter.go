package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cobible/internal/domain"
	"cobible/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const shortcutColumns = `
		id "id",
		number "number",
		title "title",
		explanation "explanation",
		code "code",
		language "language",
		category "category"`

// ShortcutDatabaseAdapter implements domain.ShortcutStore using sqlx.
type ShortcutDatabaseAdapter struct {
	db *sqlx.DB
}

func NewShortcutDatabaseAdapter(db *sqlx.DB) *ShortcutDatabaseAdapter {
	return &ShortcutDatabaseAdapter{db: db}
}

// FetchAll returns every shortcut ordered by language, number and id.
func (a *ShortcutDatabaseAdapter) FetchAll(ctx context.Context) ([]domain.Shortcut, error) {
	exec := GetExecutor(ctx, a.db)
	query := `SELECT` + shortcutColumns + `
	FROM shortcuts
	ORDER BY language, number, id`

	var rows []models.Shortcut
	if err := exec.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to fetch shortcuts: %w", err)
	}

	shortcuts := make([]domain.Shortcut, 0, len(rows))
	for i := range rows {
		shortcuts = append(shortcuts, toDomainShortcut(&rows[i]))
	}
	return shortcuts, nil
}

// FetchByTitle returns the first shortcut with the given title, or nil.
func (a *ShortcutDatabaseAdapter) FetchByTitle(ctx context.Context, title string) (*domain.Shortcut, error) {
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`SELECT` + shortcutColumns + `
	FROM shortcuts
	WHERE title = ?
	ORDER BY language, number, id
	` + limitClause(exec.DriverName(), 1))

	var row models.Shortcut
	if err := exec.GetContext(ctx, &row, query, title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch shortcut by title: %w", err)
	}

	shortcut := toDomainShortcut(&row)
	return &shortcut, nil
}

// Count returns the number of stored shortcuts.
func (a *ShortcutDatabaseAdapter) Count(ctx context.Context) (int, error) {
	var count int
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &count, `SELECT COUNT(*) FROM shortcuts`); err != nil {
		return 0, fmt.Errorf("failed to count shortcuts: %w", err)
	}
	return count, nil
}

// InsertAll inserts shortcuts, inside the transaction of ctx when there is one.
func (a *ShortcutDatabaseAdapter) InsertAll(ctx context.Context, shortcuts []domain.Shortcut) error {
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`INSERT INTO shortcuts (number, title, explanation, code, language, category)
	VALUES (?, ?, ?, ?, ?, ?)`)

	for _, s := range shortcuts {
		if _, err := exec.ExecContext(ctx, query,
			s.Number, s.Title, s.Explanation, s.Code, s.Language, s.Category,
		); err != nil {
			return fmt.Errorf("failed to insert shortcut %q: %w", s.Title, err)
		}
	}
	return nil
}

func toDomainShortcut(m *models.Shortcut) domain.Shortcut {
	return domain.Shortcut{
		ID:          m.ID,
		Number:      m.Number,
		Title:       m.Title,
		Explanation: m.Explanation,
		Code:        m.Code,
		Language:    m.Language,
		Category:    m.Category,
	}
}
