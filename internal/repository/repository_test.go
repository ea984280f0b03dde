package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"cobible/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a sqlx.DB over sqlmock with regexp query matching.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

var shortcutRowColumns = []string{"id", "number", "title", "explanation", "code", "language", "category"}

func TestShortcutDatabaseAdapter_FetchAll(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewShortcutDatabaseAdapter(db)

	rows := sqlmock.NewRows(shortcutRowColumns).
		AddRow(1, 1, "Print", "Prints", "System.out.println(x);", "Java", "Basics").
		AddRow(13, 1, "Print", "Prints", "print(x)", "Python", "Basics")
	mock.ExpectQuery(`FROM shortcuts\s+ORDER BY language, number, id`).WillReturnRows(rows)

	got, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.Shortcut{
		ID: 13, Number: 1, Title: "Print", Explanation: "Prints", Code: "print(x)", Language: "Python", Category: "Basics",
	}, got[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShortcutDatabaseAdapter_FetchByTitle(t *testing.T) {
	query := regexp.QuoteMeta(`WHERE title = ?`) + `(.|\n)*LIMIT 1`

	t.Run("found", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewShortcutDatabaseAdapter(db)

		rows := sqlmock.NewRows(shortcutRowColumns).AddRow(3, 3, "For loop", "Counts", "for", "Java", "")
		mock.ExpectQuery(query).WithArgs("For loop").WillReturnRows(rows)

		got, err := repo.FetchByTitle(context.Background(), "For loop")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(3), got.ID)
		assert.Equal(t, "Java", got.Language)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewShortcutDatabaseAdapter(db)

		mock.ExpectQuery(query).WithArgs("Missing").WillReturnRows(sqlmock.NewRows(shortcutRowColumns))

		got, err := repo.FetchByTitle(context.Background(), "Missing")
		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewShortcutDatabaseAdapter(db)

		mock.ExpectQuery(query).WithArgs("Print").WillReturnError(errors.New("boom"))

		got, err := repo.FetchByTitle(context.Background(), "Print")
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestShortcutDatabaseAdapter_CountAndInsertInTransaction(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewShortcutDatabaseAdapter(db)
	txm := NewTransactionManagerAdapter(db)

	shortcuts := []domain.Shortcut{
		{Number: 1, Title: "Print", Explanation: "Prints", Code: "print(x)", Language: "Python"},
		{Number: 2, Title: "Loop", Explanation: "Loops", Code: "for", Language: "Python", Category: "Control flow"},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM shortcuts`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	insert := regexp.QuoteMeta(`INSERT INTO shortcuts (number, title, explanation, code, language, category)`)
	mock.ExpectExec(insert).WithArgs(1, "Print", "Prints", "print(x)", "Python", "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insert).WithArgs(2, "Loop", "Loops", "for", "Python", "Control flow").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := txm.WithTransaction(context.Background(), func(ctx context.Context) error {
		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		assert.Equal(t, 0, count)
		return repo.InsertAll(ctx, shortcuts)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewShortcutDatabaseAdapter(db)
	txm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO shortcuts`)).WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	err := txm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return repo.InsertAll(ctx, []domain.Shortcut{{Number: 1, Title: "Print", Language: "Java"}})
	})
	assert.ErrorContains(t, err, "constraint")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteDatabaseAdapter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	t.Run("Add", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewFavoriteDatabaseAdapter(db)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO favorites (id, language, name, created_at)`)).
			WithArgs("f1", "Java", "Streams", now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Add(ctx, &domain.Favorite{ID: "f1", Language: "Java", Name: "Streams", CreatedAt: now})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListByLanguage", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewFavoriteDatabaseAdapter(db)

		rows := sqlmock.NewRows([]string{"id", "language", "name", "created_at"}).
			AddRow("f2", "Java", "Lambdas", now.Add(time.Minute)).
			AddRow("f1", "Java", "Streams", now)
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE language = ?`)).WithArgs("Java").WillReturnRows(rows)

		got, err := repo.ListByLanguage(ctx, "Java")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Lambdas", got[0].Name)
		assert.Equal(t, now, got[1].CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewFavoriteDatabaseAdapter(db)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM favorites WHERE id = ?`)).WithArgs("f1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.Delete(ctx, "f1"))

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM favorites WHERE id = ?`)).WithArgs("nope").
			WillReturnResult(sqlmock.NewResult(0, 0))
		err := repo.Delete(ctx, "nope")

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrNotFound, domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestResultDatabaseAdapter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	columns := []string{"id", "session_id", "language", "categories", "score", "total", "accuracy", "completed_at"}

	t.Run("Save", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewResultDatabaseAdapter(db)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO quiz_results`)).
			WithArgs("r1", "s1", "Java", `["Basics","Errors"]`, 7, 10, 70, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Save(ctx, &domain.QuizResult{
			ID: "r1", SessionID: "s1", Language: "Java", Categories: []string{"Basics", "Errors"},
			Score: 7, Total: 10, Accuracy: 70, CompletedAt: now,
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListRecent by language", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewResultDatabaseAdapter(db)

		rows := sqlmock.NewRows(columns).AddRow("r1", "s1", "Java", `["Basics"]`, 3, 4, 75, now)
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE language = ?`) + `(.|\n)*LIMIT 5`).
			WithArgs("Java").WillReturnRows(rows)

		got, err := repo.ListRecent(ctx, "Java", 5)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, []string{"Basics"}, got[0].Categories)
		assert.Equal(t, 75, got[0].Accuracy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListRecent all languages", func(t *testing.T) {
		db, mock := setupTestDB(t)
		repo := NewResultDatabaseAdapter(db)

		mock.ExpectQuery(`FROM quiz_results\s+ORDER BY completed_at DESC, id DESC\s+LIMIT 20`).
			WillReturnRows(sqlmock.NewRows(columns))

		got, err := repo.ListRecent(ctx, "", 20)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLimitClause(t *testing.T) {
	assert.Equal(t, "LIMIT 3", limitClause("sqlite", 3))
	assert.Equal(t, "LIMIT 3", limitClause("pgx", 3))
	assert.Equal(t, "FETCH FIRST 3 ROWS ONLY", limitClause("oracle", 3))
}
