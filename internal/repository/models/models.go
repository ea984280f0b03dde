package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringSlice stores a string list as a JSON array column.
type StringSlice []string

// Value implements driver.Valuer. A nil slice is stored as "[]".
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner. NULL, "" and "null" scan as an empty slice.
func (s *StringSlice) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*s = StringSlice{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("StringSlice Scan: unsupported type %T", value)
	}

	if len(raw) == 0 || string(raw) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(raw, s)
}

// Shortcut is a row of the shortcuts table.
type Shortcut struct {
	ID          int64  `db:"id"`
	Number      int    `db:"number"`
	Title       string `db:"title"`
	Explanation string `db:"explanation"`
	Code        string `db:"code"`
	Language    string `db:"language"`
	Category    string `db:"category"`
}

// Favorite is a row of the favorites table.
type Favorite struct {
	ID        string    `db:"id"`
	Language  string    `db:"language"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// QuizResult is a row of the quiz_results table.
type QuizResult struct {
	ID          string      `db:"id"`
	SessionID   string      `db:"session_id"`
	Language    string      `db:"language"`
	Categories  StringSlice `db:"categories"`
	Score       int         `db:"score"`
	Total       int         `db:"total"`
	Accuracy    int         `db:"accuracy"`
	CompletedAt time.Time   `db:"completed_at"`
}
