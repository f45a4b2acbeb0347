package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/seojoohe-netizen/ai-survey/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS submissions (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    employee_id  TEXT NOT NULL,
    department   TEXT NOT NULL,
    role         TEXT NOT NULL,
    answers      TEXT NOT NULL,
    submitted_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_employee_id ON submissions(employee_id);
`

// SQLiteStore persists submissions in a local SQLite file. Answers are
// stored as one JSON column; the row is still append-only.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(path))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: open: %w", err)
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite store: apply pragma %q: %w", stmt, err)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite store: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, sub *models.Submission) error {
	answers, err := json.Marshal(sub.Answers)
	if err != nil {
		return fmt.Errorf("sqlite store: encode answers: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, name, employee_id, department, role, answers, submitted_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.EmployeeID, sub.Department, string(sub.Role),
		string(answers), sub.SubmittedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("sqlite store: insert: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadAll(ctx context.Context) ([]*models.Submission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, employee_id, department, role, answers, submitted_at
         FROM submissions ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: query: %w", err)
	}
	defer rows.Close()

	out := []*models.Submission{}
	for rows.Next() {
		var sub models.Submission
		var role, answers, submitted string
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.EmployeeID, &sub.Department, &role, &answers, &submitted); err != nil {
			return nil, fmt.Errorf("sqlite store: scan: %w", err)
		}
		sub.Role = models.Role(role)
		if err := json.Unmarshal([]byte(answers), &sub.Answers); err != nil {
			return nil, fmt.Errorf("sqlite store: decode answers: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339, submitted); perr == nil {
			sub.SubmittedAt = t
		}
		out = append(out, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite store: rows: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
