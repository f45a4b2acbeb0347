package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/seojoohe-netizen/ai-survey/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS submissions (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    employee_id  TEXT NOT NULL,
    department   TEXT NOT NULL,
    role         TEXT NOT NULL,
    answers      JSONB NOT NULL,
    submitted_at TIMESTAMPTZ NOT NULL,
    seq          BIGSERIAL
)`

// PostgresStore persists submissions in a shared Postgres table, for
// deployments where the survey box is not the system of record.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres store: parse dsn: %w", err)
	}
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres store: connect: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres store: init schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Append(ctx context.Context, sub *models.Submission) error {
	answers, err := json.Marshal(sub.Answers)
	if err != nil {
		return fmt.Errorf("postgres store: encode answers: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO submissions (id, name, employee_id, department, role, answers, submitted_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sub.ID, sub.Name, sub.EmployeeID, sub.Department, string(sub.Role), answers, sub.SubmittedAt)
	if err != nil {
		return fmt.Errorf("postgres store: insert: %w", err)
	}
	return nil
}

func (s *PostgresStore) LoadAll(ctx context.Context) ([]*models.Submission, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, employee_id, department, role, answers, submitted_at
         FROM submissions ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("postgres store: query: %w", err)
	}
	defer rows.Close()

	out := []*models.Submission{}
	for rows.Next() {
		var sub models.Submission
		var role string
		var answers []byte
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.EmployeeID, &sub.Department, &role, &answers, &sub.SubmittedAt); err != nil {
			return nil, fmt.Errorf("postgres store: scan: %w", err)
		}
		sub.Role = models.Role(role)
		if err := json.Unmarshal(answers, &sub.Answers); err != nil {
			return nil, fmt.Errorf("postgres store: decode answers: %w", err)
		}
		out = append(out, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres store: rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
