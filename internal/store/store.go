// Package store provides SubmissionStore implementations over the
// append-only submission table: in-memory, CSV file, SQLite, and
// Postgres. Drivers only load and append; the uniqueness invariant is
// enforced by the submission service.
package store

import (
	"context"

	"github.com/seojoohe-netizen/ai-survey/internal/models"
)

// SubmissionStore is the durable view of "all submissions so far".
type SubmissionStore interface {
	LoadAll(ctx context.Context) ([]*models.Submission, error)
	Append(ctx context.Context, sub *models.Submission) error
	Close() error
}
