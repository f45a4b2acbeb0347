package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seojoohe-netizen/ai-survey/internal/models"
)

// SubmissionStore abstracts the append-only tabular store. The store
// enforces nothing beyond load and append; uniqueness is the service's
// job.
type SubmissionStore interface {
	LoadAll(ctx context.Context) ([]*models.Submission, error)
	Append(ctx context.Context, sub *models.Submission) error
}

// SubmissionPolicy carries the validation knobs that differ between
// deployments.
type SubmissionPolicy struct {
	// IdentifierLength is the required employee-number length (7 or 8).
	IdentifierLength int
	// RequireAllAnswers gates submission on every ordinal item being
	// answered. Some deployments run the form without this check.
	RequireAllAnswers bool
}

// SubmitRequest is the sanitized handler input for one submission.
type SubmitRequest struct {
	Name       string
	EmployeeID string
	Department string
	Role       models.Role
	Answers    map[string]string
}

// SubmitResult acknowledges a stored submission.
type SubmitResult struct {
	SubmissionID string
	SubmittedAt  time.Time
}

// SubmissionService hosts the submit workflow: ordered validation,
// duplicate check, then a single appended row.
type SubmissionService struct {
	store  SubmissionStore
	window *WindowGate
	policy SubmissionPolicy

	// mu serializes the duplicate check with the append so two
	// submissions sharing an employee number cannot both slip through.
	mu    sync.Mutex
	now   func() time.Time
	idGen func() string
}

// NewSubmissionService constructs a service bound to the given store.
// window may be nil when no date gating is configured.
func NewSubmissionService(store SubmissionStore, window *WindowGate, policy SubmissionPolicy) *SubmissionService {
	if policy.IdentifierLength == 0 {
		policy.IdentifierLength = 7
	}
	return &SubmissionService{
		store:  store,
		window: window,
		policy: policy,
		now:    func() time.Time { return time.Now() },
		idGen:  defaultSubmissionID,
	}
}

func defaultSubmissionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Submit validates req in order, short-circuiting on the first failure,
// then appends exactly one row. On any failure nothing is written.
func (s *SubmissionService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if st := s.window.Status(s.now()); !st.Accessible {
		return nil, NewWindowClosedError("survey window is closed")
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, NewRejectError(ErrorMissingName, "name is required")
	}
	if len(req.EmployeeID) != s.policy.IdentifierLength || !digitsOnly(req.EmployeeID) {
		return nil, NewRejectError(ErrorInvalidIdentifier, "employee id must be a numeric string of the configured length")
	}
	if req.Department == "" || req.Department == models.DepartmentUnselected || !models.ValidDepartment(req.Department) {
		return nil, NewRejectError(ErrorMissingClassification, "department is required")
	}
	composed := Compose(req.Role)
	if len(composed) == 0 {
		return nil, NewRejectError(ErrorMissingClassification, "role is required")
	}
	if s.policy.RequireAllAnswers && !IsComplete(req.Answers, composed) {
		return nil, NewRejectError(ErrorIncompleteAnswers, "all scale questions must be answered")
	}

	// Keep only answers for questions this role was actually shown.
	answers := make(map[string]string, len(composed))
	for _, q := range composed {
		if v, ok := req.Answers[q.ID]; ok {
			answers[q.ID] = v
		}
	}

	sub := &models.Submission{
		ID:          s.idGen(),
		Name:        strings.TrimSpace(req.Name),
		EmployeeID:  req.EmployeeID,
		Department:  req.Department,
		Role:        req.Role,
		Answers:     answers,
		SubmittedAt: s.now().Truncate(time.Second),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, NewStorageError(err)
	}
	for _, prev := range existing {
		if prev.EmployeeID == sub.EmployeeID {
			return nil, NewRejectError(ErrorDuplicateIdentifier, "a submission for this employee id already exists")
		}
	}
	if err := s.store.Append(ctx, sub); err != nil {
		return nil, NewStorageError(err)
	}
	return &SubmitResult{SubmissionID: sub.ID, SubmittedAt: sub.SubmittedAt}, nil
}
