package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seojoohe-netizen/ai-survey/internal/models"
)

type stubSubmissionStore struct {
	subs    []*models.Submission
	loadErr error
	appErr  error
}

func (s *stubSubmissionStore) LoadAll(ctx context.Context) ([]*models.Submission, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]*models.Submission(nil), s.subs...), nil
}

func (s *stubSubmissionStore) Append(ctx context.Context, sub *models.Submission) error {
	if s.appErr != nil {
		return s.appErr
	}
	s.subs = append(s.subs, sub)
	return nil
}

func newTestService(store *stubSubmissionStore) *SubmissionService {
	svc := NewSubmissionService(store, nil, SubmissionPolicy{IdentifierLength: 7, RequireAllAnswers: true})
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 9, 30, 15, 0, time.Local) }
	svc.idGen = func() string { return "sub123456789" }
	return svc
}

func validStaffRequest() SubmitRequest {
	answers := completeAnswers(models.RoleStaff)
	answers["주관식_1"] = ""
	answers["주관식_2"] = ""
	return SubmitRequest{
		Name:       "Hong Gildong",
		EmployeeID: "1234567",
		Department: "경영지원실",
		Role:       models.RoleStaff,
		Answers:    answers,
	}
}

func rejectCode(t *testing.T, err error) ErrorCode {
	t.Helper()
	se, ok := AsServiceError(err)
	if !ok {
		t.Fatalf("expected service error, got %v", err)
	}
	return se.Code
}

func TestSubmitSuccess(t *testing.T) {
	store := &stubSubmissionStore{}
	svc := newTestService(store)

	result, err := svc.Submit(context.Background(), validStaffRequest())
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if result.SubmissionID == "" {
		t.Fatalf("expected a submission id")
	}
	if len(store.subs) != 1 {
		t.Fatalf("expected exactly one appended row, got %d", len(store.subs))
	}
	sub := store.subs[0]
	if sub.EmployeeID != "1234567" || sub.Department != "경영지원실" {
		t.Fatalf("unexpected identity fields: %+v", sub)
	}
	// Ordinal labels round-trip untouched.
	for _, q := range Compose(models.RoleStaff) {
		if q.Kind == models.KindOrdinal && sub.Answers[q.ID] != "4.그렇다" {
			t.Fatalf("answer for %s did not round-trip: %q", q.ID, sub.Answers[q.ID])
		}
	}
	if !sub.SubmittedAt.Equal(time.Date(2026, 3, 2, 9, 30, 15, 0, time.Local)) {
		t.Fatalf("unexpected timestamp: %v", sub.SubmittedAt)
	}
}

func TestSubmitDuplicateIdentifier(t *testing.T) {
	store := &stubSubmissionStore{subs: []*models.Submission{{EmployeeID: "1234567"}}}
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), validStaffRequest())
	if code := rejectCode(t, err); code != ErrorDuplicateIdentifier {
		t.Fatalf("expected duplicate_identifier, got %s", code)
	}
	if len(store.subs) != 1 {
		t.Fatalf("store must be unchanged on rejection, got %d rows", len(store.subs))
	}
}

func TestSubmitPreconditionOrder(t *testing.T) {
	store := &stubSubmissionStore{}
	svc := newTestService(store)

	req := validStaffRequest()
	req.Name = "  "
	req.EmployeeID = "12"
	if code := rejectCode(t, submitErr(svc, req)); code != ErrorMissingName {
		t.Fatalf("name check must run first, got %s", code)
	}

	req = validStaffRequest()
	req.EmployeeID = "123456" // too short
	if code := rejectCode(t, submitErr(svc, req)); code != ErrorInvalidIdentifier {
		t.Fatalf("expected invalid_identifier, got %s", code)
	}

	req = validStaffRequest()
	req.EmployeeID = "12345ab"
	if code := rejectCode(t, submitErr(svc, req)); code != ErrorInvalidIdentifier {
		t.Fatalf("expected invalid_identifier for non-digits, got %s", code)
	}

	req = validStaffRequest()
	req.Department = models.DepartmentUnselected
	if code := rejectCode(t, submitErr(svc, req)); code != ErrorMissingClassification {
		t.Fatalf("expected missing_classification, got %s", code)
	}

	req = validStaffRequest()
	req.Role = models.RoleUnselected
	if code := rejectCode(t, submitErr(svc, req)); code != ErrorMissingClassification {
		t.Fatalf("expected missing_classification for unselected role, got %s", code)
	}

	req = validStaffRequest()
	delete(req.Answers, "Staff_E3")
	if code := rejectCode(t, submitErr(svc, req)); code != ErrorIncompleteAnswers {
		t.Fatalf("expected incomplete_answers, got %s", code)
	}

	if len(store.subs) != 0 {
		t.Fatalf("no rejected request may append, got %d rows", len(store.subs))
	}
}

func submitErr(svc *SubmissionService, req SubmitRequest) error {
	_, err := svc.Submit(context.Background(), req)
	return err
}

func TestSubmitEightDigitPolicy(t *testing.T) {
	store := &stubSubmissionStore{}
	svc := NewSubmissionService(store, nil, SubmissionPolicy{IdentifierLength: 8, RequireAllAnswers: true})

	req := validStaffRequest()
	if code := rejectCode(t, submitErr(svc, req)); code != ErrorInvalidIdentifier {
		t.Fatalf("7-digit id must fail the 8-digit policy, got %s", code)
	}
	req.EmployeeID = "12345678"
	if _, err := svc.Submit(context.Background(), req); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
}

func TestSubmitLeadingZerosSignificant(t *testing.T) {
	store := &stubSubmissionStore{subs: []*models.Submission{{EmployeeID: "0012345"}}}
	svc := newTestService(store)

	req := validStaffRequest()
	req.EmployeeID = "0012345"
	if code := rejectCode(t, submitErr(svc, req)); code != ErrorDuplicateIdentifier {
		t.Fatalf("expected duplicate for identical zero-padded id, got %s", code)
	}

	req.EmployeeID = "0012346"
	if _, err := svc.Submit(context.Background(), req); err != nil {
		t.Fatalf("distinct zero-padded id must pass: %v", err)
	}
}

func TestSubmitOptionalCompleteness(t *testing.T) {
	store := &stubSubmissionStore{}
	svc := NewSubmissionService(store, nil, SubmissionPolicy{IdentifierLength: 7, RequireAllAnswers: false})

	req := validStaffRequest()
	req.Answers = map[string]string{"공통_A1": "5.매우 그렇다"}
	if _, err := svc.Submit(context.Background(), req); err != nil {
		t.Fatalf("Submit error with completeness gating off: %v", err)
	}
	if len(store.subs) != 1 {
		t.Fatalf("expected one row, got %d", len(store.subs))
	}
}

func TestSubmitDropsUnknownAnswerKeys(t *testing.T) {
	store := &stubSubmissionStore{}
	svc := newTestService(store)

	req := validStaffRequest()
	req.Answers["리더_F1"] = "5.매우 그렇다" // not part of the staff set
	if _, err := svc.Submit(context.Background(), req); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if _, ok := store.subs[0].Answers["리더_F1"]; ok {
		t.Fatalf("answers outside the composed set must be dropped")
	}
}

func TestSubmitClosedHardWindow(t *testing.T) {
	store := &stubSubmissionStore{}
	window := &WindowGate{Mode: WindowHard, ClosesAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc := NewSubmissionService(store, window, SubmissionPolicy{IdentifierLength: 7, RequireAllAnswers: true})
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) }

	if code := rejectCode(t, submitErr(svc, validStaffRequest())); code != ErrorWindowClosed {
		t.Fatalf("expected window_closed, got %s", code)
	}
	if len(store.subs) != 0 {
		t.Fatalf("closed window must not append")
	}
}

func TestSubmitStorageErrors(t *testing.T) {
	boom := errors.New("disk full")

	svc := newTestService(&stubSubmissionStore{loadErr: boom})
	err := submitErr(svc, validStaffRequest())
	if code := rejectCode(t, err); code != ErrorStorage {
		t.Fatalf("expected storage_unavailable on load failure, got %s", code)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("storage error must wrap the cause")
	}

	svc = newTestService(&stubSubmissionStore{appErr: boom})
	if code := rejectCode(t, submitErr(svc, validStaffRequest())); code != ErrorStorage {
		t.Fatalf("expected storage_unavailable on append failure, got %s", code)
	}
}
