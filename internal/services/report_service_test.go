package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/seojoohe-netizen/ai-survey/internal/models"
)

type stubReportStore struct {
	subs []*models.Submission
	err  error
}

func (s *stubReportStore) LoadAll(ctx context.Context) ([]*models.Submission, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]*models.Submission(nil), s.subs...), nil
}

func reportFixtures() []*models.Submission {
	day1 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 3, 3, 11, 30, 0, 0, time.Local)
	return []*models.Submission{
		{Name: "홍길동", EmployeeID: "1234567", Department: "경영지원실", Role: models.RoleStaff,
			Answers: map[string]string{"공통_A1": "4.그렇다"}, SubmittedAt: day1},
		{Name: "김철수", EmployeeID: "2345678", Department: "영업본부", Role: models.RoleMember,
			Answers: map[string]string{"공통_A1": "3.보통이다"}, SubmittedAt: day1},
		{Name: "이영희", EmployeeID: "3456789", Department: "경영지원실", Role: models.RoleLeader,
			Answers: map[string]string{"공통_A1": "5.매우 그렇다"}, SubmittedAt: day2},
	}
}

func countFor(rows []CountRow, key string) int {
	for _, row := range rows {
		if row.Key == key {
			return row.Count
		}
	}
	return 0
}

func TestSummarize(t *testing.T) {
	svc := NewReportService(&stubReportStore{subs: reportFixtures()})
	sum, err := svc.Summarize(context.Background())
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if sum.Total != 3 {
		t.Fatalf("expected total 3, got %d", sum.Total)
	}
	if countFor(sum.Departments, "경영지원실") != 2 {
		t.Fatalf("unexpected department counts: %+v", sum.Departments)
	}
	if countFor(sum.Roles, string(models.RoleStaff)) != 1 {
		t.Fatalf("unexpected role counts: %+v", sum.Roles)
	}
	if countFor(sum.Dates, "2026-03-02") != 2 || countFor(sum.Dates, "2026-03-03") != 1 {
		t.Fatalf("unexpected date counts: %+v", sum.Dates)
	}
}

func TestSummarizeStorageError(t *testing.T) {
	svc := NewReportService(&stubReportStore{err: errors.New("gone")})
	_, err := svc.Summarize(context.Background())
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorStorage {
		t.Fatalf("expected storage_unavailable, got %v", err)
	}
}

func TestExportCSV(t *testing.T) {
	svc := NewReportService(&stubReportStore{subs: reportFixtures()})
	result, err := svc.ExportCSV(context.Background())
	if err != nil {
		t.Fatalf("ExportCSV error: %v", err)
	}
	if result.Filename != "survey_data.csv" {
		t.Fatalf("unexpected filename %q", result.Filename)
	}
	if !bytes.HasPrefix(result.Data, UTF8BOM) {
		t.Fatalf("export must start with the UTF-8 BOM")
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(result.Data, UTF8BOM)))
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if len(rows) != 4 { // header + 3 rows
		t.Fatalf("expected 4 csv rows, got %d", len(rows))
	}
	header := rows[0]
	if header[0] != "이름" || header[len(header)-1] != "제출시간" {
		t.Fatalf("unexpected header shape: %v", header)
	}
	if len(header) != len(SubmissionColumns()) {
		t.Fatalf("header width %d != %d", len(header), len(SubmissionColumns()))
	}
	if rows[1][0] != "홍길동" || rows[1][1] != "1234567" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
}

func TestSummaryText(t *testing.T) {
	svc := NewReportService(&stubReportStore{subs: reportFixtures()})
	text, err := svc.SummaryText(context.Background())
	if err != nil {
		t.Fatalf("SummaryText error: %v", err)
	}
	for _, want := range []string{"총 응답: 3건", "경영지원실: 2", "2026-03-02: 2", "[직책별]"} {
		if !strings.Contains(text, want) {
			t.Fatalf("summary text missing %q:\n%s", want, text)
		}
	}
}

func TestSubmissionRowRoundTrip(t *testing.T) {
	sub := reportFixtures()[0]
	row := SubmissionRow(sub)
	cols := SubmissionColumns()
	if len(row) != len(cols) {
		t.Fatalf("row width %d != column width %d", len(row), len(cols))
	}
	for i, col := range cols {
		if col == "공통_A1" && row[i] != "4.그렇다" {
			t.Fatalf("ordinal label did not round-trip: %q", row[i])
		}
	}
}
