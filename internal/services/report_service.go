package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/seojoohe-netizen/ai-survey/internal/models"
)

// ReportStore is the read-only view reporting gets over the store.
type ReportStore interface {
	LoadAll(ctx context.Context) ([]*models.Submission, error)
}

// ReportService exposes counts and exports over all submissions. It has
// no mutation paths.
type ReportService struct {
	store ReportStore
}

func NewReportService(store ReportStore) *ReportService {
	return &ReportService{store: store}
}

// CountRow is one bucket in a grouped count, sorted by key.
type CountRow struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Summary aggregates the submission table for the dashboard.
type Summary struct {
	Total       int        `json:"total"`
	Departments []CountRow `json:"departments"`
	Roles       []CountRow `json:"roles"`
	Dates       []CountRow `json:"dates"`
}

// ExportResult collects what the handler needs to emit a download.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

func sortedCounts(m map[string]int) []CountRow {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]CountRow, 0, len(keys))
	for _, k := range keys {
		out = append(out, CountRow{Key: k, Count: m[k]})
	}
	return out
}

// Summarize computes total and per-department/role/date counts.
func (s *ReportService) Summarize(ctx context.Context) (*Summary, error) {
	subs, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, NewStorageError(err)
	}
	byDept := map[string]int{}
	byRole := map[string]int{}
	byDate := map[string]int{}
	for _, sub := range subs {
		byDept[sub.Department]++
		byRole[string(sub.Role)]++
		byDate[sub.SubmittedAt.Format(DateLayout)]++
	}
	return &Summary{
		Total:       len(subs),
		Departments: sortedCounts(byDept),
		Roles:       sortedCounts(byRole),
		Dates:       sortedCounts(byDate),
	}, nil
}

// Submissions returns the raw table in store order.
func (s *ReportService) Submissions(ctx context.Context) ([]*models.Submission, error) {
	subs, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, NewStorageError(err)
	}
	return subs, nil
}

// ExportCSV renders the full table as a BOM-prefixed CSV attachment.
func (s *ReportService) ExportCSV(ctx context.Context) (*ExportResult, error) {
	subs, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, NewStorageError(err)
	}
	data, err := ExportSubmissionsCSV(subs)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename:    "survey_data.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        data,
	}, nil
}

// SummaryText renders the summary as plain text for quick sharing.
func (s *ReportService) SummaryText(ctx context.Context) (string, error) {
	sum, err := s.Summarize(ctx)
	if err != nil {
		return "", err
	}
	b := &strings.Builder{}
	fmt.Fprintf(b, "AI Literacy 진단 현황\n")
	fmt.Fprintf(b, "총 응답: %d건\n", sum.Total)
	writeSection := func(title string, rows []CountRow) {
		fmt.Fprintf(b, "\n[%s]\n", title)
		for _, row := range rows {
			fmt.Fprintf(b, "  %s: %d\n", row.Key, row.Count)
		}
	}
	writeSection("부서별", sum.Departments)
	writeSection("직책별", sum.Roles)
	writeSection("일자별", sum.Dates)
	return b.String(), nil
}
