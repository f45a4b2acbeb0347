package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/seojoohe-netizen/ai-survey/internal/models"
	"github.com/seojoohe-netizen/ai-survey/internal/services"
)

// ErrIncompatibleShape is returned when the file on disk was written
// with a different column set. Appending would silently corrupt the
// table, so the file has to be re-initialized (or exported and removed)
// by the operator first.
var ErrIncompatibleShape = errors.New("csv store: existing file has an incompatible column shape")

// CSVStore appends submissions to a flat UTF-8 file with a BOM and a
// header row written exactly once, on first append. This is the format
// the survey has always produced, so existing tooling keeps working.
type CSVStore struct {
	path    string
	columns []string
	mu      sync.Mutex
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path, columns: services.SubmissionColumns()}
}

func stripBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, services.UTF8BOM)
}

func (s *CSVStore) headerMatches(header []string) bool {
	if len(header) != len(s.columns) {
		return false
	}
	for i, h := range header {
		if h != s.columns[i] {
			return false
		}
	}
	return true
}

// readTable parses the whole file. Callers hold s.mu.
func (s *CSVStore) readTable() ([][]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("csv store: read %s: %w", s.path, err)
	}
	data = stripBOM(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv store: parse %s: %w", s.path, err)
	}
	return rows, nil
}

func (s *CSVStore) Append(ctx context.Context, sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readTable()
	if err != nil {
		return err
	}
	writeHeader := len(rows) == 0
	if !writeHeader && !s.headerMatches(rows[0]) {
		return fmt.Errorf("%w: %s", ErrIncompatibleShape, s.path)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("csv store: open %s: %w", s.path, err)
	}
	defer f.Close()

	if writeHeader {
		if _, err := f.Write(services.UTF8BOM); err != nil {
			return fmt.Errorf("csv store: write bom: %w", err)
		}
	}
	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(s.columns); err != nil {
			return fmt.Errorf("csv store: write header: %w", err)
		}
	}
	if err := w.Write(services.SubmissionRow(sub)); err != nil {
		return fmt.Errorf("csv store: write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv store: flush: %w", err)
	}
	return nil
}

func (s *CSVStore) LoadAll(ctx context.Context) ([]*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readTable()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []*models.Submission{}, nil
	}
	header := rows[0]
	if !s.headerMatches(header) {
		return nil, fmt.Errorf("%w: %s", ErrIncompatibleShape, s.path)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	get := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	out := make([]*models.Submission, 0, len(rows)-1)
	for _, row := range rows[1:] {
		sub := &models.Submission{
			Name:       get(row, "이름"),
			EmployeeID: get(row, "사번"),
			Department: get(row, "부서"),
			Role:       models.Role(get(row, "직책")),
			Answers:    map[string]string{},
		}
		for _, qid := range services.AllQuestionIDs() {
			if v := get(row, qid); v != "" {
				sub.Answers[qid] = v
			}
		}
		stamp := get(row, "제출일") + " " + get(row, "제출시간")
		if t, perr := time.ParseInLocation(services.DateLayout+" "+services.TimeLayout, stamp, time.Local); perr == nil {
			sub.SubmittedAt = t
		}
		out = append(out, sub)
	}
	return out, nil
}

func (s *CSVStore) Close() error { return nil }
