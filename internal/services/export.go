package services

import (
	"bytes"
	"encoding/csv"

	"github.com/seojoohe-netizen/ai-survey/internal/models"
)

// UTF8BOM is prepended to every CSV artifact so Excel opens the Korean
// headers correctly (utf-8-sig).
var UTF8BOM = []byte{0xEF, 0xBB, 0xBF}

// Timestamp layouts used in exported rows.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// SubmissionColumns is the canonical column order for the tabular store
// and every export: identity fields, then every question across all
// roles, then the submission date and time. Rows from different roles
// share this one shape; questions a role never saw stay empty.
func SubmissionColumns() []string {
	cols := []string{"이름", "사번", "부서", "직책"}
	cols = append(cols, AllQuestionIDs()...)
	return append(cols, "제출일", "제출시간")
}

// SubmissionRow renders one submission in SubmissionColumns order.
func SubmissionRow(sub *models.Submission) []string {
	row := []string{sub.Name, sub.EmployeeID, sub.Department, string(sub.Role)}
	for _, id := range AllQuestionIDs() {
		row = append(row, sub.Answers[id])
	}
	return append(row, sub.SubmittedAt.Format(DateLayout), sub.SubmittedAt.Format(TimeLayout))
}

// ExportSubmissionsCSV renders the full submission table, BOM-prefixed,
// header first, rows in store order.
func ExportSubmissionsCSV(subs []*models.Submission) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Write(UTF8BOM)
	w := csv.NewWriter(buf)
	if err := w.Write(SubmissionColumns()); err != nil {
		return nil, err
	}
	for _, sub := range subs {
		if err := w.Write(SubmissionRow(sub)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
