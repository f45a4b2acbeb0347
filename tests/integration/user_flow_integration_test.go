//go:build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"
)

func baseURL() string {
	if v := os.Getenv("SURVEY_TEST_BASE_URL"); strings.TrimSpace(v) != "" {
		return strings.TrimRight(v, "/")
	}
	return "http://127.0.0.1:18080"
}

func adminSecret() string {
	if v := os.Getenv("SURVEY_TEST_ADMIN_SECRET"); v != "" {
		return v
	}
	return "integration-secret"
}

// TestSurveyJourneyIntegration walks the full respondent and admin path
// against a running server: fetch the questionnaire for a role, submit a
// complete response, watch the duplicate get rejected, then log into the
// dashboard and verify the new response shows up in summary and export.
// The server must run with SURVEY_ADMIN_SECRET matching adminSecret()
// and no submission window configured.
func TestSurveyJourneyIntegration(t *testing.T) {
	client := &http.Client{Timeout: 5 * time.Second}
	base := baseURL()

	role := "리더(팀장/지점장/파트장)"
	qURL := base + "/api/questionnaire?role=" + url.QueryEscape(role)
	resp, err := client.Get(qURL)
	if err != nil {
		t.Fatalf("get questionnaire: %v", err)
	}
	var questionnaire struct {
		FormActive bool `json:"form_active"`
		Questions  []struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
		} `json:"questions"`
		ScaleLabels []string `json:"scale_labels"`
	}
	decodeJSON(t, resp, &questionnaire)
	if !questionnaire.FormActive {
		t.Fatalf("leader form should be active")
	}
	if len(questionnaire.Questions) == 0 || len(questionnaire.ScaleLabels) != 5 {
		t.Fatalf("unexpected questionnaire shape: %d questions, %d labels",
			len(questionnaire.Questions), len(questionnaire.ScaleLabels))
	}

	// A unique employee number per run keeps reruns off the duplicate gate.
	employeeID := fmt.Sprintf("%07d", time.Now().UnixNano()%10000000)
	answers := map[string]string{}
	for _, q := range questionnaire.Questions {
		if q.Kind == "free_text" {
			answers[q.ID] = "통합 테스트 응답"
		} else {
			answers[q.ID] = questionnaire.ScaleLabels[3]
		}
	}
	submission := map[string]any{
		"name":        "통합테스트",
		"employee_id": employeeID,
		"department":  "경영지원실",
		"role":        role,
		"answers":     answers,
	}

	var submitResp struct {
		OK           bool   `json:"ok"`
		SubmissionID string `json:"submission_id"`
	}
	doPost(t, client, base+"/api/submissions", "", submission, &submitResp)
	if !submitResp.OK || submitResp.SubmissionID == "" {
		t.Fatalf("unexpected submit response: %+v", submitResp)
	}

	// Same employee number again must bounce with a conflict.
	dupPayload, _ := json.Marshal(submission)
	dupResp, err := client.Post(base+"/api/submissions", "application/json", bytes.NewReader(dupPayload))
	if err != nil {
		t.Fatalf("duplicate submit: %v", err)
	}
	defer dupResp.Body.Close()
	if dupResp.StatusCode != http.StatusConflict {
		body, _ := io.ReadAll(dupResp.Body)
		t.Fatalf("duplicate status %d body %s", dupResp.StatusCode, string(body))
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	doPost(t, client, base+"/api/admin/login", "", map[string]string{"secret": adminSecret()}, &loginResp)
	if loginResp.Token == "" {
		t.Fatalf("login did not return token")
	}

	var summary struct {
		Total int `json:"total"`
	}
	doGet(t, client, base+"/api/admin/summary", loginResp.Token, &summary)
	if summary.Total < 1 {
		t.Fatalf("summary total = %d, want at least 1", summary.Total)
	}

	req, err := http.NewRequest(http.MethodGet, base+"/api/admin/export", nil)
	if err != nil {
		t.Fatalf("new export request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	exportResp, err := client.Do(req)
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	defer exportResp.Body.Close()
	if exportResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(exportResp.Body)
		t.Fatalf("export status %d body %s", exportResp.StatusCode, string(body))
	}
	csvData, err := io.ReadAll(exportResp.Body)
	if err != nil {
		t.Fatalf("read export data: %v", err)
	}
	if !strings.Contains(string(csvData), employeeID) {
		t.Fatalf("export csv did not contain employee id %s", employeeID)
	}
}

func doPost(t *testing.T, client *http.Client, url, token string, body any, out any) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("http post %s failed: %v", url, err)
	}
	decodeJSON(t, resp, out)
}

func doGet(t *testing.T, client *http.Client, url, token string, out any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("http get %s failed: %v", url, err)
	}
	decodeJSON(t, resp, out)
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d for %s: %s", resp.StatusCode, resp.Request.URL, string(body))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode response from %s: %v", resp.Request.URL, err)
		}
	}
}
