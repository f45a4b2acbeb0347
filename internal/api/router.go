package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/seojoohe-netizen/ai-survey/internal/middleware"
	"github.com/seojoohe-netizen/ai-survey/internal/models"
	"github.com/seojoohe-netizen/ai-survey/internal/services"
	"github.com/seojoohe-netizen/ai-survey/internal/utils"
)

// Router wires the survey services onto HTTP. RequireAuth on the admin
// routes assumes middleware.WithAuth is applied to the whole mux.
type Router struct {
	submissions *services.SubmissionService
	reports     *services.ReportService
	auth        *services.AuthService
	window      *services.WindowGate
	logger      *slog.Logger
	now         func() time.Time
}

func NewRouter(submissions *services.SubmissionService, reports *services.ReportService, auth *services.AuthService, window *services.WindowGate, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		submissions: submissions,
		reports:     reports,
		auth:        auth,
		window:      window,
		logger:      logger,
		now:         func() time.Time { return time.Now() },
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/questionnaire", rt.handleQuestionnaire) // GET
	mux.HandleFunc("/api/submissions", rt.handleSubmit)          // POST
	mux.HandleFunc("/api/admin/login", rt.handleAdminLogin)      // POST
	mux.Handle("/api/admin/summary", middleware.RequireAuth(http.HandlerFunc(rt.handleAdminSummary)))
	mux.Handle("/api/admin/submissions", middleware.RequireAuth(http.HandlerFunc(rt.handleAdminSubmissions)))
	mux.Handle("/api/admin/export", middleware.RequireAuth(http.HandlerFunc(rt.handleAdminExport)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps a service error to one HTTP status and one
// localized user-visible message.
func (rt *Router) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	locale := middleware.LocaleFromContext(r.Context())
	se, ok := services.AsServiceError(err)
	if !ok {
		rt.logger.Error("unhandled error", "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal"})
		return
	}
	status := http.StatusBadRequest
	switch se.Code {
	case services.ErrorDuplicateIdentifier:
		status = http.StatusConflict
	case services.ErrorWindowClosed:
		status = http.StatusForbidden
	case services.ErrorUnauthorized:
		status = http.StatusUnauthorized
	case services.ErrorStorage:
		status = http.StatusServiceUnavailable
		rt.logger.Error("storage failure", "path", r.URL.Path, "err", se.Err)
	}
	msg := utils.T(locale, "reject."+string(se.Code))
	if msg == "reject."+string(se.Code) {
		msg = se.Message
	}
	writeJSON(w, status, map[string]any{"error": string(se.Code), "message": msg})
}

type windowView struct {
	State      services.WindowState `json:"state"`
	Accessible bool                 `json:"accessible"`
	Message    string               `json:"message,omitempty"`
}

func (rt *Router) windowView(locale string) (services.WindowStatus, windowView) {
	st := rt.window.Status(rt.now())
	view := windowView{State: st.State, Accessible: st.Accessible}
	switch {
	case st.State == services.WindowNotYetOpen:
		view.Message = utils.T(locale, "window.not_yet_open")
	case st.State == services.WindowClosed && st.Warn:
		view.Message = utils.T(locale, "window.closed_warn")
	case st.State == services.WindowClosed:
		view.Message = utils.T(locale, "window.closed")
	}
	return st, view
}

// GET /api/questionnaire?role=...
func (rt *Router) handleQuestionnaire(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	st, win := rt.windowView(locale)
	if !st.Accessible {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"form_active": false,
			"window":      win,
			"questions":   []models.Question{},
		})
		return
	}

	role := models.ParseRole(r.URL.Query().Get("role"))
	questions := services.Compose(role)
	resp := map[string]any{
		"role":          role,
		"form_active":   len(questions) > 0,
		"window":        win,
		"questions":     questions,
		"scale_labels":  services.ScaleLabels,
		"default_label": services.DefaultScaleLabel,
	}
	if len(questions) == 0 {
		resp["message"] = utils.T(locale, "form.inactive")
	}
	writeJSON(w, http.StatusOK, resp)
}

type submitPayload struct {
	Name       string            `json:"name"`
	EmployeeID string            `json:"employee_id"`
	Department string            `json:"department"`
	Role       string            `json:"role"`
	Answers    map[string]string `json:"answers"`
}

// POST /api/submissions
func (rt *Router) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var payload submitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid", "message": err.Error()})
		return
	}
	result, err := rt.submissions.Submit(r.Context(), services.SubmitRequest{
		Name:       payload.Name,
		EmployeeID: payload.EmployeeID,
		Department: payload.Department,
		Role:       models.ParseRole(payload.Role),
		Answers:    payload.Answers,
	})
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	writeJSON(w, http.StatusCreated, map[string]any{
		"ok":            true,
		"submission_id": result.SubmissionID,
		"submitted_at":  result.SubmittedAt.Format(time.RFC3339),
		"message":       utils.T(locale, "submit.ok"),
	})
}

// POST /api/admin/login
func (rt *Router) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var payload struct {
		Secret string `json:"secret"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid", "message": err.Error()})
		return
	}
	result, err := rt.auth.Login(payload.Secret)
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": result.Token})
}

// GET /api/admin/summary?format=text
func (rt *Router) handleAdminSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Query().Get("format") == "text" {
		text, err := rt.reports.SummaryText(r.Context())
		if err != nil {
			rt.writeServiceError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(text))
		return
	}
	summary, err := rt.reports.Summarize(r.Context())
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GET /api/admin/submissions
func (rt *Router) handleAdminSubmissions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	subs, err := rt.reports.Submissions(r.Context())
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": len(subs), "submissions": subs})
}

// GET /api/admin/export
func (rt *Router) handleAdminExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	result, err := rt.reports.ExportCSV(r.Context())
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+result.Filename)
	_, _ = w.Write(result.Data)
}
