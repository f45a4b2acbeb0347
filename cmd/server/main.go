package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/seojoohe-netizen/ai-survey/internal/api"
	"github.com/seojoohe-netizen/ai-survey/internal/config"
	"github.com/seojoohe-netizen/ai-survey/internal/middleware"
	"github.com/seojoohe-netizen/ai-survey/internal/services"
	"github.com/seojoohe-netizen/ai-survey/internal/store"
	"github.com/seojoohe-netizen/ai-survey/internal/utils"
)

func openStore(ctx context.Context, cfg config.StoreConfig) (store.SubmissionStore, error) {
	switch cfg.Driver {
	case "csv":
		path := cfg.Path
		if path == "" {
			path = "survey_data.csv"
		}
		return store.NewCSVStore(path), nil
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "survey_data.db"
		}
		return store.NewSQLiteStore(path)
	case "postgres":
		return store.NewPostgresStore(ctx, cfg.DSN)
	default:
		return store.NewMemoryStore(), nil
	}
}

func main() {
	// Optional .env for local runs; real deployments set the variables.
	_ = godotenv.Load()

	cfg, err := config.Load("")
	logger := utils.NewLogger(utils.SafeEnv("SURVEY_LOG_LEVEL", "info"))
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}
	logger = utils.NewLogger(cfg.LogLevel)

	ctx := context.Background()
	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		logger.Error("open store", "driver", cfg.Store.Driver, "err", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("close store", "err", cerr)
		}
	}()

	window := &services.WindowGate{
		Mode:     services.WindowMode(cfg.Window.Enforcement),
		OpensAt:  cfg.Window.OpensTime,
		ClosesAt: cfg.Window.ClosesTime,
	}
	submissions := services.NewSubmissionService(st, window, services.SubmissionPolicy{
		IdentifierLength:  cfg.IdentifierLength,
		RequireAllAnswers: cfg.RequireAllOrdinalAnswers,
	})
	reports := services.NewReportService(st)
	auth := services.NewAuthService(cfg.AdminSecret, middleware.SignToken)

	commit := os.Getenv("SURVEY_COMMIT")
	buildTime := os.Getenv("SURVEY_BUILD_TIME")

	mux := http.NewServeMux()
	api.NewRouter(submissions, reports, auth, window, logger).Register(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		locale := middleware.LocaleFromContext(r.Context())
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"name":   "AI Literacy Survey API",
			"locale": locale,
			"msg":    utils.T(locale, "health.ok"),
			"window": window.Status(time.Now()).State,
		})
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	// Serve the form frontend when a static build is mounted.
	if cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	handler := middleware.SecureHeaders(
		middleware.NoStore(
			middleware.CORS(
				middleware.Locale(cfg.Locales, cfg.DefaultLocale)(
					middleware.WithAuth(mux)))))

	logger.Info("survey server listening", "addr", cfg.Addr, "store", cfg.Store.Driver, "window", cfg.Window.Enforcement)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
