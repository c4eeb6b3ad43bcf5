package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ceo575/flowmapga/internal/audit"
	auth "github.com/ceo575/flowmapga/internal/auth/middleware"
	"github.com/ceo575/flowmapga/internal/config"
	"github.com/ceo575/flowmapga/internal/docx"
	"github.com/ceo575/flowmapga/internal/exam"
	"github.com/ceo575/flowmapga/internal/rbac"
)

type Deps struct {
	Audit audit.Recorder // optional
	Auth  *auth.AuthService
	Creds auth.Credentials
}

// NewRouter wires the parser API. Auth only guards routes when cfg.EnableAuth is set.
func NewRouter(cfg config.Config, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method Not Allowed"})
	})

	r.Get("/health", HealthHandler)

	parse := ParseDocxHandler(ParseDeps{
		Options: exam.ParseOptions{
			Markers: exam.MarkersFor(cfg.MarkerLocale),
			Limits:  docx.Limits{MaxMarkupBytes: cfg.MaxMarkupBytes, Timeout: cfg.ExtractTimeout},
		},
		MaxUploadBytes: cfg.MaxUploadBytes,
		Audit:          deps.Audit,
	})

	r.Group(func(pr chi.Router) {
		if cfg.EnableAuth && deps.Auth != nil {
			pr.Use(auth.JWTMiddleware(deps.Auth))
			pr.Use(rbac.Require(rbac.PermExamParse))
		}
		pr.Post("/api/exams/parse-docx", parse)
	})

	if deps.Audit != nil {
		r.Group(func(pr chi.Router) {
			if cfg.EnableAuth && deps.Auth != nil {
				pr.Use(auth.JWTMiddleware(deps.Auth))
				pr.Use(rbac.Require(rbac.PermParseLogView))
			}
			pr.Get("/api/exams/parse-log", ParseLogHandler(deps.Audit))
		})
	}

	if cfg.EnableAuth && deps.Auth != nil {
		r.Post("/auth/login", auth.LoginHandler(deps.Auth, deps.Creds))
	}
	return r
}
