// Package webserver provides the web frontend HTTP server implementation
package webserver

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/recipe"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/config"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/monitoring"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/ports/inbound"
	"github.com/Janay-Rawal/recipe-ai-agent/pkg/healthcheck"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// WebServer represents the web frontend HTTP server
type WebServer struct {
	config        *config.Config
	logger        *zap.Logger
	server        *http.Server
	router        *chi.Mux
	templates     *template.Template
	pantryService inbound.PantryService
	recipeService inbound.RecipeService
	metrics       *monitoring.MetricsCollector
	healthCheck   *healthcheck.HealthCheck
	state         *runState
}

// runState carries the latest generation outcome across the POST-redirect-GET
// hop, standing in for a per-user session in this single-user app. Applying
// usage consumes against the run stored here.
type runState struct {
	mu           sync.Mutex
	lastRun      *inbound.GenerationResult
	applied      *recipe.UsageResult
	appliedTitle string
}

func (st *runState) setRun(result *inbound.GenerationResult) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.lastRun = result
	st.applied = nil
	st.appliedTitle = ""
}

func (st *runState) setApplied(result *recipe.UsageResult, title string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.applied = result
	st.appliedTitle = title
}

func (st *runState) snapshot() (*inbound.GenerationResult, *recipe.UsageResult, string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.lastRun, st.applied, st.appliedTitle
}

// NewWebServer creates a new web frontend server instance
func NewWebServer(
	cfg *config.Config,
	log *zap.Logger,
	pantryService inbound.PantryService,
	recipeService inbound.RecipeService,
	metrics *monitoring.MetricsCollector,
	healthCheck *healthcheck.HealthCheck,
) (*WebServer, error) {
	templates, err := parseTemplates()
	if err != nil {
		log.Error("Failed to parse templates", zap.Error(err))
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	server := &WebServer{
		config:        cfg,
		logger:        log,
		templates:     templates,
		pantryService: pantryService,
		recipeService: recipeService,
		metrics:       metrics,
		healthCheck:   healthCheck,
		state:         &runState{},
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server, nil
}

// setupRoutes configures the web frontend routes
func (s *WebServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if s.config.Server.EnableCompression {
		r.Use(middleware.Compress(5))
	}
	if s.config.Monitoring.EnableMetrics {
		r.Use(s.metrics.HTTPMiddleware)
	}

	// Static files
	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	// Health check endpoints
	r.Get(s.config.Monitoring.HealthCheckPath, s.healthCheck.Handler())
	r.Get("/ready", s.healthCheck.ReadinessHandler())
	r.Get("/live", s.healthCheck.LivenessHandler())
	if s.config.Monitoring.EnableMetrics {
		r.Handle(s.config.Monitoring.MetricsPath, s.metrics.Handler())
	}

	// Pages
	r.Get("/", s.handleHome)
	r.Get("/pantry", s.handlePantryPage)
	r.Post("/pantry", s.handlePantryAdd)
	r.Post("/pantry/bulk", s.handlePantryBulkAdd)
	r.Post("/pantry/{id}/delete", s.handlePantryDelete)
	r.Get("/recipes", s.handleRecipesPage)
	r.Post("/recipes/generate", s.handleRecipeGenerate)
	r.Post("/recipes/apply", s.handleApplyUsage)
	r.Get("/history", s.handleHistoryPage)
	r.Get("/history/{id}", s.handleHistoryDetail)

	return r
}

// Start starts the web frontend HTTP server
func (s *WebServer) Start() error {
	s.logger.Info("Starting web server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the web server
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down web server...")
	return s.server.Shutdown(ctx)
}

// Router exposes the configured handler, mainly for tests.
func (s *WebServer) Router() http.Handler {
	return s.router
}

// requestLogger logs each request through zap with the fields the access
// log dashboards key on.
func (s *WebServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("remote_addr", r.RemoteAddr),
		)
	})
}

// parseTemplates parses all HTML templates from the embedded filesystem
func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"formatDateTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
		"formatExpiry": func(t *time.Time) string {
			if t == nil {
				return "no expiry"
			}
			return t.Format("Jan 2, 2006")
		},
		"timeAgo": func(t time.Time) string {
			duration := time.Since(t)
			if duration < time.Minute {
				return "just now"
			} else if duration < time.Hour {
				return fmt.Sprintf("%d minutes ago", int(duration.Minutes()))
			} else if duration < 24*time.Hour {
				return fmt.Sprintf("%d hours ago", int(duration.Hours()))
			} else if duration < 7*24*time.Hour {
				return fmt.Sprintf("%d days ago", int(duration.Hours()/24))
			}
			return t.Format("Jan 2")
		},
		"qty": func(q float64) string {
			return strconv.FormatFloat(q, 'f', -1, 64)
		},
		"truncate": func(s string, n int) string {
			if len(s) <= n {
				return s
			}
			return s[:n] + "..."
		},
		"inc": func(i int) int {
			return i + 1
		},
	}

	tmpl := template.New("").Funcs(funcMap)

	err := fs.WalkDir(templatesFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := templatesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", path, err)
		}

		// Template name is the path relative to templates/ without extension
		name := strings.TrimPrefix(path, "templates/")
		name = strings.TrimSuffix(name, ".html")

		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", name, err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk templates: %w", err)
	}

	return tmpl, nil
}

// renderTemplate executes a named page template with shared defaults filled in.
func (s *WebServer) renderTemplate(w http.ResponseWriter, name string, data map[string]interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if data == nil {
		data = map[string]interface{}{}
	}
	if data["Title"] == nil {
		data["Title"] = s.config.App.Name
	}
	if data["Version"] == nil {
		data["Version"] = s.config.App.Version
	}
	if data["Active"] == nil {
		data["Active"] = ""
	}

	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("Failed to execute template",
			zap.String("template", name),
			zap.Error(err))
		fmt.Fprintf(w, "<!DOCTYPE html><html><body><h1>%s</h1><p>Page failed to render.</p></body></html>", data["Title"])
	}
}

// renderErrorPage logs the failure and shows the error template.
func (s *WebServer) renderErrorPage(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		s.logger.Error(message, zap.Error(err))
	}
	w.WriteHeader(status)
	s.renderTemplate(w, "error", map[string]interface{}{
		"Title":   "Error",
		"Message": message,
	})
}
