package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lexdraft/lexdraft/internal/audit"
	"github.com/lexdraft/lexdraft/internal/db"
	"github.com/lexdraft/lexdraft/internal/document"
	"github.com/lexdraft/lexdraft/internal/export"
	"github.com/lexdraft/lexdraft/internal/research"
	"github.com/lexdraft/lexdraft/internal/signature"
	"github.com/lexdraft/lexdraft/internal/templates"
)

// Config holds server configuration.
type Config struct {
	Port     int
	PageSize export.PageSize
	AllowAll bool // allow all CORS origins (dev mode)
}

// Deps carries the stores and services the API routes need. Optional
// services (signature client, clause index) may be nil; their routes
// degrade gracefully.
type Deps struct {
	DB              *db.DB
	Templates       *templates.Store
	Documents       *document.Store
	Generator       *document.Generator
	Audit           *audit.Store
	Signatures      *signature.Store
	SignatureClient *signature.Client
	Clauses         *research.ClauseStore
	ClauseIndex     *research.Index
}

// Server is the lexdraft HTTP API server.
type Server struct {
	cfg        Config
	deps       Deps
	router     chi.Router
	httpServer *http.Server
}

// New wires the router with all feature routes.
func New(cfg Config, deps Deps) *Server {
	s := &Server{cfg: cfg, deps: deps}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	templates.RegisterRoutes(r, s.deps.Templates)
	document.RegisterRoutes(r, s.deps.Documents, s.deps.Generator)
	export.RegisterRoutes(r, s.deps.Documents, s.deps.Audit, s.cfg.PageSize)
	signature.RegisterRoutes(r, s.deps.Signatures, s.deps.Documents, s.deps.SignatureClient, s.deps.Audit)
	research.RegisterRoutes(r, s.deps.Clauses, s.deps.ClauseIndex)
	audit.RegisterRoutes(r, s.deps.Audit)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("lexdraft server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
