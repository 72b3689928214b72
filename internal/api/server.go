// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"

	"scriptforge/internal/common"
	"scriptforge/internal/config"
	"scriptforge/internal/fault"
	"scriptforge/internal/kb"
	"scriptforge/internal/knowledge"
	"scriptforge/internal/llm"
	"scriptforge/internal/session"
	"scriptforge/internal/transcript"
)

const sessionHeader = "X-Session-ID"

const defaultKnowledgeBudget = 16000

type Server struct {
	router    chi.Router
	registry  *kb.Registry
	knowledge *knowledge.Store
	resolver  *config.Resolver
	sessions  *session.Manager
	fetcher   *transcript.Fetcher

	// newProvider builds the generation provider for a session-held key.
	// Tests swap it for a stub.
	newProvider func(sessionKey string) llm.Provider

	knowledgeBudget int
}

// Config controls server-wide behavior.
type Config struct {
	KnowledgeBudget int
	SessionTTL      time.Duration
}

// DefaultConfig returns the standard configuration, honoring the
// SCRIPTFORGE_KNOWLEDGE_BUDGET environment override. A zero budget disables
// the aggregation bound.
func DefaultConfig() Config {
	cfg := Config{KnowledgeBudget: defaultKnowledgeBudget}
	if raw := strings.TrimSpace(os.Getenv("SCRIPTFORGE_KNOWLEDGE_BUDGET")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			cfg.KnowledgeBudget = parsed
		} else {
			common.Logger().Warn("api: invalid SCRIPTFORGE_KNOWLEDGE_BUDGET, using default", "value", raw)
		}
	}
	return cfg
}

func NewServer(registry *kb.Registry, store *knowledge.Store, resolver *config.Resolver, fetcher *transcript.Fetcher, cfg Config) (*Server, error) {
	logger := common.Logger()
	if registry == nil {
		return nil, fmt.Errorf("registry required")
	}
	if store == nil {
		return nil, fmt.Errorf("knowledge store required")
	}
	if resolver == nil {
		resolver = config.NewResolver()
	}
	if fetcher == nil {
		fetcher = transcript.NewFetcher(0)
	}
	srv := &Server{
		router:    chi.NewRouter(),
		registry:  registry,
		knowledge: store,
		resolver:  resolver,
		sessions:  session.NewManager(cfg.SessionTTL),
		fetcher:   fetcher,
		newProvider: func(sessionKey string) llm.Provider {
			return llm.NewProvider(resolver, sessionKey)
		},
		knowledgeBudget: cfg.KnowledgeBudget,
	}
	srv.routes()
	logger.Info("api: server ready", "knowledge_budget", cfg.KnowledgeBudget, "remote", store.RemoteName())
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close tears down the session manager.
func (s *Server) Close() {
	s.sessions.Close()
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Get("/v1/logs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"entries": common.LogEntries()})
	})

	s.router.Post("/v1/hooks", s.handleHooks)
	s.router.Post("/v1/hooks/compare", s.handleCompare)
	s.router.Post("/v1/script", s.handleScript)
	s.router.Post("/v1/analyze", s.handleAnalyze)
	s.router.Post("/v1/titles", s.handleTitles)
	s.router.Post("/v1/thumbnails", s.handleThumbnails)

	s.router.Get("/v1/knowledge", s.handleKnowledgeView)
	s.router.Patch("/v1/knowledge/records/{id}", s.handleStaticToggle)
	s.router.Get("/v1/knowledge/sources", s.handleSourcesList)
	s.router.Post("/v1/knowledge/sources", s.handleSourceCreate)
	s.router.Patch("/v1/knowledge/sources/{id}", s.handleSourceUpdate)
	s.router.Delete("/v1/knowledge/sources/{id}", s.handleSourceDelete)
	s.router.Post("/v1/knowledge/reload", s.handleSourcesReload)
	s.router.Post("/v1/knowledge/extract", s.handleExtract)
	s.router.Get("/v1/knowledge/export", s.handleExport)
	s.router.Post("/v1/knowledge/import", s.handleImport)

	s.router.Get("/v1/history", s.handleHistoryList)
	s.router.Delete("/v1/history", s.handleHistoryClear)
	s.router.Get("/v1/history/download", s.handleHistoryDownload)

	s.router.Post("/v1/workshop", s.handleWorkshop)
	s.router.Get("/v1/workshop", s.handleWorkshopView)
	s.router.Post("/v1/workshop/reset", s.handleWorkshopReset)

	s.router.Post("/v1/session/key", s.handleSessionKey)
	s.router.Get("/v1/session", s.handleSessionStatus)
}

// session resolves (or mints) the caller's session and echoes its id.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	sess := s.sessions.Acquire(r.Header.Get(sessionHeader))
	w.Header().Set(sessionHeader, sess.ID)
	return sess
}

// knowledgeBlock aggregates the session's effective knowledge view.
func (s *Server) knowledgeBlock(sess *session.Session, includeFullText bool) string {
	return knowledge.Aggregate(s.registry.Records(), s.knowledge.Active(), knowledge.AggregateOptions{
		IncludeFullText: includeFullText,
		Budget:          s.knowledgeBudget,
		StaticDisabled:  sess.StaticDisabled(),
	})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fault.New(fault.KindValidation, "invalid request body: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "kind", fault.KindOf(err).String(), "error", err)
	} else {
		logger.Warn("request failed", "status", status, "kind", fault.KindOf(err).String(), "error", err)
	}
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"kind":  fault.KindOf(err).String(),
	})
}

func statusFor(err error) int {
	switch fault.KindOf(err) {
	case fault.KindValidation:
		return http.StatusBadRequest
	case fault.KindConfiguration:
		return http.StatusUnauthorized
	case fault.KindTransport:
		return http.StatusBadGateway
	case fault.KindRemoteStore:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
