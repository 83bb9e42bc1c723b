package http

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/geoin-git/kiln-monitor/internal/domain"
)

// Dashboard is the slice of pipeline state the API exposes to presentation
// collaborators.
type Dashboard interface {
	Records() []domain.KilnRecord
	Filtered() []domain.KilnRecord
	Summary() domain.Summary
	Criteria() domain.FilterCriteria
	SetCriteria(domain.FilterCriteria)
	ExportTable() [][]string
	Refresh(ctx context.Context) error
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, and metrics endpoints plus the dashboard
// JSON API.
type Server struct {
	httpServer *http.Server
	dash       Dashboard
	logger     *slog.Logger
}

// NewServer creates the API server.
func NewServer(addr string, dash Dashboard, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		dash:   dash,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/records", s.handleRecords)
	mux.HandleFunc("GET /api/records/filtered", s.handleFiltered)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/filters", s.handleGetFilters)
	mux.HandleFunc("PUT /api/filters", s.handlePutFilters)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	mux.HandleFunc("GET /api/export", s.handleExport)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.dash.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type recordsResponse struct {
	Count   int                 `json:"count"`
	Records []domain.KilnRecord `json:"records"`
}

func (s *Server) handleRecords(w http.ResponseWriter, _ *http.Request) {
	records := s.dash.Records()
	writeJSON(w, http.StatusOK, recordsResponse{Count: len(records), Records: records})
}

func (s *Server) handleFiltered(w http.ResponseWriter, _ *http.Request) {
	records := s.dash.Filtered()
	writeJSON(w, http.StatusOK, recordsResponse{Count: len(records), Records: records})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dash.Summary())
}

func (s *Server) handleGetFilters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dash.Criteria())
}

func (s *Server) handlePutFilters(w http.ResponseWriter, r *http.Request) {
	var criteria domain.FilterCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid criteria body"})
		return
	}

	switch criteria.Status {
	case "", domain.StatusAll, domain.StatusValid, domain.StatusExpired, domain.StatusProcessing:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "status must be one of all, valid, expired, processing",
		})
		return
	}

	s.dash.SetCriteria(criteria)
	writeJSON(w, http.StatusOK, map[string]int{"displayed": s.dash.Summary().Displayed})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.dash.Refresh(r.Context()); err != nil {
		kind := "transport"
		if errors.Is(err, domain.ErrFormat) {
			kind = "format"
		}
		s.logger.Error("manual refresh failed", "kind", kind, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"kind":    kind,
			"message": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, s.dash.Summary())
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="kilns_export.csv"`)

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(s.dash.ExportTable()); err != nil {
		// Headers are already sent; log and give up on this response.
		s.logger.Error("csv export failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
