package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/propascan/propascan/internal/extract"
	"github.com/propascan/propascan/internal/model"
)

// Analyzer produces a propaganda report for an analysis request.
type Analyzer interface {
	Analyze(ctx context.Context, url, content string) (*model.PropagandaReport, error)
}

// Server exposes the analysis pipeline over HTTP. The browser extension is
// the primary client, so CORS is open and the surface is two routes: a
// health probe and the analyze endpoint.
type Server struct {
	httpServer      *http.Server
	analyzer        Analyzer
	shutdownTimeout time.Duration
}

type analyzeRequest struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// New creates a server around the given analyzer.
func New(cfg model.ServerConfig, analyzer Analyzer) *Server {
	s := &Server{
		analyzer:        analyzer,
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	router := mux.NewRouter()
	router.Use(loggingMiddleware, corsMiddleware)
	router.HandleFunc("/", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost, http.MethodOptions)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// Handler returns the root HTTP handler (used in tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	log.Print("shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "healthy",
		Message: "Server is running",
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing required fields"})
		return
	}

	if req.URL == "" && req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing required fields"})
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), req.URL, req.Content)
	if err != nil {
		if errors.Is(err, extract.ErrNoContent) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Failed to extract article content"})
			return
		}
		log.Printf("analyze %s: %v", req.URL, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}
