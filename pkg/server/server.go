// Package server exposes requirement analysis over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/helmcode/reqcheck/pkg/analyzer"
	"github.com/helmcode/reqcheck/pkg/config"
	"github.com/helmcode/reqcheck/pkg/metrics"
	"github.com/helmcode/reqcheck/pkg/model"
	"github.com/helmcode/reqcheck/pkg/suggestions"
)

const maxBodyBytes = 1 << 20

// Server is the HTTP analysis server.
type Server struct {
	cfg      config.ServerConfig
	analyzer *analyzer.Analyzer
	logger   *zap.Logger
	version  string
	server   *http.Server
}

// NewServer creates a server that analyzes with a.
func NewServer(cfg config.ServerConfig, a *analyzer.Analyzer, logger *zap.Logger, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:      cfg,
		analyzer: a,
		logger:   logger,
		version:  version,
	}
	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the routed handler wrapped in middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /analyze/detailed", s.handleDetailed)
	mux.HandleFunc("POST /analyze/batch", s.handleBatch)
	mux.HandleFunc("POST /suggestions", s.handleSuggestions)
	mux.HandleFunc("POST /interrogate", s.handleGenerate(s.analyzer.Interrogate))
	mux.HandleFunc("POST /optimize", s.handleGenerate(s.analyzer.Optimize))

	var h http.Handler = mux
	h = withRecovery(s.logger, h)
	h = withLogging(s.logger, h)
	h = withCORS(h)
	return withRequestID(h)
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("server starting",
		zap.String("addr", s.cfg.Addr),
		zap.String("annotator", s.analyzer.Annotator().Name()),
		zap.Bool("llm", s.analyzer.HasLLM()),
	)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type textRequest struct {
	Text string `json:"text"`
}

type batchRequest struct {
	Texts []interface{} `json:"texts"`
}

type batchResponse struct {
	Results []interface{}        `json:"results"`
	Total   int                  `json:"total"`
	Summary metrics.BatchSummary `json:"summary"`
}

type suggestionsRequest struct {
	Issues model.IssueList `json:"issues"`
}

type suggestionsResponse struct {
	Suggestions []string            `json:"suggestions"`
	Grouped     suggestions.Grouped `json:"grouped"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Requirements Quality Analyzer API",
		"version": s.version,
		"health":  "/health",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	llmStatus := "unavailable"
	if s.analyzer.HasLLM() {
		llmStatus = "available"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"components": map[string]string{
			"nlp_processor":        s.analyzer.Annotator().Name(),
			"scorer":               "available",
			"suggestion_generator": "available",
			"llm":                  llmStatus,
		},
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readText(w, r)
	if !ok {
		return
	}
	result, err := s.analyzer.AnalyzeText(r.Context(), text)
	if err != nil {
		s.writeAnalysisError(w, r, err)
		return
	}
	s.logger.Info("analysis complete",
		zap.String("level", string(result.ReadinessLevel)),
		zap.String("request_id", RequestID(r.Context())),
	)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDetailed(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readText(w, r)
	if !ok {
		return
	}
	result, err := s.analyzer.AnalyzeDetailed(r.Context(), text)
	if err != nil {
		s.writeAnalysisError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decode(w, r, &req) {
		return
	}

	// non-string entries are analyzed as blank text and reported as invalid;
	// over-long entries are skipped the same way and reported by length
	texts := make([]string, len(req.Texts))
	tooLong := make(map[int]bool)
	for i, v := range req.Texts {
		str, ok := v.(string)
		if !ok {
			continue
		}
		if utf8.RuneCountInString(str) > s.cfg.MaxTextLength {
			tooLong[i] = true
			continue
		}
		texts[i] = str
	}

	items, err := s.analyzer.AnalyzeBatch(r.Context(), texts)
	if err != nil {
		s.writeAnalysisError(w, r, err)
		return
	}
	for i := range tooLong {
		items[i] = model.BatchItem{Index: i, Error: s.lengthError()}
	}

	results := make([]interface{}, len(items))
	for i, item := range items {
		if item.Failed() {
			results[i] = map[string]string{"error": item.Error}
			continue
		}
		results[i] = item.Result
	}
	writeJSON(w, http.StatusOK, batchResponse{
		Results: results,
		Total:   len(results),
		Summary: metrics.Summarize(items),
	})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var req suggestionsRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{
		Suggestions: s.analyzer.GenerateSuggestions(req.Issues),
		Grouped:     suggestions.GenerateGrouped(req.Issues),
	})
}

func (s *Server) handleGenerate(run func(context.Context, string) (*model.Generated, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text, ok := s.readText(w, r)
		if !ok {
			return
		}
		out, err := run(r.Context(), text)
		if err != nil {
			s.writeAnalysisError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// readText decodes a {"text": ...} body and enforces the length limit.
func (s *Server) readText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req textRequest
	if !decode(w, r, &req) {
		return "", false
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(w, http.StatusBadRequest, "Text cannot be empty")
		return "", false
	}
	if n := utf8.RuneCountInString(req.Text); n > s.cfg.MaxTextLength {
		writeError(w, http.StatusBadRequest, s.lengthError())
		return "", false
	}
	return text, true
}

func (s *Server) lengthError() string {
	return fmt.Sprintf("Text exceeds maximum length of %d characters", s.cfg.MaxTextLength)
}

func (s *Server) writeAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, analyzer.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Text cannot be empty")
	case errors.Is(err, analyzer.ErrBatchEmpty):
		writeError(w, http.StatusBadRequest, "No texts provided for batch analysis")
	case errors.Is(err, analyzer.ErrBatchTooLarge):
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Batch size limited to %d texts", s.analyzer.MaxBatch()))
	case errors.Is(err, analyzer.ErrLLMUnavailable):
		writeError(w, http.StatusServiceUnavailable, "No language model configured")
	default:
		s.logger.Error("analysis failed",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Analysis failed: %v", err))
	}
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
