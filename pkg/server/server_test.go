package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/helmcode/reqcheck/pkg/analyzer"
	"github.com/helmcode/reqcheck/pkg/config"
	"github.com/helmcode/reqcheck/pkg/llm"
	"github.com/helmcode/reqcheck/pkg/model"
	"github.com/helmcode/reqcheck/pkg/nlp"
)

type fakeLLM struct{}

func (fakeLLM) Chat(_ context.Context, req llm.Request) (string, error) {
	return "1. What is the expected load time?", nil
}

func (fakeLLM) Name() string { return "fake" }

func newTestServer(t *testing.T, opts ...analyzer.Option) (http.Handler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	a := analyzer.New(append([]analyzer.Option{analyzer.WithAnnotator(nlp.NewBasicAnnotator())}, opts...)...)
	s := NewServer(config.DefaultConfig().Server, a, zap.New(core), "v1.2.3")
	return s.Handler(), logs
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["detail"]
}

func TestRootAndHealth(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":"v1.2.3"`)

	rec = do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var health struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "basic", health.Components["nlp_processor"])
	assert.Equal(t, "unavailable", health.Components["llm"])

	rec = do(t, h, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyze(t *testing.T) {
	h, logs := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/analyze", `{"text": "The system should load fast and handle errors properly"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	var res model.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 87.8, res.AmbiguityScore)
	assert.GreaterOrEqual(t, len(res.Suggestions), 2)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/analyze", entries[0].ContextMap()["path"])
	assert.EqualValues(t, http.StatusOK, entries[0].ContextMap()["status"])
}

func TestAnalyze_BadRequests(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/analyze", `{"text": "   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Text cannot be empty", detail(t, rec))

	rec = do(t, h, http.MethodPost, "/analyze", `{"text": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, detail(t, rec), "Invalid request body")

	long, _ := json.Marshal(map[string]string{"text": strings.Repeat("a", 10001)})
	rec = do(t, h, http.MethodPost, "/analyze", string(long))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Text exceeds maximum length of 10000 characters", detail(t, rec))

	rec = do(t, h, http.MethodGet, "/analyze", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAnalyzeDetailed(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/analyze/detailed", `{"text": "Open the page. Click save."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Contains(t, res, "readiness_score")
	assert.Contains(t, res, "breakdown")
	pre := res["preprocessing"].(map[string]interface{})
	assert.Len(t, pre["sentences"], 2)
}

func TestAnalyzeBatch(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/analyze/batch", `{"texts": ["Open the page", "", 42]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Results []map[string]interface{} `json:"results"`
		Total   int                      `json:"total"`
		Summary struct {
			Analyzed int `json:"analyzed"`
			Failed   int `json:"failed"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 3, res.Total)
	assert.Contains(t, res.Results[0], "readiness_score")
	assert.Equal(t, map[string]interface{}{"error": "Invalid text provided"}, res.Results[1])
	assert.Equal(t, map[string]interface{}{"error": "Invalid text provided"}, res.Results[2])
	assert.Equal(t, 1, res.Summary.Analyzed)
	assert.Equal(t, 2, res.Summary.Failed)
}

func TestAnalyzeBatch_OverLengthItem(t *testing.T) {
	h, _ := newTestServer(t)

	body, _ := json.Marshal(map[string][]string{
		"texts": {"Open the page", strings.Repeat("a", 10001)},
	})
	rec := do(t, h, http.MethodPost, "/analyze/batch", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Results []map[string]interface{} `json:"results"`
		Summary struct {
			Analyzed int `json:"analyzed"`
			Failed   int `json:"failed"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Results, 2)
	assert.Contains(t, res.Results[0], "readiness_score")
	assert.Equal(t, map[string]interface{}{"error": "Text exceeds maximum length of 10000 characters"}, res.Results[1])
	assert.Equal(t, 1, res.Summary.Analyzed)
	assert.Equal(t, 1, res.Summary.Failed)
}

func TestAnalyzeBatch_Limits(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/analyze/batch", `{"texts": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No texts provided for batch analysis", detail(t, rec))

	texts := make([]string, 51)
	for i := range texts {
		texts[i] = "Open the page"
	}
	body, _ := json.Marshal(map[string][]string{"texts": texts})
	rec = do(t, h, http.MethodPost, "/analyze/batch", string(body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Batch size limited to 50 texts", detail(t, rec))
}

func TestSuggestions(t *testing.T) {
	h, _ := newTestServer(t)

	body := `{"issues": [
		{"kind": "ambiguity", "type": "Subjective term", "text": "fast", "message": ""},
		{"kind": "assumption", "type": "Action assumption", "category": "State", "text": "open", "message": "", "assumption": "User is logged in"}
	]}`
	rec := do(t, h, http.MethodPost, "/suggestions", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Suggestions []string `json:"suggestions"`
		Grouped     struct {
			Ambiguity   []string `json:"ambiguity"`
			Assumptions []string `json:"assumptions"`
		} `json:"grouped"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []string{
		"What is the acceptable response time in seconds?",
		"Should the user be pre-authenticated for this test?",
	}, res.Suggestions)
	assert.Len(t, res.Grouped.Assumptions, 1)
}

func TestInterrogateAndOptimize(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/interrogate", `{"text": "Load fast"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	h, _ = newTestServer(t, analyzer.WithLLM(fakeLLM{}))
	for _, path := range []string{"/interrogate", "/optimize"} {
		rec = do(t, h, http.MethodPost, path, `{"text": "Load fast"}`)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var out model.Generated
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, "fake", out.Provider)
		assert.Equal(t, "1. What is the expected load time?", out.Output)
		require.NotNil(t, out.Analysis)
	}
}

func TestMiddleware(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	h := withRequestID(withRecovery(logger, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", bytes.NewReader(nil)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, logs.FilterMessage("handler panicked").Len())
}

func TestStartShutdown(t *testing.T) {
	cfg := config.DefaultConfig().Server
	cfg.Addr = "127.0.0.1:0"
	s := NewServer(cfg, analyzer.New(analyzer.WithAnnotator(nlp.NewBasicAnnotator())), nil, "test")

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	require.NoError(t, s.Shutdown(context.Background()))
	assert.NoError(t, <-errCh)
}
