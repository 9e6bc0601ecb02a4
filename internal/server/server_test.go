package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/taylorpoly/mcp"
)

func newTestServer(t *testing.T, logs *bytes.Buffer, opts ...Option) *Server {
	t.Helper()
	opts = append([]Option{WithLogger(zerolog.New(logs).Level(zerolog.DebugLevel))}, opts...)
	s, err := New(opts...)
	require.NoError(t, err)
	return s
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/tool", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTool(t *testing.T) {
	var logs bytes.Buffer
	s := newTestServer(t, &logs)
	h := s.Handler()

	rec := post(h, `{"tool":"partial_sums","params":{"expr_text":"exp(t)","var":"t","order":2}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	var resp mcp.ToolResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Error)
	assert.Equal(t, "t + 1/2*t^2 + 1", resp.String)

	assert.Equal(t, 1.0, counterValue(t, s.toolRuns.WithLabelValues("partial_sums", "ok")))
	assert.Equal(t, 1.0, counterValue(t, s.requests.WithLabelValues(http.MethodPost, "/tool", "200")))
	assert.Contains(t, logs.String(), `"request_id"`)
	assert.Contains(t, logs.String(), `"derivative"`)
}

func TestTool_ToolError(t *testing.T) {
	var logs bytes.Buffer
	s := newTestServer(t, &logs)
	rec := post(s.Handler(), `{"tool":"taylor_terms","params":{"expr_text":"t","var":"t","order":-1}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "InvalidOrder")
	assert.Equal(t, 1.0, counterValue(t, s.toolRuns.WithLabelValues("taylor_terms", "error")))
}

func TestTool_BadRequests(t *testing.T) {
	var logs bytes.Buffer
	s := newTestServer(t, &logs, WithMaxBodyBytes(64))
	h := s.Handler()

	for _, body := range []string{
		`{"tool":`,
		`{"tool":"parse","extra":1}`,
		`{"tool":"parse"} {}`,
		`{"tool":"parse","params":{"text":"` + strings.Repeat("x", 100) + `"}}`,
	} {
		rec := post(h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	req := httptest.NewRequest(http.MethodGet, "/tool", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDPassthrough(t *testing.T) {
	var logs bytes.Buffer
	h := newTestServer(t, &logs).Handler()
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestSchemaAndMetrics(t *testing.T) {
	var logs bytes.Buffer
	reg := prometheus.NewRegistry()
	h := newTestServer(t, &logs, WithRegistry(reg)).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/schema", nil))
	assert.Contains(t, rec.Body.String(), `"taylor_terms"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `taylor_http_requests_total{method="GET",path="/schema",status="200"} 1`)
	assert.Contains(t, body, `path="other",status="404"`)
}

func TestDuplicateRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(WithRegistry(reg))
	require.NoError(t, err)
	_, err = New(WithRegistry(reg))
	assert.Error(t, err)
}

func TestRecover(t *testing.T) {
	var logs bytes.Buffer
	s := newTestServer(t, &logs)
	h := s.withRequestID(s.withRecover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tool", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "boom")
}
