// Package server serves MCP tool calls over HTTP.
package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/njchilds90/taylorpoly"
	"github.com/njchilds90/taylorpoly/mcp"
)

const (
	DefaultMaxBodyBytes = 1 << 20
	RequestIDHeader     = "X-Request-Id"
)

type Option func(*Server)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.log = logger
	}
}

func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.reg = reg
	}
}

func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// Server routes /tool, /schema, /health and /metrics.
type Server struct {
	log      zerolog.Logger
	reg      *prometheus.Registry
	maxBody  int64
	tools    *mcp.Handler
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	toolRuns *prometheus.CounterVec
}

func New(opts ...Option) (*Server, error) {
	s := &Server{
		log:     zerolog.Nop(),
		reg:     prometheus.NewRegistry(),
		maxBody: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tools = mcp.NewHandler(taylorpoly.WithLogger(s.log))

	s.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taylor",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})
	s.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "taylor",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 14),
	}, []string{"method", "path"})
	s.toolRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taylor",
		Name:      "tool_calls_total",
		Help:      "Tool calls by tool and outcome.",
	}, []string{"tool", "outcome"})

	for _, c := range []prometheus.Collector{s.requests, s.duration, s.toolRuns} {
		if err := s.reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return s, nil
}

// Handler returns the routed handler wrapped in request id, recovery and
// metrics middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tool", s.handleTool)
	mux.HandleFunc("/schema", s.handleSchema)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	return s.withRequestID(s.withMetrics(s.withRecover(mux)))
}

// HTTPServer wraps Handler in an http.Server with read and write timeouts.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var req mcp.ToolRequest
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if dec.More() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
		return
	}

	log := zerolog.Ctx(r.Context())
	resp := s.tools.Handle(req)
	outcome := "ok"
	if resp.Error != "" {
		outcome = "error"
		log.Info().Str("tool", req.Tool).Str("error", resp.Error).Msg("tool call failed")
	} else {
		log.Debug().Str("tool", req.Tool).Msg("tool call")
	}
	s.toolRuns.WithLabelValues(req.Tool, outcome).Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, mcp.MCPToolSpec())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		log := s.log.With().Str("request_id", id).Logger()
		next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context())))
	})
}

func (s *Server) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				zerolog.Ctx(r.Context()).Error().
					Interface("panic", rec).
					Str("stack", string(debug.Stack())).
					Str("path", r.URL.Path).
					Msg("panic in handler")
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		elapsed := float64(time.Since(start).Microseconds()) / 1000
		path := r.URL.Path
		if !routes[path] {
			path = "other"
		}
		s.requests.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		s.duration.WithLabelValues(r.Method, path).Observe(elapsed)
	})
}

// routes bounds the path label.
var routes = map[string]bool{"/tool": true, "/schema": true, "/health": true, "/metrics": true}
