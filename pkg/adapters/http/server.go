package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"

	"github.com/ersincine/automata"
	"github.com/ersincine/automata/pkg/cfg"
	"github.com/ersincine/automata/pkg/npda"
	"github.com/ersincine/automata/pkg/ports"
	"github.com/ersincine/automata/pkg/selftest"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Engine defines the interface for the workbench query core.
type Engine interface {
	Name() string
	Kinds() []automata.Kind
	Fingerprint(kind automata.Kind) string
	Suite(kind automata.Kind) (selftest.Suite, bool)
	Derive(ctx context.Context, target string, opts ...cfg.DeriveOption) ([]string, error)
	Accepts(ctx context.Context, kind automata.Kind, input string) (bool, error)
	SelfTest(ctx context.Context, kind automata.Kind) (selftest.Report, error)
}

// Ensure the workbench satisfies the interface
var _ Engine = (*automata.Workbench)(nil)

// Server answers workbench queries over HTTP.
type Server struct {
	engine     Engine
	cache      ports.QueryCache
	logger     *slog.Logger
	timeout    time.Duration
	metrics    *metrics
	apiVersion string
}

type Option func(*Server)

// WithCache shares membership verdicts between requests (and between
// replicas, when the cache is Redis).
func WithCache(cache ports.QueryCache) Option {
	return func(s *Server) { s.cache = cache }
}

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithTimeout bounds each query request with its own deadline. An
// expired query answers 504.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		engine:     engine,
		logger:     slog.Default(),
		metrics:    newMetrics(),
		apiVersion: "unknown",
	}
	for _, opt := range opts {
		opt(server)
	}

	if doc, err := openapi3.NewLoader().LoadFromData(openapiSpec); err != nil {
		server.logger.Warn("Failed to parse embedded OpenAPI document", "error", err)
	} else if doc.Info != nil {
		server.apiVersion = doc.Info.Version
	}

	r := chi.NewRouter()

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/systems", server.GetSystems)
	r.Get("/metrics", server.metrics.handler().ServeHTTP)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Post("/cfg/derive", server.Derive)
	r.Post("/{kind}/accepts", server.Accepts)
	r.Post("/{kind}/selftest", server.SelfTest)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Automata API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// DeriveRequest is the body of POST /cfg/derive.
type DeriveRequest struct {
	Input string `json:"input"`
	Limit *int   `json:"limit,omitempty"`
}

// DeriveResponse carries the raw and the loop-compressed derivation.
type DeriveResponse struct {
	Member     bool     `json:"member"`
	Derivation []string `json:"derivation"`
	Compressed []string `json:"compressed"`
}

// AcceptsRequest is the body of POST /{kind}/accepts.
type AcceptsRequest struct {
	Input string `json:"input"`
}

// AcceptsResponse reports a membership verdict. Cached marks verdicts
// answered from the query cache without running the engine.
type AcceptsResponse struct {
	Member bool `json:"member"`
	Cached bool `json:"cached"`
}

// MismatchInfo is one self-test discrepancy.
type MismatchInfo struct {
	Input      string `json:"input"`
	WantMember bool   `json:"want_member"`
	GotMember  bool   `json:"got_member"`
}

// SelfTestResponse is the outcome of POST /{kind}/selftest.
type SelfTestResponse struct {
	Checked    int            `json:"checked"`
	OK         bool           `json:"ok"`
	Mismatches []MismatchInfo `json:"mismatches"`
}

// SystemInfo describes one loaded system.
type SystemInfo struct {
	Kind        automata.Kind `json:"kind"`
	Fingerprint string        `json:"fingerprint"`
	SuiteSize   int           `json:"suite_size"`
}

// SystemsResponse is the body of GET /systems.
type SystemsResponse struct {
	Systems []SystemInfo `json:"systems"`
}

// InfoResponse is the body of GET /info.
type InfoResponse struct {
	App        string   `json:"app"`
	Version    string   `json:"version"`
	APIVersion string   `json:"api_version"`
	Workbench  string   `json:"workbench"`
	Systems    []string `json:"systems"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	kinds := s.engine.Kinds()
	systems := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		systems = append(systems, string(kind))
	}

	writeJSON(w, InfoResponse{
		App:        "automata-http",
		Version:    automata.Version,
		APIVersion: s.apiVersion,
		Workbench:  s.engine.Name(),
		Systems:    systems,
	})
}

// GetSystems handles the GET /systems request.
func (s *Server) GetSystems(w http.ResponseWriter, r *http.Request) {
	kinds := s.engine.Kinds()
	systems := make([]SystemInfo, 0, len(kinds))
	for _, kind := range kinds {
		info := SystemInfo{
			Kind:        kind,
			Fingerprint: s.engine.Fingerprint(kind),
		}
		if suite, ok := s.engine.Suite(kind); ok {
			info.SuiteSize = suite.Size()
		}
		systems = append(systems, info)
	}
	writeJSON(w, SystemsResponse{Systems: systems})
}

// Derive handles the POST /cfg/derive request.
func (s *Server) Derive(w http.ResponseWriter, r *http.Request) {
	var body DeriveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Derive: Invalid request body", "error", err)
		return
	}

	var opts []cfg.DeriveOption
	if body.Limit != nil {
		opts = append(opts, cfg.WithVariableLimit(*body.Limit))
	}

	ctx, cancel := s.queryContext(r)
	defer cancel()

	start := time.Now()
	derivation, err := s.engine.Derive(ctx, body.Input, opts...)
	s.metrics.observeQuery(automata.KindGrammar, len(derivation) > 0, err, time.Since(start))
	if err != nil {
		s.writeQueryError(w, "Derive", err)
		return
	}

	writeJSON(w, DeriveResponse{
		Member:     len(derivation) > 0,
		Derivation: derivation,
		Compressed: cfg.Compress(derivation),
	})
}

// Accepts handles the POST /{kind}/accepts request.
func (s *Server) Accepts(w http.ResponseWriter, r *http.Request) {
	kind, err := automata.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body AcceptsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Accepts: Invalid request body", "error", err)
		return
	}

	ctx, cancel := s.queryContext(r)
	defer cancel()

	if member, ok := s.cachedVerdict(ctx, kind, body.Input); ok {
		writeJSON(w, AcceptsResponse{Member: member, Cached: true})
		return
	}

	start := time.Now()
	member, err := s.engine.Accepts(ctx, kind, body.Input)
	s.metrics.observeQuery(kind, member, err, time.Since(start))
	if err != nil {
		s.writeQueryError(w, "Accepts", err)
		return
	}

	s.storeVerdict(ctx, kind, body.Input, member)
	writeJSON(w, AcceptsResponse{Member: member})
}

// SelfTest handles the POST /{kind}/selftest request.
func (s *Server) SelfTest(w http.ResponseWriter, r *http.Request) {
	kind, err := automata.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := s.queryContext(r)
	defer cancel()

	report, err := s.engine.SelfTest(ctx, kind)
	if err != nil {
		s.writeQueryError(w, "SelfTest", err)
		return
	}

	writeJSON(w, mapReport(report))
}

// cacheKey pins a verdict to the exact description that produced it.
func (s *Server) cacheKey(kind automata.Kind, input string) string {
	return fmt.Sprintf("%s:%s:%s", kind, s.engine.Fingerprint(kind), input)
}

func (s *Server) cachedVerdict(ctx context.Context, kind automata.Kind, input string) (bool, bool) {
	if s.cache == nil {
		return false, false
	}
	member, err := s.cache.Get(ctx, s.cacheKey(kind, input))
	switch {
	case err == nil:
		s.metrics.observeCache("hit")
		return member, true
	case errors.Is(err, ports.ErrCacheMiss):
		s.metrics.observeCache("miss")
	default:
		s.metrics.observeCache("error")
		s.logger.Warn("Cache get failed", "error", err)
	}
	return false, false
}

func (s *Server) storeVerdict(ctx context.Context, kind automata.Kind, input string, member bool) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(ctx, s.cacheKey(kind, input), member); err != nil {
		s.logger.Warn("Cache put failed", "error", err)
	}
}

// queryContext applies the per-request timeout, when configured.
func (s *Server) queryContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return r.Context(), func() {}
	}
	return context.WithTimeout(r.Context(), s.timeout)
}

// writeQueryError maps engine failures onto HTTP status codes.
func (s *Server) writeQueryError(w http.ResponseWriter, op string, err error) {
	var targetErr *cfg.TargetError
	var inputErr *npda.InputError

	switch {
	case errors.Is(err, automata.ErrNotLoaded), errors.Is(err, automata.ErrNoSuite):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &targetErr), errors.As(err, &inputErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "Query timed out", http.StatusGatewayTimeout)
		s.logger.Warn(op+": Query timed out")
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		s.logger.Error(op+" failed", "error", err)
	}
}

func mapReport(report selftest.Report) SelfTestResponse {
	resp := SelfTestResponse{
		Checked:    report.Checked,
		OK:         report.OK(),
		Mismatches: make([]MismatchInfo, len(report.Mismatches)),
	}
	for i, m := range report.Mismatches {
		resp.Mismatches[i] = MismatchInfo{
			Input:      m.Input,
			WantMember: m.WantMember,
			GotMember:  m.GotMember,
		}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
