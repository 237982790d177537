package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersincine/automata"
	"github.com/ersincine/automata/internal/testutils"
	"github.com/ersincine/automata/pkg/adapters/memory"
	"github.com/ersincine/automata/pkg/cfg"
	"github.com/ersincine/automata/pkg/selftest"
)

// MockEngine for testing error paths and cache behavior.
type MockEngine struct {
	AcceptsFunc func(ctx context.Context, kind automata.Kind, input string) (bool, error)
	acceptCalls int
}

func (m *MockEngine) Name() string           { return "mock" }
func (m *MockEngine) Kinds() []automata.Kind { return []automata.Kind{automata.KindPushdown} }
func (m *MockEngine) Fingerprint(kind automata.Kind) string {
	return "feedface"
}
func (m *MockEngine) Suite(kind automata.Kind) (selftest.Suite, bool) {
	return selftest.Suite{}, false
}
func (m *MockEngine) Derive(ctx context.Context, target string, opts ...cfg.DeriveOption) ([]string, error) {
	return nil, fmt.Errorf("%s: %w", automata.KindGrammar, automata.ErrNotLoaded)
}
func (m *MockEngine) Accepts(ctx context.Context, kind automata.Kind, input string) (bool, error) {
	m.acceptCalls++
	if m.AcceptsFunc != nil {
		return m.AcceptsFunc(ctx, kind, input)
	}
	return true, nil
}
func (m *MockEngine) SelfTest(ctx context.Context, kind automata.Kind) (selftest.Report, error) {
	return selftest.Report{}, fmt.Errorf("%s: %w", kind, automata.ErrNoSuite)
}

func newTestWorkbench(t *testing.T) *automata.Workbench {
	t.Helper()

	wb, err := automata.Open(testutils.WriteSystem(t, map[string]string{
		automata.GrammarFile:  testutils.BalancedGrammar,
		automata.PushdownFile: testutils.BalancedPushdown,
		automata.MachineFile:  testutils.EqualHalvesMachine,
		automata.SuiteFile:    testutils.FullSuite,
	}))
	require.NoError(t, err)
	return wb
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestGetHealth(t *testing.T) {
	handler := NewHandler(newTestWorkbench(t))

	w := doJSON(t, handler, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetInfo(t *testing.T) {
	handler := NewHandler(newTestWorkbench(t))

	w := doJSON(t, handler, "GET", "/info", nil)
	require.Equal(t, http.StatusOK, w.Code)

	info := decode[InfoResponse](t, w)
	assert.Equal(t, "automata-http", info.App)
	assert.Equal(t, automata.Version, info.Version)
	assert.Equal(t, "1.0.0", info.APIVersion)
	assert.Equal(t, []string{"cfg", "npda", "tm"}, info.Systems)
}

func TestGetSystems(t *testing.T) {
	handler := NewHandler(newTestWorkbench(t))

	w := doJSON(t, handler, "GET", "/systems", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[SystemsResponse](t, w)
	require.Len(t, resp.Systems, 3)
	for _, sys := range resp.Systems {
		assert.Len(t, sys.Fingerprint, 64, "kind %s", sys.Kind)
		assert.NotZero(t, sys.SuiteSize, "kind %s", sys.Kind)
	}
}

func TestDerive(t *testing.T) {
	handler := NewHandler(newTestWorkbench(t))

	t.Run("member", func(t *testing.T) {
		w := doJSON(t, handler, "POST", "/cfg/derive", DeriveRequest{Input: "0011"})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[DeriveResponse](t, w)
		assert.True(t, resp.Member)
		require.NotEmpty(t, resp.Derivation)
		assert.Equal(t, "S", resp.Derivation[0])
		assert.Equal(t, "0011", resp.Derivation[len(resp.Derivation)-1])
		assert.LessOrEqual(t, len(resp.Compressed), len(resp.Derivation))
	})

	t.Run("nonmember", func(t *testing.T) {
		w := doJSON(t, handler, "POST", "/cfg/derive", DeriveRequest{Input: "10"})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[DeriveResponse](t, w)
		assert.False(t, resp.Member)
		assert.Empty(t, resp.Derivation)
	})

	t.Run("limit override", func(t *testing.T) {
		limit := 1
		w := doJSON(t, handler, "POST", "/cfg/derive", DeriveRequest{Input: "01", Limit: &limit})
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, decode[DeriveResponse](t, w).Member)
	})

	t.Run("contract violation", func(t *testing.T) {
		w := doJSON(t, handler, "POST", "/cfg/derive", DeriveRequest{Input: "S"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/cfg/derive", bytes.NewReader([]byte("{")))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("grammar not loaded", func(t *testing.T) {
		w := doJSON(t, NewHandler(&MockEngine{}), "POST", "/cfg/derive", DeriveRequest{Input: "01"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAccepts(t *testing.T) {
	handler := NewHandler(newTestWorkbench(t))

	t.Run("verdicts per kind", func(t *testing.T) {
		cases := []struct {
			path   string
			input  string
			member bool
		}{
			{"/cfg/accepts", "01", true},
			{"/npda/accepts", "10", false},
			{"/tm/accepts", "11#11", true},
		}
		for _, tc := range cases {
			w := doJSON(t, handler, "POST", tc.path, AcceptsRequest{Input: tc.input})
			require.Equal(t, http.StatusOK, w.Code, tc.path)

			resp := decode[AcceptsResponse](t, w)
			assert.Equal(t, tc.member, resp.Member, "%s %q", tc.path, tc.input)
			assert.False(t, resp.Cached)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		w := doJSON(t, handler, "POST", "/dfa/accepts", AcceptsRequest{Input: "01"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("epsilon in input", func(t *testing.T) {
		w := doJSON(t, handler, "POST", "/npda/accepts", AcceptsRequest{Input: "0e1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("system not loaded", func(t *testing.T) {
		wb, err := automata.Open(testutils.WriteSystem(t, map[string]string{
			automata.GrammarFile: testutils.BalancedGrammar,
		}))
		require.NoError(t, err)

		w := doJSON(t, NewHandler(wb), "POST", "/tm/accepts", AcceptsRequest{Input: "#"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAcceptsCache(t *testing.T) {
	engine := &MockEngine{}
	handler := NewHandler(engine, WithCache(memory.NewCache()))

	first := doJSON(t, handler, "POST", "/npda/accepts", AcceptsRequest{Input: "0011"})
	require.Equal(t, http.StatusOK, first.Code)
	resp := decode[AcceptsResponse](t, first)
	assert.True(t, resp.Member)
	assert.False(t, resp.Cached)

	second := doJSON(t, handler, "POST", "/npda/accepts", AcceptsRequest{Input: "0011"})
	require.Equal(t, http.StatusOK, second.Code)
	resp = decode[AcceptsResponse](t, second)
	assert.True(t, resp.Member)
	assert.True(t, resp.Cached)

	assert.Equal(t, 1, engine.acceptCalls, "second answer should come from the cache")

	metrics := doJSON(t, handler, "GET", "/metrics", nil).Body.String()
	assert.Contains(t, metrics, `automata_cache_requests_total{result="hit"} 1`)
	assert.Contains(t, metrics, `automata_cache_requests_total{result="miss"} 1`)
}

func TestSelfTestEndpoint(t *testing.T) {
	handler := NewHandler(newTestWorkbench(t))

	w := doJSON(t, handler, "POST", "/tm/selftest", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[SelfTestResponse](t, w)
	assert.True(t, resp.OK)
	assert.Equal(t, 9, resp.Checked)
	assert.Empty(t, resp.Mismatches)

	t.Run("no suite", func(t *testing.T) {
		wb, err := automata.Open(testutils.WriteSystem(t, map[string]string{
			automata.PushdownFile: testutils.BalancedPushdown,
		}))
		require.NoError(t, err)

		w := doJSON(t, NewHandler(wb), "POST", "/npda/selftest", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown kind", func(t *testing.T) {
		w := doJSON(t, handler, "POST", "/dfa/selftest", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestQueryTimeoutAnswers504(t *testing.T) {
	engine := &MockEngine{
		AcceptsFunc: func(ctx context.Context, kind automata.Kind, input string) (bool, error) {
			<-ctx.Done()
			return false, ctx.Err()
		},
	}
	handler := NewHandler(engine, WithTimeout(30*time.Millisecond))

	w := doJSON(t, handler, "POST", "/npda/accepts", AcceptsRequest{Input: "01"})
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestQueryMetricsRecorded(t *testing.T) {
	handler := NewHandler(newTestWorkbench(t))

	doJSON(t, handler, "POST", "/npda/accepts", AcceptsRequest{Input: "01"})
	doJSON(t, handler, "POST", "/npda/accepts", AcceptsRequest{Input: "10"})

	metrics := doJSON(t, handler, "GET", "/metrics", nil).Body.String()
	assert.Contains(t, metrics, `automata_queries_total{kind="npda",verdict="member"} 1`)
	assert.Contains(t, metrics, `automata_queries_total{kind="npda",verdict="nonmember"} 1`)
	assert.Contains(t, metrics, "automata_query_duration_seconds")
}

func TestOpenAPIDocumentServed(t *testing.T) {
	handler := NewHandler(newTestWorkbench(t))

	w := doJSON(t, handler, "GET", "/openapi.yaml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/yaml")
}
