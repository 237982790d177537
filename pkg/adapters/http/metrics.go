package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ersincine/automata"
)

// metrics holds the Prometheus collectors for one handler. Every
// handler carries its own registry, so tests and embedders can build
// handlers independently without duplicate registration panics.
type metrics struct {
	registry      *prometheus.Registry
	queries       *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	cacheRequests *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_queries_total",
				Help: "Total number of membership queries answered",
			},
			[]string{"kind", "verdict"},
		),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "automata_query_duration_seconds",
				Help: "Duration of membership queries",
			},
			[]string{"kind"},
		),
		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_cache_requests_total",
				Help: "Total number of verdict cache lookups",
			},
			[]string{"result"},
		),
	}
	m.registry.MustRegister(m.queries, m.queryDuration, m.cacheRequests)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// observeQuery records one engine query.
func (m *metrics) observeQuery(kind automata.Kind, member bool, err error, elapsed time.Duration) {
	verdict := "member"
	switch {
	case err != nil:
		verdict = "error"
	case !member:
		verdict = "nonmember"
	}
	m.queries.WithLabelValues(string(kind), verdict).Inc()
	m.queryDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

func (m *metrics) observeCache(result string) {
	m.cacheRequests.WithLabelValues(result).Inc()
}
