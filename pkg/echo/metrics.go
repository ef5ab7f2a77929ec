package echo

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several servers can live in one
// process.
type Metrics struct {
	registry *prometheus.Registry
	echoes   *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewMetrics registers the echo collectors together with the Go runtime and
// process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		echoes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formsend",
			Subsystem: "echo",
			Name:      "requests_total",
			Help:      "Echoed submissions by method tag.",
		}, []string{"method"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formsend",
			Subsystem: "echo",
			Name:      "rejected_total",
			Help:      "Requests answered with an error status, by status code.",
		}, []string{"code"}),
	}
	m.registry.MustRegister(
		m.echoes,
		m.rejected,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) echoed(method string) {
	if m == nil {
		return
	}
	m.echoes.WithLabelValues(method).Inc()
}

func (m *Metrics) reject(code string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(code).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() app.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(ctx context.Context, c *app.RequestContext) {
		req, err := adaptor.GetCompatRequest(&c.Request)
		if err != nil {
			abort(c, http.StatusInternalServerError, "metrics unavailable")
			return
		}
		h.ServeHTTP(adaptor.GetCompatResponseWriter(&c.Response), req.WithContext(ctx))
	}
}
