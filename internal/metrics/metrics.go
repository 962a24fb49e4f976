package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sla_dashboard"

const (
	RenderOK     = "ok"
	RenderNoData = "no_data"
	RenderError  = "error"
)

type Collector struct {
	registry      *prometheus.Registry
	queryDuration *prometheus.HistogramVec
	renders       *prometheus.CounterVec
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Duration of SLA store queries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"query", "outcome"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Dashboard render passes by result.",
		}, []string{"result"}),
	}
	c.registry.MustRegister(c.queryDuration, c.renders)
	return c
}

func (c *Collector) ObserveQuery(query, outcome string, elapsed time.Duration) {
	c.queryDuration.WithLabelValues(query, outcome).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveRender(result string) {
	c.renders.WithLabelValues(result).Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
