// Package metrics exposes moderation counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "moderation"

// Recorder implements the service Recorder on top of a Prometheus registry.
type Recorder struct {
	registry *prometheus.Registry

	operations          *prometheus.CounterVec
	persistenceFailures *prometheus.CounterVec
	repositoryFallbacks *prometheus.CounterVec
	sanctionsIssued     *prometheus.CounterVec
	autoBans            prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewRecorder registers every collector on a fresh registry together with
// the Go runtime and process collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of service operations by outcome",
		}, []string{"operation", "outcome"}),
		persistenceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_failures_total",
			Help:      "Total number of snapshot load or save failures",
		}, []string{"stage"}),
		repositoryFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repository_fallbacks_total",
			Help:      "Total number of repository errors answered from memory",
		}, []string{"repository", "operation"}),
		sanctionsIssued: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sanctions_issued_total",
			Help:      "Total number of sanctions issued by type",
		}, []string{"type"}),
		autoBans: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auto_bans_total",
			Help:      "Total number of bans issued by the warning threshold",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "path"}),
	}
}

func (r *Recorder) RecordOperation(operation, outcome string) {
	r.operations.WithLabelValues(operation, outcome).Inc()
}

func (r *Recorder) RecordPersistenceFailure(stage string) {
	r.persistenceFailures.WithLabelValues(stage).Inc()
}

func (r *Recorder) RecordRepositoryFallback(repository, operation string) {
	r.repositoryFallbacks.WithLabelValues(repository, operation).Inc()
}

func (r *Recorder) RecordSanctionIssued(sanctionType string) {
	r.sanctionsIssued.WithLabelValues(sanctionType).Inc()
}

func (r *Recorder) RecordAutoBan() {
	r.autoBans.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Middleware counts requests by route template so path parameters do not
// explode label cardinality. Unmatched routes are reported as "unmatched".
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		r.httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		r.httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
