package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/emceep/internal/domain/event"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "emceep"

// Collector agrupa as métricas do serviço
type Collector struct {
	registry *prometheus.Registry

	classifications *prometheus.CounterVec
	confidence      *prometheus.HistogramVec
	executions      *prometheus.CounterVec
	toolCalls       *prometheus.CounterVec
	toolDuration    *prometheus.HistogramVec
	changelog       *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New cria e registra os coletores em um registry próprio
func New() (*Collector, error) {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intent_classifications_total",
			Help:      "Voice commands classified, by winning intent.",
		}, []string{"intent"}),
		confidence: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "intent_confidence",
			Help:      "Confidence of each classification.",
			Buckets:   []float64{0.1, 0.3, 0.5, 0.7, 0.9, 1.0},
		}, []string{"intent"}),
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_executions_total",
			Help:      "Command executions attempted, by action and result.",
		}, []string{"action", "executed"}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mcp_tool_calls_total",
			Help:      "MCP tool calls, by tool and outcome.",
		}, []string{"tool", "outcome"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mcp_tool_duration_seconds",
			Help:      "Latency of MCP tool calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
		changelog: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changelog_entries_total",
			Help:      "Changelog entries persisted, by change type.",
		}, []string{"type"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	all := []prometheus.Collector{
		c.classifications, c.confidence, c.executions, c.toolCalls,
		c.toolDuration, c.changelog, c.httpRequests, c.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, col := range all {
		if err := c.registry.Register(col); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return c, nil
}

// Registry exposes the underlying registry, mostly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveClassification implementa intent.Observer
func (c *Collector) ObserveClassification(intent string, confidence float64) {
	c.classifications.WithLabelValues(intent).Inc()
	c.confidence.WithLabelValues(intent).Observe(confidence)
}

// ObserveExecution implementa intent.Observer
func (c *Collector) ObserveExecution(action string, executed bool) {
	c.executions.WithLabelValues(action, strconv.FormatBool(executed)).Inc()
}

// ObserveToolCall implementa mcp.ToolObserver
func (c *Collector) ObserveToolCall(tool, outcome string, elapsed time.Duration) {
	c.toolCalls.WithLabelValues(tool, outcome).Inc()
	c.toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// Publish implementa event.ChangelogSink contando cada entrada persistida
func (c *Collector) Publish(_ context.Context, entry event.ChangelogEntry) error {
	c.changelog.WithLabelValues(string(entry.Type)).Inc()
	return nil
}

// Middleware mede as requisições HTTP pelo template da rota
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		started := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.httpRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.httpDuration.WithLabelValues(method, route).Observe(time.Since(started).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
