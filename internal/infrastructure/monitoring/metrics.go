package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the host
type Metrics struct {
	// Bridge HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Plugin invocation metrics
	InvocationsTotal   *prometheus.CounterVec
	InvocationDuration *prometheus.HistogramVec
	InvocationErrors   *prometheus.CounterVec

	// api.fetch metrics
	FetchRequests *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec

	// Plugin registry metrics
	PluginsRegistered prometheus.Gauge

	// Shell session metrics
	ShellSessions prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for the health endpoint
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current aggregate values for the health endpoint
type Snapshot struct {
	TotalRequests int64
	TotalErrors   int64
	TotalDuration float64
	RequestCount  int64
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		// Bridge HTTP metrics
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "host_http_requests_total",
				Help: "Total number of bridge HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "host_http_request_duration_seconds",
				Help:    "Bridge HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "host_http_request_size_bytes",
				Help:    "Bridge HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "host_http_response_size_bytes",
				Help:    "Bridge HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Plugin invocation metrics
		InvocationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "host_invocations_total",
				Help: "Total number of plugin invocations",
			},
			[]string{"plugin", "tool", "status"},
		),
		InvocationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "host_invocation_duration_seconds",
				Help:    "Plugin invocation duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"plugin", "tool"},
		),
		InvocationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "host_invocation_errors_total",
				Help: "Total number of plugin invocation errors",
			},
			[]string{"plugin", "tool", "error_type"},
		),

		// api.fetch metrics
		FetchRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "host_fetch_requests_total",
				Help: "Total number of api.fetch proxy requests",
			},
			[]string{"method", "outcome"},
		),
		FetchDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "host_fetch_duration_seconds",
				Help:    "api.fetch request duration in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method"},
		),

		// Plugin registry metrics
		PluginsRegistered: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "host_plugins_registered",
				Help: "Number of registered plugins",
			},
		),

		// Shell session metrics
		ShellSessions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "host_shell_sessions",
				Help: "Number of active shell sessions",
			},
		),

		// WebSocket metrics
		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "host_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "host_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		// System metrics
		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "host_uptime_seconds",
				Help: "Host uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records a bridge HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordInvocation records a plugin invocation
func (m *Metrics) RecordInvocation(plugin, tool, status string, duration time.Duration) {
	m.InvocationsTotal.WithLabelValues(plugin, tool, status).Inc()
	m.InvocationDuration.WithLabelValues(plugin, tool).Observe(duration.Seconds())
}

// RecordInvocationError records a plugin invocation error
func (m *Metrics) RecordInvocationError(plugin, tool, errorType string) {
	m.InvocationErrors.WithLabelValues(plugin, tool, errorType).Inc()
}

// RecordFetch records an api.fetch proxy request
func (m *Metrics) RecordFetch(method, outcome string, duration time.Duration) {
	m.FetchRequests.WithLabelValues(method, outcome).Inc()
	m.FetchDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// SetPluginsRegistered sets the number of registered plugins
func (m *Metrics) SetPluginsRegistered(count int) {
	m.PluginsRegistered.Set(float64(count))
}

// SetShellSessions sets the number of active shell sessions
func (m *Metrics) SetShellSessions(count int) {
	m.ShellSessions.Set(float64(count))
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}

// UptimeSeconds returns seconds since the collector was created
func (m *Metrics) UptimeSeconds() float64 {
	return time.Since(m.startTime).Seconds()
}

// CurrentSnapshot returns a copy of the aggregate counters
func (m *Metrics) CurrentSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
