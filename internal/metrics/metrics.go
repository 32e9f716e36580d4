// Package metrics provides Prometheus instrumentation for the CalmMind backend.
package metrics

import (
	"context"
	"database/sql"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "calmmind",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path pattern, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "calmmind",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// RiskAssessmentsTotal counts risk assessments by resulting level.
	RiskAssessmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "calmmind",
			Name:      "risk_assessments_total",
			Help:      "Total risk assessments performed, by level.",
		},
		[]string{"level"},
	)

	// RiskEventsRecordedTotal counts persisted risk events by source channel.
	RiskEventsRecordedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "calmmind",
			Name:      "risk_events_recorded_total",
			Help:      "Total risk events persisted to the audit log, by source.",
		},
		[]string{"source"},
	)

	// OllamaRequestsTotal counts language model calls by outcome.
	OllamaRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "calmmind",
			Name:      "ollama_requests_total",
			Help:      "Total Ollama API calls by result.",
		},
		[]string{"status"},
	)

	// OllamaRequestDuration observes language model latency by mode.
	OllamaRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "calmmind",
			Name:      "ollama_request_duration_seconds",
			Help:      "Ollama call duration in seconds, by mode (generate or stream).",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"mode"},
	)

	// JournalEntriesTotal counts created journal entries.
	JournalEntriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "calmmind",
		Name:      "journal_entries_total",
		Help:      "Total journal entries created.",
	})

	// MoodLogsTotal counts recorded mood logs.
	MoodLogsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "calmmind",
		Name:      "mood_logs_total",
		Help:      "Total mood logs recorded.",
	})

	// ActiveWebSocketClients tracks connected clinician alert-feed clients.
	ActiveWebSocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "calmmind",
			Name:      "active_websocket_clients",
			Help:      "Number of currently connected WebSocket clients.",
		},
	)

	// DBOpenConnections tracks open database connections.
	DBOpenConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "calmmind", Name: "db_open_connections",
		Help: "Number of open database connections.",
	})
	// DBIdleConnections tracks idle database connections.
	DBIdleConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "calmmind", Name: "db_idle_connections",
		Help: "Number of idle database connections.",
	})
	// DBInUseConnections tracks in-use database connections.
	DBInUseConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "calmmind", Name: "db_in_use_connections",
		Help: "Number of in-use database connections.",
	})
	// GoroutineCount tracks the current number of goroutines.
	GoroutineCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "calmmind", Name: "goroutines",
		Help: "Current number of goroutines.",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		RiskAssessmentsTotal,
		RiskEventsRecordedTotal,
		OllamaRequestsTotal,
		OllamaRequestDuration,
		JournalEntriesTotal,
		MoodLogsTotal,
		ActiveWebSocketClients,
		DBOpenConnections,
		DBIdleConnections,
		DBInUseConnections,
		GoroutineCount,
	)
}

// StartDBStatsCollector periodically samples sql.DBStats and runtime goroutine
// count into Prometheus gauges. Call in a goroutine; exits when ctx is done.
func StartDBStatsCollector(ctx context.Context, db *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := db.Stats()
			DBOpenConnections.Set(float64(stats.OpenConnections))
			DBIdleConnections.Set(float64(stats.Idle))
			DBInUseConnections.Set(float64(stats.InUse))
			GoroutineCount.Set(float64(runtime.NumGoroutine()))
		}
	}
}

// Middleware returns a gin middleware that records request metrics.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := prometheus.NewTimer(HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(), // Uses route pattern, not actual path (avoids cardinality explosion)
		))

		c.Next()

		timer.ObserveDuration()
		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			statusBucket(c.Writer.Status()),
		).Inc()
	}
}

// Handler returns the Prometheus metrics HTTP handler for /metrics endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// statusBucket groups HTTP status codes into buckets (2xx, 3xx, 4xx, 5xx).
func statusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
