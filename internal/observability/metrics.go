package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	dbConnectionPoolStats = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "db_connection_pool_stats",
			Help: "Database connection pool statistics (total, idle, acquired)",
		},
		[]string{"state"},
	)

	cacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
	)
	cacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	authAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Registration and login attempts by outcome",
		},
		[]string{"operation", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestLatency)
	prometheus.MustRegister(dbConnectionPoolStats)
	prometheus.MustRegister(cacheHits)
	prometheus.MustRegister(cacheMisses)
	prometheus.MustRegister(authAttempts)
}

// RecordAuthAttempt counts one register or login attempt.
func RecordAuthAttempt(operation, outcome string) {
	authAttempts.WithLabelValues(operation, outcome).Inc()
}

// Middleware records HTTP request latency.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriterSpy{ResponseWriter: w, code: http.StatusOK}

		next.ServeHTTP(ww, r)

		duration := time.Since(start).Seconds()
		httpRequestLatency.WithLabelValues(r.Method, r.Pattern, fmt.Sprint(ww.code)).Observe(duration)
	})
}

type responseWriterSpy struct {
	http.ResponseWriter
	code int
}

func (w *responseWriterSpy) WriteHeader(statusCode int) {
	w.code = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// StartDBStatsCollector polls pool stats until ctx is cancelled.
func StartDBStatsCollector(ctx context.Context, dbPool *pgxpool.Pool) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			stats := dbPool.Stat()
			dbConnectionPoolStats.WithLabelValues("total").Set(float64(stats.TotalConns()))
			dbConnectionPoolStats.WithLabelValues("idle").Set(float64(stats.IdleConns()))
			dbConnectionPoolStats.WithLabelValues("acquired").Set(float64(stats.AcquiredConns()))

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}
