package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// SubmissionCounter counts test submissions by outcome (accepted, rejected, conflict, error).
	SubmissionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cbt_test_submissions_total",
			Help: "Test submissions by outcome",
		},
		[]string{"outcome"},
	)

	ScorePercentage = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cbt_test_score_percentage",
			Help:    "Distribution of submitted test scores in percent",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	ShuffleFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cbt_shuffle_mapping_fallbacks_total",
			Help: "Submissions graded against stored option order because the shuffle mapping was missing",
		},
	)

	CSVRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cbt_csv_rows_total",
			Help: "Bulk upload rows by result",
		},
		[]string{"result"},
	)

	CodesIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cbt_test_codes_issued_total",
			Help: "Test codes generated",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(SubmissionCounter)
		prometheus.MustRegister(ScorePercentage)
		prometheus.MustRegister(ShuffleFallbacks)
		prometheus.MustRegister(CSVRows)
		prometheus.MustRegister(CodesIssued)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
