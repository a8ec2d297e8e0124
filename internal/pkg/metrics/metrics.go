package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geocrop",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geocrop",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 10},
	}, []string{"method", "path"})

	// CropExports counts per-target exports by source format and outcome.
	CropExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geocrop",
		Subsystem: "crop",
		Name:      "exports_total",
		Help:      "Total per-target crop exports",
	}, []string{"format", "status"})

	CropFeatures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geocrop",
		Subsystem: "crop",
		Name:      "features_total",
		Help:      "Features examined by the crop filter",
	}, []string{"outcome"})

	CropExportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geocrop",
		Subsystem: "crop",
		Name:      "export_duration_seconds",
		Help:      "Duration of a single target export",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
	}, []string{"format"})

	SessionsLive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "geocrop",
		Subsystem: "session",
		Name:      "live",
		Help:      "Crop sessions currently held, open or closed",
	})
)

// ObserveExport records one finished target export.
func ObserveExport(format string, err error, kept, dropped int, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	if format == "" {
		format = "unknown"
	}
	CropExports.WithLabelValues(format, status).Inc()
	CropExportDuration.WithLabelValues(format).Observe(d.Seconds())
	CropFeatures.WithLabelValues("kept").Add(float64(kept))
	CropFeatures.WithLabelValues("dropped").Add(float64(dropped))
}

// Middleware records request metrics.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
