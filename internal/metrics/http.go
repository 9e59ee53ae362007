package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PathLabeler maps a raw request path that matched no registered route to a bounded label.
// Page requests reach the gate through NoRoute, so their label comes from here.
type PathLabeler func(path string) string

type httpMetrics struct {
	requestCounter metric.Int64Counter
	durationHisto  metric.Float64Histogram
}

// HTTPMetricsMiddleware returns a Gin middleware that records request counts and durations with
// method, path and status_code labels. Registered routes are labeled with their pattern; other
// paths go through labeler, or become "unknown" when labeler is nil.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string, labeler PathLabeler) gin.HandlerFunc {
	meter := meterProvider.Meter(namespace)

	requestCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	metrics := &httpMetrics{
		requestCounter: requestCounter,
		durationHisto:  durationHisto,
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		attrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", pathLabel(c.FullPath(), c.Request.URL.Path, labeler)),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		)

		metrics.requestCounter.Add(c.Request.Context(), 1, attrs)
		metrics.durationHisto.Record(c.Request.Context(), time.Since(start).Seconds(), attrs)
	}
}

// pathLabel keeps label cardinality bounded: never the raw request path.
func pathLabel(fullPath, rawPath string, labeler PathLabeler) string {
	if fullPath != "" {
		return fullPath
	}
	if labeler != nil {
		if label := labeler(rawPath); label != "" {
			return label
		}
	}
	return "unknown"
}
