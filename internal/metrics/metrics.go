package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "papersharehub_http_requests_total",
	Help: "Total number of requests labelled by method, route and status",
}, []string{"method", "route", "status"})

var httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "papersharehub_http_request_duration_seconds",
	Help:    "Duration of HTTP requests in seconds",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

var uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "papersharehub_uploads_total",
	Help: "Upload attempts labelled by outcome",
}, []string{"outcome"})

var uploadedBytes = promauto.NewCounter(prometheus.CounterOpts{
	Name: "papersharehub_uploaded_bytes_total",
	Help: "Bytes written to the upload directory",
})

var uploadsByCategory = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "papersharehub_uploads_by_category_total",
	Help: "Successful uploads labelled by advisory category",
}, []string{"category"})

var statsCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "papersharehub_stats_cache_lookups_total",
	Help: "Stats cache lookups labelled by result (hit or miss)",
}, []string{"result"})

const (
	OutcomeSuccess    = "success"
	OutcomeRejected   = "rejected"
	OutcomeStoreError = "file_store_error"
	OutcomeDBError    = "storage_error"
)

func RecordUpload(outcome string, bytes int64) {
	uploadsTotal.WithLabelValues(outcome).Inc()
	if bytes > 0 {
		uploadedBytes.Add(float64(bytes))
	}
}

// RecordUploadCategory expects a category already mapped onto the advisory
// list so the label set stays bounded.
func RecordUploadCategory(category string) {
	uploadsByCategory.WithLabelValues(category).Inc()
}

func RecordCacheLookup(hit bool) {
	if hit {
		statsCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	statsCacheLookups.WithLabelValues("miss").Inc()
}

// Middleware records request count and latency. The matched route pattern is
// used as the label so ids and file names do not blow up cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		if status == fiber.StatusNotFound {
			route = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
