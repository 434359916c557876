package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadbot_http_requests_total",
			Help: "HTTP requests served, by route template and status",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leadbot_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	companiesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadbot_companies_created_total",
			Help: "Company create attempts that passed validation, by outcome",
		},
		[]string{"outcome"},
	)

	documentsUploadedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leadbot_documents_uploaded_total",
			Help: "Documents stored with their metadata row",
		},
	)

	documentUploadFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadbot_documents_upload_failed_total",
			Help: "Document uploads that failed, by stage",
		},
		[]string{"stage"},
	)

	provisioningPublishFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leadbot_provisioning_publish_failed_total",
			Help: "Provisioning messages that could not be published",
		},
	)
)

// IncCompanyCreated counts a create attempt with its outcome label.
func IncCompanyCreated(outcome string) {
	companiesCreatedTotal.WithLabelValues(outcome).Inc()
}

// IncDocumentUploaded counts a fully recorded upload.
func IncDocumentUploaded() {
	documentsUploadedTotal.Inc()
}

// IncDocumentUploadFailed counts a failed upload at stage (scan, storage, metadata).
func IncDocumentUploadFailed(stage string) {
	documentUploadFailedTotal.WithLabelValues(stage).Inc()
}

// IncProvisioningPublishFailed counts a provisioning message that was dropped.
func IncProvisioningPublishFailed() {
	provisioningPublishFailedTotal.Inc()
}

// Middleware records request count and latency keyed by the gin route template,
// so path parameters never become label values.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
