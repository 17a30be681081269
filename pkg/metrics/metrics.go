package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP 指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// 业务指标
	CommentSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comment_submissions_total",
			Help: "Comment submissions partitioned by outcome",
		},
		[]string{"outcome"},
	)

	PageRevalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_revalidations_total",
			Help: "Cached page invalidations partitioned by result",
		},
		[]string{"result"},
	)

	// 缓存指标
	PageCacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_cache_requests_total",
			Help: "Post page cache lookups partitioned by hit or miss",
		},
		[]string{"result"},
	)
)

// Handler 暴露 /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
