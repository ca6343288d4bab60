package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks HTTP and domain counters exposed on /metrics
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	VideoUploadsTotal  *prometheus.CounterVec
	VideoViewsTotal    prometheus.Counter
	LikeTogglesTotal   *prometheus.CounterVec
	SubscriptionsTotal *prometheus.CounterVec
	CommentsCreated    prometheus.Counter
	TweetsCreated      prometheus.Counter
}

var (
	instance *Metrics
	once     sync.Once
)

// Get returns the metrics singleton, registering collectors on first use
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total HTTP requests by method, path and status",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "path", "status"},
			),
			VideoUploadsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "video_uploads_total",
					Help: "Total video publish attempts by outcome",
				},
				[]string{"status"},
			),
			VideoViewsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "video_views_total",
					Help: "Total watch events",
				},
			),
			LikeTogglesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "like_toggles_total",
					Help: "Total like toggles by target type and resulting state",
				},
				[]string{"target", "state"},
			),
			SubscriptionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "subscription_toggles_total",
					Help: "Total subscription toggles by resulting state",
				},
				[]string{"state"},
			),
			CommentsCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "comments_created_total",
					Help: "Total comments created",
				},
			),
			TweetsCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "tweets_created_total",
					Help: "Total tweets created",
				},
			),
		}
	})
	return instance
}
