package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mural_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mural_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Media pipeline metrics
var (
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mural_uploads_total",
			Help: "Uploads by media category and outcome",
		},
		[]string{"category", "outcome"}, // outcome: stored, rejected, failed
	)

	MediaProcessingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mural_media_processing_duration_seconds",
			Help:    "Duration of each media processing step",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"category", "step"},
	)

	ThumbnailFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mural_thumbnail_fallbacks_total",
			Help: "Thumbnails replaced by the asset itself or a placeholder",
		},
		[]string{"category"},
	)

	TranscriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mural_transcriptions_total",
			Help: "Transcription attempts by engine and outcome",
		},
		[]string{"engine", "outcome"}, // outcome: success, failure
	)

	RemoteMirrorTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mural_remote_mirror_total",
			Help: "Remote storage mirror attempts",
		},
		[]string{"outcome"},
	)
)

// Security metrics
var (
	RateLimitRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mural_rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"scope"},
	)

	LiveFeedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mural_live_feed_clients",
			Help: "Connected websocket feed clients",
		},
	)
)
