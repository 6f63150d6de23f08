package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Autosave results
const (
	AutosaveOK      = "ok"
	AutosaveError   = "error"
	AutosaveSkipped = "skipped"
)

var (
	// Total HTTP requests partitioned by method, route, and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	DraftAutosaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drafts_autosave_total",
			Help: "Draft save attempts by result",
		},
		[]string{"result"},
	)

	CampaignsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "drafts_published_total",
			Help: "Drafts published as campaigns",
		},
	)

	DraftValidationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draft_validation_errors_total",
			Help: "Publish-time validation failures by field",
		},
		[]string{"field"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "authoring_sessions_active",
			Help: "Drafts currently held in memory for editing",
		},
	)
)
