// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_commands_total",
			Help: "Total number of interpreted utterances by intent",
		},
		[]string{"intent"},
	)

	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_command_duration_seconds",
			Help:    "Time spent interpreting and applying an utterance",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"intent"},
	)

	PriceResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_price_resolutions_total",
			Help: "Resolved prices by the tier that produced them",
		},
		[]string{"source"},
	)

	SuggestionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_suggestion_requests_total",
			Help: "Suggestion lists served by origin",
		},
		[]string{"source"},
	)

	CollaboratorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_collaborator_failures_total",
			Help: "Failed calls to external collaborators",
		},
		[]string{"collaborator", "error_code"},
	)

	CartItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "assistant_cart_items",
			Help: "Number of distinct items in the cart",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)
)
