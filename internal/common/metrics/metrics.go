// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
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

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	CompatibilityScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "application_compatibility_score",
			Help:    "Compatibility score assigned to submitted applications",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	ApplicationTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "application_status_transitions_total",
			Help: "Application status changes by target status",
		},
		[]string{"status"},
	)

	CareerPlanRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_plan_refresh_total",
			Help: "Career plan refresh attempts by result",
		},
		[]string{"result"},
	)

	SuggestionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "suggestion_generator_duration_seconds",
			Help: "Latency of calls to the action suggestion generator",
		},
		[]string{"provider"},
	)
)
