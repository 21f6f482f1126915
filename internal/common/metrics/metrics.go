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

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Redis cache lookups by outcome",
		},
		[]string{"cache", "outcome"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "REST requests by route and status",
		},
		[]string{"route", "status"},
	)

	DatasetRowsExcluded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_rows_excluded_total",
			Help: "Menu rows or restaurants dropped during normalization",
		},
		[]string{"reason"},
	)

	DatasetRestaurantsEmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dataset_restaurants_emitted_total",
			Help: "Restaurants written to the cleaned dataset",
		},
	)

	CatalogItemsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_items_written_total",
			Help: "Menu items written to the table or the search index",
		},
		[]string{"target"},
	)
)
