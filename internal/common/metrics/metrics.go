// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkflowRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autopost_workflow_runs_total",
			Help: "Total number of workflow runs by trigger and outcome",
		},
		[]string{"trigger", "outcome"},
	)

	WorkflowFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autopost_workflow_failures_total",
			Help: "Total number of workflow failures by stage",
		},
		[]string{"stage"},
	)

	StepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "autopost_step_duration_seconds",
			Help: "Duration of workflow steps in seconds",
		},
		[]string{"step"},
	)

	MediaUploadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "autopost_media_upload_failures_total",
			Help: "Total number of media uploads that failed and fell back to a text-only post",
		},
	)
)
