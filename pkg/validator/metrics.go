package validator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Run metrics
	validationRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dx_validation_run_duration_seconds",
			Help:    "Duration of a validation run in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
	)

	validationRunTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dx_validation_run_total",
			Help: "Total number of validation runs",
		},
		[]string{"status"}, // pass, fail or canceled
	)

	// Per-expectation metrics
	evaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dx_expectation_evaluation_duration_seconds",
			Help:    "Time taken to evaluate a single expectation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	evaluationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dx_expectation_evaluation_total",
			Help: "Total number of expectation evaluations",
		},
		[]string{"kind", "outcome"}, // pass, fail or error
	)
)
