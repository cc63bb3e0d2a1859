package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// Prometheus metrics for pipeline monitoring
var (
	// searchesTotal tracks search attempts by outcome
	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardianstream_searches_total",
			Help: "Total number of content API searches",
		},
		[]string{"status"}, // status: success|failure
	)

	// articlesPublishedTotal tracks records appended to the sink
	articlesPublishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "guardianstream_articles_published_total",
			Help: "Total number of article records published to the stream",
		},
	)

	// publishErrorsTotal tracks failed publish invocations
	publishErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "guardianstream_publish_errors_total",
			Help: "Total number of failed publish invocations",
		},
	)

	// runDuration tracks end-to-end pipeline duration
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "guardianstream_run_duration_seconds",
			Help:    "End-to-end pipeline run duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)
)
