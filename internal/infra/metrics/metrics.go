// File: internal/infra/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		scrapeFetchSeconds,
		scrapePipelineTotal,
		scrapePipelineSeconds,
		scrapeSourceUp,
	)
}

var (
	scrapeFetchSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scrape_fetch_duration_seconds",
			Help:    "Time spent downloading and parsing a page.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"host", "outcome"}, // outcome: ok|timeout|status|error
	)

	scrapePipelineTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_pipeline_total",
			Help: "Fetch-extract-format runs per source, labeled by result.",
		},
		[]string{"source", "result"}, // result: ok|timeout|remote|extraction|error
	)

	scrapePipelineSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scrape_pipeline_duration_seconds",
			Help:    "End-to-end duration of a scraping pipeline.",
			Buckets: []float64{.1, .25, .5, 1, 2, 5},
		},
		[]string{"source"},
	)

	scrapeSourceUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scrape_source_up",
			Help: "1 when the last probe of the source succeeded.",
		},
		[]string{"source"},
	)
)

func ObserveFetch(host, outcome string, d time.Duration) {
	scrapeFetchSeconds.WithLabelValues(norm(host), norm(outcome)).Observe(d.Seconds())
}

func ObservePipeline(source, result string, d time.Duration) {
	scrapePipelineTotal.WithLabelValues(norm(source), norm(result)).Inc()
	scrapePipelineSeconds.WithLabelValues(norm(source)).Observe(d.Seconds())
}

func SetSourceUp(source string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	scrapeSourceUp.WithLabelValues(norm(source)).Set(v)
}
