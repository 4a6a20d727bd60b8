// Package metrics exposes Prometheus collectors for analysis runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sentinel_analyses_total", Help: "Analysis runs by source and outcome"},
		[]string{"source", "outcome"},
	)
	CrossoversTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sentinel_crossovers_total", Help: "Crossover events found in analysed series"},
		[]string{"side"},
	)
	FetchSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentinel_fetch_seconds",
			Help:    "Data provider latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
	AlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sentinel_alerts_total", Help: "Watchlist alerts sent"},
		[]string{"symbol", "side"},
	)
)

func init() {
	prometheus.MustRegister(AnalysesTotal, CrossoversTotal, FetchSeconds, AlertsTotal)
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }
