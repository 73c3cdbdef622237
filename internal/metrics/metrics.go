// Package metrics exposes Prometheus counters for the wind-injection
// machinery. Kepler non-convergence must be observable without ever
// halting a run; the counters here are how.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RefreshesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cwb_refreshes_total",
			Help: "Total number of per-step wind refreshes.",
		},
	)

	CellsInjectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cwb_cells_injected_total",
			Help: "Total grid cells overwritten by wind imposition.",
		},
		[]string{"star"},
	)

	KeplerNonConvergedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cwb_kepler_nonconverged_total",
			Help: "Kepler solves that hit the iteration bound and returned a best estimate.",
		},
	)
)

func init() {
	prometheus.MustRegister(RefreshesTotal)
	prometheus.MustRegister(CellsInjectedTotal)
	prometheus.MustRegister(KeplerNonConvergedTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
