// Package diag exposes process-wide observability metrics. The counters here
// are read-only diagnostics; nothing in the core consults them for behavior.
package diag

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LiveUnits tracks working units currently alive: incremented on
	// construction, decremented on first disposal.
	LiveUnits = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "chartkit",
		Name:      "live_working_units",
		Help:      "Number of working units currently alive.",
	})

	// ChartLoads counts completed primary chart loads.
	ChartLoads = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chartkit",
		Name:      "chart_loads_total",
		Help:      "Completed primary chart loads.",
	})

	// Conversions counts pipeline runs by ruleset and outcome.
	Conversions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chartkit",
		Name:      "conversions_total",
		Help:      "Conversion pipeline runs by ruleset and outcome.",
	}, []string{"ruleset", "outcome"})
)
