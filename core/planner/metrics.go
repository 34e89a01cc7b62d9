package planner

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	sizingRuns   *prometheus.CounterVec
	oracleTrials *prometheus.CounterVec
	reallocRuns  *prometheus.CounterVec
	reallocMoved *prometheus.CounterVec
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.CounterVec, *prometheus.CounterVec, *prometheus.CounterVec) {
	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sizing_runs_total",
			Help: "Number of capacity sizing runs",
		},
		[]string{"strategy", "outcome"},
	)
	trials := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_simulations_total",
			Help: "Number of full-series feasibility replays performed",
		},
		[]string{"strategy"},
	)
	shifts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reallocation_runs_total",
			Help: "Number of workload reallocation runs",
		},
		[]string{"objective", "strategy"},
	)
	moved := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reallocation_moved_mwh_total",
			Help: "Workload volume moved by reallocation",
		},
		[]string{"objective"},
	)
	return runs, trials, shifts, moved
}

func init() {
	sizingRuns, oracleTrials, reallocRuns, reallocMoved = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers planner metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(sizingRuns, oracleTrials, reallocRuns, reallocMoved)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	sizingRuns, oracleTrials, reallocRuns, reallocMoved = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
