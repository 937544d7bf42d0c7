// Package bnb: Prometheus exposition over Stats.

package bnb

import "github.com/prometheus/client_golang/prometheus"

// StatsCollector adapts a *Stats to prometheus.Collector so a solve can be
// scraped mid-flight. Counters are sampled on Collect; the atomics make the
// read side lock-free, matching the Stats contract.
type StatsCollector struct {
	stats *Stats

	nodesExplored   *prometheus.Desc
	nodesUnexplored *prometheus.Desc
	lpSolveSeconds  *prometheus.Desc
	lpIters         *prometheus.Desc
}

// NewStatsCollector builds a collector for st. Register it on any
// prometheus.Registerer; it holds no state beyond the descriptors.
func NewStatsCollector(st *Stats) *StatsCollector {
	return &StatsCollector{
		stats: st,
		nodesExplored: prometheus.NewDesc(
			"dusim_bnb_nodes_explored_total",
			"Branch-and-bound nodes fully processed in the current solve.",
			nil, nil),
		nodesUnexplored: prometheus.NewDesc(
			"dusim_bnb_nodes_unexplored",
			"Open branch-and-bound nodes awaiting exploration.",
			nil, nil),
		lpSolveSeconds: prometheus.NewDesc(
			"dusim_bnb_lp_solve_seconds_total",
			"Wall time spent inside LP relaxation solves.",
			nil, nil),
		lpIters: prometheus.NewDesc(
			"dusim_bnb_lp_iterations_total",
			"Dual simplex iterations across all workers.",
			nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.nodesExplored
	ch <- c.nodesUnexplored
	ch <- c.lpSolveSeconds
	ch <- c.lpIters
}

// Collect implements prometheus.Collector.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.nodesExplored,
		prometheus.CounterValue, float64(c.stats.NodesExplored()))
	ch <- prometheus.MustNewConstMetric(c.nodesUnexplored,
		prometheus.GaugeValue, float64(c.stats.NodesUnexplored()))
	ch <- prometheus.MustNewConstMetric(c.lpSolveSeconds,
		prometheus.CounterValue, c.stats.TotalLPSolveTime().Seconds())
	ch <- prometheus.MustNewConstMetric(c.lpIters,
		prometheus.CounterValue, float64(c.stats.TotalLPIters()))
}
