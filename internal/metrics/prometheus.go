package metrics

import (
	"net/http"
	"time"

	"github.com/GoSim-25-26J-441/annealing-core/pkg/anneal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Move outcomes used as the "outcome" label
const (
	OutcomeImproving = "improving"
	OutcomeUphill    = "uphill_accepted"
	OutcomeRejected  = "rejected"
)

// Metrics exports annealing runs to Prometheus
type Metrics struct {
	registry *prometheus.Registry

	runsCompleted *prometheus.CounterVec
	runsFailed    prometheus.Counter
	runDuration   *prometheus.HistogramVec
	functionEvals prometheus.Histogram
	moves         *prometheus.CounterVec
	temperature   prometheus.Gauge
	bestCost      prometheus.Gauge
}

// NewMetrics creates collectors on a private registry
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runsCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_completed_total",
				Help:      "Annealing runs completed, by terminal status",
			},
			[]string{"status"},
		),
		runsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_failed_total",
			Help:      "Annealing runs rejected before entering the loop",
		}),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Wall-clock duration of annealing runs",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		functionEvals: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "function_evals",
			Help:      "Cost function evaluations per run",
			Buckets:   prometheus.ExponentialBuckets(10, 10, 7),
		}),
		moves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "moves_total",
				Help:      "Inner steps by outcome",
			},
			[]string{"outcome"},
		),
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "temperature",
			Help:      "Temperature of the most recent stage",
		}),
		bestCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_cost",
			Help:      "Best cost seen by the most recent step",
		}),
	}

	m.registry.MustRegister(
		m.runsCompleted,
		m.runsFailed,
		m.runDuration,
		m.functionEvals,
		m.moves,
		m.temperature,
		m.bestCost,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveStage records the stage temperature
func (m *Metrics) ObserveStage(_ int, temperature float64) {
	m.temperature.Set(temperature)
}

// ObserveStep counts the step outcome
func (m *Metrics) ObserveStep(step anneal.Step) {
	switch {
	case !step.Accepted:
		m.moves.WithLabelValues(OutcomeRejected).Inc()
	case step.CostNew < step.CostOld:
		m.moves.WithLabelValues(OutcomeImproving).Inc()
	default:
		m.moves.WithLabelValues(OutcomeUphill).Inc()
	}
	m.bestCost.Set(step.BestCost)
}

// RecordRun records a finished run
func (m *Metrics) RecordRun(status string, evals int, elapsed time.Duration) {
	m.runsCompleted.WithLabelValues(status).Inc()
	m.runDuration.WithLabelValues(status).Observe(elapsed.Seconds())
	m.functionEvals.Observe(float64(evals))
}

// RecordFailure counts a run that never started
func (m *Metrics) RecordFailure() {
	m.runsFailed.Inc()
}
