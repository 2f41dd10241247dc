// Package metrics exposes the evaluation counters of a run to Prometheus.
//
// Every Recorder owns its own registry so that several runs, or several
// tests, can coexist in one process without colliding on metric names.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cgpgrid"

// Recorder collects evaluation metrics for one run.
type Recorder struct {
	registry *prometheus.Registry

	individuals  prometheus.Counter
	failures     *prometheus.CounterVec
	evaluations  prometheus.GaugeFunc
	bestFitness  prometheus.Gauge
	activeNodes  prometheus.Histogram
	evalDuration prometheus.Histogram
}

// New creates a recorder. evaluated reports the interpreter's counter of
// evaluated solutions at scrape time.
func New(evaluated func() float64) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		individuals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "individuals_evaluated_total",
			Help:      "Number of individuals whose fitness was computed.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluation_failures_total",
			Help:      "Number of individuals whose evaluation failed, by reason.",
		}, []string{"reason"}),
		evaluations: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "interpreter_evaluated_solutions",
			Help:      "Value of the interpreter's evaluated-solutions counter.",
		}, evaluated),
		bestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_training_mse",
			Help:      "Training mean squared error of the best individual so far.",
		}),
		activeNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "active_nodes",
			Help:      "Number of active nodes per evaluated individual.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		evalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent decoding and evaluating one individual.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	r.registry.MustRegister(r.individuals, r.failures, r.evaluations, r.bestFitness, r.activeNodes, r.evalDuration)
	return r
}

// ObserveIndividual records one successful fitness computation.
func (r *Recorder) ObserveIndividual(activeNodes int, seconds float64) {
	r.individuals.Inc()
	r.activeNodes.Observe(float64(activeNodes))
	r.evalDuration.Observe(seconds)
}

// ObserveFailure records an evaluation that ended in a fatal error.
func (r *Recorder) ObserveFailure(reason string) {
	r.failures.WithLabelValues(reason).Inc()
}

// SetBestFitness publishes the current best training error.
func (r *Recorder) SetBestFitness(mse float64) {
	r.bestFitness.Set(mse)
}

// Registry returns the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the recorder's metrics in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
