package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the paycheck engine's Prometheus metrics. It satisfies the
// engine's Recorder interface.
type Collector struct {
	registry        *prometheus.Registry
	paychecks       *prometheus.CounterVec
	duration        prometheus.Histogram
	floorBindings   *prometheus.CounterVec
	supportCapBound prometheus.Counter
	batchSize       prometheus.Histogram
}

// New registers all collectors on a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,
		paychecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "paycalc_paychecks_computed_total",
			Help: "Paychecks computed, by outcome",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "paycalc_paycheck_compute_seconds",
			Help:    "Time spent computing a single paycheck",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		floorBindings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "paycalc_garnishment_protected_floor_bindings_total",
			Help: "Garnishment orders reduced by a protected earnings floor, by garnishment type",
		}, []string{"type"}),
		supportCapBound: factory.NewCounter(prometheus.CounterOpts{
			Name: "paycalc_support_cap_bindings_total",
			Help: "Paychecks where the aggregate support cap scaled support orders",
		}),
		batchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "paycalc_batch_size",
			Help:    "Paychecks submitted per batch",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) PaycheckComputed(outcome string, elapsed time.Duration) {
	c.paychecks.WithLabelValues(outcome).Inc()
	c.duration.Observe(elapsed.Seconds())
}

func (c *Collector) ProtectedFloorBound(garnishmentType string) {
	c.floorBindings.WithLabelValues(garnishmentType).Inc()
}

func (c *Collector) SupportCapBound() {
	c.supportCapBound.Inc()
}

func (c *Collector) BatchSubmitted(size int) {
	c.batchSize.Observe(float64(size))
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
