package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "telecalc"

// Collector bundles the Prometheus metrics of a comparison run.
type Collector struct {
	gatherer prometheus.Gatherer

	CatalogEntries     *prometheus.GaugeVec
	RejectedEntries    *prometheus.CounterVec
	PairingsTotal      prometheus.Counter
	UsefulPairings     prometheus.Counter
	EvaluationDuration prometheus.Histogram
	ReportsTotal       *prometheus.CounterVec
}

// NewCollector registers metrics against reg, defaulting to the global registry when nil.
// Collectors already registered on reg are reused.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{
		gatherer: gatherer,
		CatalogEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_entries",
			Help:      "Entities loaded from the last catalog read",
		}, []string{"kind"}),
		RejectedEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_rejected_total",
			Help:      "Catalog loads rejected, by reason",
		}, []string{"kind", "reason"}),
		PairingsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pairings_evaluated_total",
			Help:      "Telescope and eyepiece pairings evaluated",
		}),
		UsefulPairings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pairings_useful_total",
			Help:      "Pairings whose magnification lies in the useful range",
		}),
		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent evaluating the pairing grid",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		ReportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_rendered_total",
			Help:      "Reports rendered, by format and status",
		}, []string{"format", "status"}),
	}

	if err := registerOrReuse(reg, &c.CatalogEntries); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &c.RejectedEntries); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &c.PairingsTotal); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &c.UsefulPairings); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &c.EvaluationDuration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &c.ReportsTotal); err != nil {
		return nil, err
	}
	return c, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("register metric: %w", err)
	}
	return nil
}

// ObserveCatalog records the size of a loaded catalog.
func (c *Collector) ObserveCatalog(kind string, n int) {
	c.CatalogEntries.WithLabelValues(kind).Set(float64(n))
}

// ObserveRejected counts a failed catalog load.
func (c *Collector) ObserveRejected(kind, reason string) {
	c.RejectedEntries.WithLabelValues(kind, reason).Inc()
}

// ObserveEvaluation records one grid evaluation.
func (c *Collector) ObserveEvaluation(pairings, useful int, d time.Duration) {
	c.PairingsTotal.Add(float64(pairings))
	c.UsefulPairings.Add(float64(useful))
	c.EvaluationDuration.Observe(d.Seconds())
}

// ObserveReport counts one rendered report.
func (c *Collector) ObserveReport(format string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.ReportsTotal.WithLabelValues(format, status).Inc()
}

// WriteTextfile writes every gathered metric to path in the Prometheus text format,
// for pickup by a node_exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
