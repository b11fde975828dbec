package telecalc

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/livmaynard/Telecalc/internal/metrics"
)

// Calculator methods, used as the "method" label and log field.
const (
	methodTelescope = "telescope"
	methodPair      = "pair"
	methodCompare   = "compare"
	methodRender    = "render"
)

// sdkMetrics counts Calculator calls; run holds the catalog and pairing
// metrics shared with the CLI.
type sdkMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	run      *metrics.Collector
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	run, err := metrics.NewCollector(reg)
	if err != nil {
		return nil, fmt.Errorf("telecalc: %w", err)
	}
	m := &sdkMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "telecalc",
			Subsystem: "sdk",
			Name:      "calls_total",
			Help:      "Calculator calls by method and status.",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "telecalc",
			Subsystem: "sdk",
			Name:      "call_duration_seconds",
			Help:      "Calculator call duration in seconds.",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}, []string{"method"}),
		run: run,
	}
	if err := registerOrReuse(reg, &m.calls); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("telecalc: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("telecalc: register metric: %w", err)
	}
	return nil
}

// observer logs and counts Calculator calls. Run-level logs from the compare
// service reach the same slog handler through zl.
type observer struct {
	logger  *slog.Logger
	zl      *zap.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger, zl: newZapLogger(logger)}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

// recorder returns the run collector, or nil when metrics are disabled.
func (o *observer) recorder() *metrics.Collector {
	if o == nil || o.metrics == nil {
		return nil
	}
	return o.metrics.run
}

// observe records one call. attrs describe its inputs and results,
// e.g. catalog sizes for compare.
func (o *observer) observe(method string, start time.Time, err error, attrs ...slog.Attr) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.metrics.calls.WithLabelValues(method, status).Inc()
		o.metrics.duration.WithLabelValues(method).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	args := make([]any, 0, len(attrs)+3)
	args = append(args, slog.String("method", method), slog.Duration("duration", dur))
	for _, a := range attrs {
		args = append(args, a)
	}
	if err != nil {
		o.logger.Warn("telecalc call failed", append(args, slog.Any("error", err))...)
		return
	}
	o.logger.Debug("telecalc call completed", args...)
}
