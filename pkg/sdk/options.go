package telecalc

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Calculator.
type Option interface {
	apply(*calculatorConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*calculatorConfig)

func (f optionFunc) apply(c *calculatorConfig) { f(c) }

type calculatorConfig struct {
	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithLogger enables structured logging for calculator operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *calculatorConfig) {
		c.logger = l
	})
}

// WithPrometheus registers calculator metrics (operation counts and durations,
// catalog sizes and pairing counts) on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *calculatorConfig) {
		c.metricsReg = reg
	})
}
