package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	domreport "github.com/livmaynard/Telecalc/internal/domain/report"
)

// RenderRecorder receives render outcomes.
type RenderRecorder interface {
	ObserveReport(format string, err error)
}

// InstrumentedRenderer wraps a Renderer with tracing, metrics and logging.
type InstrumentedRenderer struct {
	inner  Renderer
	rec    RenderRecorder
	logger *zap.Logger
}

// NewInstrumentedRenderer wraps inner. rec can be nil.
func NewInstrumentedRenderer(inner Renderer, rec RenderRecorder, logger *zap.Logger) *InstrumentedRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedRenderer{inner: inner, rec: rec, logger: logger}
}

// Format returns the wrapped renderer's format.
func (p *InstrumentedRenderer) Format() Format { return p.inner.Format() }

// Render delegates to the inner renderer inside a span and records the outcome.
func (p *InstrumentedRenderer) Render(ctx context.Context, w io.Writer, r domreport.Report) error {
	_, span := otel.Tracer("github.com/livmaynard/Telecalc/internal/transport/report").
		Start(ctx, "report.render")
	defer span.End()

	format := string(p.inner.Format())
	span.SetAttributes(
		attribute.String("telecalc.format", format),
		attribute.String("telecalc.run_id", r.RunID()),
	)

	start := time.Now()
	err := p.inner.Render(w, r)
	duration := time.Since(start)

	if p.rec != nil {
		p.rec.ObserveReport(format, err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render")
		p.logger.Error("Report render failed",
			zap.String("format", format),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return fmt.Errorf("render %s report: %w", format, err)
	}

	p.logger.Debug("Report rendered",
		zap.String("format", format),
		zap.String("run_id", r.RunID()),
		zap.Int("telescopes", len(r.Sections())),
		zap.Duration("duration", duration),
	)
	return nil
}
