package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/livmaynard/Telecalc/internal/domain"
	"github.com/livmaynard/Telecalc/internal/domain/catalog"
	"github.com/livmaynard/Telecalc/internal/domain/pairing"
	"github.com/livmaynard/Telecalc/internal/domain/report"
	"github.com/livmaynard/Telecalc/internal/logger"
)

const tracerName = "github.com/livmaynard/Telecalc/internal/usecase/compare"

// Option configures a Service.
type Option func(*Service)

// WithRunID fixes the run identifier instead of generating one per report.
func WithRunID(id string) Option {
	return func(s *Service) { s.newID = func() string { return id } }
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithTracer overrides the global tracer.
func WithTracer(tp trace.TracerProvider) Option {
	return func(s *Service) { s.tracer = tp.Tracer(tracerName) }
}

// Service compares every telescope against every eyepiece.
type Service struct {
	src    CatalogSource
	rec    Recorder
	tracer trace.Tracer
	now    func() time.Time
	newID  func() string
}

// New creates a Service. rec can be nil.
func New(src CatalogSource, rec Recorder, opts ...Option) *Service {
	if rec == nil {
		rec = nopRecorder{}
	}
	s := &Service{
		src:    src,
		rec:    rec,
		tracer: otel.Tracer(tracerName),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Compare loads both catalogs from the source and evaluates them.
func (s *Service) Compare(ctx context.Context) (report.Report, error) {
	ctx, span := s.tracer.Start(ctx, "compare.run")
	defer span.End()

	cat, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load catalog")
		return report.Report{}, err
	}

	rep, err := s.Evaluate(ctx, cat)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluate")
		return report.Report{}, err
	}
	return rep, nil
}

// Evaluate computes the full pairing grid of an already loaded catalog.
func (s *Service) Evaluate(ctx context.Context, cat catalog.Catalog) (report.Report, error) {
	if err := ctx.Err(); err != nil {
		return report.Report{}, err
	}

	ctx, span := s.tracer.Start(ctx, "compare.evaluate")
	defer span.End()

	start := time.Now()
	grid, err := pairing.EvaluateAll(cat.Telescopes(), cat.Eyepieces())
	if err != nil {
		span.RecordError(err)
		return report.Report{}, fmt.Errorf("evaluate pairings: %w", err)
	}
	elapsed := time.Since(start)

	useful := 0
	for _, r := range grid.Results() {
		if r.Metrics().Useful() {
			useful++
		}
	}
	s.rec.ObserveEvaluation(grid.Len(), useful, elapsed)

	runID := s.newID()
	rep, err := report.New(runID, s.now(), cat, grid)
	if err != nil {
		span.RecordError(err)
		return report.Report{}, fmt.Errorf("build report: %w", err)
	}

	span.SetAttributes(
		attribute.String("telecalc.run_id", runID),
		attribute.Int("telecalc.pairings", grid.Len()),
		attribute.Int("telecalc.useful_pairings", useful),
	)
	logger.FromContext(ctx).Info("comparison complete",
		zap.Int("telescopes", len(cat.Telescopes())),
		zap.Int("eyepieces", len(cat.Eyepieces())),
		zap.Int("pairings", grid.Len()),
		zap.Int("useful", useful),
		zap.Duration("elapsed", elapsed),
	)
	return rep, nil
}

func (s *Service) load(ctx context.Context) (catalog.Catalog, error) {
	log := logger.FromContext(ctx)

	ctx, span := s.tracer.Start(ctx, "catalog.load")
	defer span.End()

	ts, err := s.src.LoadTelescopes(ctx)
	if err != nil {
		s.reject(log, catalog.Telescopes, err)
		return catalog.Catalog{}, fmt.Errorf("load telescopes: %w", err)
	}
	s.rec.ObserveCatalog(string(catalog.Telescopes), len(ts))

	es, err := s.src.LoadEyepieces(ctx)
	if err != nil {
		s.reject(log, catalog.Eyepieces, err)
		return catalog.Catalog{}, fmt.Errorf("load eyepieces: %w", err)
	}
	s.rec.ObserveCatalog(string(catalog.Eyepieces), len(es))

	span.SetAttributes(
		attribute.Int("telecalc.telescopes", len(ts)),
		attribute.Int("telecalc.eyepieces", len(es)),
	)

	log.Debug("catalog loaded", zap.Int("telescopes", len(ts)), zap.Int("eyepieces", len(es)))
	return catalog.New(ts, es), nil
}

func (s *Service) reject(log *zap.Logger, kind catalog.Kind, err error) {
	reason := domain.ErrorCode(err)
	s.rec.ObserveRejected(string(kind), reason)
	log.Warn("catalog rejected",
		zap.String("kind", string(kind)),
		zap.String("reason", reason),
		zap.Error(err),
	)
}

type nopRecorder struct{}

func (nopRecorder) ObserveCatalog(string, int)                {}
func (nopRecorder) ObserveRejected(string, string)            {}
func (nopRecorder) ObserveEvaluation(int, int, time.Duration) {}
