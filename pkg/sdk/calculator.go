package telecalc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/livmaynard/Telecalc/internal/domain"
	"github.com/livmaynard/Telecalc/internal/domain/eyepiece"
	"github.com/livmaynard/Telecalc/internal/domain/length"
	"github.com/livmaynard/Telecalc/internal/domain/pairing"
	domreport "github.com/livmaynard/Telecalc/internal/domain/report"
	"github.com/livmaynard/Telecalc/internal/domain/telescope"
	"github.com/livmaynard/Telecalc/internal/logger"
	reporttransport "github.com/livmaynard/Telecalc/internal/transport/report"
	compareuc "github.com/livmaynard/Telecalc/internal/usecase/compare"
)

// Calculator is the telecalc SDK entry point. It holds no catalog state
// and is safe for concurrent use.
type Calculator struct {
	obs *observer
}

// New creates a Calculator.
func New(opts ...Option) (*Calculator, error) {
	cfg := &calculatorConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return &Calculator{obs: obs}, nil
}

// Telescope validates spec and returns its derived metrics.
func (c *Calculator) Telescope(spec TelescopeSpec) (TelescopeMetrics, error) {
	start := time.Now()
	t, err := toTelescope(spec)
	c.obs.observe(methodTelescope, start, err, slog.String("telescope", spec.Name))
	if err != nil {
		return TelescopeMetrics{}, err
	}
	return telescopeMetrics(t), nil
}

// Pair evaluates a single telescope and eyepiece combination.
func (c *Calculator) Pair(t TelescopeSpec, e EyepieceSpec) (Pairing, error) {
	start := time.Now()
	p, err := pair(t, e)
	c.obs.observe(methodPair, start, err,
		slog.String("telescope", t.Name),
		slog.String("eyepiece", e.Name),
		slog.Bool("useful", p.Useful),
	)
	return p, err
}

func pair(ts TelescopeSpec, es EyepieceSpec) (Pairing, error) {
	t, err := toTelescope(ts)
	if err != nil {
		return Pairing{}, err
	}
	e, err := toEyepiece(es)
	if err != nil {
		return Pairing{}, err
	}
	m, err := pairing.Evaluate(t, e)
	if err != nil {
		return Pairing{}, fmt.Errorf("telecalc: %w", err)
	}
	return toPairing(0, 0, t, e, m), nil
}

// Compare evaluates every telescope against every eyepiece.
// The report preserves input order; an empty list yields a report with no pairings.
func (c *Calculator) Compare(ctx context.Context, telescopes []TelescopeSpec, eyepieces []EyepieceSpec) (Report, error) {
	start := time.Now()
	rep, err := c.compare(ctx, telescopes, eyepieces)
	c.obs.observe(methodCompare, start, err,
		slog.Int("telescopes", len(telescopes)),
		slog.Int("eyepieces", len(eyepieces)),
		slog.Int("pairings", len(telescopes)*len(eyepieces)),
	)
	return rep, err
}

func (c *Calculator) compare(ctx context.Context, telescopes []TelescopeSpec, eyepieces []EyepieceSpec) (Report, error) {
	src := &specSource{telescopes: telescopes, eyepieces: eyepieces}

	var rec compareuc.Recorder
	if r := c.obs.recorder(); r != nil {
		rec = r
	}

	ctx = logger.ContextWithLogger(ctx, c.obs.zl)
	rep, err := compareuc.New(src, rec).Compare(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("telecalc: %w", err)
	}
	return toReport(rep), nil
}

// Render writes rep in format: text, json or yaml.
func (c *Calculator) Render(w io.Writer, rep Report, format string) error {
	start := time.Now()
	err := render(w, rep, format)
	c.obs.observe(methodRender, start, err, slog.String("format", format), slog.String("run_id", rep.RunID))
	return err
}

func render(w io.Writer, rep Report, format string) error {
	r, err := reporttransport.NewRenderer(format, reporttransport.DefaultPrecision)
	if err != nil {
		return fmt.Errorf("telecalc: %w", err)
	}
	if rep.rep.RunID() == "" {
		return fmt.Errorf("telecalc: report was not produced by Compare: %w", ErrEmptyCatalog)
	}
	if err := r.Render(w, rep.rep); err != nil {
		return fmt.Errorf("telecalc: %w", err)
	}
	return nil
}

// specSource adapts SDK specs to the compare service's catalog source.
type specSource struct {
	telescopes []TelescopeSpec
	eyepieces  []EyepieceSpec
}

func (s *specSource) LoadTelescopes(ctx context.Context) ([]telescope.Telescope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]telescope.Telescope, 0, len(s.telescopes))
	for i, spec := range s.telescopes {
		t, err := toTelescope(spec)
		if err != nil {
			return nil, fmt.Errorf("telescope %d: %w", i+1, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *specSource) LoadEyepieces(ctx context.Context) ([]eyepiece.Eyepiece, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]eyepiece.Eyepiece, 0, len(s.eyepieces))
	for i, spec := range s.eyepieces {
		e, err := toEyepiece(spec)
		if err != nil {
			return nil, fmt.Errorf("eyepiece %d: %w", i+1, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func toLength(l Length) (length.Length, error) {
	u, err := length.ParseUnit(string(l.Unit))
	if err != nil {
		return length.Length{}, err
	}
	return length.New(l.Value, u)
}

func toTelescope(spec TelescopeSpec) (telescope.Telescope, error) {
	if spec.Aperture.Value <= 0 {
		return telescope.Telescope{}, fmt.Errorf("telescope %q: aperture %v: %w", spec.Name, spec.Aperture.Value, domain.ErrInvalidAperture)
	}
	if spec.FocalLength.Value <= 0 {
		return telescope.Telescope{}, fmt.Errorf("telescope %q: focal length %v: %w", spec.Name, spec.FocalLength.Value, domain.ErrInvalidFocalLength)
	}
	aperture, err := toLength(spec.Aperture)
	if err != nil {
		return telescope.Telescope{}, fmt.Errorf("telescope %q: aperture: %w", spec.Name, err)
	}
	focal, err := toLength(spec.FocalLength)
	if err != nil {
		return telescope.Telescope{}, fmt.Errorf("telescope %q: focal length: %w", spec.Name, err)
	}
	return telescope.New(spec.Name, aperture, focal)
}

func toEyepiece(spec EyepieceSpec) (eyepiece.Eyepiece, error) {
	if spec.FocalLength.Value <= 0 {
		return eyepiece.Eyepiece{}, fmt.Errorf("eyepiece %q: focal length %v: %w", spec.Name, spec.FocalLength.Value, domain.ErrInvalidFocalLength)
	}
	focal, err := toLength(spec.FocalLength)
	if err != nil {
		return eyepiece.Eyepiece{}, fmt.Errorf("eyepiece %q: focal length: %w", spec.Name, err)
	}
	return eyepiece.New(spec.Name, spec.ApparentFOV, focal)
}

func telescopeMetrics(t telescope.Telescope) TelescopeMetrics {
	m := t.Metrics()
	return TelescopeMetrics{
		Name:                     t.Name(),
		ApertureMM:               t.Aperture().Millimeters(),
		ApertureIn:               t.Aperture().Inches(),
		FocalLengthMM:            t.FocalLength().Millimeters(),
		FocalRatio:               m.FocalRatio,
		ResolutionArcsec:         m.ResolutionArcsec,
		MinMagnification:         m.MinMagnification,
		MaxMagnification:         m.MaxMagnification,
		ShortestUsefulEyepieceMM: m.ShortestUsefulEyepiece,
		LongestUsefulEyepieceMM:  m.LongestUsefulEyepiece,
	}
}

func toPairing(ti, ei int, t telescope.Telescope, e eyepiece.Eyepiece, m pairing.Metrics) Pairing {
	return Pairing{
		TelescopeIndex: ti,
		EyepieceIndex:  ei,
		Telescope:      t.Name(),
		Eyepiece:       e.Name(),
		Magnification:  m.Magnification(),
		TrueFieldDeg:   m.TrueField(),
		ExitPupilMM:    m.ExitPupil(),
		Useful:         m.Useful(),
	}
}

func toReport(rep domreport.Report) Report {
	out := Report{
		RunID:       rep.RunID(),
		GeneratedAt: rep.GeneratedAt(),
		Telescopes:  make([]TelescopeReport, 0, len(rep.Sections())),
		rep:         rep,
	}
	for _, s := range rep.Sections() {
		tr := TelescopeReport{
			TelescopeMetrics: telescopeMetrics(s.Telescope()),
			Pairings:         make([]Pairing, 0, len(s.Rows())),
		}
		for _, row := range s.Rows() {
			tr.Pairings = append(tr.Pairings, toPairing(s.Index(), row.Index(), s.Telescope(), row.Eyepiece(), row.Metrics()))
		}
		out.Telescopes = append(out.Telescopes, tr)
	}
	return out
}
