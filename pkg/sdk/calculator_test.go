package telecalc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

var (
	dob    = TelescopeSpec{Name: "Dob", Aperture: In(8), FocalLength: MM(1000)}
	refr   = TelescopeSpec{Name: "Refractor", Aperture: MM(102), FocalLength: MM(714)}
	plossl = EyepieceSpec{Name: "Plossl", ApparentFOV: 52, FocalLength: MM(25)}
	tiny   = EyepieceSpec{Name: "Tiny", ApparentFOV: 60, FocalLength: MM(2)}
)

func TestCalculator_Telescope(t *testing.T) {
	calc, err := New()
	if err != nil {
		t.Fatal(err)
	}
	m, err := calc.Telescope(dob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almost(m.ApertureMM, 203.2) || !almost(m.FocalRatio, 1000/203.2) {
		t.Errorf("metrics = %+v", m)
	}
	if !almost(m.MaxMagnification, 406.4) || !almost(m.MinMagnification, 203.2/7) {
		t.Errorf("magnification range = %v..%v", m.MinMagnification, m.MaxMagnification)
	}
	if !almost(m.ResolutionArcsec, 120/203.2) {
		t.Errorf("resolution = %v", m.ResolutionArcsec)
	}
}

func TestCalculator_TelescopeErrors(t *testing.T) {
	calc, _ := New()
	tests := []struct {
		name string
		spec TelescopeSpec
		want error
	}{
		{"bad unit", TelescopeSpec{Aperture: Length{8, "ft"}, FocalLength: MM(1000)}, ErrInvalidUnit},
		{"missing unit", TelescopeSpec{Aperture: Length{Value: 8}, FocalLength: MM(1000)}, ErrInvalidUnit},
		{"negative aperture", TelescopeSpec{Aperture: In(-8), FocalLength: MM(1000)}, ErrInvalidAperture},
		{"zero aperture", TelescopeSpec{Aperture: In(0), FocalLength: MM(1000)}, ErrInvalidAperture},
		{"negative focal", TelescopeSpec{Aperture: In(8), FocalLength: MM(-1000)}, ErrInvalidFocalLength},
		{"zero focal", TelescopeSpec{Aperture: In(8), FocalLength: MM(0)}, ErrInvalidFocalLength},
		{"non-finite aperture", TelescopeSpec{Aperture: In(math.Inf(1)), FocalLength: MM(1000)}, ErrInvalidLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := calc.Telescope(tt.spec); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCalculator_Pair(t *testing.T) {
	calc, _ := New()
	p, err := calc.Pair(dob, plossl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almost(p.Magnification, 40) || !almost(p.TrueFieldDeg, 1.3) || !almost(p.ExitPupilMM, 5.08) || !p.Useful {
		t.Errorf("pairing = %+v", p)
	}

	if _, err := calc.Pair(dob, EyepieceSpec{Name: "Bad", ApparentFOV: 0, FocalLength: MM(25)}); !errors.Is(err, ErrInvalidFieldOfView) {
		t.Errorf("zero afov: got %v", err)
	}
	if _, err := calc.Pair(dob, EyepieceSpec{Name: "Bad", ApparentFOV: 52, FocalLength: MM(-25)}); !errors.Is(err, ErrInvalidFocalLength) {
		t.Errorf("negative eyepiece focal length: got %v", err)
	}
	if _, err := calc.Pair(TelescopeSpec{Name: "Bad", Aperture: MM(-200), FocalLength: MM(1000)}, plossl); !errors.Is(err, ErrInvalidAperture) {
		t.Errorf("negative aperture: got %v", err)
	}
}

func TestCalculator_Compare(t *testing.T) {
	reg := prometheus.NewRegistry()
	calc, err := New(WithPrometheus(reg), WithLogger(slog.New(slog.DiscardHandler)))
	if err != nil {
		t.Fatal(err)
	}

	rep, err := calc.Compare(context.Background(), []TelescopeSpec{dob, refr}, []EyepieceSpec{plossl, tiny})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.RunID == "" || len(rep.Telescopes) != 2 {
		t.Fatalf("report = %+v", rep)
	}
	all := rep.Pairings()
	if len(all) != 4 {
		t.Fatalf("pairings = %d, want 4", len(all))
	}
	// telescope-major order
	if all[1].Telescope != "Dob" || all[1].Eyepiece != "Tiny" || all[2].TelescopeIndex != 1 || all[2].EyepieceIndex != 0 {
		t.Errorf("order = %+v", all)
	}
	if all[1].Useful {
		t.Error("500x on an 8 inch should not be useful")
	}

	if got := testutil.ToFloat64(calcOps(t, reg, "compare", "ok")); got != 1 {
		t.Errorf("compare ok count = %v, want 1", got)
	}
	text, err := testutil.GatherAndCount(reg, "telecalc_pairings_evaluated_total")
	if err != nil || text != 1 {
		t.Errorf("pairings metric series = %d, %v", text, err)
	}
}

func calcOps(t *testing.T, reg *prometheus.Registry, op, status string) prometheus.Counter {
	t.Helper()
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "telecalc",
		Subsystem: "sdk",
		Name:      "calls_total",
		Help:      "Calculator calls by method and status.",
	}, []string{"method", "status"})
	if err := registerOrReuse(reg, &vec); err != nil {
		t.Fatal(err)
	}
	return vec.WithLabelValues(op, status)
}

func TestCalculator_CompareErrors(t *testing.T) {
	calc, _ := New()
	ctx := context.Background()

	_, err := calc.Compare(ctx, []TelescopeSpec{dob, {Name: "Broken", Aperture: In(0), FocalLength: MM(900)}}, []EyepieceSpec{plossl})
	if !errors.Is(err, ErrInvalidAperture) || !strings.Contains(err.Error(), "telescope 2") {
		t.Errorf("invalid entry: got %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := calc.Compare(canceled, []TelescopeSpec{dob}, []EyepieceSpec{plossl}); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled: got %v", err)
	}
}

func TestCalculator_CompareEmpty(t *testing.T) {
	calc, _ := New()
	tests := []struct {
		name       string
		telescopes []TelescopeSpec
		eyepieces  []EyepieceSpec
		sections   int
	}{
		{"no telescopes", nil, []EyepieceSpec{plossl}, 0},
		{"no eyepieces", []TelescopeSpec{dob}, nil, 1},
		{"nothing", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := calc.Compare(context.Background(), tt.telescopes, tt.eyepieces)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(rep.Pairings()) != 0 || len(rep.Telescopes) != tt.sections {
				t.Errorf("report = %+v", rep)
			}
			if err := calc.Render(io.Discard, rep, "json"); err != nil {
				t.Errorf("Render: %v", err)
			}
		})
	}
}

func TestCalculator_Logging(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	calc, err := New(WithLogger(l))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := calc.Compare(context.Background(), []TelescopeSpec{dob, refr}, []EyepieceSpec{plossl, tiny}); err != nil {
		t.Fatal(err)
	}
	_, _ = calc.Compare(context.Background(), []TelescopeSpec{{Name: "Broken", Aperture: In(0), FocalLength: MM(900)}}, []EyepieceSpec{plossl})

	entries := make(map[string]map[string]any)
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e map[string]any
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		entries[e["msg"].(string)] = e
	}

	done, ok := entries["comparison complete"]
	if !ok {
		t.Fatalf("service log not forwarded, got %v", entries)
	}
	if done["pairings"] != float64(4) || done["useful"] != float64(2) {
		t.Errorf("comparison complete = %v", done)
	}
	if rej, ok := entries["catalog rejected"]; !ok || rej["reason"] != "invalid_aperture" || rej["level"] != "WARN" {
		t.Errorf("catalog rejected = %v", rej)
	}
	if call, ok := entries["telecalc call completed"]; !ok || call["method"] != "compare" || call["telescopes"] != float64(2) || call["pairings"] != float64(4) {
		t.Errorf("call log = %v", call)
	}
	if _, ok := entries["telecalc call failed"]; !ok {
		t.Errorf("missing failed call log, got %v", entries)
	}
}

func TestCalculator_Render(t *testing.T) {
	calc, _ := New()
	rep, err := calc.Compare(context.Background(), []TelescopeSpec{dob}, []EyepieceSpec{plossl})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := calc.Render(&buf, rep, "text"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "Name: Dob") {
		t.Errorf("text output:\n%s", buf.String())
	}

	if err := calc.Render(&buf, rep, "pdf"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("pdf: got %v", err)
	}
	if err := calc.Render(&buf, Report{}, "json"); err == nil {
		t.Error("expected error rendering a zero Report")
	}
}

func TestNew_MetricsReuse(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := New(WithPrometheus(reg)); err != nil {
		t.Fatal(err)
	}
	if _, err := New(WithPrometheus(reg)); err != nil {
		t.Fatalf("second calculator on same registry: %v", err)
	}
}

func TestOptions(t *testing.T) {
	cfg := &calculatorConfig{}
	l := slog.New(slog.DiscardHandler)
	reg := prometheus.NewRegistry()
	for _, o := range []Option{WithLogger(l), WithPrometheus(reg)} {
		o.apply(cfg)
	}
	if cfg.logger != l || cfg.metricsReg != reg {
		t.Errorf("cfg = %+v", cfg)
	}
}
