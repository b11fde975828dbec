package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/livmaynard/Telecalc/internal/domain"
	"github.com/livmaynard/Telecalc/internal/domain/catalog"
	"github.com/livmaynard/Telecalc/internal/domain/eyepiece"
	"github.com/livmaynard/Telecalc/internal/domain/pairing"
	domreport "github.com/livmaynard/Telecalc/internal/domain/report"
	"github.com/livmaynard/Telecalc/internal/domain/telescope"
)

var generatedAt = time.Date(2026, 10, 19, 21, 30, 0, 0, time.UTC)

func sampleReport(t *testing.T) domreport.Report {
	t.Helper()
	newt, err := telescope.Parse("Newt", "8", "1000")
	if err != nil {
		t.Fatal(err)
	}
	plossl, err := eyepiece.Parse("Plossl", "52", "25")
	if err != nil {
		t.Fatal(err)
	}
	tiny, err := eyepiece.Parse("A very long eyepiece name", "60", "2")
	if err != nil {
		t.Fatal(err)
	}
	c := catalog.New([]telescope.Telescope{newt}, []eyepiece.Eyepiece{plossl, tiny})
	g, err := pairing.EvaluateAll(c.Telescopes(), c.Eyepieces())
	if err != nil {
		t.Fatal(err)
	}
	r, err := domreport.New("run-7", generatedAt, c, g)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-len(s))
}

func TestTextRenderer(t *testing.T) {
	r, err := NewRenderer("text", 2)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, sampleReport(t)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	wantLines := []string{
		"TELESCOPE 1 " + strings.Repeat("=", 52),
		"Name: Newt",
		"Aperture: 8.0 in (203 mm)",
		"Length: 1000 mm",
		"Focal ratio: 4.9",
		"Resolution: 0.59 arcsec",
		"The magnification range is 29x to 406x",
		"Shortest eyepiece: 2.5 mm",
		"Longest eyepiece: 34 mm",
		"EYEPIECES" + strings.Repeat(".", 55),
		pad("NAME", 25) + pad("MAG", 15) + pad("TFOV", 15) + pad("EXIT PUPIL", 15) + "USEFUL",
		pad("Plossl", 25) + pad("40", 15) + pad("1.30", 15) + pad("5.08", 15) + "yes",
		"A very long eyepiece name " + pad("500", 15) + pad("0.12", 15) + pad("0.41", 15) + "no",
	}
	lines := strings.Split(out, "\n")
	for _, want := range wantLines {
		found := false
		for _, l := range lines {
			if l == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing line %q in output:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n\n\n") {
		t.Errorf("section should end with two blank lines")
	}
}

func TestTextRenderer_Precision(t *testing.T) {
	r, err := NewRenderer("TEXT", 4)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, sampleReport(t)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Resolution: 0.5906 arcsec") {
		t.Errorf("precision not applied:\n%s", buf.String())
	}
}

func TestJSONRenderer(t *testing.T) {
	r, err := NewRenderer("json", 0)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, sampleReport(t)); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var doc document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if doc.RunID != "run-7" || !doc.GeneratedAt.Equal(generatedAt) || doc.Pairings != 2 {
		t.Errorf("header = %+v", doc)
	}
	if len(doc.Telescopes) != 1 || len(doc.Telescopes[0].Eyepieces) != 2 {
		t.Fatalf("telescopes = %+v", doc.Telescopes)
	}
	ep := doc.Telescopes[0].Eyepieces[0]
	if ep.Magnification != 40 || !ep.Useful || ep.Name != "Plossl" {
		t.Errorf("first pairing = %+v", ep)
	}
	if doc.Telescopes[0].Eyepieces[1].Useful {
		t.Error("500x pairing should not be useful")
	}
}

func TestYAMLRenderer(t *testing.T) {
	r, err := NewRenderer("yaml", 0)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, sampleReport(t)); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var doc document
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid yaml: %v\n%s", err, buf.String())
	}
	if doc.RunID != "run-7" || len(doc.Telescopes) != 1 {
		t.Errorf("doc = %+v", doc)
	}
	if doc.Telescopes[0].FocalLengthMM != 1000 {
		t.Errorf("focal_length_mm = %v", doc.Telescopes[0].FocalLengthMM)
	}
}

func TestNewRenderer_Unsupported(t *testing.T) {
	if _, err := NewRenderer("html", 2); !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("want ErrUnsupportedFormat, got %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

type recordedReport struct {
	format string
	err    error
}

type mockRecorder struct{ calls []recordedReport }

func (m *mockRecorder) ObserveReport(format string, err error) {
	m.calls = append(m.calls, recordedReport{format, err})
}

func TestInstrumentedRenderer(t *testing.T) {
	inner, err := NewRenderer("text", 2)
	if err != nil {
		t.Fatal(err)
	}
	rec := &mockRecorder{}
	p := NewInstrumentedRenderer(inner, rec, zap.NewNop())

	if p.Format() != FormatText {
		t.Errorf("Format() = %q", p.Format())
	}
	var buf bytes.Buffer
	if err := p.Render(context.Background(), &buf, sampleReport(t)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	err = p.Render(context.Background(), failingWriter{}, sampleReport(t))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("want write error, got %v", err)
	}

	if len(rec.calls) != 2 || rec.calls[0].err != nil || rec.calls[1].err == nil {
		t.Errorf("recorder calls = %+v", rec.calls)
	}
}

func TestOpen(t *testing.T) {
	var stdout bytes.Buffer
	for _, path := range []string{"", "-"} {
		w, err := Open(path, &stdout)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte("x")); err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
	}
	if stdout.String() != "xx" {
		t.Errorf("stdout = %q", stdout.String())
	}

	path := filepath.Join(t.TempDir(), "output.txt")
	w, err := Open(path, &stdout)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("report")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "report" {
		t.Errorf("file = %q, %v", data, err)
	}
}
