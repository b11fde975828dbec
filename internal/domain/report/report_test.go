package report

import (
	"testing"
	"time"

	"github.com/livmaynard/Telecalc/internal/domain/catalog"
	"github.com/livmaynard/Telecalc/internal/domain/eyepiece"
	"github.com/livmaynard/Telecalc/internal/domain/pairing"
	"github.com/livmaynard/Telecalc/internal/domain/telescope"
)

func makeCatalog(t *testing.T) catalog.Catalog {
	t.Helper()
	t1, _ := telescope.Parse("Newt", "8", "1000")
	t2, _ := telescope.Parse("Refractor", "4", "900")
	e1, _ := eyepiece.Parse("Plossl", "52", "25")
	e2, _ := eyepiece.Parse("Nagler", "82", "13")
	e3, _ := eyepiece.Parse("Erfle", "68", "32")
	return catalog.New([]telescope.Telescope{t1, t2}, []eyepiece.Eyepiece{e1, e2, e3})
}

func TestNew(t *testing.T) {
	c := makeCatalog(t)
	g, err := pairing.EvaluateAll(c.Telescopes(), c.Eyepieces())
	if err != nil {
		t.Fatalf("EvaluateAll: %v", err)
	}

	at := time.Date(2026, 10, 19, 21, 0, 0, 0, time.UTC)
	r, err := New("run-1", at, c, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.RunID() != "run-1" || !r.GeneratedAt().Equal(at) {
		t.Errorf("metadata = %q %v", r.RunID(), r.GeneratedAt())
	}
	if r.Pairings() != 6 {
		t.Errorf("Pairings() = %d, want 6", r.Pairings())
	}

	sections := r.Sections()
	if len(sections) != 2 {
		t.Fatalf("len(Sections()) = %d, want 2", len(sections))
	}
	for ti, s := range sections {
		if s.Index() != ti {
			t.Errorf("section %d Index() = %d", ti, s.Index())
		}
		if s.Metrics() != s.Telescope().Metrics() {
			t.Errorf("section %d metrics snapshot mismatch", ti)
		}
		if len(s.Rows()) != 3 {
			t.Fatalf("section %d has %d rows", ti, len(s.Rows()))
		}
		for ei, row := range s.Rows() {
			if row.Index() != ei {
				t.Errorf("row %d Index() = %d", ei, row.Index())
			}
			want := s.Telescope().FocalLength().Millimeters() / row.Eyepiece().FocalLength().Millimeters()
			if row.Metrics().Magnification() != want {
				t.Errorf("[%d,%d] magnification = %v, want %v", ti, ei, row.Metrics().Magnification(), want)
			}
		}
	}

	if name := sections[1].Rows()[2].Eyepiece().Name(); name != "Erfle" {
		t.Errorf("last row eyepiece = %q, want Erfle", name)
	}
}

func TestNew_GridMismatch(t *testing.T) {
	c := makeCatalog(t)
	g, err := pairing.EvaluateAll(c.Telescopes()[:1], c.Eyepieces())
	if err != nil {
		t.Fatalf("EvaluateAll: %v", err)
	}
	if _, err := New("run-1", time.Now(), c, g); err == nil {
		t.Fatal("expected error for mismatched grid")
	}
}
