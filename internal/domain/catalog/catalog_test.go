package catalog

import (
	"testing"

	"github.com/livmaynard/Telecalc/internal/domain/eyepiece"
	"github.com/livmaynard/Telecalc/internal/domain/telescope"
)

func TestNew(t *testing.T) {
	tel, _ := telescope.Parse("Newt", "8", "1000")
	ep1, _ := eyepiece.Parse("Plossl", "52", "25")
	ep2, _ := eyepiece.Parse("Nagler", "82", "13")

	ts := []telescope.Telescope{tel}
	c := New(ts, []eyepiece.Eyepiece{ep1, ep2})
	if c.Pairings() != 2 {
		t.Errorf("Pairings() = %d, want 2", c.Pairings())
	}
	if got := c.Eyepieces(); got[0].Name() != "Plossl" || got[1].Name() != "Nagler" {
		t.Errorf("order not preserved: %q, %q", got[0].Name(), got[1].Name())
	}

	// Catalog owns its slices.
	ts[0] = telescope.Telescope{}
	if c.Telescopes()[0].Name() != "Newt" {
		t.Error("catalog shares backing array with caller")
	}
}

func TestNew_Empty(t *testing.T) {
	tel, _ := telescope.Parse("Newt", "8", "1000")
	ep, _ := eyepiece.Parse("Plossl", "52", "25")

	tests := []struct {
		name string
		ts   []telescope.Telescope
		es   []eyepiece.Eyepiece
	}{
		{"no telescopes", nil, []eyepiece.Eyepiece{ep}},
		{"no eyepieces", []telescope.Telescope{tel}, nil},
		{"both empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.ts, tt.es)
			if c.Pairings() != 0 {
				t.Errorf("Pairings() = %d, want 0", c.Pairings())
			}
			if len(c.Telescopes()) != len(tt.ts) || len(c.Eyepieces()) != len(tt.es) {
				t.Errorf("sizes = %d x %d", len(c.Telescopes()), len(c.Eyepieces()))
			}
		})
	}
}

func TestKind_IsValid(t *testing.T) {
	for _, k := range []Kind{Telescopes, Eyepieces} {
		if !k.IsValid() {
			t.Errorf("%q.IsValid() = false", k)
		}
	}
	for _, k := range []Kind{"", "mount", "Telescope"} {
		if k.IsValid() {
			t.Errorf("%q.IsValid() = true", k)
		}
	}
}
