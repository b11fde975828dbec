package pairing

import (
	"fmt"

	"github.com/livmaynard/Telecalc/internal/domain/eyepiece"
	"github.com/livmaynard/Telecalc/internal/domain/telescope"
)

// Grid is the full telescope x eyepiece cross-product, telescope-major.
type Grid struct {
	telescopes int
	eyepieces  int
	results    []Result
}

// EvaluateAll evaluates every pairing in catalog order.
func EvaluateAll(ts []telescope.Telescope, es []eyepiece.Eyepiece) (Grid, error) {
	results := make([]Result, 0, len(ts)*len(es))
	for ti, t := range ts {
		for ei, e := range es {
			m, err := Evaluate(t, e)
			if err != nil {
				return Grid{}, fmt.Errorf("pairing [%d,%d]: %w", ti, ei, err)
			}
			results = append(results, Result{telescopeIndex: ti, eyepieceIndex: ei, metrics: m})
		}
	}
	return Grid{telescopes: len(ts), eyepieces: len(es), results: results}, nil
}

// Len returns the number of pairings.
func (g Grid) Len() int { return len(g.results) }

// Dims returns the telescope and eyepiece counts.
func (g Grid) Dims() (telescopes, eyepieces int) { return g.telescopes, g.eyepieces }

// At returns the pairing of telescope ti with eyepiece ei.
func (g Grid) At(ti, ei int) (Result, bool) {
	if ti < 0 || ti >= g.telescopes || ei < 0 || ei >= g.eyepieces {
		return Result{}, false
	}
	return g.results[ti*g.eyepieces+ei], true
}

// Row returns every pairing of telescope ti, in eyepiece order.
func (g Grid) Row(ti int) []Result {
	if ti < 0 || ti >= g.telescopes {
		return nil
	}
	row := make([]Result, g.eyepieces)
	copy(row, g.results[ti*g.eyepieces:(ti+1)*g.eyepieces])
	return row
}

// Results returns a copy of all pairings in telescope-major order.
func (g Grid) Results() []Result {
	out := make([]Result, len(g.results))
	copy(out, g.results)
	return out
}
