// Package pairing evaluates telescope and eyepiece combinations.
package pairing

import (
	"fmt"

	"github.com/livmaynard/Telecalc/internal/domain"
	"github.com/livmaynard/Telecalc/internal/domain/eyepiece"
	"github.com/livmaynard/Telecalc/internal/domain/telescope"
)

// Metrics is what a single telescope+eyepiece combination delivers.
type Metrics struct {
	magnification float64
	trueField     float64
	exitPupil     float64
	useful        bool
}

// Magnification returns telescope focal length over eyepiece focal length.
func (m Metrics) Magnification() float64 { return m.magnification }

// TrueField returns the true field of view in degrees.
func (m Metrics) TrueField() float64 { return m.trueField }

// ExitPupil returns the exit pupil diameter in mm.
func (m Metrics) ExitPupil() float64 { return m.exitPupil }

// Useful reports whether the magnification lies within the telescope's useful range.
func (m Metrics) Useful() bool { return m.useful }

// Evaluate computes the metrics of one pairing.
// Zero-value entities are rejected instead of producing Inf or NaN.
func Evaluate(t telescope.Telescope, e eyepiece.Eyepiece) (Metrics, error) {
	if t.Aperture().Millimeters() <= 0 {
		return Metrics{}, fmt.Errorf("telescope %q: %w", t.Name(), domain.ErrInvalidAperture)
	}
	if t.FocalLength().Millimeters() <= 0 {
		return Metrics{}, fmt.Errorf("telescope %q: %w", t.Name(), domain.ErrInvalidFocalLength)
	}
	if e.FocalLength().Millimeters() <= 0 {
		return Metrics{}, fmt.Errorf("eyepiece %q: %w", e.Name(), domain.ErrInvalidFocalLength)
	}

	mag := t.FocalLength().Millimeters() / e.FocalLength().Millimeters()
	return Metrics{
		magnification: mag,
		trueField:     e.ApparentFOV() / mag,
		exitPupil:     t.Aperture().Millimeters() / mag,
		useful:        mag >= t.MinMagnification() && mag <= t.MaxMagnification(),
	}, nil
}

// Result is one cell of the pairing grid.
type Result struct {
	telescopeIndex int
	eyepieceIndex  int
	metrics        Metrics
}

// TelescopeIndex returns the telescope's position in its catalog.
func (r Result) TelescopeIndex() int { return r.telescopeIndex }

// EyepieceIndex returns the eyepiece's position in its catalog.
func (r Result) EyepieceIndex() int { return r.eyepieceIndex }

// Metrics returns the pairing metrics.
func (r Result) Metrics() Metrics { return r.metrics }
