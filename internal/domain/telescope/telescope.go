package telescope

import (
	"fmt"

	"github.com/livmaynard/Telecalc/internal/domain"
	"github.com/livmaynard/Telecalc/internal/domain/length"
)

// Rule-of-thumb constants, all in millimeter terms.
const (
	// ResolutionConstant over the aperture in mm gives the resolving limit in arcseconds
	// (Dawes-style approximation).
	ResolutionConstant = 120.0
	// MaxMagnificationPerMM is the highest useful power per millimeter of aperture.
	MaxMagnificationPerMM = 2.0
	// MaxExitPupilMM is the dark-adapted eye pupil; it bounds the lowest useful power.
	MaxExitPupilMM = 7.0
)

// Telescope is an immutable value object holding validated optical parameters.
type Telescope struct {
	name        string
	aperture    length.Length
	focalLength length.Length
}

// New validates and creates a Telescope.
// Aperture and focal length must both be positive.
func New(name string, aperture, focalLength length.Length) (Telescope, error) {
	if aperture.Millimeters() <= 0 {
		return Telescope{}, fmt.Errorf("telescope %q: aperture %s: %w", name, aperture, domain.ErrInvalidAperture)
	}
	if focalLength.Millimeters() <= 0 {
		return Telescope{}, fmt.Errorf("telescope %q: focal length %s: %w", name, focalLength, domain.ErrInvalidFocalLength)
	}
	return Telescope{name: name, aperture: aperture, focalLength: focalLength}, nil
}

// Parse builds a Telescope from catalog text. The aperture defaults to inches and the
// focal length to millimeters; either may carry an explicit unit suffix.
func Parse(name, apertureText, focalLengthText string) (Telescope, error) {
	aq, err := length.ParseQuantity(apertureText, length.Inches)
	if err != nil {
		return Telescope{}, domain.NewFieldError("aperture", apertureText, err)
	}
	if aq.Magnitude <= 0 {
		return Telescope{}, domain.NewFieldError("aperture", apertureText, domain.ErrInvalidAperture)
	}
	fq, err := length.ParseQuantity(focalLengthText, length.Millimeters)
	if err != nil {
		return Telescope{}, domain.NewFieldError("focal_length", focalLengthText, err)
	}
	if fq.Magnitude <= 0 {
		return Telescope{}, domain.NewFieldError("focal_length", focalLengthText, domain.ErrInvalidFocalLength)
	}

	aperture, err := aq.Length()
	if err != nil {
		return Telescope{}, domain.NewFieldError("aperture", apertureText, err)
	}
	focal, err := fq.Length()
	if err != nil {
		return Telescope{}, domain.NewFieldError("focal_length", focalLengthText, err)
	}
	return New(name, aperture, focal)
}

// Name returns the display label.
func (t Telescope) Name() string { return t.name }

// Aperture returns the primary optic diameter.
func (t Telescope) Aperture() length.Length { return t.aperture }

// FocalLength returns the optical tube focal length.
func (t Telescope) FocalLength() length.Length { return t.focalLength }

// FocalRatio returns the f-number.
func (t Telescope) FocalRatio() float64 {
	return t.focalLength.Millimeters() / t.aperture.Millimeters()
}

// Resolution returns the smallest resolvable angle in arcseconds.
func (t Telescope) Resolution() float64 {
	return ResolutionConstant / t.aperture.Millimeters()
}

// MaxMagnification returns the upper bound on useful magnification.
func (t Telescope) MaxMagnification() float64 {
	return MaxMagnificationPerMM * t.aperture.Millimeters()
}

// MinMagnification returns the lower bound on useful magnification.
func (t Telescope) MinMagnification() float64 {
	return t.aperture.Millimeters() / MaxExitPupilMM
}

// LongestUsefulEyepiece returns the longest useful eyepiece focal length in mm.
func (t Telescope) LongestUsefulEyepiece() float64 {
	return MaxExitPupilMM * t.FocalRatio()
}

// ShortestUsefulEyepiece returns the shortest useful eyepiece focal length in mm.
func (t Telescope) ShortestUsefulEyepiece() float64 {
	return t.focalLength.Millimeters() / t.MaxMagnification()
}

// Metrics is a snapshot of every derived telescope metric.
type Metrics struct {
	FocalRatio             float64
	ResolutionArcsec       float64
	MinMagnification       float64
	MaxMagnification       float64
	ShortestUsefulEyepiece float64
	LongestUsefulEyepiece  float64
}

// Metrics computes all derived metrics at once.
func (t Telescope) Metrics() Metrics {
	return Metrics{
		FocalRatio:             t.FocalRatio(),
		ResolutionArcsec:       t.Resolution(),
		MinMagnification:       t.MinMagnification(),
		MaxMagnification:       t.MaxMagnification(),
		ShortestUsefulEyepiece: t.ShortestUsefulEyepiece(),
		LongestUsefulEyepiece:  t.LongestUsefulEyepiece(),
	}
}
