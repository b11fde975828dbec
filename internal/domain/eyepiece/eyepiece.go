package eyepiece

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/livmaynard/Telecalc/internal/domain"
	"github.com/livmaynard/Telecalc/internal/domain/length"
)

// Eyepiece is an immutable value object describing an eyepiece.
type Eyepiece struct {
	name        string
	apparentFOV float64
	focalLength length.Length
}

// New validates and creates an Eyepiece.
// The apparent field of view is in degrees; both it and the focal length must be positive.
func New(name string, apparentFOV float64, focalLength length.Length) (Eyepiece, error) {
	if math.IsNaN(apparentFOV) || math.IsInf(apparentFOV, 0) || apparentFOV <= 0 {
		return Eyepiece{}, fmt.Errorf("eyepiece %q: apparent field %v: %w", name, apparentFOV, domain.ErrInvalidFieldOfView)
	}
	if focalLength.Millimeters() <= 0 {
		return Eyepiece{}, fmt.Errorf("eyepiece %q: focal length %s: %w", name, focalLength, domain.ErrInvalidFocalLength)
	}
	return Eyepiece{name: name, apparentFOV: apparentFOV, focalLength: focalLength}, nil
}

// Parse builds an Eyepiece from catalog text. The focal length defaults to millimeters.
func Parse(name, apparentFOVText, focalLengthText string) (Eyepiece, error) {
	afov, err := strconv.ParseFloat(strings.TrimSpace(apparentFOVText), 64)
	if err != nil {
		return Eyepiece{}, domain.NewFieldError("apparent_fov", apparentFOVText, domain.ErrMalformedCatalogEntry)
	}
	if afov <= 0 || math.IsNaN(afov) || math.IsInf(afov, 0) {
		return Eyepiece{}, domain.NewFieldError("apparent_fov", apparentFOVText, domain.ErrInvalidFieldOfView)
	}

	q, err := length.ParseQuantity(focalLengthText, length.Millimeters)
	if err != nil {
		return Eyepiece{}, domain.NewFieldError("focal_length", focalLengthText, err)
	}
	if q.Magnitude <= 0 {
		return Eyepiece{}, domain.NewFieldError("focal_length", focalLengthText, domain.ErrInvalidFocalLength)
	}
	focal, err := q.Length()
	if err != nil {
		return Eyepiece{}, domain.NewFieldError("focal_length", focalLengthText, err)
	}
	return New(name, afov, focal)
}

// Name returns the display label.
func (e Eyepiece) Name() string { return e.name }

// ApparentFOV returns the apparent field of view in degrees.
func (e Eyepiece) ApparentFOV() float64 { return e.apparentFOV }

// FocalLength returns the eyepiece focal length.
func (e Eyepiece) FocalLength() length.Length { return e.focalLength }
