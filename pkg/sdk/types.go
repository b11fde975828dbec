package telecalc

import (
	"time"

	domreport "github.com/livmaynard/Telecalc/internal/domain/report"
)

// Unit is a length unit.
type Unit string

// Unit constants.
const (
	Inches      Unit = "in"
	Millimeters Unit = "mm"
)

// Length is a magnitude tagged with its unit.
type Length struct {
	Value float64
	Unit  Unit
}

// In returns a length in inches.
func In(v float64) Length { return Length{Value: v, Unit: Inches} }

// MM returns a length in millimeters.
func MM(v float64) Length { return Length{Value: v, Unit: Millimeters} }

// TelescopeSpec describes a telescope to evaluate.
type TelescopeSpec struct {
	Name        string
	Aperture    Length
	FocalLength Length
}

// EyepieceSpec describes an eyepiece to evaluate. ApparentFOV is in degrees.
type EyepieceSpec struct {
	Name        string
	ApparentFOV float64
	FocalLength Length
}

// TelescopeMetrics holds the derived properties of one telescope.
type TelescopeMetrics struct {
	Name                     string
	ApertureMM               float64
	ApertureIn               float64
	FocalLengthMM            float64
	FocalRatio               float64
	ResolutionArcsec         float64
	MinMagnification         float64
	MaxMagnification         float64
	ShortestUsefulEyepieceMM float64
	LongestUsefulEyepieceMM  float64
}

// Pairing holds the derived properties of one telescope and eyepiece combination.
type Pairing struct {
	TelescopeIndex int
	EyepieceIndex  int
	Telescope      string
	Eyepiece       string
	Magnification  float64
	TrueFieldDeg   float64
	ExitPupilMM    float64
	Useful         bool
}

// TelescopeReport is one telescope with its pairings in eyepiece order.
type TelescopeReport struct {
	TelescopeMetrics
	Pairings []Pairing
}

// Report is the full comparison grid.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Telescopes  []TelescopeReport

	rep domreport.Report
}

// Pairings returns every pairing, telescope-major.
func (r Report) Pairings() []Pairing {
	var out []Pairing
	for _, t := range r.Telescopes {
		out = append(out, t.Pairings...)
	}
	return out
}
