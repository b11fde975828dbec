// Package length normalizes physical lengths given in inches or millimeters.
// Millimeters are the canonical unit.
package length

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/livmaynard/Telecalc/internal/domain"
)

// Conversion constants. The two are reciprocal to within floating-point rounding.
const (
	MillimetersPerInch  = 25.4
	InchesPerMillimeter = 0.039370
)

// Unit is a length unit tag.
type Unit string

// Supported units.
const (
	Inches      Unit = "in"
	Millimeters Unit = "mm"
)

// IsValid checks if the unit is one of the supported values.
func (u Unit) IsValid() bool {
	return u == Inches || u == Millimeters
}

var unitAliases = map[string]Unit{
	"in":          Inches,
	"inch":        Inches,
	"inches":      Inches,
	`"`:           Inches,
	"mm":          Millimeters,
	"millimeter":  Millimeters,
	"millimeters": Millimeters,
	"millimetre":  Millimeters,
	"millimetres": Millimeters,
}

// ParseUnit resolves a unit tag or one of its spelled-out aliases (case-insensitive).
func ParseUnit(text string) (Unit, error) {
	u, ok := unitAliases[strings.ToLower(strings.TrimSpace(text))]
	if !ok {
		return "", fmt.Errorf("unit %q: %w", text, domain.ErrInvalidUnit)
	}
	return u, nil
}

// Convert returns magnitude expressed in millimeters.
func Convert(magnitude float64, unit Unit) (float64, error) {
	switch unit {
	case Inches:
		return magnitude / InchesPerMillimeter, nil
	case Millimeters:
		return magnitude, nil
	default:
		return 0, fmt.Errorf("unit %q: %w", unit, domain.ErrInvalidUnit)
	}
}

// FromMillimeters is the inverse of Convert.
func FromMillimeters(mm float64, unit Unit) (float64, error) {
	switch unit {
	case Inches:
		return mm * InchesPerMillimeter, nil
	case Millimeters:
		return mm, nil
	default:
		return 0, fmt.Errorf("unit %q: %w", unit, domain.ErrInvalidUnit)
	}
}

// Length is an immutable nonnegative length stored in millimeters.
type Length struct {
	mm float64
}

// New validates magnitude and converts it to a Length.
func New(magnitude float64, unit Unit) (Length, error) {
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return Length{}, fmt.Errorf("magnitude %v is not finite: %w", magnitude, domain.ErrInvalidLength)
	}
	if magnitude < 0 {
		return Length{}, fmt.Errorf("magnitude %v is negative: %w", magnitude, domain.ErrInvalidLength)
	}
	mm, err := Convert(magnitude, unit)
	if err != nil {
		return Length{}, err
	}
	return Length{mm: mm}, nil
}

// FromMM creates a Length from a millimeter magnitude.
func FromMM(mm float64) (Length, error) { return New(mm, Millimeters) }

// Millimeters returns the canonical magnitude.
func (l Length) Millimeters() float64 { return l.mm }

// Inches returns the magnitude in inches.
func (l Length) Inches() float64 { return l.mm * InchesPerMillimeter }

// In returns the magnitude expressed in unit. Unknown units yield millimeters.
func (l Length) In(unit Unit) float64 {
	v, err := FromMillimeters(l.mm, unit)
	if err != nil {
		return l.mm
	}
	return v
}

// IsZero reports whether the length is zero.
func (l Length) IsZero() bool { return l.mm == 0 }

func (l Length) String() string {
	return strconv.FormatFloat(l.mm, 'f', -1, 64) + " mm"
}

// Quantity is a parsed magnitude with its unit, before validation.
type Quantity struct {
	Magnitude float64
	Unit      Unit
}

// ParseQuantity parses an integer or real magnitude with an optional unit suffix,
// e.g. "8", "8in", "203.2 mm". Without a suffix, defaultUnit applies.
func ParseQuantity(text string, defaultUnit Unit) (Quantity, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Quantity{}, fmt.Errorf("empty value: %w", domain.ErrMalformedCatalogEntry)
	}

	cut := strings.LastIndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '"'
	}) + 1
	num, suffix := strings.TrimSpace(s[:cut]), s[cut:]
	if !strings.ContainsFunc(num, unicode.IsDigit) {
		return Quantity{}, fmt.Errorf("%q is not a number: %w", text, domain.ErrMalformedCatalogEntry)
	}

	unit := defaultUnit
	if suffix != "" {
		u, err := ParseUnit(suffix)
		if err != nil {
			// "8e" is a truncated exponent, not a unit.
			if strings.EqualFold(suffix, "e") && cut == len(num) {
				return Quantity{}, fmt.Errorf("%q is not a number: %w", text, domain.ErrMalformedCatalogEntry)
			}
			return Quantity{}, err
		}
		unit = u
	}
	if !unit.IsValid() {
		return Quantity{}, fmt.Errorf("unit %q: %w", unit, domain.ErrInvalidUnit)
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Quantity{}, fmt.Errorf("%q is not a number: %w", text, domain.ErrMalformedCatalogEntry)
	}
	return Quantity{Magnitude: v, Unit: unit}, nil
}

// Length converts the quantity into a validated Length.
func (q Quantity) Length() (Length, error) {
	return New(q.Magnitude, q.Unit)
}
