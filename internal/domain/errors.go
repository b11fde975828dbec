package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidUnit signals a length unit other than inches or millimeters.
	ErrInvalidUnit = errors.New("invalid unit")
	// ErrInvalidLength signals a negative or non-finite length.
	ErrInvalidLength = errors.New("invalid length")
	// ErrInvalidAperture signals a telescope aperture that is not positive.
	ErrInvalidAperture = errors.New("invalid aperture")
	// ErrInvalidFocalLength signals a telescope or eyepiece focal length that is not positive.
	ErrInvalidFocalLength = errors.New("invalid focal length")
	// ErrInvalidFieldOfView signals an apparent field of view that is not positive.
	ErrInvalidFieldOfView = errors.New("invalid apparent field of view")
	// ErrMalformedCatalogEntry signals a catalog entry with missing fields or non-numeric values.
	ErrMalformedCatalogEntry = errors.New("malformed catalog entry")

	// ErrEmptyCatalog signals a report with no comparison run behind it.
	ErrEmptyCatalog = errors.New("empty catalog")
	// ErrUnsupportedFormat signals an unknown catalog or report format.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// codes maps sentinel errors to stable identifiers, checked in order.
var codes = []struct {
	err  error
	code string
}{
	{ErrInvalidUnit, "invalid_unit"},
	{ErrInvalidLength, "invalid_length"},
	{ErrInvalidAperture, "invalid_aperture"},
	{ErrInvalidFocalLength, "invalid_focal_length"},
	{ErrInvalidFieldOfView, "invalid_field_of_view"},
	{ErrMalformedCatalogEntry, "malformed_entry"},
	{ErrEmptyCatalog, "empty_catalog"},
	{ErrUnsupportedFormat, "unsupported_format"},
}

// ErrorCode returns a snake_case code for err, suitable for metric labels.
// Returns "" for nil and "internal" for errors outside the domain taxonomy.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "internal"
}

// FieldError wraps a domain error with the name of the offending field and its raw value.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Err.Error())
}

func (e *FieldError) Unwrap() error { return e.Err }

// NewFieldError creates a field error.
func NewFieldError(field, value string, err error) error {
	return &FieldError{Field: field, Value: value, Err: err}
}
