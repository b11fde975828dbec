package telecalc

import "github.com/livmaynard/Telecalc/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidUnit           = domain.ErrInvalidUnit
	ErrInvalidLength         = domain.ErrInvalidLength
	ErrInvalidAperture       = domain.ErrInvalidAperture
	ErrInvalidFocalLength    = domain.ErrInvalidFocalLength
	ErrInvalidFieldOfView    = domain.ErrInvalidFieldOfView
	ErrMalformedCatalogEntry = domain.ErrMalformedCatalogEntry
	ErrEmptyCatalog          = domain.ErrEmptyCatalog
	ErrUnsupportedFormat     = domain.ErrUnsupportedFormat
)
