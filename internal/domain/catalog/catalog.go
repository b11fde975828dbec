package catalog

import (
	"github.com/livmaynard/Telecalc/internal/domain/eyepiece"
	"github.com/livmaynard/Telecalc/internal/domain/telescope"
)

// Kind names the entity type held by a catalog.
type Kind string

// Catalog kinds.
const (
	Telescopes Kind = "telescope"
	Eyepieces  Kind = "eyepiece"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Telescopes || k == Eyepieces
}

// Catalog is an ordered pair of telescope and eyepiece sequences.
// Order is preserved from input; names need not be unique.
type Catalog struct {
	telescopes []telescope.Telescope
	eyepieces  []eyepiece.Eyepiece
}

// New creates a Catalog holding copies of ts and es. Either sequence may be
// empty, in which case the catalog has no pairings.
func New(ts []telescope.Telescope, es []eyepiece.Eyepiece) Catalog {
	return Catalog{
		telescopes: append([]telescope.Telescope(nil), ts...),
		eyepieces:  append([]eyepiece.Eyepiece(nil), es...),
	}
}

// Telescopes returns the telescopes in catalog order.
func (c Catalog) Telescopes() []telescope.Telescope {
	return append([]telescope.Telescope(nil), c.telescopes...)
}

// Eyepieces returns the eyepieces in catalog order.
func (c Catalog) Eyepieces() []eyepiece.Eyepiece {
	return append([]eyepiece.Eyepiece(nil), c.eyepieces...)
}

// Pairings returns the size of the cross-product.
func (c Catalog) Pairings() int { return len(c.telescopes) * len(c.eyepieces) }
