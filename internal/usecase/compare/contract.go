package compare

import (
	"context"
	"time"

	"github.com/livmaynard/Telecalc/internal/domain/eyepiece"
	"github.com/livmaynard/Telecalc/internal/domain/telescope"
)

// CatalogSource loads the telescope and eyepiece lists.
type CatalogSource interface {
	LoadTelescopes(ctx context.Context) ([]telescope.Telescope, error)
	LoadEyepieces(ctx context.Context) ([]eyepiece.Eyepiece, error)
}

// Recorder receives run measurements.
type Recorder interface {
	ObserveCatalog(kind string, n int)
	ObserveRejected(kind, reason string)
	ObserveEvaluation(pairings, useful int, d time.Duration)
}
