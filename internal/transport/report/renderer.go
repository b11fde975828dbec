// Package report renders comparison reports as text, JSON or YAML.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/livmaynard/Telecalc/internal/domain"
	domreport "github.com/livmaynard/Telecalc/internal/domain/report"
)

// Format is a report output encoding.
type Format string

// Supported report formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultPrecision is the number of decimals used for fractional values in text output.
const DefaultPrecision = 2

// Renderer writes a report in one format.
type Renderer interface {
	Format() Format
	Render(w io.Writer, r domreport.Report) error
}

// NewRenderer returns the renderer for format. precision applies to text output;
// values below 1 fall back to DefaultPrecision.
func NewRenderer(format string, precision int) (Renderer, error) {
	if precision < 1 {
		precision = DefaultPrecision
	}
	switch Format(strings.ToLower(strings.TrimSpace(format))) {
	case FormatText, "":
		return &textRenderer{precision: precision}, nil
	case FormatJSON:
		return jsonRenderer{}, nil
	case FormatYAML:
		return yamlRenderer{}, nil
	default:
		return nil, fmt.Errorf("report format %q: %w", format, domain.ErrUnsupportedFormat)
	}
}

// Open returns the destination for path. Empty or "-" selects stdout,
// which is never closed by the returned closer.
func Open(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open report output: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
