package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	domcat "github.com/livmaynard/Telecalc/internal/domain/catalog"
	"github.com/livmaynard/Telecalc/internal/domain/eyepiece"
	"github.com/livmaynard/Telecalc/internal/domain/telescope"
)

// ReadRecords decodes raw records of kind from r.
func ReadRecords(r io.Reader, format Format, kind domcat.Kind, source string) ([]Record, error) {
	switch format {
	case FormatText:
		return readText(r, source)
	case FormatYAML:
		return readYAML(r, source, kind)
	case FormatCSV:
		return readCSV(r, source, kind)
	case FormatParquet:
		return readParquet(r, source, kind)
	default:
		_, err := ParseFormat(string(format))
		if err == nil {
			err = fmt.Errorf("catalog format must be set for %s", source)
		}
		return nil, err
	}
}

// FileSource loads telescope and eyepiece catalogs from files.
// An empty format selects the format by file extension.
type FileSource struct {
	telescopesPath string
	eyepiecesPath  string
	format         Format
}

// NewFileSource creates a file-backed catalog source.
func NewFileSource(telescopesPath, eyepiecesPath string, format Format) *FileSource {
	return &FileSource{telescopesPath: telescopesPath, eyepiecesPath: eyepiecesPath, format: format}
}

// LoadTelescopes reads and validates the telescope catalog.
func (s *FileSource) LoadTelescopes(ctx context.Context) ([]telescope.Telescope, error) {
	recs, err := s.read(ctx, s.telescopesPath, domcat.Telescopes)
	if err != nil {
		return nil, err
	}
	return BuildTelescopes(s.telescopesPath, recs)
}

// LoadEyepieces reads and validates the eyepiece catalog.
func (s *FileSource) LoadEyepieces(ctx context.Context) ([]eyepiece.Eyepiece, error) {
	recs, err := s.read(ctx, s.eyepiecesPath, domcat.Eyepieces)
	if err != nil {
		return nil, err
	}
	return BuildEyepieces(s.eyepiecesPath, recs)
}

func (s *FileSource) read(ctx context.Context, path string, kind domcat.Kind) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := s.format
	if format == "" {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open %s catalog: %w", kind, err)
	}
	defer func() { _ = f.Close() }()

	return ReadRecords(f, format, kind, path)
}
