package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/livmaynard/Telecalc/internal/domain"
)

// Format is a catalog file encoding.
type Format string

// Supported catalog formats.
const (
	// FormatText is the line-oriented format: an entity count, then three lines per entity.
	FormatText    Format = "text"
	FormatYAML    Format = "yaml"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// IsValid checks if the format is one of the supported values.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatYAML, FormatCSV, FormatParquet:
		return true
	}
	return false
}

// ParseFormat validates a format name. Empty means auto-detect.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" || f.IsValid() {
		return f, nil
	}
	return "", fmt.Errorf("catalog format %q: %w", s, domain.ErrUnsupportedFormat)
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".cat", "":
		return FormatText, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("cannot detect catalog format of %s: %w", path, domain.ErrUnsupportedFormat)
	}
}
