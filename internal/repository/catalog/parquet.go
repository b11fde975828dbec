package catalog

import (
	"bytes"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	domcat "github.com/livmaynard/Telecalc/internal/domain/catalog"
)

// ParquetEntry is the row layout of a parquet catalog. Dimensions are strings
// so that unit suffixes survive; a file holds a single entity kind.
type ParquetEntry struct {
	Name        string `parquet:"name"`
	Aperture    string `parquet:"aperture,optional"`
	ApparentFOV string `parquet:"apparent_fov,optional"`
	FocalLength string `parquet:"focal_length"`
}

// WriteParquet encodes entries as a parquet catalog.
func WriteParquet(w io.Writer, entries []ParquetEntry) error {
	if err := parquet.Write(w, entries); err != nil {
		return fmt.Errorf("write parquet catalog: %w", err)
	}
	return nil
}

func readParquet(r io.Reader, source string, kind domcat.Kind) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	rows, err := parquet.Read[ParquetEntry](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, malformed(source, 0, -1, "parse parquet: %v", err)
	}

	recs := make([]Record, 0, len(rows))
	for i, row := range rows {
		primary := row.Aperture
		if kind == domcat.Eyepieces {
			primary = row.ApparentFOV
		}
		// Parquet has no lines; the 1-based row number stands in.
		recs = append(recs, Record{
			Line:      i + 1,
			Name:      row.Name,
			Primary:   primary,
			Secondary: row.FocalLength,
		})
	}
	return recs, nil
}
