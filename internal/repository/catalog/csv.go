package catalog

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	domcat "github.com/livmaynard/Telecalc/internal/domain/catalog"
)

// headerAliases maps accepted header spellings onto canonical column names.
var headerAliases = map[string]string{
	"name":         "name",
	"aperture":     "aperture",
	"focal_length": "focal_length",
	"focal length": "focal_length",
	"length":       "focal_length",
	"apparent_fov": "apparent_fov",
	"afov":         "apparent_fov",
}

func readCSV(r io.Reader, source string, kind domcat.Kind) ([]Record, error) {
	primaryCol, secondaryCol, err := columns(kind)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, malformed(source, 0, -1, "read csv header: %v", err)
	}

	index := make(map[string]int)
	for i, h := range header {
		if canonical, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			index[canonical] = i
		}
	}
	for _, req := range []string{"name", primaryCol, secondaryCol} {
		if _, ok := index[req]; !ok {
			return nil, malformed(source, 1, -1, "missing required csv header %q", req)
		}
	}

	var recs []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, malformed(source, line, len(recs), "read csv: %v", err)
		}
		line, _ := reader.FieldPos(0)

		get := func(col string) string {
			if i := index[col]; i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		recs = append(recs, Record{
			Line:      line,
			Name:      get("name"),
			Primary:   get(primaryCol),
			Secondary: get(secondaryCol),
		})
	}
	return recs, nil
}
