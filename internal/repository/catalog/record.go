package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/livmaynard/Telecalc/internal/domain"
	domcat "github.com/livmaynard/Telecalc/internal/domain/catalog"
	"github.com/livmaynard/Telecalc/internal/domain/eyepiece"
	"github.com/livmaynard/Telecalc/internal/domain/telescope"
)

// Record is one raw catalog entry: a name plus two dimension fields as written.
// For telescopes Primary is the aperture and Secondary the focal length; for
// eyepieces they are the apparent field of view and the focal length.
type Record struct {
	Line      int
	Name      string
	Primary   string
	Secondary string
}

// EntryError locates a catalog failure in its source.
type EntryError struct {
	Source string
	Line   int
	Index  int // -1 when the failure is not tied to one entry
	Err    error
}

func (e *EntryError) Error() string {
	var b strings.Builder
	b.WriteString(e.Source)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	if e.Index >= 0 {
		fmt.Fprintf(&b, ": entry %d", e.Index+1)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *EntryError) Unwrap() error { return e.Err }

func malformed(source string, line, index int, format string, args ...any) error {
	return &EntryError{
		Source: source,
		Line:   line,
		Index:  index,
		Err:    fmt.Errorf(format+": %w", append(args, domain.ErrMalformedCatalogEntry)...),
	}
}

// BuildTelescopes constructs telescopes from records, failing on the first bad entry.
func BuildTelescopes(source string, recs []Record) ([]telescope.Telescope, error) {
	out := make([]telescope.Telescope, 0, len(recs))
	for i, r := range recs {
		if r.Name == "" {
			return nil, malformed(source, r.Line, i, "name is required")
		}
		t, err := telescope.Parse(r.Name, r.Primary, r.Secondary)
		if err != nil {
			return nil, &EntryError{Source: source, Line: r.Line, Index: i, Err: err}
		}
		out = append(out, t)
	}
	return out, nil
}

// BuildEyepieces constructs eyepieces from records, failing on the first bad entry.
func BuildEyepieces(source string, recs []Record) ([]eyepiece.Eyepiece, error) {
	out := make([]eyepiece.Eyepiece, 0, len(recs))
	for i, r := range recs {
		if r.Name == "" {
			return nil, malformed(source, r.Line, i, "name is required")
		}
		e, err := eyepiece.Parse(r.Name, r.Primary, r.Secondary)
		if err != nil {
			return nil, &EntryError{Source: source, Line: r.Line, Index: i, Err: err}
		}
		out = append(out, e)
	}
	return out, nil
}

// columns returns the header names for the two dimension fields of kind.
func columns(kind domcat.Kind) (primary, secondary string, err error) {
	switch kind {
	case domcat.Telescopes:
		return "aperture", "focal_length", nil
	case domcat.Eyepieces:
		return "apparent_fov", "focal_length", nil
	default:
		return "", "", errors.New("unknown catalog kind " + string(kind))
	}
}
