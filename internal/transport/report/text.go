package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	domreport "github.com/livmaynard/Telecalc/internal/domain/report"
)

const (
	bannerWidth = 64
	nameWidth   = 25
	columnWidth = 15
)

type textRenderer struct {
	precision int
}

func (*textRenderer) Format() Format { return FormatText }

// Render writes one block per telescope: its metrics, then one row per eyepiece.
func (t *textRenderer) Render(w io.Writer, r domreport.Report) error {
	ew := &errWriter{w: w}
	p := t.precision

	for _, s := range r.Sections() {
		tel := s.Telescope()
		m := s.Metrics()

		banner := fmt.Sprintf("TELESCOPE %d ", s.Index()+1)
		ew.printf("%s%s\n", banner, strings.Repeat("=", max(bannerWidth-len(banner), 0)))
		ew.printf("Name: %s\n", tel.Name())
		ew.printf("Aperture: %.1f in (%.0f mm)\n", tel.Aperture().Inches(), tel.Aperture().Millimeters())
		ew.printf("Length: %.0f mm\n", tel.FocalLength().Millimeters())
		ew.printf("Focal ratio: %.1f\n", m.FocalRatio)
		ew.printf("Resolution: %.*f arcsec\n", p, m.ResolutionArcsec)
		ew.printf("The magnification range is %.0fx to %.0fx\n", m.MinMagnification, m.MaxMagnification)
		ew.printf("Shortest eyepiece: %.1f mm\n", m.ShortestUsefulEyepiece)
		ew.printf("Longest eyepiece: %.0f mm\n\n", m.LongestUsefulEyepiece)

		ew.printf("EYEPIECES%s\n", strings.Repeat(".", bannerWidth-len("EYEPIECES")))
		ew.printf("%-*s%-*s%-*s%-*s%s\n",
			nameWidth, "NAME", columnWidth, "MAG", columnWidth, "TFOV", columnWidth, "EXIT PUPIL", "USEFUL")
		for _, row := range s.Rows() {
			pm := row.Metrics()
			useful := "no"
			if pm.Useful() {
				useful = "yes"
			}
			ew.printf("%s%-*.0f%-*.*f%-*.*f%s\n",
				cell(row.Eyepiece().Name(), nameWidth),
				columnWidth, pm.Magnification(),
				columnWidth, p, pm.TrueField(),
				columnWidth, p, pm.ExitPupil(),
				useful,
			)
		}
		ew.printf("\n\n")
	}
	return ew.err
}

// cell left-aligns s in width columns, keeping at least one trailing space.
func cell(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s + " "
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
