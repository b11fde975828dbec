// Package report assembles catalog entities and pairing results into the
// per-telescope layout consumed by renderers.
package report

import (
	"fmt"
	"time"

	"github.com/livmaynard/Telecalc/internal/domain/catalog"
	"github.com/livmaynard/Telecalc/internal/domain/eyepiece"
	"github.com/livmaynard/Telecalc/internal/domain/pairing"
	"github.com/livmaynard/Telecalc/internal/domain/telescope"
)

// Row is one eyepiece evaluated against a section's telescope.
type Row struct {
	index    int
	eyepiece eyepiece.Eyepiece
	metrics  pairing.Metrics
}

// Index returns the eyepiece's catalog position.
func (r Row) Index() int { return r.index }

// Eyepiece returns the evaluated eyepiece.
func (r Row) Eyepiece() eyepiece.Eyepiece { return r.eyepiece }

// Metrics returns the pairing metrics.
func (r Row) Metrics() pairing.Metrics { return r.metrics }

// Section groups a telescope with its metrics and its pairing rows.
type Section struct {
	index     int
	telescope telescope.Telescope
	metrics   telescope.Metrics
	rows      []Row
}

// Index returns the telescope's catalog position.
func (s Section) Index() int { return s.index }

// Telescope returns the section's telescope.
func (s Section) Telescope() telescope.Telescope { return s.telescope }

// Metrics returns the telescope metrics snapshot.
func (s Section) Metrics() telescope.Metrics { return s.metrics }

// Rows returns the pairing rows in eyepiece catalog order.
func (s Section) Rows() []Row { return s.rows }

// Report is the full comparison output of one run.
type Report struct {
	runID       string
	generatedAt time.Time
	sections    []Section
	pairings    int
}

// New builds a Report. The grid must have been evaluated from the same catalog.
func New(runID string, generatedAt time.Time, c catalog.Catalog, g pairing.Grid) (Report, error) {
	ts, es := c.Telescopes(), c.Eyepieces()
	if tn, en := g.Dims(); tn != len(ts) || en != len(es) {
		return Report{}, fmt.Errorf("grid is %dx%d, catalog is %dx%d", tn, en, len(ts), len(es))
	}

	sections := make([]Section, len(ts))
	for ti, t := range ts {
		rows := make([]Row, 0, len(es))
		for _, r := range g.Row(ti) {
			rows = append(rows, Row{
				index:    r.EyepieceIndex(),
				eyepiece: es[r.EyepieceIndex()],
				metrics:  r.Metrics(),
			})
		}
		sections[ti] = Section{index: ti, telescope: t, metrics: t.Metrics(), rows: rows}
	}

	return Report{runID: runID, generatedAt: generatedAt, sections: sections, pairings: g.Len()}, nil
}

// RunID returns the identifier of the run that produced the report.
func (r Report) RunID() string { return r.runID }

// GeneratedAt returns the report timestamp.
func (r Report) GeneratedAt() time.Time { return r.generatedAt }

// Sections returns one section per telescope in catalog order.
func (r Report) Sections() []Section { return r.sections }

// Pairings returns the number of evaluated pairings.
func (r Report) Pairings() int { return r.pairings }
