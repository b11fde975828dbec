package report

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	domreport "github.com/livmaynard/Telecalc/internal/domain/report"
)

type document struct {
	RunID       string              `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time           `json:"generated_at" yaml:"generated_at"`
	Pairings    int                 `json:"pairings" yaml:"pairings"`
	Telescopes  []telescopeDocument `json:"telescopes" yaml:"telescopes"`
}

type telescopeDocument struct {
	Index                    int               `json:"index" yaml:"index"`
	Name                     string            `json:"name" yaml:"name"`
	ApertureMM               float64           `json:"aperture_mm" yaml:"aperture_mm"`
	ApertureIn               float64           `json:"aperture_in" yaml:"aperture_in"`
	FocalLengthMM            float64           `json:"focal_length_mm" yaml:"focal_length_mm"`
	FocalRatio               float64           `json:"focal_ratio" yaml:"focal_ratio"`
	ResolutionArcsec         float64           `json:"resolution_arcsec" yaml:"resolution_arcsec"`
	MinMagnification         float64           `json:"min_magnification" yaml:"min_magnification"`
	MaxMagnification         float64           `json:"max_magnification" yaml:"max_magnification"`
	ShortestUsefulEyepieceMM float64           `json:"shortest_useful_eyepiece_mm" yaml:"shortest_useful_eyepiece_mm"`
	LongestUsefulEyepieceMM  float64           `json:"longest_useful_eyepiece_mm" yaml:"longest_useful_eyepiece_mm"`
	Eyepieces                []pairingDocument `json:"eyepieces" yaml:"eyepieces"`
}

type pairingDocument struct {
	Index         int     `json:"index" yaml:"index"`
	Name          string  `json:"name" yaml:"name"`
	ApparentFOV   float64 `json:"apparent_fov_deg" yaml:"apparent_fov_deg"`
	FocalLengthMM float64 `json:"focal_length_mm" yaml:"focal_length_mm"`
	Magnification float64 `json:"magnification" yaml:"magnification"`
	TrueFieldDeg  float64 `json:"true_field_deg" yaml:"true_field_deg"`
	ExitPupilMM   float64 `json:"exit_pupil_mm" yaml:"exit_pupil_mm"`
	Useful        bool    `json:"useful" yaml:"useful"`
}

func toDocument(r domreport.Report) document {
	doc := document{
		RunID:       r.RunID(),
		GeneratedAt: r.GeneratedAt().UTC(),
		Pairings:    r.Pairings(),
		Telescopes:  make([]telescopeDocument, 0, len(r.Sections())),
	}
	for _, s := range r.Sections() {
		tel := s.Telescope()
		m := s.Metrics()
		td := telescopeDocument{
			Index:                    s.Index(),
			Name:                     tel.Name(),
			ApertureMM:               tel.Aperture().Millimeters(),
			ApertureIn:               tel.Aperture().Inches(),
			FocalLengthMM:            tel.FocalLength().Millimeters(),
			FocalRatio:               m.FocalRatio,
			ResolutionArcsec:         m.ResolutionArcsec,
			MinMagnification:         m.MinMagnification,
			MaxMagnification:         m.MaxMagnification,
			ShortestUsefulEyepieceMM: m.ShortestUsefulEyepiece,
			LongestUsefulEyepieceMM:  m.LongestUsefulEyepiece,
			Eyepieces:                make([]pairingDocument, 0, len(s.Rows())),
		}
		for _, row := range s.Rows() {
			ep := row.Eyepiece()
			pm := row.Metrics()
			td.Eyepieces = append(td.Eyepieces, pairingDocument{
				Index:         row.Index(),
				Name:          ep.Name(),
				ApparentFOV:   ep.ApparentFOV(),
				FocalLengthMM: ep.FocalLength().Millimeters(),
				Magnification: pm.Magnification(),
				TrueFieldDeg:  pm.TrueField(),
				ExitPupilMM:   pm.ExitPupil(),
				Useful:        pm.Useful(),
			})
		}
		doc.Telescopes = append(doc.Telescopes, td)
	}
	return doc
}

type jsonRenderer struct{}

func (jsonRenderer) Format() Format { return FormatJSON }

func (jsonRenderer) Render(w io.Writer, r domreport.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(r)); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	return nil
}

type yamlRenderer struct{}

func (yamlRenderer) Format() Format { return FormatYAML }

func (yamlRenderer) Render(w io.Writer, r domreport.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDocument(r)); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush yaml report: %w", err)
	}
	return nil
}
