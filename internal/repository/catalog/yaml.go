package catalog

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	domcat "github.com/livmaynard/Telecalc/internal/domain/catalog"
)

// yamlDocument holds both entity lists; a single file may carry either or both.
type yamlDocument struct {
	Telescopes []yaml.Node `yaml:"telescopes"`
	Eyepieces  []yaml.Node `yaml:"eyepieces"`
}

// yamlEntry keeps dimension values as nodes so that both `8` and `8in` are accepted.
type yamlEntry struct {
	Name        string    `yaml:"name"`
	Aperture    yaml.Node `yaml:"aperture"`
	ApparentFOV yaml.Node `yaml:"apparent_fov"`
	FocalLength yaml.Node `yaml:"focal_length"`
}

func readYAML(r io.Reader, source string, kind domcat.Kind) ([]Record, error) {
	var doc yamlDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, malformed(source, 0, -1, "parse yaml: %v", err)
	}

	nodes := doc.Telescopes
	if kind == domcat.Eyepieces {
		nodes = doc.Eyepieces
	}

	recs := make([]Record, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		var e yamlEntry
		if err := n.Decode(&e); err != nil {
			return nil, malformed(source, n.Line, i, "decode %s: %v", kind, err)
		}

		primary := &e.Aperture
		primaryKey := "aperture"
		if kind == domcat.Eyepieces {
			primary = &e.ApparentFOV
			primaryKey = "apparent_fov"
		}
		if err := requireScalar(primary, primaryKey); err != nil {
			return nil, malformed(source, n.Line, i, "%v", err)
		}
		if err := requireScalar(&e.FocalLength, "focal_length"); err != nil {
			return nil, malformed(source, n.Line, i, "%v", err)
		}

		recs = append(recs, Record{
			Line:      n.Line,
			Name:      e.Name,
			Primary:   primary.Value,
			Secondary: e.FocalLength.Value,
		})
	}
	return recs, nil
}

func requireScalar(n *yaml.Node, key string) error {
	if n.Kind == 0 {
		return fmt.Errorf("%s is required", key)
	}
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("%s must be a scalar", key)
	}
	return nil
}
