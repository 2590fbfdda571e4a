package builder

import (
	"fmt"
	"os"

	"github.com/reoring/croissant/internal/yamlstrict"
)

// Attributes are dataset properties kept in a YAML file, so that repeated
// generation runs do not need every value on the command line.
//
//	name: iris
//	description: Iris flower measurements
//	license: https://spdx.org/licenses/CC-BY-4.0.html
//	creator: R. A. Fisher
//	url: https://example.org/iris
//	cite_as: Fisher (1936)
//	version: 1.1.0
type Attributes struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	License     string `yaml:"license"`
	Creator     string `yaml:"creator"`
	URL         string `yaml:"url"`
	CiteAs      string `yaml:"cite_as"`
	Version     string `yaml:"version"`
}

// LoadAttributes reads an attribute file. Duplicate and unknown keys are errors.
func LoadAttributes(path string) (Attributes, error) {
	f, err := os.Open(path)
	if err != nil {
		return Attributes{}, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	var a Attributes
	if err := yamlstrict.Decode(f, &a); err != nil {
		return Attributes{}, fmt.Errorf("invalid attribute file %s: %w", path, err)
	}
	return a, nil
}

// Apply fills the empty fields of o from a. Values already set in o win.
func (a Attributes) Apply(o Options) Options {
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&o.Name, a.Name)
	fill(&o.Description, a.Description)
	fill(&o.License, a.License)
	fill(&o.Creator, a.Creator)
	fill(&o.URL, a.URL)
	fill(&o.CiteAs, a.CiteAs)
	fill(&o.Version, a.Version)
	return o
}
