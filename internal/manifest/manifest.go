// Package manifest persists final slice sets as YAML documents: the handoff
// format toward downstream editors and exporters.
package manifest

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Tera-Dark/ArtClipper-AI/internal/analyzer"
)

// Manifest records the detection output of one batch run.
type Manifest struct {
	Version string `yaml:"version"`
	Items   []Item `yaml:"items"`
}

// Item is the final region set of one source item.
type Item struct {
	Name   string            `yaml:"name"`
	Width  int               `yaml:"width"`
	Height int               `yaml:"height"`
	Error  string            `yaml:"error,omitempty"`
	Slices []analyzer.Region `yaml:"slices"`
}

// Write saves a manifest to a YAML file.
func Write(m *Manifest, path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Read loads a manifest from a YAML file.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
