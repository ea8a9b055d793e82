// Package config holds runtime configuration for batch slicing. Fields may
// be loaded from a YAML file and overridden by command-line flags.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Tera-Dark/ArtClipper-AI/internal/imaging"
)

// Config controls detection sensitivities and batch behavior.
type Config struct {
	InputPath      string `yaml:"input"`
	ManifestOutput string `yaml:"manifest"`

	// Mode selects local pixel detection or the external recognizer path.
	Mode string `yaml:"mode"`

	// ColorThreshold is the foreground color distance for component
	// detection (raised to 10 when lower).
	ColorThreshold int `yaml:"color_threshold"`
	// GutterThreshold is the 1-100 gutter split sensitivity.
	GutterThreshold int `yaml:"gutter_threshold"`

	// Concurrency bounds in-flight detections per round (1-5); 0 lets the
	// host decide.
	Concurrency int `yaml:"concurrency"`

	// TransmitMaxDim caps the longer image side before recognizer upload.
	TransmitMaxDim int `yaml:"transmit_max_dim"`

	Debug bool `yaml:"debug"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		ManifestOutput:  "slices.yaml",
		Mode:            "local",
		ColorThreshold:  30,
		GutterThreshold: 50,
		Concurrency:     0,
		TransmitMaxDim:  imaging.DefaultTransmitMaxDim,
	}
}

// Validate clamps values to safe ranges.
func (c *Config) Validate() error {
	if c.Mode != "local" && c.Mode != "external" {
		c.Mode = "local"
	}
	if c.ColorThreshold < 0 {
		c.ColorThreshold = 0
	}
	if c.GutterThreshold < 1 {
		c.GutterThreshold = 1
	}
	if c.GutterThreshold > 100 {
		c.GutterThreshold = 100
	}
	if c.Concurrency < 0 {
		c.Concurrency = 0
	}
	if c.Concurrency > 5 {
		c.Concurrency = 5
	}
	if c.TransmitMaxDim <= 0 {
		c.TransmitMaxDim = imaging.DefaultTransmitMaxDim
	}
	return nil
}

// Load reads configuration from a YAML file. A missing file returns
// defaults; a malformed one returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
