package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-tile-raytracer/pkg/renderer"
)

var ErrInvalidSettings = errors.New("invalid render settings")

// Settings describes a render job. Zero values in a settings file keep the defaults.
type Settings struct {
	Scene         string                  `yaml:"scene"`
	Width         int                     `yaml:"width"`
	Height        int                     `yaml:"height"`
	Output        string                  `yaml:"output"`
	Seed          int64                   `yaml:"seed"`
	ReservedCores int                     `yaml:"reserved_cores"`
	TexturePath   string                  `yaml:"texture_path"`
	Pipeline      renderer.PipelineConfig `yaml:"pipeline"`
}

// Default returns the settings used when no file or flag overrides them
func Default() Settings {
	return Settings{
		Scene:         "default",
		Width:         400,
		Height:        225,
		Output:        "output/render.png",
		Seed:          42,
		ReservedCores: 0,
		Pipeline:      renderer.DefaultPipelineConfig(),
	}
}

// Load reads a YAML settings file on top of the defaults
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings %s: %w", path, err)
	}

	settings, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Settings{}, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return settings, nil
}

// Parse decodes YAML settings on top of the defaults. Unknown keys are rejected.
func Parse(r io.Reader) (Settings, error) {
	settings := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, err
	}

	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Validate checks that the settings describe a renderable job
func (s Settings) Validate() error {
	if s.Scene == "" {
		return fmt.Errorf("%w: scene name is empty", ErrInvalidSettings)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidSettings, s.Width, s.Height)
	}
	if s.Output == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalidSettings)
	}
	if s.ReservedCores < 0 {
		return fmt.Errorf("%w: reserved cores cannot be negative", ErrInvalidSettings)
	}
	return s.Pipeline.Validate()
}

// Marshal encodes the settings as YAML
func (s Settings) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
