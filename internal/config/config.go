// Package config handles scatter tool configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/scattermesh/pkg/math"
	"github.com/Faultbox/scattermesh/pkg/primitives"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Scatter ScatterConfig `yaml:"scatter"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScatterConfig holds the scatter mesh build settings.
type ScatterConfig struct {
	Points     [][3]float32 `yaml:"points"`
	PointsFile string       `yaml:"points_file"` // XYZ file, overrides Points when set
	Height     float32      `yaml:"height"`
	Level      int          `yaml:"level"`
	JoinMode   bool         `yaml:"join_mode"`
	Shape      string       `yaml:"shape"`
}

// ExportConfig holds mesh export settings.
type ExportConfig struct {
	Output string `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Scatter: ScatterConfig{
			Points:   [][3]float32{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}},
			Height:   0.1,
			Level:    0,
			JoinMode: true,
			Shape:    primitives.DefaultShape,
		},
		Export: ExportConfig{
			Output: "scatter.obj",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ScatterPoints converts the configured points to vectors.
func (s ScatterConfig) ScatterPoints() []math.Vec3 {
	out := make([]math.Vec3, len(s.Points))
	for i, p := range s.Points {
		out[i] = math.FromArray(p)
	}
	return out
}

// Validate checks the shape settings. Points are not checked here: an XYZ
// file may still supply them.
func (c *Config) Validate() error {
	params := primitives.ShapeParameters{Height: c.Scatter.Height, Level: c.Scatter.Level}
	if err := params.Validate(); err != nil {
		return fmt.Errorf("%w: scatter: %w", ErrInvalidConfig, err)
	}
	if _, err := primitives.Lookup(c.Scatter.Shape); err != nil {
		return fmt.Errorf("%w: scatter: %w", ErrInvalidConfig, err)
	}
	return nil
}
