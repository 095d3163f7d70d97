// Package config handles objstat configuration loading and management.
package config

import "github.com/Faultbox/objstat/pkg/obj"

// Config holds all objstat settings.
type Config struct {
	Parser  ParserConfig  `yaml:"parser"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ParserConfig holds parser limits.
type ParserConfig struct {
	MaxFaceVertices  int `yaml:"max_face_vertices"`
	ProgressInterval int `yaml:"progress_interval"` // Lines between progress reports
	MaxElements      int `yaml:"max_elements"`      // 0 = no limit below the int32 range
}

// OutputConfig holds report settings.
type OutputConfig struct {
	Format string `yaml:"format"` // "text" or "yaml"
	Quiet  bool   `yaml:"quiet"`  // Hide the progress indicator
	Bounds bool   `yaml:"bounds"` // Include bounds and surface area
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			MaxFaceVertices:  obj.DefaultMaxFaceVertices,
			ProgressInterval: obj.DefaultProgressInterval,
			MaxElements:      0,
		},
		Output: OutputConfig{
			Format: "text",
			Quiet:  false,
			Bounds: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ParserOptions returns the parser section as obj.Options.
func (c *Config) ParserOptions() obj.Options {
	return obj.Options{
		MaxFaceVertices:  c.Parser.MaxFaceVertices,
		ProgressInterval: c.Parser.ProgressInterval,
		MaxElements:      c.Parser.MaxElements,
	}
}
