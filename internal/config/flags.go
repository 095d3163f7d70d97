package config

import "flag"

var (
	flagConfig          = flag.String("config", "", "Path to config file")
	flagDebug           = flag.Bool("debug", false, "Enable debug logging")
	flagQuiet           = flag.Bool("quiet", false, "Hide the progress indicator")
	flagLogFile         = flag.String("log-file", "", "Also write logs to this file")
	flagFormat          = flag.String("format", "", "Report format: text or yaml")
	flagBounds          = flag.Bool("bounds", false, "Report bounds and surface area")
	flagMaxFaceVertices = flag.Int("max-face-vertices", 0, "Maximum vertices per face")
	flagSaveConfig      = flag.String("save-config", "", "Write the effective config to this path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveConfigPath returns the path given via --save-config, if any.
func SaveConfigPath() string {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagQuiet {
		cfg.Output.Quiet = true
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagBounds {
		cfg.Output.Bounds = true
	}
	if *flagMaxFaceVertices > 0 {
		cfg.Parser.MaxFaceVertices = *flagMaxFaceVertices
	}
}
