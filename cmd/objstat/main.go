// objstat parses a Wavefront OBJ file and prints mesh statistics.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/objstat/internal/config"
	"github.com/Faultbox/objstat/internal/logger"
	"github.com/Faultbox/objstat/pkg/obj"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = -1 // The file could not be read or parsed
	exitUsage   = -2 // Wrong arguments or configuration
	exitUnknown = -3
)

// ErrUsage reports wrong command-line arguments.
var ErrUsage = errors.New("usage error")

func main() {
	config.ParseFlags()
	os.Exit(run(config.Args()))
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `objstat - Wavefront OBJ mesh statistics

Usage:
  objstat [options] <filename>

Options:
  -config <path>           Config file (default ./objstat.yaml)
  -debug                   Enable debug logging
  -quiet                   Hide the progress indicator
  -log-file <path>         Also write logs to this file
  -format text|yaml        Report format
  -bounds                  Report bounds and surface area
  -max-face-vertices <n>   Maximum vertices per face
  -save-config <path>      Write the effective config to this path`)
}

func checkArgs(args []string) error {
	switch {
	case len(args) < 1:
		return fmt.Errorf("%w: expected <filename>", ErrUsage)
	case len(args) > 1:
		return fmt.Errorf("%w: too many arguments", ErrUsage)
	}
	return nil
}

func run(args []string) int {
	if err := checkArgs(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n\n", err)
		printUsage()
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitUsage
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitUnknown
	}
	defer logger.Sync()

	if path := config.SaveConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			logger.Error("saving config", zap.String("path", path), zap.Error(err))
			return exitUnknown
		}
		logger.Info("config saved", zap.String("path", path))
	}

	var progress io.Writer = os.Stderr
	if cfg.Output.Quiet {
		progress = nil
	}

	opts := cfg.ParserOptions()
	logger.Debug("parsing", zap.String("path", args[0]),
		zap.Int("max_face_vertices", opts.MaxFaceVertices),
		zap.Int("progress_interval", opts.ProgressInterval))

	mesh, err := obj.ParseFileWithOptions(args[0], logger.NewSink(progress), opts)
	if err != nil {
		logger.Debug("parse failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %s\n", obj.Describe(err))
		return exitCode(err)
	}

	if err := writeReport(os.Stdout, mesh, cfg.Output); err != nil {
		logger.Error("writing report", zap.Error(err))
		return exitUnknown
	}
	return exitOK
}

// exitCode classifies an error returned while running.
func exitCode(err error) int {
	for _, kind := range []error{
		obj.ErrOpenFailed,
		obj.ErrReadFailed,
		obj.ErrSyntax,
		obj.ErrUnsupportedFeature,
		obj.ErrAllocationFailed,
	} {
		if errors.Is(err, kind) {
			return exitFailure
		}
	}
	if errors.Is(err, ErrUsage) {
		return exitUsage
	}
	return exitUnknown
}
