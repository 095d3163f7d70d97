package logger

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Sink reports parser diagnostics through the global logger and draws a
// percentage progress indicator. It satisfies obj.Callback.
type Sink struct {
	out   io.Writer
	shown bool
}

// NewSink returns a Sink drawing progress on out. A nil out disables
// the progress indicator; diagnostics are logged either way.
func NewSink(out io.Writer) *Sink {
	return &Sink{out: out}
}

func (s *Sink) Progress(fraction float32) {
	if s.out == nil {
		return
	}
	fmt.Fprintf(s.out, "\r%3.0f%%", 100*fraction)
	s.shown = true
}

func (s *Sink) Warning(file string, line int, msg string) {
	Warn(msg, zap.String("file", file), zap.Int("line", line))
}

func (s *Sink) Error(file string, line int, msg string) {
	Error(msg, zap.String("file", file), zap.Int("line", line))
}

func (s *Sink) Finish() {
	if s.out != nil && s.shown {
		fmt.Fprintln(s.out)
	}
	Debug("parse finished")
}
