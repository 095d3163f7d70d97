package obj

// Callback receives progress and diagnostics while a file is parsed.
// It is informed only; it never changes how parsing proceeds.
type Callback interface {
	Progress(fraction float32)
	Warning(file string, line int, msg string)
	Error(file string, line int, msg string)
	Finish()
}

// NopCallback discards everything.
type NopCallback struct{}

func (NopCallback) Progress(float32)            {}
func (NopCallback) Warning(string, int, string) {}
func (NopCallback) Error(string, int, string)   {}
func (NopCallback) Finish()                     {}

// Diagnostic is a warning or error recorded by Recorder.
type Diagnostic struct {
	File  string
	Line  int
	Msg   string
	Error bool
}

// Recorder is a Callback that keeps everything it is told.
type Recorder struct {
	Progresses  []float32
	Diagnostics []Diagnostic
	Finished    bool
}

func (r *Recorder) Progress(fraction float32) {
	r.Progresses = append(r.Progresses, fraction)
}

func (r *Recorder) Warning(file string, line int, msg string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{File: file, Line: line, Msg: msg})
}

func (r *Recorder) Error(file string, line int, msg string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{File: file, Line: line, Msg: msg, Error: true})
}

func (r *Recorder) Finish() {
	r.Finished = true
}

// Warnings returns the recorded warnings.
func (r *Recorder) Warnings() []Diagnostic {
	return r.filter(false)
}

// Errors returns the recorded errors.
func (r *Recorder) Errors() []Diagnostic {
	return r.filter(true)
}

func (r *Recorder) filter(isError bool) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Error == isError {
			out = append(out, d)
		}
	}
	return out
}
