package obj

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const triangle = "v 0 0 0\nv 1 0 0\nv 0 1 0\n"

func mustParse(t *testing.T, src string) (*Mesh, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	m, err := Parse([]byte(src), "test.obj", rec)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return m, rec
}

// parseError parses src expecting a failure and returns the error.
func parseError(t *testing.T, src string, opts Options) (*ParseError, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	m, err := ParseWithOptions([]byte(src), "test.obj", rec, opts)
	if err == nil {
		t.Fatalf("expected error parsing %q", src)
	}
	if m != nil {
		t.Errorf("expected no mesh on error, got %+v", m)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	return pe, rec
}

func TestParse_Triangle(t *testing.T) {
	m, rec := mustParse(t, triangle+"f 1 2 3\n")

	if len(m.Positions) != 3 || len(m.Normals) != 3 || len(m.Texcoords) != 3 {
		t.Fatalf("expected 3 vertices, got %d/%d/%d", len(m.Positions), len(m.Normals), len(m.Texcoords))
	}
	if want := [][3]int32{{0, 1, 2}}; !reflect.DeepEqual(m.Triangles, want) {
		t.Errorf("triangles = %v, want %v", m.Triangles, want)
	}
	if m.Positions[1] != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("position 1 = %v, want [1 0 0]", m.Positions[1])
	}
	for i := range m.Normals {
		if m.Normals[i] != (mgl32.Vec3{}) || m.Texcoords[i] != (mgl32.Vec2{}) {
			t.Errorf("vertex %d: expected zero placeholders, got %v %v", i, m.Normals[i], m.Texcoords[i])
		}
	}
	if len(rec.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", rec.Diagnostics)
	}
	if !rec.Finished {
		t.Error("expected Finish to be called")
	}
}

func TestParse_QuadFan(t *testing.T) {
	m, _ := mustParse(t, triangle+"v 1 1 0\nf 1 2 3 4\n")

	want := [][3]int32{{0, 1, 2}, {0, 2, 3}}
	if !reflect.DeepEqual(m.Triangles, want) {
		t.Errorf("triangles = %v, want %v", m.Triangles, want)
	}
}

func TestParse_FanTriangulation(t *testing.T) {
	var src strings.Builder
	for i := 0; i < 7; i++ {
		src.WriteString("v 0 0 0\n")
	}
	src.WriteString("f 1 2 3 4 5 6 7\n")

	m, _ := mustParse(t, src.String())
	if len(m.Triangles) != 5 {
		t.Fatalf("expected 5 triangles, got %d", len(m.Triangles))
	}
	for i, tri := range m.Triangles {
		want := [3]int32{0, int32(i + 1), int32(i + 2)}
		if tri != want {
			t.Errorf("triangle %d = %v, want %v", i, tri, want)
		}
	}
}

func TestParse_NegativeIndices(t *testing.T) {
	m, _ := mustParse(t, triangle+"f -3 -2 -1\n")
	if want := [][3]int32{{0, 1, 2}}; !reflect.DeepEqual(m.Triangles, want) {
		t.Errorf("triangles = %v, want %v", m.Triangles, want)
	}
}

func TestParse_NegativeIndicesResolveAtReference(t *testing.T) {
	// -1 is the latest vertex at the point of the face, not at end of file.
	m, _ := mustParse(t, triangle+"f -3 -2 -1\nv 5 5 5\nf -4 -3 -2\n")

	if len(m.Positions) != 3 {
		t.Errorf("expected 3 positions, got %d", len(m.Positions))
	}
	want := [][3]int32{{0, 1, 2}, {0, 1, 2}}
	if !reflect.DeepEqual(m.Triangles, want) {
		t.Errorf("triangles = %v, want %v", m.Triangles, want)
	}
}

func TestParse_Dedup(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
vt 0 0
vt 1 0
vn 0 0 1
f 1/1/1 2/2/1 3/1/1
f 2/2/1 4/2/1 3/1/1
`
	m, _ := mustParse(t, src)

	if len(m.Positions) != 4 {
		t.Fatalf("expected 4 distinct vertices, got %d", len(m.Positions))
	}
	want := [][3]int32{{0, 1, 2}, {1, 3, 2}}
	if !reflect.DeepEqual(m.Triangles, want) {
		t.Errorf("triangles = %v, want %v", m.Triangles, want)
	}
	for i, n := range m.Normals {
		if n != (mgl32.Vec3{0, 0, 1}) {
			t.Errorf("normal %d = %v, want [0 0 1]", i, n)
		}
	}
	if m.Texcoords[1] != (mgl32.Vec2{1, 1}) {
		t.Errorf("texcoord 1 = %v, want [1 1]", m.Texcoords[1])
	}
}

func TestParse_DistinctAttributesSplitVertices(t *testing.T) {
	src := triangle + "vn 0 0 1\nvn 0 0 -1\nf 1//1 2//1 3//1\nf 1//2 3//2 2//2\nf 1 2 3\n"
	m, _ := mustParse(t, src)

	// Same positions with two different normals, and once without any.
	if len(m.Positions) != 9 {
		t.Errorf("expected 9 vertices, got %d", len(m.Positions))
	}
	if m.Normals[3] != (mgl32.Vec3{0, 0, -1}) {
		t.Errorf("normal 3 = %v, want [0 0 -1]", m.Normals[3])
	}
	if m.Normals[6] != (mgl32.Vec3{}) {
		t.Errorf("normal 6 = %v, want zero", m.Normals[6])
	}
}

func TestParse_TexcoordFlip(t *testing.T) {
	m, _ := mustParse(t, triangle+"vt 0.25 0.75\nf 1/1 2/1 3/1\n")
	if got, want := m.Texcoords[0], (mgl32.Vec2{0.25, 0.25}); got != want {
		t.Errorf("texcoord = %v, want %v", got, want)
	}
}

func TestParse_FaceTokenForms(t *testing.T) {
	src := triangle + "vt 0 0\nvn 0 0 1\nf 1/1/1 2//1 3/1/\n"
	m, _ := mustParse(t, src)
	if len(m.Triangles) != 1 || len(m.Positions) != 3 {
		t.Fatalf("got %d triangles, %d vertices", len(m.Triangles), len(m.Positions))
	}
	if m.Normals[2] != (mgl32.Vec3{}) || m.Texcoords[2] != (mgl32.Vec2{0, 1}) {
		t.Errorf("vertex 2 = %v %v, want zero normal and [0 1] texcoord", m.Normals[2], m.Texcoords[2])
	}
}

func TestParse_Whitespace(t *testing.T) {
	src := "# header\n\n  v 0 0 0\r\n\tv  1\t0 0  \r\nv 0 1 0\n\nf 1 2 3"
	m, _ := mustParse(t, src)
	if len(m.Triangles) != 1 {
		t.Errorf("expected 1 triangle, got %d", len(m.Triangles))
	}
}

func TestParse_Empty(t *testing.T) {
	m, rec := mustParse(t, "")
	if len(m.Positions) != 0 || len(m.Triangles) != 0 {
		t.Errorf("expected empty mesh, got %+v", m)
	}
	if !reflect.DeepEqual(rec.Progresses, []float32{1}) {
		t.Errorf("progress = %v, want [1]", rec.Progresses)
	}
	if !rec.Finished {
		t.Error("expected Finish to be called")
	}
}

func TestParse_Warnings(t *testing.T) {
	src := "mtllib scene.mtl\n" + triangle + "usemtl red\ns 1\ns off\nf 1 2 3\n"
	m, rec := mustParse(t, src)

	if len(m.Triangles) != 1 {
		t.Errorf("expected 1 triangle, got %d", len(m.Triangles))
	}
	warnings := rec.Warnings()
	wantLines := []int{1, 5, 6, 7}
	if len(warnings) != len(wantLines) {
		t.Fatalf("expected %d warnings, got %v", len(wantLines), warnings)
	}
	for i, w := range warnings {
		if w.Line != wantLines[i] {
			t.Errorf("warning %d on line %d, want %d", i, w.Line, wantLines[i])
		}
		if w.File != "test.obj" {
			t.Errorf("warning %d file = %q, want test.obj", i, w.File)
		}
	}
	if len(rec.Errors()) != 0 {
		t.Errorf("unexpected errors: %v", rec.Errors())
	}
}

func TestParse_Names(t *testing.T) {
	src := "o My  Object \ng left right\n" + triangle + "g left\no Other\nf 1 2 3\n"
	m, _ := mustParse(t, src)

	if want := []string{"My  Object", "Other"}; !reflect.DeepEqual(m.Objects, want) {
		t.Errorf("objects = %q, want %q", m.Objects, want)
	}
	if want := []string{"left", "right"}; !reflect.DeepEqual(m.Groups, want) {
		t.Errorf("groups = %q, want %q", m.Groups, want)
	}
}

func TestParse_Progress(t *testing.T) {
	src := strings.Repeat("v 0 0 0\n", 10)
	rec := &Recorder{}
	opts := DefaultOptions()
	opts.ProgressInterval = 2
	if _, err := ParseWithOptions([]byte(src), "test.obj", rec, opts); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []float32{0.2, 0.4, 0.6, 0.8, 1, 1}
	if len(rec.Progresses) != len(want) {
		t.Fatalf("progress = %v, want %v", rec.Progresses, want)
	}
	for i := range want {
		if diff := rec.Progresses[i] - want[i]; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("progress %d = %v, want %v", i, rec.Progresses[i], want[i])
		}
		if i > 0 && rec.Progresses[i] < rec.Progresses[i-1] {
			t.Errorf("progress decreased at %d: %v", i, rec.Progresses)
		}
	}
}

func TestParse_UnsupportedFeatures(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"1D texcoord", "vt 0.5\n", 1, "1D texture coordinates are not supported"},
		{"3D texcoord", "\nvt 0.5 0.5 0\n", 2, "3D texture coordinates are not supported"},
		{"weighted vertex", "v 1 2 3 1\n", 1, "weighted vertex coordinates are not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe, rec := parseError(t, tt.src, DefaultOptions())
			if !errors.Is(pe, ErrUnsupportedFeature) {
				t.Errorf("expected ErrUnsupportedFeature, got %v", pe)
			}
			if pe.Line != tt.line || pe.Msg != tt.msg {
				t.Errorf("got %q on line %d, want %q on line %d", pe.Msg, pe.Line, tt.msg, tt.line)
			}
			errs := rec.Errors()
			if len(errs) != 1 || errs[0].Line != tt.line || errs[0].Msg != tt.msg {
				t.Errorf("callback errors = %v", errs)
			}
			if rec.Finished {
				t.Error("Finish should not be called on failure")
			}
		})
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"two vertex face", triangle + "f 1 2\n", 4},
		{"unknown command", "# c\n\nbogus 1 2\n", 3},
		{"line directive", triangle + "l 1 2\n", 4},
		{"keyword without arguments", "v\n", 1},
		{"keyword prefix", "vx 1 2 3\n", 1},
		{"missing coordinate", "v 1 2\n", 1},
		{"bad normal", "vn 1 a 3\n", 1},
		{"trailing garbage", "v 1 2 3 junk\n", 1},
		{"float out of range", "v 1e99 0 0\n", 1},
		{"integer out of range", triangle + "f 99999999999 2 3\n", 4},
		{"index zero", triangle + "f 0 1 2\n", 4},
		{"index past end", triangle + "f 1 2 4\n", 4},
		{"relative index before start", triangle + "f -4 1 2\n", 4},
		{"normal without pool", triangle + "f 1//1 2//1 3//1\n", 4},
		{"unseparated face token", triangle + "f 1x 2 3\n", 4},
		{"bad face token", triangle + "f a b c\n", 4},
		{"bad smoothing group", "s maybe\n", 1},
		{"mtllib without name", "mtllib \n", 1},
		{"usemtl with two names", "usemtl a b\n", 1},
		{"empty object name", "o \n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe, rec := parseError(t, tt.src, DefaultOptions())
			if !errors.Is(pe, ErrSyntax) {
				t.Errorf("expected ErrSyntax, got %v", pe)
			}
			if pe.Line != tt.line {
				t.Errorf("error %q on line %d, want %d", pe.Msg, pe.Line, tt.line)
			}
			if errs := rec.Errors(); len(errs) == 0 || errs[len(errs)-1].Line != tt.line {
				t.Errorf("callback errors = %v", errs)
			}
		})
	}
}

func TestParse_TooManyFaceVertices(t *testing.T) {
	src := strings.Repeat("v 0 0 0\n", 8) + "f 1 2 3 4 5 6 7 8\n"
	pe, _ := parseError(t, src, DefaultOptions())
	if !errors.Is(pe, ErrUnsupportedFeature) || pe.Line != 9 {
		t.Errorf("got %v, want unsupported feature on line 9", pe)
	}

	opts := DefaultOptions()
	opts.MaxFaceVertices = 8
	m, err := ParseWithOptions([]byte(src), "test.obj", nil, opts)
	if err != nil {
		t.Fatalf("Parse with larger face limit failed: %v", err)
	}
	if len(m.Triangles) != 6 {
		t.Errorf("expected 6 triangles, got %d", len(m.Triangles))
	}
}

func TestParse_AllocationFailure(t *testing.T) {
	src := "s off\n" + strings.Repeat("v 0 0 0\n", 5)
	opts := DefaultOptions()
	opts.MaxElements = 4

	pe, rec := parseError(t, src, opts)
	if !errors.Is(pe, ErrAllocationFailed) {
		t.Errorf("expected ErrAllocationFailed, got %v", pe)
	}
	if pe.Line != 6 {
		t.Errorf("allocation failure on line %d, want 6", pe.Line)
	}
	if w := rec.Warnings(); len(w) != 1 || w[0].Line != 1 {
		t.Errorf("warnings = %v, want one on line 1", w)
	}
	if e := rec.Errors(); len(e) != 1 || e[0].Line != 6 {
		t.Errorf("errors = %v, want one on line 6", e)
	}
}

func TestParse_NilCallback(t *testing.T) {
	if _, err := Parse([]byte("bogus\n"), "test.obj", nil); !errors.Is(err, ErrSyntax) {
		t.Errorf("expected ErrSyntax, got %v", err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.obj")
	if err := os.WriteFile(path, []byte(triangle+"f 1 2 3\nbogus\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	rec := &Recorder{}
	_, err := ParseFile(path, rec)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.File != "model.obj" || pe.Line != 5 {
		t.Errorf("error at %s(%d), want model.obj(5)", pe.File, pe.Line)
	}
	if got := pe.Error(); got != "model.obj(5): unknown command" {
		t.Errorf("Error() = %q", got)
	}
}

func TestParseFile_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.obj")
	if err := os.WriteFile(path, []byte(triangle+"f 1 2 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	m, err := ParseFile(path, nil)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(m.Triangles) != 1 {
		t.Errorf("expected 1 triangle, got %d", len(m.Triangles))
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.obj"), nil)
	if !errors.Is(err, ErrOpenFailed) {
		t.Errorf("expected ErrOpenFailed, got %v", err)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"model.obj", "model.obj"},
		{"assets/meshes/model.obj", "model.obj"},
		{`C:\assets\model.obj`, "model.obj"},
		{"mixed/dir\\model.obj", "model.obj"},
		{"dir/", ""},
	}

	for _, tt := range tests {
		if got := fileName(tt.path); got != tt.want {
			t.Errorf("fileName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{ErrOpenFailed, "failed to open obj file"},
		{ErrReadFailed, "failed to read obj file"},
		{&ParseError{Kind: ErrSyntax}, "syntax error"},
		{&ParseError{Kind: ErrUnsupportedFeature}, "unsupported feature"},
		{&ParseError{Kind: ErrAllocationFailed}, "allocation failed"},
		{errors.New("other"), "unknown error"},
	}

	for _, tt := range tests {
		if got := Describe(tt.err); got != tt.want {
			t.Errorf("Describe(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestMesh_Stats(t *testing.T) {
	m, _ := mustParse(t, triangle+"v 1 1 0\nf 1 2 4 3\n")

	b := m.Bounds()
	if b.Min != (mgl32.Vec3{0, 0, 0}) || b.Max != (mgl32.Vec3{1, 1, 0}) {
		t.Errorf("bounds = %v", b)
	}
	if area := m.SurfaceArea(); area != 1 {
		t.Errorf("surface area = %v, want 1", area)
	}
}
