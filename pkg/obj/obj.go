// Package obj loads triangle meshes from Wavefront OBJ text.
//
// A single forward pass over the input tokenizes each line, resolves
// relative attribute references, deduplicates repeated
// position/normal/texcoord combinations into one output vertex and
// fan-triangulates polygonal faces. Supported directives are v, vn, vt, f,
// o, g, s, mtllib, usemtl and # comments; s, mtllib and usemtl only
// produce warnings.
package obj

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objstat/pkg/math"
)

// Mesh is a deduplicated triangle mesh. Positions, Normals and Texcoords
// have one entry per distinct vertex; every index in Triangles is below
// len(Positions). Missing normals and texcoords are zero.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Texcoords []mgl32.Vec2
	Triangles [][3]int32

	// Objects and Groups list the o and g names in first-seen order.
	Objects []string
	Groups  []string
}

// Bounds returns the axis-aligned bounding box of the positions.
func (m *Mesh) Bounds() math.Bounds {
	return math.BoundsOf(m.Positions)
}

// SurfaceArea returns the summed area of all triangles.
func (m *Mesh) SurfaceArea() float32 {
	var area float32
	for _, t := range m.Triangles {
		area += math.TriangleArea(m.Positions[t[0]], m.Positions[t[1]], m.Positions[t[2]])
	}
	return area
}

// Options tunes the parser limits.
type Options struct {
	// MaxFaceVertices is the most vertices a single face may have.
	MaxFaceVertices int
	// ProgressInterval is the number of lines between progress reports.
	// Zero disables intermediate reports.
	ProgressInterval int
	// MaxElements caps every growable sequence. Growing past it fails
	// with ErrAllocationFailed. Zero means MaxElements.
	MaxElements int
}

// DefaultOptions returns the default parser limits.
func DefaultOptions() Options {
	return Options{
		MaxFaceVertices:  DefaultMaxFaceVertices,
		ProgressInterval: DefaultProgressInterval,
	}
}

// Parse parses OBJ data with the default options. name identifies the
// source in diagnostics.
func Parse(data []byte, name string, callback Callback) (*Mesh, error) {
	return ParseWithOptions(data, name, callback, DefaultOptions())
}

// ParseWithOptions parses OBJ data. On error no partial mesh is returned.
func ParseWithOptions(data []byte, name string, callback Callback, opts Options) (*Mesh, error) {
	if callback == nil {
		callback = NopCallback{}
	}
	r := &reader{
		c: newCursor(data, name, callback, opts.ProgressInterval),
		b: newBuilder(opts),
	}
	if err := r.run(); err != nil {
		return nil, err
	}
	return r.b.finish(), nil
}

// ParseFile reads the whole file at path and parses it with the default
// options. Diagnostics name the file by its last path component.
func ParseFile(path string, callback Callback) (*Mesh, error) {
	return ParseFileWithOptions(path, callback, DefaultOptions())
}

// ParseFileWithOptions is ParseFile with explicit options.
func ParseFileWithOptions(path string, callback Callback, opts Options) (*Mesh, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseWithOptions(data, fileName(path), callback, opts)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}
	defer f.Close()

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: seeking end: %v", ErrReadFailed, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seeking start: %v", ErrReadFailed, err)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	return data, nil
}

// fileName returns the last component of path, splitting on both
// separators regardless of platform.
func fileName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
