package obj

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objstat/pkg/encoding"
)

// DefaultMaxFaceVertices is the default face accumulator capacity.
const DefaultMaxFaceVertices = 7

// builder implements the semantic actions of the reader: it owns the raw
// attribute pools, deduplicates face vertices and triangulates faces.
type builder struct {
	v  *Array[mgl32.Vec3]
	vn *Array[mgl32.Vec3]
	vt *Array[mgl32.Vec2]

	vertices *vertexMap

	positions *Array[mgl32.Vec3]
	normals   *Array[mgl32.Vec3]
	texcoords *Array[mgl32.Vec2]
	triangles *Array[[3]int32]

	face []int32

	objects []string
	groups  []string
	seen    map[string]struct{}
}

func newBuilder(opts Options) *builder {
	limit := opts.MaxElements
	maxFace := opts.MaxFaceVertices
	if maxFace < 3 {
		maxFace = DefaultMaxFaceVertices
	}
	return &builder{
		v:         NewArray[mgl32.Vec3](limit),
		vn:        NewArray[mgl32.Vec3](limit),
		vt:        NewArray[mgl32.Vec2](limit),
		vertices:  newVertexMap(limit),
		positions: NewArray[mgl32.Vec3](limit),
		normals:   NewArray[mgl32.Vec3](limit),
		texcoords: NewArray[mgl32.Vec2](limit),
		triangles: NewArray[[3]int32](limit),
		face:      make([]int32, 0, maxFace),
		seen:      make(map[string]struct{}),
	}
}

func (b *builder) push(c *cursor, err error) error {
	if err != nil {
		return c.fail(ErrAllocationFailed, "out of memory")
	}
	return nil
}

func (b *builder) consumeVertex(c *cursor, x, y, z float32) error {
	return b.push(c, b.v.Push(mgl32.Vec3{x, y, z}))
}

func (b *builder) consumeWeightedVertex(c *cursor) error {
	return c.fail(ErrUnsupportedFeature, "weighted vertex coordinates are not supported")
}

func (b *builder) consumeNormal(c *cursor, x, y, z float32) error {
	return b.push(c, b.vn.Push(mgl32.Vec3{x, y, z}))
}

func (b *builder) consumeTexcoord1D(c *cursor) error {
	return c.fail(ErrUnsupportedFeature, "1D texture coordinates are not supported")
}

func (b *builder) consumeTexcoord(c *cursor, u, v float32) error {
	return b.push(c, b.vt.Push(mgl32.Vec2{u, 1 - v}))
}

func (b *builder) consumeTexcoord3D(c *cursor) error {
	return c.fail(ErrUnsupportedFeature, "3D texture coordinates are not supported")
}

// resolve turns a 1-based or negative file index into a pool index.
func resolve(c *cursor, i int32, poolLen int) (int32, error) {
	var r int
	switch {
	case i > 0:
		r = int(i) - 1
	case i < 0:
		r = poolLen + int(i)
	default:
		return 0, c.syntaxError("index 0 is invalid")
	}
	if r < 0 || r >= poolLen {
		return 0, c.syntaxError("index out of range")
	}
	return int32(r), nil
}

// consumeFaceVertex adds one face vertex. ni and ti are nil when absent.
func (b *builder) consumeFaceVertex(c *cursor, vi int32, ni, ti *int32) error {
	if len(b.face) == cap(b.face) {
		return c.fail(ErrUnsupportedFeature, "this face has too many vertices")
	}

	key := faceVertex{N: noIndex, T: noIndex}
	var err error
	if key.V, err = resolve(c, vi, b.v.Len()); err != nil {
		return err
	}
	if ni != nil {
		if key.N, err = resolve(c, *ni, b.vn.Len()); err != nil {
			return err
		}
	}
	if ti != nil {
		if key.T, err = resolve(c, *ti, b.vt.Len()); err != nil {
			return err
		}
	}

	idx, inserted, err := b.vertices.TryEmplace(key, int32(b.positions.Len()))
	if err != nil {
		return b.push(c, err)
	}
	if inserted {
		if err := b.emitVertex(c, key); err != nil {
			return err
		}
	}

	b.face = append(b.face, idx)
	return nil
}

func (b *builder) emitVertex(c *cursor, key faceVertex) error {
	var n mgl32.Vec3
	if key.N != noIndex {
		n = b.vn.At(int(key.N))
	}
	var t mgl32.Vec2
	if key.T != noIndex {
		t = b.vt.At(int(key.T))
	}

	if err := b.push(c, b.positions.Push(b.v.At(int(key.V)))); err != nil {
		return err
	}
	if err := b.push(c, b.normals.Push(n)); err != nil {
		return err
	}
	return b.push(c, b.texcoords.Push(t))
}

// finishFace fan-triangulates the accumulated face.
func (b *builder) finishFace(c *cursor) error {
	defer func() { b.face = b.face[:0] }()

	if len(b.face) < 3 {
		return c.syntaxError("face must have at least three vertices")
	}
	for i := 2; i < len(b.face); i++ {
		tri := [3]int32{b.face[0], b.face[i-1], b.face[i]}
		if err := b.push(c, b.triangles.Push(tri)); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) record(list *[]string, kind string, name []byte) {
	s := encoding.DecodeName(name)
	key := kind + "\x00" + s
	if _, ok := b.seen[key]; ok {
		return
	}
	b.seen[key] = struct{}{}
	*list = append(*list, s)
}

func (b *builder) consumeObjectName(c *cursor, name []byte) error {
	b.record(&b.objects, "o", name)
	return nil
}

func (b *builder) consumeGroupName(c *cursor, name []byte) error {
	b.record(&b.groups, "g", name)
	return nil
}

func (b *builder) consumeSmoothingGroup(c *cursor, n int32) error {
	c.warn("smoothing groups are ignored!")
	return nil
}

func (b *builder) consumeMtlLib(c *cursor, name []byte) error {
	c.warn("materials are ignored!")
	return nil
}

func (b *builder) consumeUseMtl(c *cursor, name []byte) error {
	c.warn("materials are ignored!")
	return nil
}

// finish moves the output out, leaving the builder empty.
func (b *builder) finish() *Mesh {
	m := &Mesh{
		Positions: b.positions.Release(),
		Normals:   b.normals.Release(),
		Texcoords: b.texcoords.Release(),
		Triangles: b.triangles.Release(),
		Objects:   b.objects,
		Groups:    b.groups,
	}
	b.objects, b.groups = nil, nil
	return m
}
