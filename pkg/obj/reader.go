package obj

// reader dispatches one directive per line to the builder.
type reader struct {
	c *cursor
	b *builder
}

// run consumes the whole input.
func (r *reader) run() error {
	c := r.c
	for !c.atEnd() {
		switch c.peek() {
		case '\n':
			c.pos++
			c.endLine()
		case ' ', '\t', '\r':
			c.pos++
		default:
			if err := r.directive(); err != nil {
				return err
			}
		}
	}
	c.endFile()
	return nil
}

func (r *reader) directive() error {
	c := r.c
	if c.peek() == '#' {
		c.skipLine()
		return nil
	}

	// The keyword is the longest non-white-space run, so "vn" never
	// matches as "v" and "vx" is not a vertex.
	keyword := c.consumeNonWS()

	var parse func() error
	switch string(keyword) {
	case "v":
		parse = r.vertex
	case "vn":
		parse = r.normal
	case "vt":
		parse = r.texcoord
	case "f":
		parse = r.face
	case "o":
		parse = r.objectName
	case "g":
		parse = r.groupNames
	case "s":
		parse = r.smoothingGroup
	case "mtllib":
		parse = r.mtlLib
	case "usemtl":
		parse = r.useMtl
	default:
		return c.syntaxError("unknown command")
	}

	if !c.consumeHorizontalWS() {
		return c.syntaxError("unknown command")
	}
	return parse()
}

// floats parses n white-space separated floats.
func (r *reader) floats(dst []float32) error {
	for i := range dst {
		if i > 0 {
			if err := r.c.expectHorizontalWS(); err != nil {
				return err
			}
		}
		f, err := r.c.expectFloat()
		if err != nil {
			return err
		}
		dst[i] = f
	}
	return nil
}

// optionalFloat parses a float preceded by white space, if there is one.
func (r *reader) optionalFloat() (float32, bool, error) {
	if !r.c.consumeHorizontalWS() {
		return 0, false, nil
	}
	return r.c.consumeFloat()
}

func (r *reader) vertex() error {
	var p [3]float32
	if err := r.floats(p[:]); err != nil {
		return err
	}
	_, weighted, err := r.optionalFloat()
	if err != nil {
		return err
	}
	if err := r.c.expectLineEnd(); err != nil {
		return err
	}
	if weighted {
		return r.b.consumeWeightedVertex(r.c)
	}
	return r.b.consumeVertex(r.c, p[0], p[1], p[2])
}

func (r *reader) normal() error {
	var n [3]float32
	if err := r.floats(n[:]); err != nil {
		return err
	}
	if err := r.c.expectLineEnd(); err != nil {
		return err
	}
	return r.b.consumeNormal(r.c, n[0], n[1], n[2])
}

func (r *reader) texcoord() error {
	u, err := r.c.expectFloat()
	if err != nil {
		return err
	}

	v, hasV, err := r.optionalFloat()
	if err != nil {
		return err
	}
	hasW := false
	if hasV {
		if _, hasW, err = r.optionalFloat(); err != nil {
			return err
		}
	}
	if err := r.c.expectLineEnd(); err != nil {
		return err
	}

	switch {
	case hasW:
		return r.b.consumeTexcoord3D(r.c)
	case hasV:
		return r.b.consumeTexcoord(r.c, u, v)
	default:
		return r.b.consumeTexcoord1D(r.c)
	}
}

// face parses "f v[/t][/n] ..." and triangulates it at the line end.
func (r *reader) face() error {
	c := r.c
	for {
		vi, err := c.expectInteger()
		if err != nil {
			return err
		}

		var ti, ni *int32
		if c.consume("/") {
			t, ok, err := c.consumeInteger()
			if err != nil {
				return err
			}
			if ok {
				ti = &t
			}
			if c.consume("/") {
				n, ok, err := c.consumeInteger()
				if err != nil {
					return err
				}
				if ok {
					ni = &n
				}
			}
		}

		if err := r.b.consumeFaceVertex(c, vi, ni, ti); err != nil {
			return err
		}

		if c.finishLine() {
			break
		}
		// Tokens must be separated by white space; "1/2/3x" stops here.
		if c.pos > 0 && !isHorizontalWS(c.data[c.pos-1]) {
			return c.syntaxError("expected horizontal white space")
		}
	}
	return r.b.finishFace(c)
}

// objectName takes the rest of the line, inner white space included.
func (r *reader) objectName() error {
	c := r.c
	start := c.pos
	name, err := c.expectNonWS()
	if err != nil {
		return err
	}
	for !c.finishLine() {
		c.consumeNonWS()
		name = c.data[start:c.pos]
	}
	return r.b.consumeObjectName(c, name)
}

func (r *reader) groupNames() error {
	c := r.c
	for {
		name, err := c.expectNonWS()
		if err != nil {
			return err
		}
		if err := r.b.consumeGroupName(c, name); err != nil {
			return err
		}
		if c.finishLine() {
			return nil
		}
	}
}

func (r *reader) smoothingGroup() error {
	c := r.c
	n, ok, err := c.consumeInteger()
	if err != nil {
		return err
	}
	if !ok {
		if !c.consume("off") {
			return c.syntaxError("expected smoothing group index or 'off'")
		}
		n = 0
	}
	if err := c.expectLineEnd(); err != nil {
		return err
	}
	return r.b.consumeSmoothingGroup(c, n)
}

func (r *reader) mtlLib() error {
	name, err := r.c.expectNonWS()
	if err != nil {
		return err
	}
	if err := r.c.expectLineEnd(); err != nil {
		return err
	}
	return r.b.consumeMtlLib(r.c, name)
}

func (r *reader) useMtl() error {
	name, err := r.c.expectNonWS()
	if err != nil {
		return err
	}
	if err := r.c.expectLineEnd(); err != nil {
		return err
	}
	return r.b.consumeUseMtl(r.c, name)
}
