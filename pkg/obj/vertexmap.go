package obj

// noIndex marks an attribute a face vertex does not reference.
const noIndex int32 = -1

// faceVertex identifies one distinct output vertex by its resolved
// position, normal and texcoord pool indices.
type faceVertex struct {
	V, N, T int32
}

func combineHashes(a, b uint64) uint64 {
	return a ^ (b + 0x9E3779B9 + (a << 6) + (a >> 2))
}

func (k faceVertex) hash() uint64 {
	h := combineHashes(uint64(uint32(k.V)), uint64(uint32(k.N)))
	return combineHashes(h, uint64(uint32(k.T)))
}

type vertexSlot struct {
	key   faceVertex
	value int32
	used  bool
}

// vertexMap maps face vertices to output vertex indices using open
// addressing with linear probing. The table size is a power of two and
// the load factor stays at or below 3/4.
type vertexMap struct {
	slots []vertexSlot
	count int
	limit int
}

func newVertexMap(limit int) *vertexMap {
	if limit <= 0 || limit > MaxElements {
		limit = MaxElements
	}
	return &vertexMap{limit: limit}
}

// Len returns the number of keys.
func (m *vertexMap) Len() int {
	return m.count
}

// Lookup returns the value stored for key.
func (m *vertexMap) Lookup(key faceVertex) (int32, bool) {
	if m.count == 0 {
		return 0, false
	}
	i := m.find(key)
	if !m.slots[i].used {
		return 0, false
	}
	return m.slots[i].value, true
}

// TryEmplace returns the value stored for key, inserting value first if
// the key is missing. inserted reports whether the insertion happened.
func (m *vertexMap) TryEmplace(key faceVertex, value int32) (v int32, inserted bool, err error) {
	if len(m.slots) > 0 {
		i := m.find(key)
		if m.slots[i].used {
			return m.slots[i].value, false, nil
		}
	}

	if m.count >= m.limit {
		return 0, false, ErrAllocationFailed
	}
	if (m.count+1)*4 > len(m.slots)*3 {
		if err := m.rehash(); err != nil {
			return 0, false, err
		}
	}

	i := m.find(key)
	m.slots[i] = vertexSlot{key: key, value: value, used: true}
	m.count++
	return value, true, nil
}

// find returns the slot holding key, or the empty slot where it belongs.
func (m *vertexMap) find(key faceVertex) int {
	mask := len(m.slots) - 1
	i := int(key.hash()) & mask
	for {
		s := &m.slots[i]
		if !s.used || s.key == key {
			return i
		}
		i = (i + 1) & mask
	}
}

func (m *vertexMap) rehash() error {
	size := 16
	if len(m.slots) > 0 {
		if len(m.slots) > MaxElements {
			return ErrAllocationFailed
		}
		size = len(m.slots) * 2
	}

	old := m.slots
	m.slots = make([]vertexSlot, size)
	for _, s := range old {
		if s.used {
			m.slots[m.find(s.key)] = s
		}
	}
	return nil
}
