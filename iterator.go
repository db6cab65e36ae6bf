package ac

// Iterator points at one key of a TrieMap. The zero Iterator and End() are
// not valid; erasing the key, or an ancestor being pruned, or Clear also makes
// an iterator invalid. Iterators are comparable with ==.
type Iterator[S comparable, V any] struct {
	m   *TrieMap[S, V]
	id  nodeID
	gen uint32
}

func (m *TrieMap[S, V]) iter(id nodeID) Iterator[S, V] {
	if id == noNode {
		return m.End()
	}
	return Iterator[S, V]{m: m, id: id, gen: m.s.at(id).gen}
}

// Valid reports whether it points at a stored key.
func (it Iterator[S, V]) Valid() bool {
	if it.m == nil || it.id == noNode || int(it.id) >= len(it.m.s.nodes) {
		return false
	}
	n := it.m.s.at(it.id)
	return n.live && n.gen == it.gen && n.hasValue
}

func (it Iterator[S, V]) mustBeValid() {
	if !it.Valid() {
		panic(ErrInvalidIterator)
	}
}

// Key reconstructs the key it points at.
// WARNING, this function will panic if the iterator is not valid.
func (it Iterator[S, V]) Key() []S {
	it.mustBeValid()
	return it.m.s.keyOf(it.id)
}

// Value returns the value stored under the key.
// WARNING, this function will panic if the iterator is not valid.
func (it Iterator[S, V]) Value() V {
	it.mustBeValid()
	return it.m.s.at(it.id).value
}

// SetValue replaces the value stored under the key in place.
// WARNING, this function will panic if the iterator is not valid.
func (it Iterator[S, V]) SetValue(v V) {
	it.mustBeValid()
	it.m.s.at(it.id).value = v
}

// Next moves it to the following key in order and reports whether one exists.
// Past the last key it becomes End.
func (it *Iterator[S, V]) Next() bool {
	if !it.Valid() {
		if it.m != nil {
			*it = it.m.End()
		}
		return false
	}
	*it = it.m.iter(it.m.nextValued(it.id, rootID))
	return it.id != noNode
}
