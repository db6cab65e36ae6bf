package ac

import (
	"cmp"
	"iter"
)

// TrieMap is an ordered map from symbol sequences to values, stored as a prefix
// tree. Keys sharing a prefix share the nodes of that prefix. Iteration visits
// keys in lexicographic order of their symbols.
//
// A TrieMap is not safe for concurrent mutation. Concurrent scans are safe only
// once the failure links have been built (see Automaton.Build) and no goroutine
// mutates the map.
type TrieMap[S comparable, V any] struct {
	s       store[S, V]
	compare func(a, b S) int
}

// New creates an empty TrieMap over an ordered symbol type.
func New[S cmp.Ordered, V any]() *TrieMap[S, V] {
	return NewFunc[S, V](cmp.Compare[S])
}

// NewFunc creates an empty TrieMap whose symbols are ordered by compare.
// compare must be a total order consistent with ==.
// WARNING, this function will panic if compare is nil.
func NewFunc[S comparable, V any](compare func(a, b S) int) *TrieMap[S, V] {
	m := new(TrieMap[S, V])
	m.init(compare)
	return m
}

func (m *TrieMap[S, V]) init(compare func(a, b S) int) {
	if compare == nil {
		panic("ac: nil symbol comparator")
	}
	m.compare = compare
	m.s.init()
}

func (m *TrieMap[S, V]) trie() *TrieMap[S, V] { return m }

// Insert stores v under key. If the key already held a value it is overwritten
// and the returned bool is false. The empty key is valid and lives at the root.
func (m *TrieMap[S, V]) Insert(key []S, v V) (Iterator[S, V], bool) {
	return m.InsertSeq(Slice[S](key), v)
}

// InsertSeq is Insert for keys held in any Sequence, such as a Reversed view.
func (m *TrieMap[S, V]) InsertSeq(key Sequence[S], v V) (Iterator[S, V], bool) {
	id, added := m.s.insert(key, v)
	return m.iter(id), added
}

// Set stores v under key, overwriting any previous value.
func (m *TrieMap[S, V]) Set(key []S, v V) {
	m.s.insert(Slice[S](key), v)
}

// Find returns an iterator to key, or End if the key is absent.
func (m *TrieMap[S, V]) Find(key []S) Iterator[S, V] {
	return m.FindSeq(Slice[S](key))
}

// FindSeq is Find for keys held in any Sequence.
func (m *TrieMap[S, V]) FindSeq(key Sequence[S]) Iterator[S, V] {
	id, ok := m.s.lookup(key)
	if !ok || !m.s.at(id).hasValue {
		return m.End()
	}
	return m.iter(id)
}

// Get returns the value stored under key.
func (m *TrieMap[S, V]) Get(key []S) (V, bool) {
	id, ok := m.s.lookup(Slice[S](key))
	if !ok || !m.s.at(id).hasValue {
		var zero V
		return zero, false
	}
	return m.s.at(id).value, true
}

// Contains reports whether key is stored.
func (m *TrieMap[S, V]) Contains(key []S) bool {
	_, ok := m.Get(key)
	return ok
}

// Count returns 1 if key is stored and 0 otherwise.
func (m *TrieMap[S, V]) Count(key []S) int {
	if m.Contains(key) {
		return 1
	}
	return 0
}

// Erase removes key and prunes the nodes no other key needs. Erasing an absent
// key is a no-op that returns false.
func (m *TrieMap[S, V]) Erase(key []S) bool {
	return m.EraseSeq(Slice[S](key))
}

// EraseSeq is Erase for keys held in any Sequence.
func (m *TrieMap[S, V]) EraseSeq(key Sequence[S]) bool {
	id, ok := m.s.lookup(key)
	if !ok || !m.s.at(id).hasValue {
		return false
	}
	m.s.eraseNode(id)
	return true
}

// EraseAt removes the key it points at and returns an iterator to the key that
// followed it. It panics with ErrInvalidIterator if it is not a valid iterator
// of m.
func (m *TrieMap[S, V]) EraseAt(it Iterator[S, V]) Iterator[S, V] {
	if it.m != m || !it.Valid() {
		panic(ErrInvalidIterator)
	}
	next := m.nextValued(it.id, rootID)
	m.s.eraseNode(it.id)
	return m.iter(next)
}

// Len returns the number of stored keys.
func (m *TrieMap[S, V]) Len() int { return m.s.size }

// Empty reports whether no key is stored.
func (m *TrieMap[S, V]) Empty() bool { return m.s.size == 0 }

// Nodes returns the number of live trie nodes, root included.
func (m *TrieMap[S, V]) Nodes() int { return m.s.liveNodes() }

// Clear removes every key. Iterators into m become invalid.
func (m *TrieMap[S, V]) Clear() { m.s.clear() }

// Begin returns an iterator to the smallest key, or End if m is empty.
func (m *TrieMap[S, V]) Begin() Iterator[S, V] {
	if m.s.at(rootID).hasValue {
		return m.iter(rootID)
	}
	return m.iter(m.nextValued(rootID, rootID))
}

// End returns the past-the-end iterator.
func (m *TrieMap[S, V]) End() Iterator[S, V] {
	return Iterator[S, V]{m: m, id: noNode}
}

// All iterates over every key and value in key order. The map must not be
// mutated during the iteration.
func (m *TrieMap[S, V]) All() iter.Seq2[[]S, V] {
	return m.subtree(rootID)
}

// Keys iterates over every key in order.
func (m *TrieMap[S, V]) Keys() iter.Seq[[]S] {
	return func(yield func([]S) bool) {
		for k := range m.subtree(rootID) {
			if !yield(k) {
				return
			}
		}
	}
}

// WithPrefix iterates in order over the keys that start with prefix, prefix
// itself included.
func (m *TrieMap[S, V]) WithPrefix(prefix []S) iter.Seq2[[]S, V] {
	id, ok := m.s.lookup(Slice[S](prefix))
	if !ok {
		return func(func([]S, V) bool) {}
	}
	return m.subtree(id)
}

// LongestPrefix returns the length and value of the longest stored key that is
// a prefix of subject.
func (m *TrieMap[S, V]) LongestPrefix(subject Sequence[S]) (int, V, bool) {
	var (
		best  = -1
		value V
	)
	cur := rootID
	if n := m.s.at(cur); n.hasValue {
		best, value = 0, n.value
	}
	for i, n := 0, subject.Len(); i < n; i++ {
		next, ok := m.s.child(cur, subject.At(i))
		if !ok {
			break
		}
		cur = next
		if nd := m.s.at(cur); nd.hasValue {
			best, value = i+1, nd.value
		}
	}
	if best < 0 {
		return 0, value, false
	}
	return best, value, true
}

// Mismatch walks subject from the root. walked is the length of the longest
// prefix of subject that is a path in the trie, matched the length of the
// longest prefix that is a stored key (0 when there is none).
func (m *TrieMap[S, V]) Mismatch(subject Sequence[S]) (walked, matched int) {
	cur := rootID
	for i, n := 0, subject.Len(); i < n; i++ {
		next, ok := m.s.child(cur, subject.At(i))
		if !ok {
			break
		}
		cur = next
		walked = i + 1
		if m.s.at(cur).hasValue {
			matched = walked
		}
	}
	return walked, matched
}

func (m *TrieMap[S, V]) subtree(top nodeID) iter.Seq2[[]S, V] {
	return func(yield func([]S, V) bool) {
		id := top
		if !m.s.at(id).hasValue {
			id = m.nextValued(id, top)
		}
		for ; id != noNode; id = m.nextValued(id, top) {
			if !yield(m.s.keyOf(id), m.s.at(id).value) {
				return
			}
		}
	}
}

// firstChild returns the child of id with the smallest symbol.
func (m *TrieMap[S, V]) firstChild(id nodeID) (nodeID, bool) {
	var (
		best   S
		bestID = noNode
	)
	for sym, c := range m.s.at(id).children {
		if bestID == noNode || m.compare(sym, best) < 0 {
			best, bestID = sym, c
		}
	}
	return bestID, bestID != noNode
}

// nextSibling returns the child of parent with the smallest symbol greater
// than after.
func (m *TrieMap[S, V]) nextSibling(parent nodeID, after S) (nodeID, bool) {
	var (
		best   S
		bestID = noNode
	)
	for sym, c := range m.s.at(parent).children {
		if m.compare(sym, after) <= 0 {
			continue
		}
		if bestID == noNode || m.compare(sym, best) < 0 {
			best, bestID = sym, c
		}
	}
	return bestID, bestID != noNode
}

// advance steps to the pre-order successor of id inside the subtree rooted at
// top, or noNode when the subtree is exhausted.
func (m *TrieMap[S, V]) advance(id, top nodeID) nodeID {
	if c, ok := m.firstChild(id); ok {
		return c
	}
	for id != top {
		n := m.s.at(id)
		if sib, ok := m.nextSibling(n.parent, n.symbol); ok {
			return sib
		}
		id = n.parent
	}
	return noNode
}

func (m *TrieMap[S, V]) nextValued(id, top nodeID) nodeID {
	for id = m.advance(id, top); id != noNode; id = m.advance(id, top) {
		if m.s.at(id).hasValue {
			return id
		}
	}
	return noNode
}
