package ac

import (
	"cmp"
	"iter"
)

// IterOption configures a MatchIterator.
type IterOption func(*iterConfig)

type iterConfig struct {
	overlap bool
}

// Overlapping makes a MatchIterator report every occurrence, including those
// that overlap an earlier match, instead of resuming after each match.
func Overlapping() IterOption {
	return func(c *iterConfig) { c.overlap = true }
}

// MatchIterator lazily enumerates the matches of a matcher in a subject, one
// per call to Next. By default matches do not overlap: after a match ending at
// p the search restarts from the root at p.
//
//	it := ac.NewMatchIterator(ac.String(text), set)
//	for it.Next() {
//		m := it.Match()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type MatchIterator[S comparable, V any] struct {
	t       *TrieMap[S, V]
	subject Sequence[S]
	overlap bool
	flip    bool

	pos     int
	state   nodeID
	pending nodeID
	version uint64
	match   Match[V]
	done    bool
	err     error
}

// NewMatchIterator returns an iterator over the matches of m in subject.
func NewMatchIterator[S comparable, V any](subject Sequence[S], m Matcher[S, V], opts ...IterOption) *MatchIterator[S, V] {
	var cfg iterConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	it := &MatchIterator[S, V]{t: m.trie(), overlap: cfg.overlap}
	it.Reset(subject)
	return it
}

// Reset restarts the iterator on a new subject, rebuilding the matcher first
// if it changed.
func (it *MatchIterator[S, V]) Reset(subject Sequence[S]) {
	it.t.s.ensureBuilt()
	it.subject = subject
	it.version = it.t.s.version
	it.pos = 0
	it.state = rootID
	it.pending = noNode
	it.match = Match[V]{}
	it.done = false
	it.err = nil
}

// Next advances to the next match and reports whether there is one. It returns
// false at the end of the subject, or if the matcher was mutated after the
// iteration started, in which case Err returns ErrStaleAutomaton.
func (it *MatchIterator[S, V]) Next() bool {
	if it.done {
		return false
	}
	s := &it.t.s
	if s.version != it.version {
		it.err = ErrStaleAutomaton
		it.done = true
		return false
	}
	if it.pending != noNode {
		it.emit(it.pending)
		return true
	}
	for n := it.subject.Len(); it.pos < n; {
		it.state = s.step(it.state, it.subject.At(it.pos))
		it.pos++
		if o := s.firstOutput(it.state); o != noNode {
			it.emit(o)
			if !it.overlap {
				it.pending = noNode
				it.state = rootID
			}
			return true
		}
	}
	it.done = true
	return false
}

func (it *MatchIterator[S, V]) emit(id nodeID) {
	s := &it.t.s
	it.match = s.matchAt(id, it.pos)
	it.pending = s.at(id).output
	if it.flip {
		n := it.subject.Len()
		it.match.Begin, it.match.End = n-it.match.End, n-it.match.Begin
	}
}

// Match returns the current match. It is the zero Match before the first call
// to Next and after Next returned false.
func (it *MatchIterator[S, V]) Match() Match[V] {
	if it.done {
		return Match[V]{}
	}
	return it.match
}

// Value returns the value stored under the key of the current match.
func (it *MatchIterator[S, V]) Value() V { return it.Match().Value }

// Err returns the error that ended the iteration, if any.
func (it *MatchIterator[S, V]) Err() error { return it.err }

// SubsequenceSet is a dictionary of sequences scanned for non-overlapping
// matches. A reverse set stores its keys back to front and scans subjects from
// the end, reporting spans in forward positions and the rightmost match first.
//
// The embedded TrieMap works on the stored orientation. Add, Put, Lookup,
// Remove and Iterate take keys and subjects in their natural orientation.
type SubsequenceSet[S comparable, V any] struct {
	TrieMap[S, V]
	reverse bool
}

// NewSubsequenceSet creates an empty forward set.
func NewSubsequenceSet[S cmp.Ordered, V any]() *SubsequenceSet[S, V] {
	ss := new(SubsequenceSet[S, V])
	ss.init(cmp.Compare[S])
	return ss
}

// NewReverseSubsequenceSet creates an empty set that scans back to front.
func NewReverseSubsequenceSet[S cmp.Ordered, V any]() *SubsequenceSet[S, V] {
	ss := NewSubsequenceSet[S, V]()
	ss.reverse = true
	return ss
}

// Reversed reports whether the set scans back to front.
func (ss *SubsequenceSet[S, V]) Reversed() bool { return ss.reverse }

func (ss *SubsequenceSet[S, V]) orient(key Sequence[S]) Sequence[S] {
	if ss.reverse {
		return Reverse(key)
	}
	return key
}

// Add inserts key with the zero value, leaving an existing value untouched.
func (ss *SubsequenceSet[S, V]) Add(key []S) bool {
	k := ss.orient(Slice[S](key))
	if it := ss.FindSeq(k); it.Valid() {
		return false
	}
	var zero V
	_, added := ss.InsertSeq(k, zero)
	return added
}

// Put stores v under key.
func (ss *SubsequenceSet[S, V]) Put(key []S, v V) {
	ss.InsertSeq(ss.orient(Slice[S](key)), v)
}

// Lookup returns the value stored under key.
func (ss *SubsequenceSet[S, V]) Lookup(key []S) (V, bool) {
	it := ss.FindSeq(ss.orient(Slice[S](key)))
	if !it.Valid() {
		var zero V
		return zero, false
	}
	return it.Value(), true
}

// Remove erases key.
func (ss *SubsequenceSet[S, V]) Remove(key []S) bool {
	return ss.EraseSeq(ss.orient(Slice[S](key)))
}

// Iterate returns an iterator over the matches of the set in subject, with
// spans in forward positions whatever the direction of the set.
func (ss *SubsequenceSet[S, V]) Iterate(subject Sequence[S], opts ...IterOption) *MatchIterator[S, V] {
	if !ss.reverse {
		return NewMatchIterator[S, V](subject, ss, opts...)
	}
	it := NewMatchIterator[S, V](Reverse(subject), ss, opts...)
	it.flip = true
	return it
}

// Matches yields the matches of Iterate in scan order.
func (ss *SubsequenceSet[S, V]) Matches(subject Sequence[S], opts ...IterOption) iter.Seq[Match[V]] {
	return func(yield func(Match[V]) bool) {
		it := ss.Iterate(subject, opts...)
		for it.Next() {
			if !yield(it.Match()) {
				return
			}
		}
	}
}
