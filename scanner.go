package ac

// Scanner feeds a subject to a matcher one symbol at a time. It holds only the
// current automaton state and position, so subjects of unbounded length can be
// scanned as they arrive.
type Scanner[S comparable, V any] struct {
	t       *TrieMap[S, V]
	state   nodeID
	pos     int
	version uint64
}

// NewScanner returns a scanner over m positioned at 0.
func NewScanner[S comparable, V any](m Matcher[S, V]) *Scanner[S, V] {
	sc := &Scanner[S, V]{t: m.trie()}
	sc.Reset()
	return sc
}

// Reset rewinds the scanner to position 0 and the root state.
func (sc *Scanner[S, V]) Reset() {
	sc.t.s.ensureBuilt()
	sc.version = sc.t.s.version
	sc.state = rootID
	sc.pos = 0
}

// Pos returns the number of symbols consumed so far.
func (sc *Scanner[S, V]) Pos() int { return sc.pos }

// Depth returns the length of the partial match the scanner is inside. No
// future match can begin before Pos()-Depth().
func (sc *Scanner[S, V]) Depth() int { return sc.t.s.at(sc.state).depth }

// Step consumes sym and calls yield for each key ending at the new position,
// longest first, until yield returns false. yield may be nil. If the matcher
// was mutated since the last step, the failure links are rebuilt and the
// partial match in progress is dropped.
func (sc *Scanner[S, V]) Step(sym S, yield func(Match[V]) bool) {
	s := &sc.t.s
	if sc.version != s.version {
		s.ensureBuilt()
		sc.version = s.version
		sc.state = rootID
	}
	sc.state = s.step(sc.state, sym)
	sc.pos++
	if yield == nil {
		return
	}
	for o := s.firstOutput(sc.state); o != noNode; o = s.at(o).output {
		if !yield(s.matchAt(o, sc.pos)) {
			return
		}
	}
}
