package ac

import "cmp"

// Automaton is a TrieMap compiled into an Aho-Corasick matcher. Every scan
// builds the failure links on demand after a mutation; Build lets the caller
// pay that cost up front, which is required before an automaton is shared by
// concurrent read-only scanners.
type Automaton[S comparable, V any] struct {
	TrieMap[S, V]
}

// NewAutomaton creates an empty automaton over an ordered symbol type.
func NewAutomaton[S cmp.Ordered, V any]() *Automaton[S, V] {
	return NewAutomatonFunc[S, V](cmp.Compare[S])
}

// NewAutomatonFunc creates an empty automaton whose symbols are ordered by
// compare.
func NewAutomatonFunc[S comparable, V any](compare func(a, b S) int) *Automaton[S, V] {
	a := new(Automaton[S, V])
	a.init(compare)
	return a
}

// Build recomputes every failure link from scratch.
func (a *Automaton[S, V]) Build() { a.s.build() }

// Built reports whether the failure links reflect the current keys.
func (a *Automaton[S, V]) Built() bool { return a.s.built }

// MaxDepth returns the length of the longest stored path, building first if
// needed.
func (a *Automaton[S, V]) MaxDepth() int {
	a.s.ensureBuilt()
	return a.s.maxDepth
}

// NewScanner returns a streaming scanner positioned at the start of a subject.
func (a *Automaton[S, V]) NewScanner() *Scanner[S, V] { return NewScanner[S, V](a) }

func (s *store[S, V]) ensureBuilt() {
	if !s.built {
		s.build()
	}
}

// build computes the fail and output link of every node breadth-first, so a
// node is resolved only after every shallower node.
func (s *store[S, V]) build() {
	root := s.at(rootID)
	root.fail = rootID
	root.output = noNode
	s.maxDepth = 0

	queue := make([]nodeID, 0, len(s.nodes))
	for _, c := range root.children {
		n := s.at(c)
		n.fail = rootID
		n.output = noNode
		queue = append(queue, c)
	}
	for head := 0; head < len(queue); head++ {
		id := queue[head]
		n := s.at(id)
		if n.depth > s.maxDepth {
			s.maxDepth = n.depth
		}
		if n.parent != rootID {
			n.fail = s.failTarget(s.at(n.parent).fail, n.symbol, id)
			if f := s.at(n.fail); n.fail != rootID && f.hasValue {
				n.output = n.fail
			} else {
				n.output = f.output
			}
		}
		for _, c := range n.children {
			queue = append(queue, c)
		}
	}
	s.built = true
}

// failTarget follows fail links from f until a node with a child for sym is
// found, falling back to the root.
func (s *store[S, V]) failTarget(f nodeID, sym S, self nodeID) nodeID {
	for {
		if c, ok := s.child(f, sym); ok && c != self {
			return c
		}
		if f == rootID {
			return rootID
		}
		f = s.at(f).fail
	}
}

// step is the automaton transition: descend on sym, falling back along fail
// links, and stay at the root when nothing matches.
func (s *store[S, V]) step(state nodeID, sym S) nodeID {
	for {
		if c, ok := s.child(state, sym); ok {
			return c
		}
		if state == rootID {
			return rootID
		}
		state = s.at(state).fail
	}
}

// firstOutput returns the longest key ending in state, or noNode. The rest of
// the keys ending there follow through output links in decreasing length.
func (s *store[S, V]) firstOutput(state nodeID) nodeID {
	n := s.at(state)
	if state != rootID && n.hasValue {
		return state
	}
	return n.output
}

func (s *store[S, V]) matchAt(id nodeID, end int) Match[V] {
	n := s.at(id)
	return Match[V]{Begin: end - n.depth, End: end, Value: n.value}
}
