package ac

type nodeID int32

const (
	rootID nodeID = 0
	noNode nodeID = -1
)

// node is one prefix of some inserted key. children own their nodes through the
// arena; parent, fail and output are plain indices into it.
type node[S comparable, V any] struct {
	children map[S]nodeID
	parent   nodeID
	symbol   S
	depth    int
	fail     nodeID
	// output is the nearest valued node on the fail chain, excluding the root.
	output   nodeID
	gen      uint32
	live     bool
	hasValue bool
	value    V
}

// store is the arena holding every node of a trie. Slot 0 is always the root.
type store[S comparable, V any] struct {
	nodes    []node[S, V]
	free     []nodeID
	size     int
	built    bool
	version  uint64
	maxDepth int
}

func (s *store[S, V]) init() {
	s.nodes = []node[S, V]{{
		children: make(map[S]nodeID),
		parent:   noNode,
		fail:     rootID,
		output:   noNode,
		live:     true,
	}}
	s.free = nil
	s.size = 0
	s.touch()
}

// touch marks the structure as mutated: fail links are stale and live scans
// must stop.
func (s *store[S, V]) touch() {
	s.built = false
	s.version++
}

func (s *store[S, V]) at(id nodeID) *node[S, V] { return &s.nodes[id] }

func (s *store[S, V]) alloc(parent nodeID, sym S) nodeID {
	p := s.at(parent)
	n := node[S, V]{
		children: make(map[S]nodeID),
		parent:   parent,
		symbol:   sym,
		depth:    p.depth + 1,
		fail:     noNode,
		output:   noNode,
		live:     true,
	}
	var id nodeID
	if k := len(s.free); k > 0 {
		id = s.free[k-1]
		s.free = s.free[:k-1]
		n.gen = s.nodes[id].gen
		s.nodes[id] = n
	} else {
		id = nodeID(len(s.nodes))
		s.nodes = append(s.nodes, n)
	}
	s.at(parent).children[sym] = id
	return id
}

func (s *store[S, V]) release(id nodeID) {
	n := s.at(id)
	*n = node[S, V]{gen: n.gen + 1, parent: noNode, fail: noNode, output: noNode}
	s.free = append(s.free, id)
}

func (s *store[S, V]) child(id nodeID, sym S) (nodeID, bool) {
	c, ok := s.nodes[id].children[sym]
	return c, ok
}

// lookup walks key from the root and returns the node it ends on.
func (s *store[S, V]) lookup(key Sequence[S]) (nodeID, bool) {
	cur := rootID
	for i, n := 0, key.Len(); i < n; i++ {
		next, ok := s.child(cur, key.At(i))
		if !ok {
			return noNode, false
		}
		cur = next
	}
	return cur, true
}

// insert extends the path for key, reusing existing prefix nodes, and sets the
// value at its terminal node. It reports whether the key is new.
func (s *store[S, V]) insert(key Sequence[S], v V) (nodeID, bool) {
	cur := rootID
	for i, n := 0, key.Len(); i < n; i++ {
		sym := key.At(i)
		next, ok := s.child(cur, sym)
		if !ok {
			next = s.alloc(cur, sym)
		}
		cur = next
	}
	t := s.at(cur)
	added := !t.hasValue
	t.value = v
	t.hasValue = true
	if added {
		s.size++
	}
	s.touch()
	return cur, added
}

// eraseNode clears the value at id and prunes every ancestor left without a
// value or children, stopping at the root.
func (s *store[S, V]) eraseNode(id nodeID) {
	n := s.at(id)
	if !n.hasValue {
		return
	}
	var zero V
	n.value = zero
	n.hasValue = false
	s.size--
	for id != rootID {
		n = s.at(id)
		if n.hasValue || len(n.children) > 0 {
			break
		}
		parent := n.parent
		delete(s.at(parent).children, n.symbol)
		s.release(id)
		id = parent
	}
	s.touch()
}

// clear drops every node but a fresh root. Slots are kept with a bumped
// generation so iterators created before the clear are recognised as stale.
func (s *store[S, V]) clear() {
	s.free = s.free[:0]
	for i := len(s.nodes) - 1; i > 0; i-- {
		s.nodes[i] = node[S, V]{gen: s.nodes[i].gen + 1, parent: noNode, fail: noNode, output: noNode}
		s.free = append(s.free, nodeID(i))
	}
	s.nodes[0] = node[S, V]{
		children: make(map[S]nodeID),
		parent:   noNode,
		fail:     rootID,
		output:   noNode,
		gen:      s.nodes[0].gen + 1,
		live:     true,
	}
	s.size = 0
	s.touch()
}

func (s *store[S, V]) liveNodes() int { return len(s.nodes) - len(s.free) }

// keyOf rebuilds the key of id by walking parent links back to the root.
func (s *store[S, V]) keyOf(id nodeID) []S {
	key := make([]S, s.nodes[id].depth)
	for i := len(key) - 1; id != rootID; i-- {
		n := s.at(id)
		key[i] = n.symbol
		id = n.parent
	}
	return key
}
