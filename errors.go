package ac

import "errors"

var (
	// ErrInvalidIterator is the panic value raised when the key or value of an
	// end iterator, or of an iterator whose node has been erased, is accessed.
	ErrInvalidIterator = errors.New("ac: invalid iterator")

	// ErrStaleAutomaton is reported by a MatchIterator whose matcher was
	// mutated after the iteration started.
	ErrStaleAutomaton = errors.New("ac: matcher mutated during scan")
)
