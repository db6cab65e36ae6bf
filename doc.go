/*
Package ac provides a generic multi-pattern matcher: an ordered map from symbol
sequences to values, stored as a trie and compiled on demand into an
Aho-Corasick automaton.

Symbols can be bytes, runes or any comparable token with a total order. Keys
are inserted, found, erased and iterated in lexicographic order like any map,
and the same structure scans subjects for every stored key in a single pass:

	a := ac.NewAutomaton[byte, int]()
	a.Insert([]byte("he"), 1)
	a.Insert([]byte("she"), 2)
	n := ac.Count(ac.String("ushers"), a) // 2

Subjects are read through Sequence, so Reverse lets the same matcher scan back
to front. MatchIterator and SubsequenceSet enumerate matches lazily, and
Scanner consumes a stream one symbol at a time.
*/
package ac
