package ac

import "iter"

// Matcher is anything the scanning functions can drive a subject through:
// *TrieMap, *Automaton and *SubsequenceSet. Scans always use failure links and
// build them first when the keys changed since the last build.
type Matcher[S comparable, V any] interface {
	trie() *TrieMap[S, V]
}

// Match is one occurrence of a stored key in a subject: the half-open span
// [Begin, End) of subject positions and the value stored under the key.
type Match[V any] struct {
	Begin int
	End   int
	Value V
}

// Len returns the number of symbols covered by the match.
func (m Match[V]) Len() int { return m.End - m.Begin }

// FindFirst returns the occurrence of a stored key that ends first in subject.
// When several keys end at the same position the longest wins.
func FindFirst[S comparable, V any](subject Sequence[S], m Matcher[S, V]) (Match[V], bool) {
	var (
		first Match[V]
		found bool
	)
	sc := NewScanner(m)
	for i, n := 0, subject.Len(); i < n && !found; i++ {
		sc.Step(subject.At(i), func(hit Match[V]) bool {
			first, found = hit, true
			return false
		})
	}
	return first, found
}

// FindFirstOf returns the span of the first occurrence of any stored key, or
// (Len, Len) when there is none.
func FindFirstOf[S comparable, V any](subject Sequence[S], m Matcher[S, V]) (begin, end int) {
	if hit, ok := FindFirst(subject, m); ok {
		return hit.Begin, hit.End
	}
	return subject.Len(), subject.Len()
}

// Search reports whether any stored key occurs in subject.
func Search[S comparable, V any](subject Sequence[S], m Matcher[S, V]) bool {
	_, ok := FindFirst(subject, m)
	return ok
}

// Count returns the number of occurrences of stored keys in subject, counting
// overlapping occurrences and keys that end at the same position.
func Count[S comparable, V any](subject Sequence[S], m Matcher[S, V]) int {
	total := 0
	sc := NewScanner(m)
	for i, n := 0, subject.Len(); i < n; i++ {
		sc.Step(subject.At(i), func(Match[V]) bool {
			total++
			return true
		})
	}
	return total
}

// FindAll returns every occurrence counted by Count, ordered by end position
// and, at the same end, longest first.
func FindAll[S comparable, V any](subject Sequence[S], m Matcher[S, V]) []Match[V] {
	var hits []Match[V]
	sc := NewScanner(m)
	for i, n := 0, subject.Len(); i < n; i++ {
		sc.Step(subject.At(i), func(hit Match[V]) bool {
			hits = append(hits, hit)
			return true
		})
	}
	return hits
}

// Matches lazily yields the matches a MatchIterator over subject would
// produce: non-overlapping unless the Overlapping option is given.
func Matches[S comparable, V any](subject Sequence[S], m Matcher[S, V], opts ...IterOption) iter.Seq[Match[V]] {
	return func(yield func(Match[V]) bool) {
		it := NewMatchIterator(subject, m, opts...)
		for it.Next() {
			if !yield(it.Match()) {
				return
			}
		}
	}
}
