// Package textmatch matches dictionaries of string patterns against text. It
// scans runes with an ac.Automaton and reports byte offsets into the original
// text, optionally folding case on both sides.
package textmatch

import (
	"unicode"
	"unicode/utf8"

	ac "github.com/sarthakjha889/go-aho-corasick"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Dictionary maps string patterns to values. Like ac.TrieMap it is not safe
// for concurrent mutation; once built it may be scanned from many goroutines.
type Dictionary[V any] struct {
	a          *ac.Automaton[rune, entry[V]]
	fold       bool
	normalised bool
	overlap    bool
}

type entry[V any] struct {
	pattern string
	value   V
}

// Match is one occurrence of a pattern. Begin and End are byte offsets into
// the scanned text and Text is the matched slice of it, which differs from
// Pattern when case is folded.
type Match[V any] struct {
	Pattern string
	Text    string
	Begin   int
	End     int
	Value   V
}

// New creates an empty, case sensitive, non-overlapping dictionary.
func New[V any]() *Dictionary[V] {
	return &Dictionary[V]{a: ac.NewAutomaton[rune, entry[V]]()}
}

// CaseInsensitive makes the dictionary fold case on patterns and text.
// Patterns already added are re-keyed.
func (d *Dictionary[V]) CaseInsensitive() *Dictionary[V] {
	d.rekey(func() { d.fold = true })
	return d
}

// CaseSensitive makes the dictionary compare runes exactly.
// Patterns already added are re-keyed.
func (d *Dictionary[V]) CaseSensitive() *Dictionary[V] {
	d.rekey(func() { d.fold = false })
	return d
}

// WithNormalisation makes the dictionary ignore diacritics, so that Jurg
// matches Jürg and Jürg matches Jurg. Patterns already added are re-keyed.
func (d *Dictionary[V]) WithNormalisation() *Dictionary[V] {
	d.rekey(func() { d.normalised = true })
	return d
}

// WithoutNormalisation makes diacritics significant again.
func (d *Dictionary[V]) WithoutNormalisation() *Dictionary[V] {
	d.rekey(func() { d.normalised = false })
	return d
}

// Overlapping makes FindAll report overlapping occurrences.
func (d *Dictionary[V]) Overlapping() *Dictionary[V] {
	d.overlap = true
	return d
}

// NonOverlapping makes FindAll resume after each reported occurrence.
func (d *Dictionary[V]) NonOverlapping() *Dictionary[V] {
	d.overlap = false
	return d
}

// Folded reports whether the dictionary folds case.
func (d *Dictionary[V]) Folded() bool { return d.fold }

// Normalised reports whether the dictionary ignores diacritics.
func (d *Dictionary[V]) Normalised() bool { return d.normalised }

func (d *Dictionary[V]) rekey(change func()) {
	fold, normalised := d.fold, d.normalised
	change()
	if d.fold == fold && d.normalised == normalised {
		return
	}
	var entries []entry[V]
	for _, e := range d.a.All() {
		entries = append(entries, e)
	}
	d.a.Clear()
	for _, e := range entries {
		d.a.Insert(d.key(e.pattern), e)
	}
}

// mapper rewrites text into the symbols the automaton is keyed on. It holds
// stateful transformers and must not be shared between goroutines.
type mapper struct {
	fold  bool
	caser cases.Caser
	strip transform.Transformer
}

func (d *Dictionary[V]) newMapper() *mapper {
	if !d.fold && !d.normalised {
		return nil
	}
	m := &mapper{fold: d.fold}
	if d.fold {
		m.caser = cases.Fold()
	}
	if d.normalised {
		m.strip = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	}
	return m
}

func (m *mapper) apply(s string) string {
	if m.strip != nil {
		if out, _, err := transform.String(m.strip, s); err == nil {
			s = out
		}
	}
	if m.fold {
		s = m.caser.String(s)
	}
	return s
}

func (d *Dictionary[V]) key(pattern string) []rune {
	if m := d.newMapper(); m != nil {
		pattern = m.apply(pattern)
	}
	return []rune(pattern)
}

// Add stores v under pattern and reports whether the pattern is new. Empty
// patterns are ignored.
func (d *Dictionary[V]) Add(pattern string, v V) bool {
	if pattern == "" {
		return false
	}
	_, added := d.a.Insert(d.key(pattern), entry[V]{pattern: pattern, value: v})
	return added
}

// Remove deletes pattern and reports whether it was present.
func (d *Dictionary[V]) Remove(pattern string) bool {
	return d.a.Erase(d.key(pattern))
}

// Lookup returns the value stored under pattern.
func (d *Dictionary[V]) Lookup(pattern string) (V, bool) {
	e, ok := d.a.Get(d.key(pattern))
	return e.value, ok
}

// Len returns the number of patterns.
func (d *Dictionary[V]) Len() int { return d.a.Len() }

// Patterns returns the patterns in key order.
func (d *Dictionary[V]) Patterns() []string {
	out := make([]string, 0, d.a.Len())
	for _, e := range d.a.All() {
		out = append(out, e.pattern)
	}
	return out
}

// Build compiles the automaton. Call it before sharing the dictionary between
// goroutines.
func (d *Dictionary[V]) Build() { d.a.Build() }

// FindAll returns the occurrences of patterns in text in scan order.
func (d *Dictionary[V]) FindAll(text string) []Match[V] {
	sub := d.subject(text)
	var opts []ac.IterOption
	if d.overlap {
		opts = append(opts, ac.Overlapping())
	}
	var out []Match[V]
	for m := range ac.Matches[rune, entry[V]](sub, d.a, opts...) {
		out = append(out, sub.match(m))
	}
	return out
}

// First returns the occurrence that ends first in text.
func (d *Dictionary[V]) First(text string) (Match[V], bool) {
	sub := d.subject(text)
	m, ok := ac.FindFirst[rune, entry[V]](sub, d.a)
	if !ok {
		return Match[V]{}, false
	}
	return sub.match(m), true
}

// Contains reports whether any pattern occurs in text.
func (d *Dictionary[V]) Contains(text string) bool {
	return ac.Search[rune, entry[V]](d.subject(text), d.a)
}

// Count returns the number of occurrences in text, overlapping ones included.
func (d *Dictionary[V]) Count(text string) int {
	return ac.Count[rune, entry[V]](d.subject(text), d.a)
}

// subject is text decoded into (possibly mapped) rune symbols. starts and ends
// hold the byte span of the source rune each symbol came from.
type subject[V any] struct {
	text   string
	syms   []rune
	starts []int
	ends   []int
}

func (s *subject[V]) Len() int      { return len(s.syms) }
func (s *subject[V]) At(i int) rune { return s.syms[i] }

func (s *subject[V]) match(m ac.Match[entry[V]]) Match[V] {
	b, e := s.starts[m.Begin], s.ends[m.End-1]
	return Match[V]{
		Pattern: m.Value.pattern,
		Text:    s.text[b:e],
		Begin:   b,
		End:     e,
		Value:   m.Value.value,
	}
}

func (d *Dictionary[V]) subject(text string) *subject[V] {
	s := &subject[V]{
		text:   text,
		syms:   make([]rune, 0, len(text)),
		starts: make([]int, 0, len(text)),
		ends:   make([]int, 0, len(text)),
	}
	m := d.newMapper()
	for i, r := range text {
		_, size := utf8.DecodeRuneInString(text[i:])
		if m == nil {
			s.push(r, i, i+size)
			continue
		}
		for _, mr := range m.apply(string(r)) {
			s.push(mr, i, i+size)
		}
	}
	return s
}

func (s *subject[V]) push(r rune, start, end int) {
	s.syms = append(s.syms, r)
	s.starts = append(s.starts, start)
	s.ends = append(s.ends, end)
}
