package textmatch

import (
	"unicode/utf8"

	ac "github.com/sarthakjha889/go-aho-corasick"
)

// Stream scans text that arrives in chunks. Matches may span chunk boundaries
// and are reported with byte offsets counted from the start of the stream.
// Unlike FindAll, a stream reports overlapping occurrences.
//
// A Stream keeps only the bytes of the partial match in progress, so memory
// is bounded by the longest pattern.
type Stream[V any] struct {
	sc *ac.Scanner[rune, entry[V]]
	m  *mapper

	offset int    // bytes consumed
	tail   string // incomplete UTF-8 sequence held back from the last chunk

	// window holds the text from windowAt to offset. starts and ends hold
	// the byte spans of the symbols from position base on.
	window   []byte
	windowAt int
	starts   []int
	ends     []int
	base     int
}

// NewStream returns a stream positioned at offset 0.
func (d *Dictionary[V]) NewStream() *Stream[V] {
	return &Stream[V]{
		sc: ac.NewScanner[rune, entry[V]](d.a),
		m:  d.newMapper(),
	}
}

// Offset returns the number of bytes consumed so far.
func (st *Stream[V]) Offset() int { return st.offset }

// Reset rewinds the stream to offset 0.
func (st *Stream[V]) Reset() {
	st.sc.Reset()
	st.offset, st.tail = 0, ""
	st.window, st.windowAt = st.window[:0], 0
	st.starts, st.ends, st.base = st.starts[:0], st.ends[:0], 0
}

// WriteString consumes chunk and returns the matches that end inside it.
func (st *Stream[V]) WriteString(chunk string) []Match[V] {
	data := st.tail + chunk
	st.tail = ""
	if n := len(data); n > 0 {
		i := n - 1
		for i > 0 && n-i < utf8.UTFMax && !utf8.RuneStart(data[i]) {
			i--
		}
		if !utf8.FullRuneInString(data[i:]) {
			st.tail = data[i:]
			data = data[:i]
		}
	}

	var out []Match[V]
	collect := func(m ac.Match[entry[V]]) bool {
		b := st.starts[m.Begin-st.base]
		e := st.ends[m.End-1-st.base]
		out = append(out, Match[V]{
			Pattern: m.Value.pattern,
			Text:    string(st.window[b-st.windowAt : e-st.windowAt]),
			Begin:   b,
			End:     e,
			Value:   m.Value.value,
		})
		return true
	}

	st.window = append(st.window, data...)
	for i, r := range data {
		_, size := utf8.DecodeRuneInString(data[i:])
		start := st.offset + i
		if st.m == nil {
			st.step(r, start, start+size, collect)
			continue
		}
		for _, mr := range st.m.apply(string(r)) {
			st.step(mr, start, start+size, collect)
		}
	}
	st.offset += len(data)
	st.trim()
	return out
}

func (st *Stream[V]) step(r rune, start, end int, yield func(ac.Match[entry[V]]) bool) {
	st.starts = append(st.starts, start)
	st.ends = append(st.ends, end)
	st.sc.Step(r, yield)
}

// trim drops the symbols no future match can begin at.
func (st *Stream[V]) trim() {
	keep := st.sc.Pos() - st.sc.Depth()
	if drop := keep - st.base; drop > 0 {
		st.starts = append(st.starts[:0], st.starts[drop:]...)
		st.ends = append(st.ends[:0], st.ends[drop:]...)
		st.base = keep
	}
	at := st.offset
	if len(st.starts) > 0 {
		at = st.starts[0]
	}
	if drop := at - st.windowAt; drop > 0 {
		st.window = append(st.window[:0], st.window[drop:]...)
		st.windowAt = at
	}
}
