package ac

// Sequence is a finite, indexable run of symbols. Subjects and keys are both
// read through it, so a reversed view scans with the same code as a forward one.
type Sequence[S any] interface {
	Len() int
	At(i int) S
}

// Slice adapts a slice to Sequence.
type Slice[S any] []S

func (s Slice[S]) Len() int     { return len(s) }
func (s Slice[S]) At(i int) S   { return s[i] }
func (s Slice[S]) Symbols() []S { return s }

// String is a byte sequence over a string, without copying it.
type String string

func (s String) Len() int              { return len(s) }
func (s String) At(i int) byte         { return s[i] }
func (s String) Slice(b, e int) string { return string(s[b:e]) }

// Reversed is a back-to-front view of another sequence. Position i of the view
// is position Len()-1-i of the underlying sequence.
type Reversed[S any] struct {
	seq Sequence[S]
}

// Reverse returns a reversed view of seq.
func Reverse[S any](seq Sequence[S]) Reversed[S] { return Reversed[S]{seq: seq} }

func (r Reversed[S]) Len() int { return r.seq.Len() }

func (r Reversed[S]) At(i int) S { return r.seq.At(r.seq.Len() - 1 - i) }

// Forward maps the half-open span [begin, end) of the view onto the
// underlying sequence.
func (r Reversed[S]) Forward(begin, end int) (int, int) {
	n := r.seq.Len()
	return n - end, n - begin
}

// Collect copies a sequence into a new slice.
func Collect[S any](seq Sequence[S]) []S {
	out := make([]S, seq.Len())
	for i := range out {
		out[i] = seq.At(i)
	}
	return out
}
