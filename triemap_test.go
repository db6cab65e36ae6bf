package ac

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bs(s string) []byte { return []byte(s) }

func keysOf[V any](m *TrieMap[byte, V]) []string {
	var out []string
	for k := range m.Keys() {
		out = append(out, string(k))
	}
	return out
}

func TestTrieMapFunctions(t *testing.T) {
	t.Run("Insert and Find", func(t *testing.T) {
		m := New[byte, int]()
		it, added := m.Insert(bs("abc"), 1)
		assert.True(t, added)
		assert.Equal(t, "abc", string(it.Key()))
		assert.Equal(t, 1, it.Value())

		found := m.Find(bs("abc"))
		assert.Equal(t, it, found)
		assert.Equal(t, m.End(), m.Find(bs("ab")))
		assert.Equal(t, m.End(), m.Find(bs("abcd")))
		assert.Equal(t, 1, m.Len())
	})

	t.Run("Insert overwrites", func(t *testing.T) {
		m := New[byte, int]()
		m.Insert(bs("key"), 1)
		it, added := m.Insert(bs("key"), 2)
		assert.False(t, added)
		assert.Equal(t, 2, it.Value())
		v, ok := m.Get(bs("key"))
		assert.True(t, ok)
		assert.Equal(t, 2, v)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("Empty key lives at the root", func(t *testing.T) {
		m := New[byte, string]()
		_, added := m.Insert(nil, "root")
		assert.True(t, added)
		assert.Equal(t, 1, m.Len())
		assert.Equal(t, 1, m.Nodes())
		assert.Equal(t, 1, m.Count(nil))
		assert.Empty(t, m.Begin().Key())
		assert.True(t, m.Erase([]byte{}))
		assert.True(t, m.Empty())
	})

	t.Run("Count is an existence test", func(t *testing.T) {
		m := New[byte, int]()
		m.Set(bs("x"), 1)
		m.Set(bs("x"), 2)
		assert.Equal(t, 1, m.Count(bs("x")))
		assert.Equal(t, 0, m.Count(bs("y")))
	})

	t.Run("Erase prunes private nodes only", func(t *testing.T) {
		m := New[byte, int]()
		assert.Equal(t, 1, m.Nodes())
		m.Insert(bs("abc"), 1)
		assert.Equal(t, 4, m.Nodes())
		m.Insert(bs("abd"), 2)
		assert.Equal(t, 5, m.Nodes())

		assert.True(t, m.Erase(bs("abd")))
		assert.Equal(t, 4, m.Nodes())
		assert.True(t, m.Contains(bs("abc")))

		assert.True(t, m.Erase(bs("abc")))
		assert.Equal(t, 1, m.Nodes())
		assert.True(t, m.Empty())
	})

	t.Run("Erase keeps nodes needed by longer keys", func(t *testing.T) {
		m := New[byte, int]()
		m.Insert(bs("ab"), 1)
		m.Insert(bs("abc"), 2)
		assert.True(t, m.Erase(bs("ab")))
		assert.Equal(t, 4, m.Nodes())
		assert.False(t, m.Contains(bs("ab")))
		assert.True(t, m.Contains(bs("abc")))
	})

	t.Run("Erase of an absent key is a no-op", func(t *testing.T) {
		m := New[byte, int]()
		m.Insert(bs("abc"), 1)
		assert.False(t, m.Erase(bs("xyz")))
		assert.False(t, m.Erase(bs("ab")))
		assert.False(t, m.Erase(bs("abcd")))
		assert.Equal(t, 1, m.Len())
		assert.Equal(t, 4, m.Nodes())
	})

	t.Run("Erased values are not resurrected", func(t *testing.T) {
		m := New[byte, int]()
		m.Insert(bs("abc"), 7)
		assert.True(t, m.Contains(bs("abc")))
		m.Erase(bs("abc"))
		m.Insert(bs("abd"), 8)
		assert.False(t, m.Contains(bs("abc")))
		assert.False(t, m.Contains(bs("ab")))
		v, ok := m.Get(bs("abd"))
		assert.True(t, ok)
		assert.Equal(t, 8, v)
	})

	t.Run("Iteration is in key order", func(t *testing.T) {
		m := New[byte, int]()
		for i, k := range []string{"mnopq", "abcdf", "b", "abc", "", "ab"} {
			m.Insert(bs(k), i)
		}
		assert.Equal(t, []string{"", "ab", "abc", "abcdf", "b", "mnopq"}, keysOf(m))

		var viaIterator []string
		for it := m.Begin(); it != m.End(); it.Next() {
			viaIterator = append(viaIterator, string(it.Key()))
		}
		assert.Equal(t, keysOf(m), viaIterator)
	})

	t.Run("WithPrefix", func(t *testing.T) {
		m := New[byte, int]()
		for i, k := range []string{"tuesday", "thursday", "monday", "thu", "t"} {
			m.Insert(bs(k), i)
		}
		var got []string
		for k := range m.WithPrefix(bs("th")) {
			got = append(got, string(k))
		}
		assert.Equal(t, []string{"thu", "thursday"}, got)

		got = got[:0]
		for k := range m.WithPrefix(bs("t")) {
			got = append(got, string(k))
		}
		assert.Equal(t, []string{"t", "thu", "thursday", "tuesday"}, got)

		for range m.WithPrefix(bs("x")) {
			t.Fatal("unexpected key")
		}
	})

	t.Run("Invalid iterators panic", func(t *testing.T) {
		m := New[byte, int]()
		assert.PanicsWithValue(t, ErrInvalidIterator, func() { m.End().Key() })
		assert.PanicsWithValue(t, ErrInvalidIterator, func() { m.End().Value() })

		it, _ := m.Insert(bs("abc"), 1)
		m.Erase(bs("abc"))
		assert.False(t, it.Valid())
		assert.PanicsWithValue(t, ErrInvalidIterator, func() { it.Value() })

		// the freed slots are reused, the iterator must still be stale
		m.Insert(bs("xyz"), 2)
		assert.False(t, it.Valid())

		var zero Iterator[byte, int]
		assert.False(t, zero.Valid())
		assert.False(t, zero.Next())
	})

	t.Run("SetValue", func(t *testing.T) {
		m := New[byte, int]()
		it, _ := m.Insert(bs("k"), 1)
		it.SetValue(5)
		v, _ := m.Get(bs("k"))
		assert.Equal(t, 5, v)
	})

	t.Run("EraseAt returns the next key", func(t *testing.T) {
		m := New[byte, int]()
		for i, k := range []string{"a", "ab", "abc", "b"} {
			m.Insert(bs(k), i)
		}
		next := m.EraseAt(m.Find(bs("abc")))
		require.True(t, next.Valid())
		assert.Equal(t, "b", string(next.Key()))
		next = m.EraseAt(next)
		assert.Equal(t, m.End(), next)
		assert.Equal(t, []string{"a", "ab"}, keysOf(m))
		assert.Panics(t, func() { m.EraseAt(m.End()) })
	})

	t.Run("Clear", func(t *testing.T) {
		m := New[byte, int]()
		it, _ := m.Insert(bs("abc"), 1)
		m.Insert(bs("abd"), 2)
		m.Clear()
		assert.True(t, m.Empty())
		assert.Equal(t, 0, m.Len())
		assert.Equal(t, 1, m.Nodes())
		assert.False(t, it.Valid())
		assert.Equal(t, m.End(), m.Begin())

		m.Insert(bs("q"), 3)
		assert.Equal(t, []string{"q"}, keysOf(m))
	})

	t.Run("LongestPrefix and Mismatch", func(t *testing.T) {
		m := New[byte, string]()
		m.Insert(bs("ab"), "short")
		m.Insert(bs("abcd"), "long")
		n, v, ok := m.LongestPrefix(String("abcx"))
		assert.True(t, ok)
		assert.Equal(t, 2, n)
		assert.Equal(t, "short", v)

		walked, matched := m.Mismatch(String("abcx"))
		assert.Equal(t, 3, walked)
		assert.Equal(t, 2, matched)

		_, _, ok = m.LongestPrefix(String("zzz"))
		assert.False(t, ok)
	})

	t.Run("Custom comparator", func(t *testing.T) {
		type token struct{ word string }
		m := NewFunc[token, int](func(a, b token) int {
			return strings.Compare(b.word, a.word)
		})
		m.Insert([]token{{"a"}}, 1)
		m.Insert([]token{{"c"}}, 3)
		m.Insert([]token{{"b"}, {"x"}}, 2)
		var got []string
		for k := range m.Keys() {
			got = append(got, k[0].word)
		}
		assert.Equal(t, []string{"c", "b", "a"}, got)
		assert.Panics(t, func() { NewFunc[token, int](nil) })
	})
}

func TestTrieMapScenario(t *testing.T) {
	str := String("abcdefghijklmnopqrstuvwxyz")

	m := New[byte, int]()
	assert.Equal(t, m.End(), m.Begin())

	ret, _ := m.Insert(bs("abc"), 1)
	assert.Equal(t, "abc", string(ret.Key()))
	assert.Equal(t, 1, ret.Value())

	m.InsertSeq(String("abcdf"), 2)
	m.Insert(bs("mnopq"), 3)
	m.Set(bs("ghi"), 4)
	m.Insert(bs("xyz"), 5)
	m.Insert(bs("opq"), 6)
	m.Insert(bs("rst"), 7)

	assert.NotEqual(t, m.End(), m.Find(bs("xyz")))
	assert.Equal(t, 1, m.Count(bs("xyz")))

	m.Erase(bs("xyz"))
	m.EraseSeq(String("opq"))
	m.Erase(bs("rst"))
	assert.Equal(t, m.End(), m.Find(bs("xyz")))
	assert.Equal(t, 0, m.Count(bs("xyz")))
	assert.Equal(t, 4, m.Len())

	begin, end := FindFirstOf(str, m)
	assert.Equal(t, 0, begin)
	assert.Equal(t, 3, end)
	assert.True(t, Search(str, m))
	assert.Equal(t, 3, Count(str, m))
}
