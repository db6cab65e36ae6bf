package textmatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionary(t *testing.T) {
	t.Run("Case sensitive", func(t *testing.T) {
		d := New[int]()
		assert.True(t, d.Add("cat", 1))
		assert.True(t, d.Add("Cat", 2))
		assert.False(t, d.Add("cat", 3))
		assert.False(t, d.Add("", 4))
		assert.Equal(t, 2, d.Len())
		assert.Equal(t, []string{"Cat", "cat"}, d.Patterns())

		got := d.FindAll("Cat and cat")
		require.Len(t, got, 2)
		assert.Equal(t, Match[int]{Pattern: "Cat", Text: "Cat", Begin: 0, End: 3, Value: 2}, got[0])
		assert.Equal(t, Match[int]{Pattern: "cat", Text: "cat", Begin: 8, End: 11, Value: 3}, got[1])
	})

	t.Run("Case insensitive", func(t *testing.T) {
		d := New[string]().CaseInsensitive()
		d.Add("Straße", "street")
		d.Add("HELLO", "greeting")
		assert.True(t, d.Folded())

		v, ok := d.Lookup("hello")
		assert.True(t, ok)
		assert.Equal(t, "greeting", v)

		text := "Say hello at the STRASSE"
		got := d.FindAll(text)
		require.Len(t, got, 2)
		assert.Equal(t, "hello", got[0].Text)
		assert.Equal(t, "HELLO", got[0].Pattern)
		assert.Equal(t, "STRASSE", got[1].Text)
		assert.Equal(t, text[got[1].Begin:got[1].End], got[1].Text)
		assert.Equal(t, "street", got[1].Value)
	})

	t.Run("Switching case mode re-keys patterns", func(t *testing.T) {
		d := New[int]()
		d.Add("Go", 1)
		assert.False(t, d.Contains("go"))
		d.CaseInsensitive()
		assert.True(t, d.Contains("go"))
		d.CaseSensitive()
		assert.False(t, d.Contains("go"))
		assert.True(t, d.Contains("Go"))
		assert.Equal(t, 1, d.Len())
	})

	t.Run("Normalisation ignores diacritics", func(t *testing.T) {
		d := New[int]().WithNormalisation()
		d.Add("Jürg", 1)
		d.Add("cafe", 2)
		assert.True(t, d.Normalised())

		text := "Jurg ordered a café"
		got := d.FindAll(text)
		require.Len(t, got, 2)
		assert.Equal(t, "Jurg", got[0].Text)
		assert.Equal(t, "Jürg", got[0].Pattern)
		assert.Equal(t, "café", got[1].Text)
		assert.Equal(t, len(text), got[1].End)

		assert.False(t, d.Contains("jurg"))
		d.CaseInsensitive()
		assert.True(t, d.Contains("JÜRG"))
		d.WithoutNormalisation()
		assert.False(t, d.Contains("jurg"))
		assert.True(t, d.Contains("jürg"))
	})

	t.Run("Byte offsets over multi-byte text", func(t *testing.T) {
		d := New[int]()
		d.Add("上班", 1)
		text := "早就上班了"
		m, ok := d.First(text)
		require.True(t, ok)
		assert.Equal(t, strings.Index(text, "上班"), m.Begin)
		assert.Equal(t, "上班", text[m.Begin:m.End])
	})

	t.Run("Overlapping", func(t *testing.T) {
		d := New[int]()
		for i, p := range []string{"he", "she", "hers"} {
			d.Add(p, i)
		}
		assert.Len(t, d.FindAll("ushers"), 1)
		d.Overlapping()
		assert.Len(t, d.FindAll("ushers"), 3)
		assert.Equal(t, 3, d.Count("ushers"))
		d.NonOverlapping()
		assert.Len(t, d.FindAll("ushers"), 1)
	})

	t.Run("Remove", func(t *testing.T) {
		d := New[int]().CaseInsensitive()
		d.Add("Spam", 1)
		d.Build()
		assert.True(t, d.Contains("no SPAM here"))
		assert.True(t, d.Remove("spam"))
		assert.False(t, d.Remove("spam"))
		assert.False(t, d.Contains("no SPAM here"))
		_, ok := d.First("spam")
		assert.False(t, ok)
		assert.Empty(t, d.FindAll("spam"))
	})
}

func TestStream(t *testing.T) {
	t.Run("Matches across chunks", func(t *testing.T) {
		d := New[int]()
		d.Add("needle", 1)
		d.Add("eed", 2)
		st := d.NewStream()

		assert.Empty(t, st.WriteString("hayne"))
		got := st.WriteString("edlehay")
		want := []Match[int]{
			{Pattern: "eed", Text: "eed", Begin: 4, End: 7, Value: 2},
			{Pattern: "needle", Text: "needle", Begin: 3, End: 9, Value: 1},
		}
		assert.Equal(t, want, got)
		assert.Equal(t, 12, st.Offset())
	})

	t.Run("Split runes are held back", func(t *testing.T) {
		d := New[int]()
		d.Add("上班", 1)
		st := d.NewStream()
		text := "早就上班了"
		split := strings.Index(text, "班") + 1

		assert.Empty(t, st.WriteString(text[:split]))
		assert.Equal(t, split-1, st.Offset())
		got := st.WriteString(text[split:])
		require.Len(t, got, 1)
		assert.Equal(t, "上班", got[0].Text)
		assert.Equal(t, strings.Index(text, "上班"), got[0].Begin)
		assert.Equal(t, len(text), st.Offset())
	})

	t.Run("Agrees with FindAll", func(t *testing.T) {
		d := New[string]().CaseInsensitive().WithNormalisation().Overlapping()
		for _, p := range []string{"abc", "bcd", "Cd", "ß", "éa"} {
			d.Add(p, p)
		}
		text := "xABCDabcd STRASSE ßabc ÉAbé"
		whole := d.FindAll(text)

		st := d.NewStream()
		var chunked []Match[string]
		for i := 0; i < len(text); i += 3 {
			chunked = append(chunked, st.WriteString(text[i:min(i+3, len(text))])...)
		}
		assert.Equal(t, whole, chunked)
	})

	t.Run("Reset", func(t *testing.T) {
		d := New[int]()
		d.Add("ab", 1)
		st := d.NewStream()
		st.WriteString("a")
		st.Reset()
		assert.Empty(t, st.WriteString("b"))
		assert.Len(t, st.WriteString("ab"), 1)
	})
}
