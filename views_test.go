package mapz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntriesView(t *testing.T) {
	mm := NewLinkedMultimap[string, int]()
	mm.Add("bar", 1)
	mm.Add("foo", 2)
	mm.Add("bar", 3)

	it := mm.Entries().Iterator()
	require.True(t, it.Next())
	require.Equal(t, "bar", it.Key())
	require.Equal(t, 1, it.Value())

	require.True(t, it.Next())
	require.Equal(t, "foo", it.Key())
	require.Equal(t, 2, it.Value())
	old, err := it.SetValue(4)
	require.NoError(t, err)
	require.Equal(t, 2, old)

	require.True(t, it.Next())
	require.Equal(t, "bar", it.Key())
	require.Equal(t, 3, it.Value())
	require.False(t, it.Next())
	require.NoError(t, it.Err())

	// Next already hit the end; the last yielded element is gone, so Remove
	// is rejected rather than guessing.
	require.ErrorIs(t, it.Remove(), ErrIteratorState)
	require.Equal(t, "{bar=[1, 3], foo=[4]}", mm.String())
}

func TestEntriesViewIteratorRemove(t *testing.T) {
	mm := NewLinkedMultimap[string, int]()
	mm.Add("bar", 1)
	mm.Add("foo", 2)
	mm.Add("bar", 3)

	it := mm.Entries().Iterator()
	require.True(t, it.Next())
	require.True(t, it.Next())
	require.True(t, it.Next())
	require.NoError(t, it.Remove())
	require.Equal(t, "{bar=[1], foo=[2]}", mm.String())
}

func TestEntryHandleSetValue(t *testing.T) {
	mm := NewLinkedMultimap[string, int]()
	mm.Add("foo", 1)
	mm.Add("bar", 3)

	entries := mm.Entries().Slice()
	entrya, entryb := entries[0], entries[1]

	old := entrya.SetValue(2)
	require.Equal(t, 1, old)
	require.False(t, mm.HasEntry("foo", 1))
	require.True(t, mm.HasEntry("foo", 2))
	require.True(t, mm.HasEntry("bar", 3))
	require.Equal(t, 2, entrya.Value())
	require.Equal(t, 3, entryb.Value())
	require.Equal(t, "foo=2", entrya.String())
}

func TestEntryHandlesSeeExternalRebinding(t *testing.T) {
	mm := NewLinkedMultimap[string, int]()
	mm.Add("foo", 2)
	mm.Add("bar", 3)
	entries := mm.Entries().Slice()

	_, err := mm.Get("foo").Set(0, 4)
	require.NoError(t, err)
	require.Equal(t, 4, entries[0].Value())
	require.Equal(t, 3, entries[1].Value())

	// Appending afterwards does not disturb the handles.
	mm.Add("foo", 5)
	require.Equal(t, 4, entries[0].Value())
	require.Equal(t, 3, entries[1].Value())
}

func TestKeysView(t *testing.T) {
	mm := NewLinkedMultimap[string, int]()
	mm.Add("bar", 1)
	mm.Add("foo", 2)
	mm.Add("bar", 3)
	mm.Add("bar", 4)

	keys := mm.Keys()
	require.Equal(t, 4, keys.Len())
	require.Equal(t, []string{"bar", "foo", "bar", "bar"}, keys.Slice())
	require.Equal(t, 3, keys.Count("bar"))
	require.True(t, keys.Contains("foo"))

	// Removing a key through this view removes its first global occurrence;
	// bar is no longer the first key afterwards.
	require.True(t, keys.Remove("bar"))
	require.Equal(t, "{foo=[2], bar=[3, 4]}", mm.String())
	require.False(t, keys.Remove("baz"))
}

func TestKeysViewIteratorRemove(t *testing.T) {
	mm := NewLinkedMultimap[string, int]()
	mm.Add("bar", 1)
	mm.Add("foo", 2)
	mm.Add("bar", 3)

	// Remove the specific occurrence the cursor is on, not the key's first.
	it := mm.Keys().Iterator()
	require.True(t, it.Next())
	require.True(t, it.Next())
	require.True(t, it.Next())
	require.Equal(t, "bar", it.Key())
	require.NoError(t, it.Remove())
	require.Equal(t, "[bar=1, foo=2]", mm.Entries().String())
}

func TestKeySetView(t *testing.T) {
	mm := NewLinkedMultimap[string, int]()
	mm.Add("bar", 1)
	mm.Add("foo", 2)
	mm.Add("bar", 3)
	mm.Add("bar", 4)

	keySet := mm.KeySet()
	require.Equal(t, 2, keySet.Len())
	require.Equal(t, "[bar, foo]", keySet.String())
	require.Equal(t, []string{"bar", "foo"}, keySet.Slice())

	// Removing a key from the set removes all of its occurrences.
	require.True(t, keySet.Remove("bar"))
	require.Equal(t, "{foo=[2]}", mm.String())
	require.False(t, keySet.Remove("bar"))
}

func TestKeySetIterator(t *testing.T) {
	mm := NewLinkedMultimap[string, int]()
	mm.AddAll("foo", 2, 3)
	mm.AddAll("bar", 4, 5)
	mm.AddAll("foo", 6)
	mm.AddAll("baz", 7)

	var keys []string
	it := mm.KeySet().Iterator()
	for it.Next() {
		keys = append(keys, it.Key())
	}
	require.NoError(t, it.Err())
	require.Equal(t, []string{"foo", "bar", "baz"}, keys)
}

func TestKeySetIteratorRemove(t *testing.T) {
	mm := NewLinkedMultimap[string, int]()
	mm.Add("bar", 1)
	mm.Add("bar", 2)
	mm.Add("foo", 3)
	mm.Add("bar", 4)

	// Removing through the cursor drops every occurrence of the current
	// key, including consecutive ones, and iteration continues.
	it := mm.KeySet().Iterator()
	require.True(t, it.Next())
	require.Equal(t, "bar", it.Key())
	require.NoError(t, it.Remove())
	require.True(t, it.Next())
	require.Equal(t, "foo", it.Key())
	require.False(t, it.Next())
	require.NoError(t, it.Err())
	require.Equal(t, "{foo=[3]}", mm.String())
}

func TestValuesView(t *testing.T) {
	mm := NewLinkedMultimap[string, int]()
	mm.Add("bar", 1)
	mm.Add("foo", 2)
	mm.Add("bar", 3)
	mm.Add("bar", 4)

	values := mm.Values()
	require.Equal(t, 4, values.Len())
	require.Equal(t, []int{1, 2, 3, 4}, values.Slice())
	require.True(t, values.Contains(3))
	require.False(t, values.Contains(9))

	// Remove deletes the first occurrence in global order whose value
	// matches, regardless of key.
	require.True(t, values.Remove(2))
	require.Equal(t, "{bar=[1, 3, 4]}", mm.String())
	require.False(t, values.Remove(2))
}

func TestValuesViewRemoveFirstMatchOnly(t *testing.T) {
	mm := NewLinkedMultimap[string, int]()
	mm.Add("foo", 7)
	mm.Add("bar", 7)

	require.True(t, mm.Values().Remove(7))
	require.Equal(t, "[bar=7]", mm.Entries().String())
}

func TestValuesViewIterator(t *testing.T) {
	mm := NewLinkedMultimap[string, int]()
	mm.AddAll("foo", 2, 3)
	mm.AddAll("bar", 4, 5)
	mm.AddAll("foo", 6)

	var got []int
	it := mm.Values().Iterator()
	for it.Next() {
		got = append(got, it.Value())
	}
	require.NoError(t, it.Err())
	require.Equal(t, []int{2, 3, 4, 5, 6}, got)
}

func TestAsMapView(t *testing.T) {
	mm := NewLinkedMultimap[string, int]()
	mm.Add("bar", 1)
	mm.Add("foo", 2)
	mm.Add("bar", 3)

	asMap := mm.AsMap()
	require.Equal(t, 2, asMap.Len())
	require.True(t, asMap.Contains("bar"))

	bars, ok := asMap.Get("bar")
	require.True(t, ok)
	require.Equal(t, []int{1, 3}, bars.Slice())

	_, ok = asMap.Get("baz")
	require.False(t, ok)

	require.Equal(t, "{bar=[1, 3], foo=[2]}", asMap.String())
	require.Equal(t, []int{1, 3}, asMap.Remove("bar"))
	require.Equal(t, "{foo=[2]}", asMap.String())
}

func TestAsMapIterator(t *testing.T) {
	mm := NewLinkedMultimap[string, int]()
	mm.Add("bar", 1)
	mm.Add("foo", 2)
	mm.Add("bar", 3)

	it := mm.AsMap().Iterator()
	require.True(t, it.Next())
	entry := it.Entry()
	require.Equal(t, "bar", entry.Key())
	require.Equal(t, []int{1, 3}, entry.Values().Slice())

	// Replacing a key's whole value collection through this view is
	// rejected; only ReplaceValues on the multimap may do that.
	require.ErrorIs(t, entry.SetValues([]int{}), ErrUnsupported)

	require.NoError(t, it.Remove())
	require.True(t, it.Next())
	entry = it.Entry()
	require.Equal(t, "foo", entry.Key())
	require.Equal(t, []int{2}, entry.Values().Slice())
	require.False(t, it.Next())
	require.NoError(t, it.Err())
	require.Equal(t, "{foo=[2]}", mm.String())
}

func TestAsMapAll(t *testing.T) {
	mm := NewLinkedMultimap[string, int]()
	mm.AddAll("foo", 2, 3)
	mm.AddAll("bar", 4)
	mm.AddAll("foo", 6)

	var keys []string
	var counts []int
	for key, list := range mm.AsMap().All() {
		keys = append(keys, key)
		counts = append(counts, list.Len())
	}
	require.Equal(t, []string{"foo", "bar"}, keys)
	require.Equal(t, []int{3, 1}, counts)
}

func TestViewsAreLive(t *testing.T) {
	mm := NewLinkedMultimap[string, int]()
	mm.Add("foo", 1)
	mm.Add("bar", 2)
	mm.Add("foo", 3)

	entries := mm.Entries()
	keys := mm.Keys()
	keySet := mm.KeySet()
	values := mm.Values()
	foos := mm.Get("foo")

	// A removal through one view is immediately observable through every
	// other view without re-fetching.
	require.True(t, foos.Remove(1))
	require.Equal(t, "[bar=2, foo=3]", entries.String())
	require.Equal(t, []string{"bar", "foo"}, keys.Slice())
	require.Equal(t, []string{"bar", "foo"}, keySet.Slice())
	require.Equal(t, []int{2, 3}, values.Slice())

	// An append through the multimap shows up in the list view.
	mm.Add("foo", 9)
	require.Equal(t, []int{3, 9}, foos.Slice())
}
