package mapz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultimapContract(t *testing.T) {
	for name, mm := range map[string]Multimap[string, int]{
		"linked": NewLinkedMultimap[string, int](),
		"tree":   NewNaturalTreeMultimap[string, int](),
	} {
		t.Run(name, func(t *testing.T) {
			require.True(t, mm.IsEmpty())
			require.True(t, mm.Add("odd", 1))
			require.False(t, mm.Add("odd", 3))
			require.True(t, mm.Add("even", 2))

			require.Equal(t, 3, mm.Len())
			require.True(t, mm.Has("odd"))
			require.True(t, mm.HasEntry("odd", 3))
			require.True(t, mm.HasValue(2))
			require.Equal(t, 2, mm.CountOf("odd"))

			require.Equal(t, []int{1, 3}, mm.RemoveAll("odd"))
			require.False(t, mm.Has("odd"))

			mm.Clear()
			require.True(t, mm.IsEmpty())
		})
	}
}
