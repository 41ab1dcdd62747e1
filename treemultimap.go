package mapz

import (
	"cmp"
	"fmt"
	"iter"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Comparator orders a and b, returning a negative number when a < b, zero
// when a == b and a positive number when a > b.
type Comparator[T any] func(a, b T) int

// TreeMultimap is a multimap whose keys and per-key values are kept in
// comparator order rather than insertion order. Unlike LinkedMultimap it
// does not store duplicate key/value pairs: adding a pair equal to an
// existing one has no effect.
type TreeMultimap[K comparable, V comparable] struct {
	tree     *treemap.Map
	valueCmp utils.Comparator
	size     int
}

var _ Multimap[string, int] = (*TreeMultimap[string, int])(nil)

// NewTreeMultimap initializes a new TreeMultimap ordering keys by keyCmp and
// each key's values by valueCmp.
func NewTreeMultimap[K comparable, V comparable](keyCmp Comparator[K], valueCmp Comparator[V]) *TreeMultimap[K, V] {
	return &TreeMultimap[K, V]{
		tree:     treemap.NewWith(func(a, b interface{}) int { return keyCmp(a.(K), b.(K)) }),
		valueCmp: func(a, b interface{}) int { return valueCmp(a.(V), b.(V)) },
	}
}

// NewNaturalTreeMultimap initializes a new TreeMultimap ordering keys and
// values by their natural ordering.
func NewNaturalTreeMultimap[K cmp.Ordered, V cmp.Ordered]() *TreeMultimap[K, V] {
	return NewTreeMultimap[K, V](cmp.Compare[K], cmp.Compare[V])
}

func (tm *TreeMultimap[K, V]) valuesAt(key K) (*treeset.Set, bool) {
	raw, ok := tm.tree.Get(key)
	if !ok {
		return nil, false
	}
	return raw.(*treeset.Set), true
}

// Add inserts the value into the map at the given key. Duplicate pairs are
// not stored. Returns true if this was the key's first value.
func (tm *TreeMultimap[K, V]) Add(key K, value V) bool {
	values, ok := tm.valuesAt(key)
	if !ok {
		values = treeset.NewWith(tm.valueCmp)
		tm.tree.Put(key, values)
	}
	if !values.Contains(value) {
		values.Add(value)
		tm.size++
	}
	return !ok
}

// AddAll inserts every given value at the given key.
func (tm *TreeMultimap[K, V]) AddAll(key K, values ...V) {
	for _, value := range values {
		tm.Add(key, value)
	}
}

// AddAllFrom inserts every entry of other.
func (tm *TreeMultimap[K, V]) AddAllFrom(other Multimap[K, V]) {
	for key, value := range other.All() {
		tm.Add(key, value)
	}
}

// Remove deletes the given key/value pair. If, after this removal, the key
// has no values, it is removed entirely from the map. Reports whether a pair
// was removed.
func (tm *TreeMultimap[K, V]) Remove(key K, value V) bool {
	values, ok := tm.valuesAt(key)
	if !ok || !values.Contains(value) {
		return false
	}
	values.Remove(value)
	tm.size--
	if values.Empty() {
		tm.tree.Remove(key)
	}
	return true
}

// RemoveAll deletes every value for the given key, returning the removed
// values in value order.
func (tm *TreeMultimap[K, V]) RemoveAll(key K) []V {
	values, ok := tm.valuesAt(key)
	if !ok {
		return []V{}
	}
	removed := tm.snapshot(values)
	tm.size -= values.Size()
	tm.tree.Remove(key)
	return removed
}

// ReplaceValues removes the key's existing values and inserts the given
// values in their place, returning the old values in value order.
func (tm *TreeMultimap[K, V]) ReplaceValues(key K, values []V) []V {
	old := tm.RemoveAll(key)
	tm.AddAll(key, values...)
	return old
}

// Clear removes all entries in the map.
func (tm *TreeMultimap[K, V]) Clear() {
	tm.tree.Clear()
	tm.size = 0
}

// Has returns true if the key is found in the map.
func (tm *TreeMultimap[K, V]) Has(key K) bool {
	_, ok := tm.tree.Get(key)
	return ok
}

// HasValue returns true if any key holds the given value.
func (tm *TreeMultimap[K, V]) HasValue(value V) bool {
	for _, raw := range tm.tree.Values() {
		if raw.(*treeset.Set).Contains(value) {
			return true
		}
	}
	return false
}

// HasEntry returns true if the map holds the given key/value pair.
func (tm *TreeMultimap[K, V]) HasEntry(key K, value V) bool {
	values, ok := tm.valuesAt(key)
	return ok && values.Contains(value)
}

// ValuesOf returns a snapshot of the key's values in value order. If the key
// does not exist, an empty slice is returned.
func (tm *TreeMultimap[K, V]) ValuesOf(key K) []V {
	values, ok := tm.valuesAt(key)
	if !ok {
		return []V{}
	}
	return tm.snapshot(values)
}

// CountOf returns the number of values stored for the given key.
func (tm *TreeMultimap[K, V]) CountOf(key K) int {
	values, ok := tm.valuesAt(key)
	if !ok {
		return 0
	}
	return values.Size()
}

// Len returns the total number of key/value pairs in the map.
func (tm *TreeMultimap[K, V]) Len() int { return tm.size }

// IsEmpty returns true if the map is currently empty.
func (tm *TreeMultimap[K, V]) IsEmpty() bool { return tm.size == 0 }

// Keys returns the distinct keys of the map in key order.
func (tm *TreeMultimap[K, V]) Keys() []K {
	keys := make([]K, 0, tm.tree.Size())
	for _, raw := range tm.tree.Keys() {
		keys = append(keys, raw.(K))
	}
	return keys
}

// Values returns all values in the map, in key order and then value order
// within each key.
func (tm *TreeMultimap[K, V]) Values() []V {
	values := make([]V, 0, tm.size)
	for _, raw := range tm.tree.Values() {
		values = append(values, tm.snapshot(raw.(*treeset.Set))...)
	}
	return values
}

// All yields every key/value pair in key order and then value order within
// each key.
func (tm *TreeMultimap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := tm.tree.Iterator()
		for it.Next() {
			key := it.Key().(K)
			vit := it.Value().(*treeset.Set).Iterator()
			for vit.Next() {
				if !yield(key, vit.Value().(V)) {
					return
				}
			}
		}
	}
}

// String renders the map in key order, e.g. {bar=[1, 3], foo=[2]}.
func (tm *TreeMultimap[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	it := tm.tree.Iterator()
	first := true
	for it.Next() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v=[", it.Key())
		vit := it.Value().(*treeset.Set).Iterator()
		firstValue := true
		for vit.Next() {
			if !firstValue {
				b.WriteString(", ")
			}
			firstValue = false
			fmt.Fprintf(&b, "%v", vit.Value())
		}
		b.WriteByte(']')
	}
	b.WriteByte('}')
	return b.String()
}

func (tm *TreeMultimap[K, V]) snapshot(values *treeset.Set) []V {
	out := make([]V, 0, values.Size())
	for _, raw := range values.Values() {
		out = append(out, raw.(V))
	}
	return out
}
