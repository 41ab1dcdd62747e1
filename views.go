package mapz

import (
	"fmt"
	"iter"
	"strings"
)

// Entry is a handle on one key/value occurrence. The key is fixed for the
// occurrence's lifetime; SetValue rebinds the value in place without moving
// the occurrence in either ordering. A handle does not own its occurrence:
// once the occurrence is removed from the multimap the handle still reads
// and writes the detached cell, which is no longer reachable from any view.
type Entry[K comparable, V comparable] struct {
	n *node[K, V]
}

// Key returns the entry's key.
func (e Entry[K, V]) Key() K { return e.n.key }

// Value returns the entry's current value.
func (e Entry[K, V]) Value() V { return e.n.value }

// SetValue rebinds the entry's value in place, returning the previous value.
// The change is visible through every view; it is not a structural change
// and does not invalidate iterators.
func (e Entry[K, V]) SetValue(value V) V {
	old := e.n.value
	e.n.value = value
	return old
}

// String renders the entry as key=value.
func (e Entry[K, V]) String() string { return fmt.Sprintf("%v=%v", e.n.key, e.n.value) }

// Entries is a live view of every key/value occurrence in global insertion
// order.
type Entries[K comparable, V comparable] struct {
	mm *LinkedMultimap[K, V]
}

// Entries returns the live entries view.
func (mm *LinkedMultimap[K, V]) Entries() Entries[K, V] { return Entries[K, V]{mm} }

// Len returns the number of occurrences.
func (v Entries[K, V]) Len() int { return v.mm.size }

// IsEmpty returns true if the multimap is currently empty.
func (v Entries[K, V]) IsEmpty() bool { return v.mm.size == 0 }

// Contains returns true if the multimap holds the given key/value pair.
func (v Entries[K, V]) Contains(key K, value V) bool { return v.mm.HasEntry(key, value) }

// Iterator returns a fail-fast cursor over the entries, supporting Remove
// and SetValue.
func (v Entries[K, V]) Iterator() *EntryIterator[K, V] {
	return &EntryIterator[K, V]{v.mm.newGlobalCursor()}
}

// All yields a handle for each occurrence in insertion order. The multimap
// must not be structurally modified while ranging.
func (v Entries[K, V]) All() iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		for n := v.mm.head; n != nil; n = n.next {
			if !yield(Entry[K, V]{n: n}) {
				return
			}
		}
	}
}

// Slice returns handles for every occurrence, in insertion order. The
// handles stay live for value rebinding.
func (v Entries[K, V]) Slice() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, v.mm.size)
	for n := v.mm.head; n != nil; n = n.next {
		entries = append(entries, Entry[K, V]{n: n})
	}
	return entries
}

// String renders the view as e.g. [bar=1, foo=2, bar=3].
func (v Entries[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	first := true
	for e := range v.All() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}

// Keys is a live view of the key of every occurrence in global insertion
// order; repeated keys appear once per occurrence.
type Keys[K comparable, V comparable] struct {
	mm *LinkedMultimap[K, V]
}

// Keys returns the live per-occurrence keys view.
func (mm *LinkedMultimap[K, V]) Keys() Keys[K, V] { return Keys[K, V]{mm} }

// Len returns the number of occurrences.
func (v Keys[K, V]) Len() int { return v.mm.size }

// Count returns the number of occurrences of the given key.
func (v Keys[K, V]) Count(key K) int { return v.mm.CountOf(key) }

// Contains returns true if the key has at least one occurrence.
func (v Keys[K, V]) Contains(key K) bool { return v.mm.Has(key) }

// Remove deletes the key's first occurrence in global order, shifting which
// occurrence of the key is now first. Reports whether an occurrence was
// removed.
func (v Keys[K, V]) Remove(key K) bool {
	for n := v.mm.head; n != nil; n = n.next {
		if n.key == key {
			v.mm.removeNode(n)
			return true
		}
	}
	return false
}

// Iterator returns a fail-fast cursor over the keys; Remove deletes the
// specific occurrence last yielded, not merely the key's first occurrence.
func (v Keys[K, V]) Iterator() *KeyIterator[K, V] {
	return &KeyIterator[K, V]{v.mm.newGlobalCursor()}
}

// All yields each occurrence's key in insertion order. The multimap must not
// be structurally modified while ranging.
func (v Keys[K, V]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for n := v.mm.head; n != nil; n = n.next {
			if !yield(n.key) {
				return
			}
		}
	}
}

// Slice returns a snapshot of each occurrence's key, in insertion order.
func (v Keys[K, V]) Slice() []K {
	keys := make([]K, 0, v.mm.size)
	for n := v.mm.head; n != nil; n = n.next {
		keys = append(keys, n.key)
	}
	return keys
}

// KeySet is a live set view of the distinct keys in first-occurrence order.
// A key whose last value is removed leaves the set; re-adding it later makes
// it a new first occurrence.
type KeySet[K comparable, V comparable] struct {
	mm *LinkedMultimap[K, V]
}

// KeySet returns the live distinct-key set view.
func (mm *LinkedMultimap[K, V]) KeySet() KeySet[K, V] { return KeySet[K, V]{mm} }

// Len returns the number of distinct keys.
func (v KeySet[K, V]) Len() int { return len(v.mm.keys) }

// Contains returns true if the key is found in the set.
func (v KeySet[K, V]) Contains(key K) bool { return v.mm.Has(key) }

// Remove deletes every occurrence of the key. Reports whether the key was
// present.
func (v KeySet[K, V]) Remove(key K) bool {
	if !v.mm.Has(key) {
		return false
	}
	v.mm.RemoveAll(key)
	return true
}

// Iterator returns a fail-fast cursor over the distinct keys; Remove deletes
// every occurrence of the current key.
func (v KeySet[K, V]) Iterator() *KeySetIterator[K, V] {
	return &KeySetIterator[K, V]{v.mm.newDistinctCursor()}
}

// All yields the distinct keys in first-occurrence order. The multimap must
// not be structurally modified while ranging.
func (v KeySet[K, V]) All() iter.Seq[K] { return v.mm.distinctKeys() }

// Slice returns a snapshot of the distinct keys in first-occurrence order.
func (v KeySet[K, V]) Slice() []K {
	keys := make([]K, 0, len(v.mm.keys))
	for key := range v.mm.distinctKeys() {
		keys = append(keys, key)
	}
	return keys
}

// String renders the set as e.g. [bar, foo].
func (v KeySet[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	first := true
	for key := range v.All() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v", key)
	}
	b.WriteByte(']')
	return b.String()
}

// Values is a live view of every value in global insertion order.
type Values[K comparable, V comparable] struct {
	mm *LinkedMultimap[K, V]
}

// Values returns the live flattened values view.
func (mm *LinkedMultimap[K, V]) Values() Values[K, V] { return Values[K, V]{mm} }

// Len returns the number of values.
func (v Values[K, V]) Len() int { return v.mm.size }

// Contains returns true if any key holds the given value.
func (v Values[K, V]) Contains(value V) bool { return v.mm.HasValue(value) }

// Remove deletes the first occurrence in global order whose value matches,
// regardless of key. Reports whether an occurrence was removed.
func (v Values[K, V]) Remove(value V) bool {
	for n := v.mm.head; n != nil; n = n.next {
		if n.value == value {
			v.mm.removeNode(n)
			return true
		}
	}
	return false
}

// Iterator returns a fail-fast cursor over the values.
func (v Values[K, V]) Iterator() *ValueIterator[K, V] {
	return &ValueIterator[K, V]{v.mm.newGlobalCursor()}
}

// All yields each value in insertion order. The multimap must not be
// structurally modified while ranging.
func (v Values[K, V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for n := v.mm.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Slice returns a snapshot of the values in insertion order.
func (v Values[K, V]) Slice() []V {
	values := make([]V, 0, v.mm.size)
	for n := v.mm.head; n != nil; n = n.next {
		values = append(values, n.value)
	}
	return values
}

// AsMapEntry pairs one distinct key with its live value list during AsMap
// iteration.
type AsMapEntry[K comparable, V comparable] struct {
	key  K
	list *ValueList[K, V]
}

// Key returns the entry's key.
func (e AsMapEntry[K, V]) Key() K { return e.key }

// Values returns the live value list for the entry's key.
func (e AsMapEntry[K, V]) Values() *ValueList[K, V] { return e.list }

// SetValues always returns ErrUnsupported: a key's whole value collection
// can only be replaced through ReplaceValues on the multimap.
func (e AsMapEntry[K, V]) SetValues([]V) error {
	return fmt.Errorf("%w: replacing a key's value collection through the AsMap view", ErrUnsupported)
}

// String renders the entry as e.g. bar=[1, 3].
func (e AsMapEntry[K, V]) String() string { return fmt.Sprintf("%v=%s", e.key, e.list) }

// AsMap is a live mapping view from each distinct key to its value list,
// iterated in first-occurrence key order.
type AsMap[K comparable, V comparable] struct {
	mm *LinkedMultimap[K, V]
}

// AsMap returns the live key-grouped view.
func (mm *LinkedMultimap[K, V]) AsMap() AsMap[K, V] { return AsMap[K, V]{mm} }

// Len returns the number of distinct keys.
func (v AsMap[K, V]) Len() int { return len(v.mm.keys) }

// Contains returns true if the key is found in the map.
func (v AsMap[K, V]) Contains(key K) bool { return v.mm.Has(key) }

// Get returns the live value list for the key and whether the key currently
// has any values.
func (v AsMap[K, V]) Get(key K) (*ValueList[K, V], bool) {
	return v.mm.Get(key), v.mm.Has(key)
}

// Remove deletes every occurrence of the key, returning the removed values.
func (v AsMap[K, V]) Remove(key K) []V { return v.mm.RemoveAll(key) }

// Iterator returns a fail-fast cursor over the distinct keys and their value
// lists; Remove deletes every occurrence of the current key.
func (v AsMap[K, V]) Iterator() *AsMapIterator[K, V] {
	return &AsMapIterator[K, V]{v.mm.newDistinctCursor()}
}

// All yields each distinct key with its live value list, in first-occurrence
// order. The multimap must not be structurally modified while ranging.
func (v AsMap[K, V]) All() iter.Seq2[K, *ValueList[K, V]] {
	return func(yield func(K, *ValueList[K, V]) bool) {
		for key := range v.mm.distinctKeys() {
			if !yield(key, v.mm.Get(key)) {
				return
			}
		}
	}
}

// String renders the view as e.g. {bar=[1, 3, 4], foo=[2]}.
func (v AsMap[K, V]) String() string { return v.mm.String() }
