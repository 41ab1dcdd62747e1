package mapz

import "iter"

// Multimap is the mutable contract shared by the multimap implementations in
// this package. Each key can hold one or more values; how keys and values are
// ordered is up to the implementation.
type Multimap[K comparable, V comparable] interface {
	// Add inserts the value into the map at the given key. Returns true if
	// this was the key's first value, i.e. the set of distinct keys grew.
	Add(key K, value V) bool

	// AddAll inserts every given value at the given key, in order.
	AddAll(key K, values ...V)

	// AddAllFrom inserts every entry of other, in other's iteration order.
	// Entries already inserted stay committed if iteration stops early.
	AddAllFrom(other Multimap[K, V])

	// Remove deletes one occurrence of the given key/value pair. Reports
	// whether a pair was removed.
	Remove(key K, value V) bool

	// RemoveAll deletes every value for the given key, returning the removed
	// values as a snapshot in their per-key order.
	RemoveAll(key K) []V

	// ReplaceValues removes the key's existing values and inserts the given
	// values in their place, returning the old values as a snapshot.
	ReplaceValues(key K, values []V) []V

	// Clear removes every entry in the map.
	Clear()

	// Has returns true if the key is found in the map.
	Has(key K) bool

	// HasValue returns true if any key holds the given value.
	HasValue(value V) bool

	// HasEntry returns true if the map holds the given key/value pair.
	HasEntry(key K, value V) bool

	// ValuesOf returns a snapshot of the key's values in per-key order.
	// If the key does not exist, an empty slice is returned.
	ValuesOf(key K) []V

	// CountOf returns the number of values stored for the given key.
	CountOf(key K) int

	// Len returns the total number of key/value pairs in the map.
	Len() int

	// IsEmpty returns true if the map is currently empty.
	IsEmpty() bool

	// All yields every key/value pair in the map's iteration order.
	All() iter.Seq2[K, V]

	String() string
}

// ReadOnlyMultimap is a read-only multimap.
type ReadOnlyMultimap[K comparable, V comparable] interface {
	// Has returns true if the key is found in the map.
	Has(key K) bool

	// ValuesOf returns the values for the given key in the map. If the key
	// does not exist, an empty slice is returned.
	ValuesOf(key K) []V

	// HasEntry returns true if the map holds the given key/value pair.
	HasEntry(key K, value V) bool

	// IsEmpty returns true if the map is currently empty.
	IsEmpty() bool

	// Len returns the total number of key/value pairs in the map.
	Len() int

	// Keys returns the distinct keys of the map in its key iteration order.
	Keys() []K

	// Values returns all values in the map in its iteration order.
	Values() []V

	// All yields every key/value pair in the map's iteration order.
	All() iter.Seq2[K, V]
}

type readOnlyMultimap[K comparable, V comparable] struct {
	mm *LinkedMultimap[K, V]
}

func (ro readOnlyMultimap[K, V]) Has(key K) bool               { return ro.mm.Has(key) }
func (ro readOnlyMultimap[K, V]) ValuesOf(key K) []V           { return ro.mm.ValuesOf(key) }
func (ro readOnlyMultimap[K, V]) HasEntry(key K, value V) bool { return ro.mm.HasEntry(key, value) }
func (ro readOnlyMultimap[K, V]) IsEmpty() bool                { return ro.mm.IsEmpty() }
func (ro readOnlyMultimap[K, V]) Len() int                     { return ro.mm.Len() }
func (ro readOnlyMultimap[K, V]) Keys() []K                    { return ro.mm.KeySet().Slice() }
func (ro readOnlyMultimap[K, V]) Values() []V                  { return ro.mm.Values().Slice() }
func (ro readOnlyMultimap[K, V]) All() iter.Seq2[K, V]         { return ro.mm.All() }
