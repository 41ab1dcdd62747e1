package mapz

import (
	"fmt"
	"iter"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// node is one key/value occurrence. Each node participates in two
// doubly-linked chains at once: the global chain of all occurrences in
// insertion order, and the chain of its own key's occurrences. Nodes are
// owned by the multimap and never handed to callers directly.
type node[K comparable, V comparable] struct {
	key   K
	value V

	// global insertion chain
	next, prev *node[K, V]

	// chain of this key's occurrences
	nextForKey, prevForKey *node[K, V]
}

// keyList tracks the bounds and length of one key's occurrence chain. An
// entry exists in the key index iff its count is greater than zero.
type keyList[K comparable, V comparable] struct {
	head, tail *node[K, V]
	count      int
}

// LinkedMultimap is a multimap that can contain 1 or more values for each key
// and preserves insertion order, both across the whole map and within each
// key. A value can be added twice for the same key; both occurrences are
// retained.
//
// The views returned by Get, Entries, Keys, KeySet, Values and AsMap are
// live: they read and write through to the multimap, and a change made
// through any one of them is immediately visible through all the others.
type LinkedMultimap[K comparable, V comparable] struct {
	head, tail *node[K, V]
	keys       map[K]*keyList[K, V]
	size       int

	// modCount increments on every structural change. Iterators capture it
	// at creation and fail with ErrConcurrentModification when it moves
	// underneath them.
	modCount uint64
}

var _ Multimap[string, int] = (*LinkedMultimap[string, int])(nil)

// NewLinkedMultimap initializes a new LinkedMultimap.
func NewLinkedMultimap[K comparable, V comparable]() *LinkedMultimap[K, V] {
	return &LinkedMultimap[K, V]{keys: map[K]*keyList[K, V]{}}
}

// NewLinkedMultimapWithExpectedKeys initializes with the provided expected
// number of distinct keys for the key index. Returns ErrNegativeCapacity if
// expectedKeys is negative.
func NewLinkedMultimapWithExpectedKeys[K comparable, V comparable](expectedKeys int) (*LinkedMultimap[K, V], error) {
	if expectedKeys < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCapacity, expectedKeys)
	}
	return &LinkedMultimap[K, V]{keys: make(map[K]*keyList[K, V], expectedKeys)}, nil
}

// NewLinkedMultimapFromMultimap initializes a new LinkedMultimap holding
// every entry of other, in other's iteration order.
func NewLinkedMultimapFromMultimap[K comparable, V comparable](other Multimap[K, V]) *LinkedMultimap[K, V] {
	mm := NewLinkedMultimap[K, V]()
	mm.AddAllFrom(other)
	return mm
}

// addNode appends a new occurrence to the global chain tail and splices it
// into the key's chain just before nextSibling, or at the key chain's tail
// when nextSibling is nil. Both chains and both counters update within this
// single call.
func (mm *LinkedMultimap[K, V]) addNode(key K, value V, nextSibling *node[K, V]) *node[K, V] {
	n := &node[K, V]{key: key, value: value}

	// New occurrences are always the most recent globally, regardless of
	// where they land in their key's chain.
	if mm.tail == nil {
		mm.head, mm.tail = n, n
	} else {
		n.prev = mm.tail
		mm.tail.next = n
		mm.tail = n
	}

	kl, ok := mm.keys[key]
	switch {
	case !ok:
		mm.keys[key] = &keyList[K, V]{head: n, tail: n, count: 1}
	case nextSibling == nil:
		n.prevForKey = kl.tail
		kl.tail.nextForKey = n
		kl.tail = n
		kl.count++
	default:
		n.nextForKey = nextSibling
		n.prevForKey = nextSibling.prevForKey
		if nextSibling.prevForKey == nil {
			kl.head = n
		} else {
			nextSibling.prevForKey.nextForKey = n
		}
		nextSibling.prevForKey = n
		kl.count++
	}

	mm.size++
	mm.modCount++
	return n
}

// addNodeGlobalAfter appends a new occurrence to the key's chain tail and
// splices it into the global chain immediately after prevGlobal, where nil
// means the chain head. ReplaceValues uses this to keep a replaced key's
// block at its original global position.
func (mm *LinkedMultimap[K, V]) addNodeGlobalAfter(key K, value V, prevGlobal *node[K, V]) *node[K, V] {
	n := &node[K, V]{key: key, value: value}

	if prevGlobal == nil {
		n.next = mm.head
		if mm.head == nil {
			mm.tail = n
		} else {
			mm.head.prev = n
		}
		mm.head = n
	} else {
		n.next = prevGlobal.next
		n.prev = prevGlobal
		if prevGlobal.next == nil {
			mm.tail = n
		} else {
			prevGlobal.next.prev = n
		}
		prevGlobal.next = n
	}

	kl, ok := mm.keys[key]
	if !ok {
		mm.keys[key] = &keyList[K, V]{head: n, tail: n, count: 1}
	} else {
		n.prevForKey = kl.tail
		kl.tail.nextForKey = n
		kl.tail = n
		kl.count++
	}

	mm.size++
	mm.modCount++
	return n
}

// removeNode detaches n from both chains and updates both counters. The key
// index entry is deleted when its count reaches zero.
func (mm *LinkedMultimap[K, V]) removeNode(n *node[K, V]) {
	if n.prev == nil {
		mm.head = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next == nil {
		mm.tail = n.prev
	} else {
		n.next.prev = n.prev
	}

	kl := mm.keys[n.key]
	if n.prevForKey == nil {
		kl.head = n.nextForKey
	} else {
		n.prevForKey.nextForKey = n.nextForKey
	}
	if n.nextForKey == nil {
		kl.tail = n.prevForKey
	} else {
		n.nextForKey.prevForKey = n.prevForKey
	}
	kl.count--
	if kl.count == 0 {
		delete(mm.keys, n.key)
	}

	mm.size--
	mm.modCount++

	debugAssertf(func() bool { return mm.size >= 0 && kl.count >= 0 }, "chain counters went negative: size=%d count=%d", mm.size, kl.count)
}

// nodeAtKeyIndex returns the node at the given zero-based index within the
// key's chain, walking from the nearer end.
func (mm *LinkedMultimap[K, V]) nodeAtKeyIndex(key K, index int) (*node[K, V], error) {
	kl, ok := mm.keys[key]
	count := 0
	if ok {
		count = kl.count
	}
	if index < 0 || index >= count {
		return nil, fmt.Errorf("%w: index %d with %d values", ErrIndexOutOfRange, index, count)
	}

	if index < count/2 {
		n := kl.head
		for ; index > 0; index-- {
			n = n.nextForKey
		}
		return n, nil
	}

	n := kl.tail
	for index = count - 1 - index; index > 0; index-- {
		n = n.prevForKey
	}
	return n, nil
}

// Add inserts the value into the map at the given key, at the end of both
// orderings.
//
// If there exists an existing value, then this value is appended *without
// comparison*. Put another way, a value can be added twice, if this method is
// called twice for the same value.
//
// Returns true if this was the key's first value.
func (mm *LinkedMultimap[K, V]) Add(key K, value V) bool {
	_, existed := mm.keys[key]
	mm.addNode(key, value, nil)
	return !existed
}

// AddAll inserts every given value at the given key, in order.
func (mm *LinkedMultimap[K, V]) AddAll(key K, values ...V) {
	for _, value := range values {
		mm.addNode(key, value, nil)
	}
}

// AddAllFrom inserts every entry of other, in other's iteration order. Each
// entry commits as it is appended; there is no atomicity across the sequence.
func (mm *LinkedMultimap[K, V]) AddAllFrom(other Multimap[K, V]) {
	for key, value := range other.All() {
		mm.addNode(key, value, nil)
	}
}

// Get returns a live list view of the values for the given key. The view
// remains bound to the key and stays usable, reporting an empty list, when
// the key currently has no values.
func (mm *LinkedMultimap[K, V]) Get(key K) *ValueList[K, V] {
	return &ValueList[K, V]{mm: mm, key: key}
}

// Remove deletes the first occurrence of the given key/value pair, scanning
// the key's chain in per-key order. Reports whether a pair was removed.
func (mm *LinkedMultimap[K, V]) Remove(key K, value V) bool {
	kl, ok := mm.keys[key]
	if !ok {
		return false
	}
	for n := kl.head; n != nil; n = n.nextForKey {
		if n.value == value {
			mm.removeNode(n)
			return true
		}
	}
	return false
}

// RemoveAll deletes every value for the given key. If, after this removal,
// the key has no values, it is removed entirely from the map. Returns the
// removed values as a snapshot in their per-key order.
func (mm *LinkedMultimap[K, V]) RemoveAll(key K) []V {
	kl, ok := mm.keys[key]
	if !ok {
		return []V{}
	}

	removed := make([]V, 0, kl.count)
	n := kl.head
	for n != nil {
		next := n.nextForKey
		removed = append(removed, n.value)
		mm.removeNode(n)
		n = next
	}
	return removed
}

// ReplaceValues removes the key's existing values and inserts the given
// values as a contiguous block at the global position the key's first
// occurrence previously held, or at the global tail if the key was absent.
// The key thus keeps its relative position among other keys when replaced in
// place. Returns the old values as a snapshot.
func (mm *LinkedMultimap[K, V]) ReplaceValues(key K, values []V) []V {
	// Anchor on the global predecessor of the key's first occurrence in the
	// global chain. That node is always of a different key, so it survives
	// the removal below. Positional inserts can leave the per-key chain's
	// head elsewhere in the global chain, so this walks the global chain.
	var anchor *node[K, V]
	if _, ok := mm.keys[key]; ok {
		for n := mm.head; n != nil; n = n.next {
			if n.key == key {
				anchor = n.prev
				break
			}
		}
	} else {
		anchor = mm.tail
	}

	old := mm.RemoveAll(key)
	prev := anchor
	for _, value := range values {
		prev = mm.addNodeGlobalAfter(key, value, prev)
	}
	return old
}

// Clear removes all entries in the map.
func (mm *LinkedMultimap[K, V]) Clear() {
	mm.head, mm.tail = nil, nil
	mm.keys = map[K]*keyList[K, V]{}
	mm.size = 0
	mm.modCount++
}

// Has returns true if the key is found in the map.
func (mm *LinkedMultimap[K, V]) Has(key K) bool {
	_, ok := mm.keys[key]
	return ok
}

// HasValue returns true if any key holds the given value. Scans the global
// chain.
func (mm *LinkedMultimap[K, V]) HasValue(value V) bool {
	for n := mm.head; n != nil; n = n.next {
		if n.value == value {
			return true
		}
	}
	return false
}

// HasEntry returns true if the map holds the given key/value pair.
func (mm *LinkedMultimap[K, V]) HasEntry(key K, value V) bool {
	kl, ok := mm.keys[key]
	if !ok {
		return false
	}
	for n := kl.head; n != nil; n = n.nextForKey {
		if n.value == value {
			return true
		}
	}
	return false
}

// ValuesOf returns a snapshot of the key's values in per-key order. If the
// key does not exist, an empty slice is returned.
func (mm *LinkedMultimap[K, V]) ValuesOf(key K) []V {
	kl, ok := mm.keys[key]
	if !ok {
		return []V{}
	}
	values := make([]V, 0, kl.count)
	for n := kl.head; n != nil; n = n.nextForKey {
		values = append(values, n.value)
	}
	return values
}

// CountOf returns the number of values stored for the given key.
func (mm *LinkedMultimap[K, V]) CountOf(key K) int {
	kl, ok := mm.keys[key]
	if !ok {
		return 0
	}
	return kl.count
}

// Len returns the total number of key/value pairs in the map.
func (mm *LinkedMultimap[K, V]) Len() int { return mm.size }

// IsEmpty returns true if the map is currently empty.
func (mm *LinkedMultimap[K, V]) IsEmpty() bool { return mm.size == 0 }

// All yields every key/value occurrence in global insertion order. The map
// must not be structurally modified while ranging; use Entries().Iterator()
// for a cursor that supports removal.
func (mm *LinkedMultimap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for n := mm.head; n != nil; n = n.next {
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

// distinctKeys yields each key at its first live occurrence, scanning the
// global chain. The first-occurrence order is derived from chain state on
// every iteration, never cached: a key re-added after its last value was
// removed counts as a brand-new first occurrence.
func (mm *LinkedMultimap[K, V]) distinctKeys() iter.Seq[K] {
	return func(yield func(K) bool) {
		seen := make(map[K]struct{}, len(mm.keys))
		for n := mm.head; n != nil; n = n.next {
			if _, ok := seen[n.key]; ok {
				continue
			}
			seen[n.key] = struct{}{}
			if !yield(n.key) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the map. Both orderings are mirrored exactly,
// including any divergence between them produced by positional inserts.
func (mm *LinkedMultimap[K, V]) Clone() *LinkedMultimap[K, V] {
	clone := &LinkedMultimap[K, V]{
		keys: make(map[K]*keyList[K, V], len(mm.keys)),
		size: mm.size,
	}

	copies := make(map[*node[K, V]]*node[K, V], mm.size)
	for n := mm.head; n != nil; n = n.next {
		copies[n] = &node[K, V]{key: n.key, value: n.value}
	}
	mirror := func(n *node[K, V]) *node[K, V] {
		if n == nil {
			return nil
		}
		return copies[n]
	}

	for n := mm.head; n != nil; n = n.next {
		c := copies[n]
		c.next = mirror(n.next)
		c.prev = mirror(n.prev)
		c.nextForKey = mirror(n.nextForKey)
		c.prevForKey = mirror(n.prevForKey)
	}
	clone.head = mirror(mm.head)
	clone.tail = mirror(mm.tail)
	for key, kl := range mm.keys {
		clone.keys[key] = &keyList[K, V]{head: mirror(kl.head), tail: mirror(kl.tail), count: kl.count}
	}
	return clone
}

// AsReadOnly returns a read-only *copy* of the multimap.
func (mm *LinkedMultimap[K, V]) AsReadOnly() ReadOnlyMultimap[K, V] {
	return readOnlyMultimap[K, V]{mm.Clone()}
}

// Equal reports whether both maps hold the same distinct keys and, for each
// key, the same value sequence in the same per-key order. The global
// interleaving of keys is not compared.
func (mm *LinkedMultimap[K, V]) Equal(other *LinkedMultimap[K, V]) bool {
	if len(mm.keys) != len(other.keys) {
		return false
	}
	for _, key := range maps.Keys(mm.keys) {
		if !slices.Equal(mm.ValuesOf(key), other.ValuesOf(key)) {
			return false
		}
	}
	return true
}

// String renders the map in its AsMap iteration order, e.g.
// {bar=[1, 3, 4], foo=[2]}.
func (mm *LinkedMultimap[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for key := range mm.distinctKeys() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v=%s", key, mm.Get(key))
	}
	b.WriteByte('}')
	return b.String()
}
