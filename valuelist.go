package mapz

import (
	"fmt"
	"iter"
	"strings"
)

// ValueList is a live, order-preserving list view of one key's values.
// Mutations write through to the owning multimap, and changes made through
// the multimap or any other view are immediately visible here. The view
// holds no data of its own: it stays bound to its key and remains usable,
// reporting an empty list, when the key currently has no values.
type ValueList[K comparable, V comparable] struct {
	mm  *LinkedMultimap[K, V]
	key K
}

// Key returns the key this list is bound to.
func (l *ValueList[K, V]) Key() K { return l.key }

// Len returns the number of values currently held by the key.
func (l *ValueList[K, V]) Len() int { return l.mm.CountOf(l.key) }

// IsEmpty returns true if the key currently has no values.
func (l *ValueList[K, V]) IsEmpty() bool { return l.Len() == 0 }

// At returns the value at the given zero-based index in per-key order.
// Returns ErrIndexOutOfRange if the index is outside [0, Len).
func (l *ValueList[K, V]) At(index int) (V, error) {
	n, err := l.mm.nodeAtKeyIndex(l.key, index)
	if err != nil {
		var zero V
		return zero, err
	}
	return n.value, nil
}

// Set rebinds the value at the given index in place, returning the previous
// value. Rebinding is not a structural change: the occurrence keeps its
// position in both orderings and outstanding iterators stay valid.
func (l *ValueList[K, V]) Set(index int, value V) (V, error) {
	n, err := l.mm.nodeAtKeyIndex(l.key, index)
	if err != nil {
		var zero V
		return zero, err
	}
	old := n.value
	n.value = value
	return old, nil
}

// Append adds the value at the end of the key's chain and of the global
// chain.
func (l *ValueList[K, V]) Append(values ...V) {
	for _, value := range values {
		l.mm.addNode(l.key, value, nil)
	}
}

// Insert splices the value into the key's chain at the given zero-based
// index, shifting later values for this key. The new occurrence is still the
// most recent globally. The index may range over [0, Len]; anything else
// returns ErrIndexOutOfRange.
func (l *ValueList[K, V]) Insert(index int, value V) error {
	count := l.Len()
	if index < 0 || index > count {
		return fmt.Errorf("%w: index %d with %d values", ErrIndexOutOfRange, index, count)
	}
	if index == count {
		l.mm.addNode(l.key, value, nil)
		return nil
	}
	sibling, err := l.mm.nodeAtKeyIndex(l.key, index)
	if err != nil {
		return err
	}
	l.mm.addNode(l.key, value, sibling)
	return nil
}

// RemoveAt removes and returns the value at the given index.
func (l *ValueList[K, V]) RemoveAt(index int) (V, error) {
	n, err := l.mm.nodeAtKeyIndex(l.key, index)
	if err != nil {
		var zero V
		return zero, err
	}
	l.mm.removeNode(n)
	return n.value, nil
}

// Remove deletes the first value in per-key order equal to the given value.
// Reports whether a value was removed.
func (l *ValueList[K, V]) Remove(value V) bool {
	return l.mm.Remove(l.key, value)
}

// Slice returns a snapshot of the key's values in per-key order.
func (l *ValueList[K, V]) Slice() []V { return l.mm.ValuesOf(l.key) }

// All yields the key's values in per-key order. The multimap must not be
// structurally modified while ranging; use Iterator for a cursor that
// supports removal.
func (l *ValueList[K, V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		kl, ok := l.mm.keys[l.key]
		if !ok {
			return
		}
		for n := kl.head; n != nil; n = n.nextForKey {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Iterator returns a fail-fast cursor over the key's values.
func (l *ValueList[K, V]) Iterator() *ValueListIterator[K, V] {
	it := &ValueListIterator[K, V]{cursor: cursor[K, V]{mm: l.mm, expectedMod: l.mm.modCount}}
	if kl, ok := l.mm.keys[l.key]; ok {
		it.next = kl.head
	}
	return it
}

// String renders the list as e.g. [1, 3, 4].
func (l *ValueList[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	first := true
	for value := range l.All() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v", value)
	}
	b.WriteByte(']')
	return b.String()
}
