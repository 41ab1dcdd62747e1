package mapz

// cursor carries the fail-fast bookkeeping shared by every view iterator.
// The structural counter is captured at creation; any structural change made
// through a path other than this cursor's own Remove moves the counter and
// invalidates the cursor. Value rebinding is not structural and never
// invalidates anything.
type cursor[K comparable, V comparable] struct {
	mm          *LinkedMultimap[K, V]
	expectedMod uint64
	current     *node[K, V] // last yielded node; nil before Next and after Remove
	next        *node[K, V]
	err         error
}

// check reports whether the cursor may advance, recording
// ErrConcurrentModification the first time the counter is observed to have
// moved.
func (c *cursor[K, V]) check() bool {
	if c.err != nil {
		return false
	}
	if c.expectedMod != c.mm.modCount {
		c.err = ErrConcurrentModification
		return false
	}
	return true
}

// ready guards the mutating cursor operations: the cursor must be valid and
// positioned on an element.
func (c *cursor[K, V]) ready() error {
	if !c.check() {
		return c.err
	}
	if c.current == nil {
		return ErrIteratorState
	}
	return nil
}

// Err returns ErrConcurrentModification if the cursor was invalidated by a
// structural change, and nil if iteration simply ended.
func (c *cursor[K, V]) Err() error { return c.err }

// globalCursor walks the global insertion chain.
type globalCursor[K comparable, V comparable] struct {
	cursor[K, V]
}

// Next advances to the next occurrence, returning false when the chain is
// exhausted or the cursor has been invalidated; Err distinguishes the two.
func (c *globalCursor[K, V]) Next() bool {
	if !c.check() {
		return false
	}
	if c.next == nil {
		c.current = nil
		return false
	}
	c.current = c.next
	c.next = c.next.next
	return true
}

// Remove deletes the occurrence last yielded by Next. Permitted exactly once
// per advance; the cursor itself remains valid afterwards.
func (c *globalCursor[K, V]) Remove() error {
	if err := c.ready(); err != nil {
		return err
	}
	c.mm.removeNode(c.current)
	c.current = nil
	c.expectedMod = c.mm.modCount
	return nil
}

func (mm *LinkedMultimap[K, V]) newGlobalCursor() globalCursor[K, V] {
	return globalCursor[K, V]{cursor[K, V]{mm: mm, expectedMod: mm.modCount, next: mm.head}}
}

// EntryIterator is a fail-fast cursor over the entries view.
type EntryIterator[K comparable, V comparable] struct {
	globalCursor[K, V]
}

// Entry returns a handle on the occurrence last yielded by Next.
func (it *EntryIterator[K, V]) Entry() Entry[K, V] { return Entry[K, V]{n: it.current} }

// Key returns the key of the occurrence last yielded by Next.
func (it *EntryIterator[K, V]) Key() K { return it.current.key }

// Value returns the value of the occurrence last yielded by Next.
func (it *EntryIterator[K, V]) Value() V { return it.current.value }

// SetValue rebinds the current occurrence's value in place, returning the
// previous value. Not a structural change: neither this cursor nor any other
// is invalidated, and the occurrence keeps its position in both orderings.
func (it *EntryIterator[K, V]) SetValue(value V) (V, error) {
	if err := it.ready(); err != nil {
		var zero V
		return zero, err
	}
	old := it.current.value
	it.current.value = value
	return old, nil
}

// KeyIterator is a fail-fast cursor over the keys view, yielding the key of
// each occurrence in global order, with repeats for repeated keys.
type KeyIterator[K comparable, V comparable] struct {
	globalCursor[K, V]
}

// Key returns the key of the occurrence last yielded by Next.
func (it *KeyIterator[K, V]) Key() K { return it.current.key }

// ValueIterator is a fail-fast cursor over the flattened values view.
type ValueIterator[K comparable, V comparable] struct {
	globalCursor[K, V]
}

// Value returns the value of the occurrence last yielded by Next.
func (it *ValueIterator[K, V]) Value() V { return it.current.value }

// ValueListIterator is a fail-fast cursor over one key's values.
type ValueListIterator[K comparable, V comparable] struct {
	cursor[K, V]
}

// Next advances to the key's next value, returning false when the key's
// chain is exhausted or the cursor has been invalidated.
func (it *ValueListIterator[K, V]) Next() bool {
	if !it.check() {
		return false
	}
	if it.next == nil {
		it.current = nil
		return false
	}
	it.current = it.next
	it.next = it.next.nextForKey
	return true
}

// Value returns the value last yielded by Next.
func (it *ValueListIterator[K, V]) Value() V { return it.current.value }

// SetValue rebinds the current value in place, returning the previous value.
// Not a structural change.
func (it *ValueListIterator[K, V]) SetValue(value V) (V, error) {
	if err := it.ready(); err != nil {
		var zero V
		return zero, err
	}
	old := it.current.value
	it.current.value = value
	return old, nil
}

// Remove deletes the value last yielded by Next. Permitted exactly once per
// advance; the cursor itself remains valid afterwards.
func (it *ValueListIterator[K, V]) Remove() error {
	if err := it.ready(); err != nil {
		return err
	}
	it.mm.removeNode(it.current)
	it.current = nil
	it.expectedMod = it.mm.modCount
	return nil
}

// distinctCursor walks the global chain, yielding each key only at its first
// live occurrence. The first-occurrence order is derived from the chain as
// the cursor advances.
type distinctCursor[K comparable, V comparable] struct {
	cursor[K, V]
	seen map[K]struct{}
}

func (mm *LinkedMultimap[K, V]) newDistinctCursor() distinctCursor[K, V] {
	return distinctCursor[K, V]{
		cursor: cursor[K, V]{mm: mm, expectedMod: mm.modCount, next: mm.head},
		seen:   make(map[K]struct{}, len(mm.keys)),
	}
}

// Next advances to the next distinct key's first occurrence.
func (c *distinctCursor[K, V]) Next() bool {
	if !c.check() {
		return false
	}
	n := c.next
	for n != nil {
		if _, ok := c.seen[n.key]; !ok {
			break
		}
		n = n.next
	}
	if n == nil {
		c.current = nil
		c.next = nil
		return false
	}
	c.seen[n.key] = struct{}{}
	c.current = n
	c.next = n.next
	return true
}

// Key returns the key last yielded by Next.
func (c *distinctCursor[K, V]) Key() K { return c.current.key }

// Remove deletes every occurrence of the key last yielded by Next. Permitted
// exactly once per advance; the cursor itself remains valid afterwards.
func (c *distinctCursor[K, V]) Remove() error {
	if err := c.ready(); err != nil {
		return err
	}
	key := c.current.key

	// Step over this key's later occurrences while the chain is still
	// intact, so the resume point is a surviving node.
	next := c.next
	for next != nil && next.key == key {
		next = next.next
	}
	c.next = next

	c.mm.RemoveAll(key)
	c.current = nil
	c.expectedMod = c.mm.modCount
	return nil
}

// KeySetIterator is a fail-fast cursor over the distinct-key set view, in
// first-occurrence order. Remove deletes every occurrence of the current
// key.
type KeySetIterator[K comparable, V comparable] struct {
	distinctCursor[K, V]
}

// AsMapIterator is a fail-fast cursor over the AsMap view, yielding each
// distinct key with its live value list, in first-occurrence order. Remove
// deletes every occurrence of the current key.
type AsMapIterator[K comparable, V comparable] struct {
	distinctCursor[K, V]
}

// Entry returns the current key paired with its live value list.
func (it *AsMapIterator[K, V]) Entry() AsMapEntry[K, V] {
	return AsMapEntry[K, V]{key: it.current.key, list: it.mm.Get(it.current.key)}
}
