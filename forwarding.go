package mapz

// ForwardingMultimap forwards the full Multimap contract to a backing
// multimap, unchanged. Embed it in another type and redeclare individual
// methods to decorate a subset of the behavior; the wrapper never touches
// the backing map's internals.
type ForwardingMultimap[K comparable, V comparable] struct {
	Multimap[K, V]
}

var _ Multimap[string, int] = (*ForwardingMultimap[string, int])(nil)

// NewForwardingMultimap initializes a forwarding multimap delegating to the
// given backing multimap.
func NewForwardingMultimap[K comparable, V comparable](delegate Multimap[K, V]) *ForwardingMultimap[K, V] {
	return &ForwardingMultimap[K, V]{Multimap: delegate}
}

// Delegate returns the backing multimap.
func (f *ForwardingMultimap[K, V]) Delegate() Multimap[K, V] { return f.Multimap }
