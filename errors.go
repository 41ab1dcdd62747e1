package mapz

import "errors"

var (
	// ErrIndexOutOfRange is returned by positional operations on a value
	// list when the index falls outside the valid range for the operation.
	ErrIndexOutOfRange = errors.New("mapz: index out of range")

	// ErrConcurrentModification is returned by an iterator that observes a
	// structural change it did not itself perform. The multimap remains
	// valid; re-iterate to observe the new state.
	ErrConcurrentModification = errors.New("mapz: multimap structurally modified during iteration")

	// ErrUnsupported is returned when attempting to replace a key's entire
	// value collection through the AsMap view; only ReplaceValues on the
	// multimap may do that.
	ErrUnsupported = errors.New("mapz: unsupported operation")

	// ErrNegativeCapacity is returned by constructors given a negative
	// expected-size hint.
	ErrNegativeCapacity = errors.New("mapz: expected size hint must not be negative")

	// ErrIteratorState is returned by Remove or SetValue on an iterator that
	// is not positioned on an element, either because Next has not been
	// called or because the element was already removed.
	ErrIteratorState = errors.New("mapz: iterator is not positioned on an element")
)
