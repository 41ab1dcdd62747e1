// Package mapz provides multimap implementations: maps in which a single key
// can be associated with one or more values.
//
// LinkedMultimap preserves the order in which key/value pairs were inserted,
// both across the whole map and within each key, and exposes live views over
// its entries, keys, and values that read and write through to the same
// backing store. TreeMultimap keeps keys and per-key value sets in comparator
// order instead. ForwardingMultimap decorates any Multimap without changing
// its behavior.
//
// None of the types in this package are safe for concurrent mutation;
// concurrent reads are safe as long as no writer is active.
package mapz
