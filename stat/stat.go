// Package stat implements a type-erased stat table for simulation code:
// named stats of arbitrary underlying representation, stored per resource
// or per entity and mutated through a uniform add/subtract/set protocol.
package stat

// Value is the contract every concrete stat payload kind implements.
// A stored payload is self-describing (its concrete kind is recovered with
// a type assertion) and self-merging (it knows how to fold another value
// of the same kind into itself). Merging must tolerate repeated
// application: applying add(a) then add(b) yields the same result as a
// single add of the combined value, regardless of batching.
//
// Numeric policy (saturating, wrapping, flooring) is the concern of the
// concrete kind, not of this interface.
type Value interface {
	// Zero returns a fresh, empty-valued instance of the receiver's
	// concrete kind. Used to seed an entry when an add or subtract hits a
	// missing key.
	Zero() Value
	// Add merges other into the receiver in place. Values of a different
	// concrete kind are silently ignored.
	Add(other Value)
	// Sub subtracts other from the receiver in place. Values of a
	// different concrete kind are silently ignored.
	Sub(other Value)
	// Equal reports whether other has the same concrete kind and content.
	Equal(other Value) bool
}

// Identifier names a stat. Tables are keyed by the produced string, not by
// the identifier type: two distinct identifier types yielding the same
// string address the same table entry.
type Identifier interface {
	Key() string
}

// Key is an ad-hoc Identifier for plain string keys.
type Key string

// Key returns the key string itself.
func (k Key) Key() string { return string(k) }
