package database

import (
	"bytes"
	"encoding/json"
)

// nullLiteral is how an unset value is rendered inside signed messages and
// hashed content.
const nullLiteral = "null"

// Optional represents a value that may be absent, such as the source of a
// reward transaction or the previous hash of the genesis block. Using an
// explicit flag keeps an absent value from ever colliding with a real key
// or hash.
type Optional[T ~string] struct {
	value T
	set   bool
}

// Some constructs an Optional holding the value.
func Some[T ~string](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None constructs an empty Optional.
func None[T ~string]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Equal compares two optionals. Two empty optionals are equal.
func (o Optional[T]) Equal(other Optional[T]) bool {
	if o.set != other.set {
		return false
	}
	return o.value == other.value
}

// String implements the fmt.Stringer interface. An empty value renders as
// the literal "null" so signed messages stay reproducible.
func (o Optional[T]) String() string {
	if !o.set {
		return nullLiteral
	}
	return string(o.value)
}

// MarshalJSON implements the json.Marshaler interface.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte(nullLiteral), nil
	}
	return json.Marshal(string(o.value))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte(nullLiteral)) {
		*o = Optional[T]{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*o = Some(T(s))
	return nil
}
