// pkg/optional/optional.go
package optional

import (
	"bytes"
	"encoding/json"
)

// Value is a tri-state field used by partial updates: absent, explicitly null, or set.
// The zero Value is absent.
type Value[T any] struct {
	present bool
	valid   bool
	v       T
}

// Of returns a present, non-null Value holding v.
func Of[T any](v T) Value[T] {
	return Value[T]{present: true, valid: true, v: v}
}

// Null returns a present Value that clears the target field.
func Null[T any]() Value[T] {
	return Value[T]{present: true}
}

// FromPtr maps nil to Null and anything else to Of.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return Null[T]()
	}
	return Of(*p)
}

// Present reports whether the field was supplied at all (null included).
func (o Value[T]) Present() bool { return o.present }

// IsNull reports whether the field was supplied as null.
func (o Value[T]) IsNull() bool { return o.present && !o.valid }

// Get returns the held value and whether there is one.
func (o Value[T]) Get() (T, bool) { return o.v, o.valid }

// Ptr returns a pointer to a copy of the held value, nil when absent or null.
func (o Value[T]) Ptr() *T {
	if !o.valid {
		return nil
	}
	v := o.v
	return &v
}

// IsZero lets encoding/json's omitzero drop absent fields.
func (o Value[T]) IsZero() bool { return !o.present }

func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

func (o *Value[T]) UnmarshalJSON(data []byte) error {
	o.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.valid = false
		o.v = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.v); err != nil {
		return err
	}
	o.valid = true
	return nil
}
