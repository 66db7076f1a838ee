// Package optional provides a type-safe Optional type for representing values that may or may not be present.
// The stash packages use it as the per-slot element of their snapshot encoding: a free slot is None,
// a live slot is Some(value), which keeps "free" distinct from "holds a nil value".
package optional

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var errMissingValueField = errors.New("optional: missing 'value' field")

// Value represents a value that may or may not be present.
// Use Some(value) to create a Value with a value, or None() for an empty Value.
type Value[T any] struct {
	value T
	isSet bool
}

// Some creates a Value containing the given value.
func Some[T any](value T) Value[T] {
	return Value[T]{value: value, isSet: true}
}

// None creates an empty Value with no value.
func None[T any]() Value[T] {
	return Value[T]{isSet: false}
}

// NonEmpty returns true if the Value contains a value.
func (o Value[T]) NonEmpty() bool {
	return o.isSet
}

// Empty returns true if the Value does not contain a value.
func (o Value[T]) Empty() bool {
	return !o.isSet
}

// Get returns the value and a boolean indicating whether the value is present.
func (o Value[T]) Get() (T, bool) {
	return o.value, o.isSet
}

// GetOrElse returns the value if present, or the provided default value if empty.
func (o Value[T]) GetOrElse(defaultValue T) T {
	if o.isSet {
		return o.value
	}

	return defaultValue
}

// String returns "Some(value)" if present, or "None" if empty.
func (o Value[T]) String() string {
	if o.isSet {
		return fmt.Sprintf("Some(%v)", o.value)
	}

	return "None"
}

// MarshalJSON implements json.Marshaler.
// None is marshaled as null, Some(value) is marshaled as {"value": ...}.
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.isSet {
		return []byte("null"), nil
	}

	return json.Marshal(map[string]T{"value": o.value})
}

// UnmarshalJSON implements json.Unmarshaler.
// null is unmarshaled as None, {"value": ...} is unmarshaled as Some(value).
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None[T]()

		return nil
	}

	var wrapper map[string]T
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}

	value, ok := wrapper["value"]
	if !ok {
		return errMissingValueField
	}

	*o = Some(value)

	return nil
}

// MarshalYAML implements yaml.Marshaler. Some(value) is marshaled as {value: ...} and None as
// an empty mapping. yaml.v3 never hands a null node to UnmarshalYAML, so None cannot be null here.
func (o Value[T]) MarshalYAML() (any, error) {
	if !o.isSet {
		return map[string]T{}, nil
	}

	return map[string]T{"value": o.value}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. An empty mapping is unmarshaled as None and
// {value: ...} as Some(value). A YAML null never reaches this method and leaves the target unchanged.
func (o *Value[T]) UnmarshalYAML(node *yaml.Node) error {
	var wrapper map[string]T
	if err := node.Decode(&wrapper); err != nil {
		return err
	}

	if len(wrapper) == 0 {
		*o = None[T]()

		return nil
	}

	value, ok := wrapper["value"]
	if !ok {
		return errMissingValueField
	}

	*o = Some(value)

	return nil
}
