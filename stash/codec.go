package stash

import (
	"encoding/json"
	"fmt"

	"github.com/amp-labs/amp-stash/errors"
	"github.com/amp-labs/amp-stash/logger"
	"github.com/amp-labs/amp-stash/optional"
	"gopkg.in/yaml.v3"
)

// Snapshot returns one element per slot: empty for a free slot, the value for a live one.
func (s *Stash[K, V]) Snapshot() []optional.Value[V] {
	slots := make([]optional.Value[V], len(s.data))

	for pos := range s.data {
		if slot := &s.data[pos]; slot.full {
			slots[pos] = optional.Some(slot.value)
		}
	}

	return slots
}

// Restore replaces the contents of the table with slots. Live slots keep their keys.
// The free list is rebuilt as if the free slots had been taken in ascending order, so the
// highest free slot is reused first.
func (s *Stash[K, V]) Restore(slots []optional.Value[V]) error {
	if len(slots) > 0 && !fits[K](len(slots)-1) {
		var key K

		return logger.AnnotateError(
			fmt.Errorf("%w: %d slots do not fit %T", errors.ErrInvalidSnapshot, len(slots), key),
			"slots", len(slots))
	}

	data := make([]entry[V], len(slots))
	size := 0
	nextFree := len(slots)

	for pos, slot := range slots {
		if value, ok := slot.Get(); ok {
			data[pos] = occupied(value)
			size++

			continue
		}

		data[pos] = vacant[V](nextFree)
		nextFree = pos
	}

	s.data = data
	s.size = size
	s.nextFree = nextFree
	s.metrics.observeReset(size, len(data))

	return nil
}

// MarshalJSON encodes the table as an array with one element per slot: null for a free
// slot and {"value": v} for a live one.
func (s *Stash[K, V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// UnmarshalJSON replaces the contents of the table with a snapshot produced by MarshalJSON.
func (s *Stash[K, V]) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidSnapshot, err)
	}

	slots := make([]optional.Value[V], len(raw))

	for pos, element := range raw {
		if err := json.Unmarshal(element, &slots[pos]); err != nil {
			return slotError(pos, err)
		}
	}

	return s.Restore(slots)
}

// MarshalYAML encodes the table as a sequence with one element per slot: {} for a free
// slot and {value: v} for a live one.
func (s *Stash[K, V]) MarshalYAML() (any, error) {
	return s.Snapshot(), nil
}

// UnmarshalYAML replaces the contents of the table with a snapshot produced by MarshalYAML.
// A null element is also read as a free slot.
func (s *Stash[K, V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return logger.AnnotateError(
			fmt.Errorf("%w: expected a sequence, got %s", errors.ErrInvalidSnapshot, node.ShortTag()),
			"line", node.Line)
	}

	slots := make([]optional.Value[V], len(node.Content))

	for pos, element := range node.Content {
		if err := element.Decode(&slots[pos]); err != nil {
			return slotError(pos, err)
		}
	}

	return s.Restore(slots)
}

func slotError(pos int, err error) error {
	return logger.AnnotateError(fmt.Errorf("%w: slot %d: %w", errors.ErrInvalidSnapshot, pos, err), "slot", pos)
}
