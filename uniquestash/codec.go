package uniquestash

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	errors2 "github.com/amp-labs/amp-stash/errors"
	"github.com/amp-labs/amp-stash/logger"
	"github.com/amp-labs/amp-stash/optional"
	"gopkg.in/yaml.v3"
)

var errMissingVersion = errors.New("slot has no version")

// Slot is one element of a snapshot: the generation of the slot and its value, if any.
type Slot[V any] struct {
	Version uint64            `json:"version" yaml:"version"`
	Entry   optional.Value[V] `json:"entry"   yaml:"entry"`
}

// Snapshot returns one element per slot, in slot order.
func (s *UniqueStash[V]) Snapshot() []Slot[V] {
	slots := make([]Slot[V], len(s.data))

	for pos := range s.data {
		entry := &s.data[pos]

		slots[pos].Version = entry.version
		if entry.full {
			slots[pos].Entry = optional.Some(entry.value)
		}
	}

	return slots
}

// Restore replaces the contents of the table with slots. Live slots keep their tags. The
// free list is rebuilt as if the free slots had been taken in ascending order, and a free
// slot at the last generation is restored as retired.
func (s *UniqueStash[V]) Restore(slots []Slot[V]) error {
	data := make([]slot[V], len(slots))
	size := 0
	retired := 0
	nextFree := len(slots)

	for pos, element := range slots {
		data[pos].version = element.Version

		if value, ok := element.Entry.Get(); ok {
			data[pos].value = value
			data[pos].full = true
			size++

			continue
		}

		if element.Version == math.MaxUint64 {
			data[pos].next = retiredSlot
			retired++

			continue
		}

		data[pos].next = nextFree
		nextFree = pos
	}

	s.data = data
	s.size = size
	s.retired = retired
	s.nextFree = nextFree
	s.metrics.observeReset(size, len(data), retired)

	return nil
}

// MarshalJSON encodes the table as an array of {"version": n, "entry": null | {"value": v}}.
func (s *UniqueStash[V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// UnmarshalJSON replaces the contents of the table with a snapshot produced by MarshalJSON.
func (s *UniqueStash[V]) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", errors2.ErrInvalidSnapshot, err)
	}

	slots := make([]Slot[V], len(raw))

	for pos, element := range raw {
		if err := decodeJSONSlot(element, &slots[pos]); err != nil {
			return slotError(pos, err)
		}
	}

	return s.Restore(slots)
}

func decodeJSONSlot[V any](data json.RawMessage, out *Slot[V]) error {
	var fields map[string]json.RawMessage

	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if fields == nil {
		return errMissingVersion
	}

	version, ok := fields["version"]
	if !ok {
		return errMissingVersion
	}

	if err := json.Unmarshal(version, &out.Version); err != nil {
		return err
	}

	if entry, ok := fields["entry"]; ok {
		return json.Unmarshal(entry, &out.Entry)
	}

	return nil
}

// MarshalYAML encodes the table as a sequence of {version: n, entry: {} | {value: v}}.
func (s *UniqueStash[V]) MarshalYAML() (any, error) {
	return s.Snapshot(), nil
}

// UnmarshalYAML replaces the contents of the table with a snapshot produced by MarshalYAML.
func (s *UniqueStash[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return logger.AnnotateError(
			fmt.Errorf("%w: expected a sequence, got %s", errors2.ErrInvalidSnapshot, node.ShortTag()),
			"line", node.Line)
	}

	slots := make([]Slot[V], len(node.Content))

	for pos, element := range node.Content {
		if !hasKey(element, "version") {
			return slotError(pos, errMissingVersion)
		}

		if err := element.Decode(&slots[pos]); err != nil {
			return slotError(pos, err)
		}
	}

	return s.Restore(slots)
}

func slotError(pos int, err error) error {
	return logger.AnnotateError(fmt.Errorf("%w: slot %d: %w", errors2.ErrInvalidSnapshot, pos, err), "slot", pos)
}

func hasKey(node *yaml.Node, key string) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}

	return false
}
