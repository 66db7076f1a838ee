package stash_test

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/amp-labs/amp-stash/errors"
	"github.com/amp-labs/amp-stash/logger"
	"github.com/amp-labs/amp-stash/optional"
	"github.com/amp-labs/amp-stash/stash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	s := stash.New[string]()
	s.PutAll("a", "b", "c")
	_, _ = s.Take(1)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"value":"a"},null,{"value":"c"}]`, string(data))
}

func TestJSONRoundTripKeepsKeys(t *testing.T) {
	t.Parallel()

	s := stash.New[*string]()
	name := "x"
	s.PutAll(&name, nil, &name, nil)
	_, _ = s.Take(1)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	restored := stash.New[*string]()
	require.NoError(t, json.Unmarshal(data, restored))

	assert.Equal(t, 3, restored.Len())
	assert.Equal(t, []int{0, 2, 3}, slices.Collect(restored.Keys()))

	// A live nil value is not a free slot.
	value, ok := restored.Get(3)
	assert.True(t, ok)
	assert.Nil(t, value)

	assert.Equal(t, 1, restored.Put(nil))
	assert.Equal(t, 4, restored.Put(nil))
}

func TestRestoreReusesHighestFreeSlotFirst(t *testing.T) {
	t.Parallel()

	s := stash.New[string]()
	require.NoError(t, json.Unmarshal([]byte(`[null,{"value":"b"},null,{"value":"d"},null]`), s))

	assert.Equal(t, []int{4, 2, 0}, s.FreeList())
	assert.Equal(t, []int{4, 2, 0, 5}, s.PutAll("w", "x", "y", "z"))
}

func TestRestoreReplacesContents(t *testing.T) {
	t.Parallel()

	s := stash.New[int]()
	s.PutAll(1, 2, 3, 4, 5)

	restored := []optional.Value[int]{optional.Some(9), optional.None[int]()}
	require.NoError(t, s.Restore(restored))

	assert.Equal(t, "stash{0: 9}", s.String())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, s.NextIndex())
	assert.Equal(t, restored, s.Snapshot())
}

func TestUnmarshalJSONErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		slot  any
	}{
		{"not an array", `{"value":1}`, nil},
		{"truncated", `[null,`, nil},
		{"missing value field", `[null,{"v":1}]`, int64(1)},
		{"wrong value type", `[{"value":1},{"value":"x"}]`, int64(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := stash.New[int]()
			s.Put(7)

			err := s.UnmarshalJSON([]byte(tt.input))
			require.ErrorIs(t, err, errors.ErrInvalidSnapshot)

			if tt.slot != nil {
				attrs := logger.Attrs(err)
				require.Len(t, attrs, 1)
				assert.Equal(t, "slot", attrs[0].Key)
				assert.Equal(t, tt.slot, attrs[0].Value.Any())
			}

			// A failed decode leaves the table as it was.
			assert.Equal(t, "stash{0: 7}", s.String())
		})
	}
}

func TestRestoreRejectsSnapshotWiderThanKeyType(t *testing.T) {
	t.Parallel()

	s := stash.NewIndexed[uint8, int]()

	err := s.Restore(make([]optional.Value[int], 257))
	require.ErrorIs(t, err, errors.ErrInvalidSnapshot)

	require.NoError(t, s.Restore(make([]optional.Value[int], 256)))
	assert.Equal(t, uint8(255), s.NextIndex())
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	s := stash.New[string]()
	s.PutAll("a", "b", "c")
	_, _ = s.Take(1)

	data, err := yaml.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, "- value: a\n- {}\n- value: c\n", string(data))

	restored := stash.New[string]()
	require.NoError(t, yaml.Unmarshal(data, restored))

	assert.Equal(t, s.String(), restored.String())
	assert.Equal(t, s.Snapshot(), restored.Snapshot())
	assert.Equal(t, 1, restored.Put("d"))
}

func TestUnmarshalYAMLFreesLiveSlots(t *testing.T) {
	t.Parallel()

	s := stash.New[string]()
	s.PutAll("a", "b", "c")

	require.NoError(t, yaml.Unmarshal([]byte("- {}\n- value: B\n- null\n"), s))

	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Contains(0))
	assert.False(t, s.Contains(2))
	assert.Equal(t, "B", s.MustGet(1))
	assert.Equal(t, 2, s.Put("x"))
	assert.Equal(t, 0, s.Put("y"))
}

func TestUnmarshalYAMLErrors(t *testing.T) {
	t.Parallel()

	s := stash.New[int]()

	err := yaml.Unmarshal([]byte("value: 1\n"), s)
	require.ErrorIs(t, err, errors.ErrInvalidSnapshot)

	err = yaml.Unmarshal([]byte(strings.Join([]string{"- value: 1", "- value: nope", ""}, "\n")), s)
	require.ErrorIs(t, err, errors.ErrInvalidSnapshot)
	assert.Equal(t, []any{"slot", int64(1)}, []any{logger.Attrs(err)[0].Key, logger.Attrs(err)[0].Value.Any()})
}
