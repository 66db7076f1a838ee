package stash_test

import (
	"slices"
	"testing"

	"github.com/amp-labs/amp-stash/errors"
	"github.com/amp-labs/amp-stash/stash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutTakeReusesKeys(t *testing.T) {
	t.Parallel()

	s := stash.New[int]()

	k0 := s.Put(10)
	k1 := s.Put(20)

	assert.Equal(t, 0, k0)
	assert.Equal(t, 1, k1)

	value, ok := s.Take(k0)
	require.True(t, ok)
	assert.Equal(t, 10, value)

	_, ok = s.Get(k0)
	assert.False(t, ok)

	k2 := s.Put(30)
	assert.Equal(t, k0, k2)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 30, s.MustGet(k2))
	assert.Equal(t, 20, s.MustGet(k1))
}

func TestGetAfterPut(t *testing.T) {
	t.Parallel()

	s := stash.New[string]()

	for _, value := range []string{"a", "b", "c"} {
		key := s.Put(value)

		got, ok := s.Get(key)
		require.True(t, ok)
		assert.Equal(t, value, got)
		assert.True(t, s.Contains(key))
	}
}

func TestInvalidKeys(t *testing.T) {
	t.Parallel()

	s := stash.New[string]()
	s.Put("a")
	freed := s.Put("b")
	s.Put("c")

	_, ok := s.Take(freed)
	require.True(t, ok)

	tests := []struct {
		name string
		key  int
	}{
		{"negative", -1},
		{"past end", 3},
		{"far past end", 1 << 30},
		{"free slot", freed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			value, ok := s.Get(tt.key)
			assert.False(t, ok)
			assert.Empty(t, value)
			assert.Nil(t, s.GetPtr(tt.key))
			assert.False(t, s.Contains(tt.key))
			assert.Panics(t, func() { s.MustGet(tt.key) })
		})
	}
}

func TestTakeInvalidKeyChangesNothing(t *testing.T) {
	t.Parallel()

	s := stash.New[string]()
	s.PutAll("a", "b")
	_, _ = s.Take(0)

	before := s.Clone()

	_, ok := s.Take(0)
	assert.False(t, ok)

	_, ok = s.Take(9)
	assert.False(t, ok)

	assert.Equal(t, before.String(), s.String())
	assert.Equal(t, before.FreeList(), s.FreeList())
	assert.Equal(t, 1, s.Len())
}

func TestMustGetPanicMessage(t *testing.T) {
	t.Parallel()

	s := stash.New[string]()

	assert.PanicsWithValue(t, "stash: index out of bounds: 5", func() {
		s.MustGet(5)
	})
}

func TestGetPtrModifiesInPlace(t *testing.T) {
	t.Parallel()

	s := stash.New[int]()
	key := s.Put(1)

	ptr := s.GetPtr(key)
	require.NotNil(t, ptr)

	*ptr = 42

	assert.Equal(t, 42, s.MustGet(key))
}

func TestUncheckedAccess(t *testing.T) {
	t.Parallel()

	s := stash.New[string]()
	a := s.Put("a")
	b := s.Put("b")

	assert.Equal(t, "a", s.GetUnchecked(a))

	*s.GetPtrUnchecked(b) = "bb"
	assert.Equal(t, "bb", s.MustGet(b))

	assert.Equal(t, "a", s.TakeUnchecked(a))
	assert.False(t, s.Contains(a))
	assert.Equal(t, a, s.Put("c"))
}

func TestClearReproducesKeySequence(t *testing.T) {
	t.Parallel()

	fresh := stash.New[int]()
	want := fresh.PutAll(1, 2, 3, 4, 5)

	s := stash.New[int](stash.WithCapacity(16))

	for i := range 20 {
		key := s.Put(i)
		if i%3 == 0 {
			_, _ = s.Take(key)
		}
	}

	capacity := s.Cap()

	s.Clear()

	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, capacity, s.Cap())
	assert.Equal(t, want, s.PutAll(1, 2, 3, 4, 5))
}

func TestZeroValueIsUsable(t *testing.T) {
	t.Parallel()

	var s stash.Stash[int, string]

	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.NextIndex())
	assert.Equal(t, 0, s.Put("a"))
	assert.Equal(t, "stash{0: a}", s.String())
}

func TestNextIndex(t *testing.T) {
	t.Parallel()

	s := stash.New[string]()

	for range 5 {
		next := s.NextIndex()
		assert.Equal(t, next, s.Put("x"))
	}

	_, _ = s.Take(1)
	_, _ = s.Take(3)

	assert.Equal(t, 3, s.NextIndex())
	assert.Equal(t, 3, s.Put("y"))
	assert.Equal(t, 1, s.NextIndex())
}

func TestPutAllAndExtend(t *testing.T) {
	t.Parallel()

	s := stash.New[string]()

	keys := s.PutAll("a", "b", "c")
	assert.Equal(t, []int{0, 1, 2}, keys)

	_, _ = s.Take(1)

	keys = s.Extend(slices.Values([]string{"d", "e"}))
	assert.Equal(t, []int{1, 3}, keys)
	assert.Equal(t, "stash{0: a, 1: d, 2: c, 3: e}", s.String())

	assert.Empty(t, s.PutAll())
}

func TestIndexOverflowPanicsBeforeMutation(t *testing.T) {
	t.Parallel()

	s := stash.NewIndexed[uint8, int]()

	for i := range 256 {
		s.Put(i)
	}

	var recovered any

	func() {
		defer func() { recovered = recover() }()

		s.Put(256)
	}()

	err, ok := recovered.(error)
	require.True(t, ok, "expected an error panic, got %v", recovered)
	require.ErrorIs(t, err, errors.ErrIndexOverflow)

	assert.Equal(t, 256, s.Len())
	assert.Equal(t, 256, s.Slots())

	// Freeing a slot makes room again.
	_, _ = s.Take(7)
	assert.Equal(t, uint8(7), s.Put(1000))
}

func TestIndexOverflowSignedKeys(t *testing.T) {
	t.Parallel()

	s := stash.NewIndexed[int8, string]()

	for range 128 {
		s.Put("x")
	}

	assert.Panics(t, func() { s.Put("overflow") })
	assert.Panics(t, func() { s.NextIndex() })

	_, ok := s.Get(-1)
	assert.False(t, ok)
}

func TestKeysStayBelowPeakOccupancy(t *testing.T) {
	t.Parallel()

	type fd uint8

	s := stash.NewIndexed[fd, int]()
	live := make([]fd, 0, 200)

	for i := range 10_000 {
		if len(live) == 200 || (len(live) > 0 && i%3 == 0) {
			idx := i % len(live)
			_, ok := s.Take(live[idx])
			require.True(t, ok)

			live = slices.Delete(live, idx, idx+1)

			continue
		}

		key := s.Put(i)
		assert.Less(t, int(key), 200)

		live = append(live, key)
	}
}

func TestDeterministicAcrossTables(t *testing.T) {
	t.Parallel()

	primary := stash.New[string]()
	secondary := stash.New[int]()

	for i := range 1000 {
		if i%4 == 3 {
			key := i % (primary.Len() + 1)
			_, a := primary.Take(key)
			_, b := secondary.Take(key)
			assert.Equal(t, a, b)

			continue
		}

		assert.Equal(t, primary.Put("value"), secondary.Put(i))
	}

	assert.Equal(t, slices.Collect(primary.Keys()), slices.Collect(secondary.Keys()))
}

func TestReserve(t *testing.T) {
	t.Parallel()

	s := stash.New[int](stash.WithCapacity(4))
	assert.Equal(t, 4, s.Cap())

	s.PutAll(1, 2, 3, 4)
	_, _ = s.Take(0)
	_, _ = s.Take(1)

	// Two free slots already cover two puts.
	s.Reserve(2)
	assert.Equal(t, 4, s.Cap())

	s.Reserve(3)
	assert.GreaterOrEqual(t, s.Cap(), 5)

	assert.Panics(t, func() { s.Reserve(-1) })
}

func TestReserveExact(t *testing.T) {
	t.Parallel()

	s := stash.New[int]()
	s.ReserveExact(7)
	assert.Equal(t, 7, s.Cap())

	s.PutAll(1, 2, 3)
	s.ReserveExact(4)
	assert.Equal(t, 7, s.Cap())

	s.ReserveExact(5)
	assert.Equal(t, 8, s.Cap())

	assert.Panics(t, func() { s.ReserveExact(-1) })
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	s := stash.New[string]()
	s.PutAll("a", "b", "c")
	_, _ = s.Take(1)

	clone := s.Clone()

	assert.Equal(t, s.String(), clone.String())
	assert.Equal(t, s.Put("x"), clone.Put("y"))
	assert.Equal(t, "x", s.MustGet(1))
	assert.Equal(t, "y", clone.MustGet(1))
}

func TestString(t *testing.T) {
	t.Parallel()

	s := stash.New[string]()
	assert.Equal(t, "stash{}", s.String())

	s.PutAll("a", "b", "c")
	_, _ = s.Take(1)

	assert.Equal(t, "stash{0: a, 2: c}", s.String())
}

func TestFreeListHoldsExactlyTheFreeSlots(t *testing.T) {
	t.Parallel()

	s := stash.New[int]()
	s.PutAll(0, 1, 2, 3, 4, 5, 6, 7)

	for _, key := range []int{2, 6, 0} {
		_, ok := s.Take(key)
		require.True(t, ok)
	}

	assert.Equal(t, []int{0, 6, 2}, s.FreeList())
	assert.Equal(t, []int{1, 3, 4, 5, 7}, slices.Collect(s.Keys()))
	assert.Equal(t, s.Slots(), len(s.FreeList())+s.Len())
}
