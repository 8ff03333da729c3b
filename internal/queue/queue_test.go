package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacityFor(t *testing.T) {
	for i := 0; i <= 33; i++ {
		c := capacityFor(i)
		assert.GreaterOrEqual(t, c, minCapacity)
		assert.GreaterOrEqual(t, c, i)
		assert.Zero(t, c&(c-1), "capacity %d is not a power of 2", c)
		if c > minCapacity {
			assert.Less(t, c>>1, i)
		}
	}
}

func TestEmpty(t *testing.T) {
	q := New[int]()
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Items())

	_, found := q.First()
	assert.False(t, found)
	_, found = q.Last()
	assert.False(t, found)
}

func TestPrefilled(t *testing.T) {
	q := New(1, 2, 3, 4, 5)
	assert.Equal(t, 5, q.Len())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, q.Items())
	assert.Len(t, q.items, 8)
}

func TestAppendFirst(t *testing.T) {
	q := New[int]()
	for i := 0; i < 20; i++ {
		q.Append(i)
	}
	require.Equal(t, 20, q.Len())

	for i := 0; i < 20; i++ {
		item, found := q.First()
		require.True(t, found)
		assert.Equal(t, i, item)
	}
	assert.True(t, q.IsEmpty())
	assert.Len(t, q.items, minCapacity)
}

func TestPrependLast(t *testing.T) {
	q := New[string]()
	q.Prepend("b").Prepend("a").Append("c")
	assert.Equal(t, []string{"a", "b", "c"}, q.Items())

	item, found := q.Last()
	assert.True(t, found)
	assert.Equal(t, "c", item)
	item, _ = q.Last()
	assert.Equal(t, "b", item)
	item, _ = q.First()
	assert.Equal(t, "a", item)
	assert.True(t, q.IsEmpty())
}

func TestWrapAround(t *testing.T) {
	q := New(1, 2, 3)
	q.First()
	q.First()
	q.Append(4).Append(5).Append(6)
	assert.Equal(t, []int{3, 4, 5, 6}, q.Items())
	assert.Len(t, q.items, minCapacity)

	q.Append(7)
	assert.Equal(t, []int{3, 4, 5, 6, 7}, q.Items())
	assert.Len(t, q.items, minCapacity<<1)
}
