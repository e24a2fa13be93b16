package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChunkPreservesOrder(t *testing.T) {
	batches := Chunk([]string{"a", "b", "c", "d", "e"}, 2)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, batches)
}

func TestChunkExactMultiple(t *testing.T) {
	batches := Chunk([]int{1, 2, 3, 4}, 2)
	assert.Len(t, batches, 2)
	assert.Equal(t, []int{3, 4}, batches[1])
}

func TestChunkEmptyInput(t *testing.T) {
	assert.Nil(t, Chunk([]string(nil), 10))
}

func TestChunkNonPositiveSize(t *testing.T) {
	batches := Chunk([]string{"a", "b"}, 0)
	assert.Equal(t, [][]string{{"a", "b"}}, batches)
}

func TestMergeIDsSortsAndDedupes(t *testing.T) {
	merged := MergeIDs([]string{"b", "a", "c"}, []string{"c", "d", "a"})
	assert.Equal(t, []string{"a", "b", "c", "d"}, merged)
}

func TestMergeIDsEmptySides(t *testing.T) {
	assert.Equal(t, []string{"x"}, MergeIDs(nil, []string{"x"}))
	assert.Empty(t, MergeIDs(nil, nil))
}

func TestFormatUTC(t *testing.T) {
	hk := time.FixedZone("HKT", 8*60*60)
	instant := time.Date(2025, 9, 1, 10, 0, 0, 0, hk)
	assert.Equal(t, "2025-09-01T02:00:00.000Z", FormatUTC(instant))
}

func TestParseSourceTime(t *testing.T) {
	a, err := ParseSourceTime("2025-09-01T02:00:00Z")
	assert.NoError(t, err)
	b, err := ParseSourceTime("2025-09-01T10:00:00+0800")
	assert.NoError(t, err)
	assert.True(t, a.Equal(b))

	_, err = ParseSourceTime("not a time")
	assert.Error(t, err)
}
