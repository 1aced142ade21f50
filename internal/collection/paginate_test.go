package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, size, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{9, 9, 1},
		{10, 9, 2},
		{5, 0, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.count, tt.size), "count=%d size=%d", tt.count, tt.size)
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 5))
	assert.Equal(t, 1, ClampPage(-3, 5))
	assert.Equal(t, 3, ClampPage(3, 5))
	assert.Equal(t, 5, ClampPage(9, 5))
	assert.Equal(t, 1, ClampPage(2, 0))
}

func TestPageConcatenationReconstructs(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	var joined []int
	for page := 1; page <= TotalPages(len(items), 5); page++ {
		chunk := Page(items, page, 5)
		assert.LessOrEqual(t, len(chunk), 5)
		joined = append(joined, chunk...)
	}
	assert.Equal(t, items, joined)
}

func TestPageOutOfRangeClamps(t *testing.T) {
	items := []int{1, 2, 3}
	// Past the last page comes back clamped to the last page, never empty.
	assert.Equal(t, []int{3}, Page(items, 99, 2))
	assert.Equal(t, []int{1, 2}, Page(items, 0, 2))
}

func TestPageEmptyCollection(t *testing.T) {
	assert.Empty(t, Page([]int{}, 1, 10))
}
