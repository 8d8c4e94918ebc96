package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults when zero", 0, 0, 1, 12, 0},
		{"defaults when negative", -3, -1, 1, 12, 0},
		{"first page", 1, 12, 1, 12, 0},
		{"third page", 3, 12, 3, 12, 24},
		{"custom limit", 2, 5, 2, 5, 5},
		{"large limit kept", 2, 200, 2, 200, 200},
		{"offset overflow falls back", 922337203685477580, 12, 1, 12, 0},
		{"max page with limit one", math.MaxInt, 1, math.MaxInt, 1, math.MaxInt - 1},
		{"max limit", 1, math.MaxInt, 1, math.MaxInt, 0},
		{"page two with max limit", 2, math.MaxInt, 2, math.MaxInt, math.MaxInt},
		{"overflow with max limit", 3, math.MaxInt, 1, math.MaxInt, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit, offset := Paginate(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		limit    int
		expected int
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{25, 12, 3},
		{36, 12, 3},
		{100, 1, 100},
		{25, 200, 1},
		{25, math.MaxInt, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestPaginate_OffsetNeverNegative(t *testing.T) {
	for _, page := range []int{1, 2, 1 << 40, 922337203685477580, math.MaxInt} {
		for _, limit := range []int{1, 12, 200, 1 << 31, math.MaxInt} {
			_, _, offset := Paginate(page, limit)
			assert.GreaterOrEqual(t, offset, 0, "page=%d limit=%d", page, limit)
		}
	}
}
