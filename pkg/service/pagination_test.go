package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		limit      int
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"exact fit", 1, 10, 20, 2, true, false},
		{"partial last page", 1, 10, 25, 3, true, false},
		{"middle page", 2, 10, 25, 3, true, true},
		{"last page", 3, 10, 25, 3, false, true},
		{"empty", 1, 10, 0, 0, false, false},
		{"single record", 1, 10, 1, 1, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.limit, tc.total)
			assert.Equal(t, tc.totalPages, p.TotalPages)

			nav := p.WithNav()
			assert.Equal(t, tc.hasNext, nav.HasNext)
			assert.Equal(t, tc.hasPrev, nav.HasPrev)
		})
	}
}

func TestNormalizePage(t *testing.T) {
	page, limit := normalizePage(0, 0)
	assert.Equal(t, defaultPage, page)
	assert.Equal(t, defaultLimit, limit)

	page, limit = normalizePage(-3, 5000)
	assert.Equal(t, defaultPage, page)
	assert.Equal(t, maxLimit, limit)

	page, limit = normalizePage(4, 25)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, limit)
}
