package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		page      int
		wantPage  int
		wantPages int
		wantLen   int
	}{
		{"first page full", 25, 1, 1, 3, 12},
		{"middle page", 25, 2, 2, 3, 12},
		{"last partial page", 25, 3, 3, 3, 1},
		{"past the end clamps to last", 25, 4, 3, 3, 1},
		{"zero page becomes first", 25, 0, 1, 3, 12},
		{"negative page becomes first", 25, -5, 1, 3, 12},
		{"exact multiple", 24, 2, 2, 2, 12},
		{"empty set still has one page", 0, 1, 1, 1, 0},
		{"empty set clamps any page", 0, 9, 1, 1, 0},
		{"single item", 1, 1, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(tt.n, tt.page)
			assert.Equal(t, tt.wantPage, page.Number)
			assert.Equal(t, tt.wantPages, page.NumPages)
			assert.Equal(t, tt.wantLen, page.End-page.Start)
			assert.LessOrEqual(t, page.End, tt.n)
		})
	}
}

func TestPaginateNavigation(t *testing.T) {
	page := Paginate(25, 2)
	assert.True(t, page.HasPrev())
	assert.True(t, page.HasNext())
	assert.Equal(t, 1, page.PrevPage())
	assert.Equal(t, 3, page.NextPage())

	first := Paginate(25, 1)
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())

	last := Paginate(25, 3)
	assert.True(t, last.HasPrev())
	assert.False(t, last.HasNext())
}
