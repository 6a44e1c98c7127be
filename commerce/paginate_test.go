package commerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListOptions_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListOptions
		want ListOptions
	}{
		{
			name: "zero values get defaults",
			in:   ListOptions{},
			want: ListOptions{Page: 1, PageSize: DefaultPageSize},
		},
		{
			name: "negative page clamped",
			in:   ListOptions{Page: -3, PageSize: 10},
			want: ListOptions{Page: 1, PageSize: 10},
		},
		{
			name: "oversized page size clamped",
			in:   ListOptions{Page: 2, PageSize: 500},
			want: ListOptions{Page: 2, PageSize: MaxPageSize},
		},
		{
			name: "invalid direction reset",
			in:   ListOptions{Page: 1, PageSize: 10, Direction: "sideways"},
			want: ListOptions{Page: 1, PageSize: 10, Direction: SortAsc},
		},
		{
			name: "valid options untouched",
			in:   ListOptions{Page: 3, PageSize: 50, Sort: "price", Direction: SortDesc},
			want: ListOptions{Page: 3, PageSize: 50, Sort: "price", Direction: SortDesc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestNewPage_NavigationFlags(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		page     int
		pageSize int
		wantNext bool
		wantPrev bool
	}{
		{name: "first of many", total: 95, page: 1, pageSize: 20, wantNext: true, wantPrev: false},
		{name: "middle", total: 95, page: 3, pageSize: 20, wantNext: true, wantPrev: true},
		{name: "last full", total: 95, page: 5, pageSize: 20, wantNext: false, wantPrev: true},
		{name: "exact boundary", total: 40, page: 2, pageSize: 20, wantNext: false, wantPrev: true},
		{name: "single page", total: 7, page: 1, pageSize: 20, wantNext: false, wantPrev: false},
		{name: "empty", total: 0, page: 1, pageSize: 20, wantNext: false, wantPrev: false},
		{name: "past the end", total: 10, page: 9, pageSize: 20, wantNext: false, wantPrev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage([]int{1}, tt.total, tt.page, tt.pageSize)
			assert.Equal(t, tt.wantNext, page.HasNextPage)
			assert.Equal(t, tt.wantPrev, page.HasPreviousPage)
			assert.Equal(t, tt.total, page.Total)
		})
	}
}

func TestNewPage_NilItems(t *testing.T) {
	page := NewPage[string](nil, 0, 1, 20)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestEmptyPage(t *testing.T) {
	page := EmptyPage[Product](ListOptions{Page: 4, PageSize: 10})
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)
	assert.Equal(t, 4, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.False(t, page.HasNextPage)
	assert.True(t, page.HasPreviousPage)
}
