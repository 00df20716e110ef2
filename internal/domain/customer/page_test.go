package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       PageRequest
		expected PageRequest
	}{
		{
			name:     "defaults for zero value",
			in:       PageRequest{},
			expected: PageRequest{Page: 0, Size: DefaultPageSize, SortBy: DefaultSortField, SortDir: "asc"},
		},
		{
			name:     "negative page clamps to zero",
			in:       PageRequest{Page: -3, Size: 5, SortBy: "email", SortDir: "asc"},
			expected: PageRequest{Page: 0, Size: 5, SortBy: "email", SortDir: "asc"},
		},
		{
			name:     "unknown sort field falls back",
			in:       PageRequest{Size: 5, SortBy: "created_at; DROP TABLE customers", SortDir: "asc"},
			expected: PageRequest{Page: 0, Size: 5, SortBy: DefaultSortField, SortDir: "asc"},
		},
		{
			name:     "desc is case-insensitive",
			in:       PageRequest{Size: 5, SortBy: "lastName", SortDir: "DESC"},
			expected: PageRequest{Page: 0, Size: 5, SortBy: "lastName", SortDir: "desc"},
		},
		{
			name:     "garbage direction falls back to asc",
			in:       PageRequest{Size: 5, SortBy: "id", SortDir: "sideways"},
			expected: PageRequest{Page: 0, Size: 5, SortBy: "id", SortDir: "asc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.in.Normalize())
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 0, Size: 10}.Offset())
	assert.Equal(t, 30, PageRequest{Page: 3, Size: 10}.Offset())
	assert.Equal(t, 14, PageRequest{Page: 2, Size: 7}.Offset())
}

func TestPageTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		size     int
		expected int
	}{
		{"empty", 0, 10, 0},
		{"exact fit", 20, 10, 2},
		{"partial last page", 21, 10, 3},
		{"single short page", 3, 10, 1},
		{"zero size guards division", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Page{TotalElements: tt.total, Size: tt.size}
			assert.Equal(t, tt.expected, p.TotalPages())
		})
	}
}
