package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlice(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name  string
		page  int
		limit int
		want  []int
	}{
		{name: "no pagination", page: 0, limit: 0, want: []int{1, 2, 3, 4, 5}},
		{name: "first page", page: 1, limit: 2, want: []int{1, 2}},
		{name: "middle page", page: 2, limit: 2, want: []int{3, 4}},
		{name: "partial last page", page: 3, limit: 2, want: []int{5}},
		{name: "page past the end", page: 4, limit: 2, want: []int{}},
		{name: "negative page", page: -1, limit: 2, want: []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slice(items, tt.page, tt.limit))
		})
	}
}
