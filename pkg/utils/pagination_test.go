package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationNormalize(t *testing.T) {
	tests := []struct {
		name               string
		in                 Pagination
		wantOffset, wantLi int
		wantPage           int
	}{
		{"defaults", Pagination{}, 0, DefaultPageLimit, 1},
		{"second page", Pagination{Page: 2, Limit: 10}, 10, 10, 2},
		{"limit clamped", Pagination{Page: 1, Limit: 1000}, 0, MaxPageLimit, 1},
		{"negative page", Pagination{Page: -3, Limit: 5}, 0, 5, 1},
		{"huge page capped", Pagination{Page: math.MaxInt, Limit: 50}, (MaxPage - 1) * 50, 50, MaxPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			offset, limit := p.Normalize()
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLi, limit)
			assert.Equal(t, tt.wantPage, p.Page)
		})
	}
}
