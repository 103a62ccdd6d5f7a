package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageParamsDefaults(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"both missing", "", "", 1, 10},
		{"non-numeric", "abc", "xyz", 1, 10},
		{"explicit values", "3", "25", 3, 25},
		{"zero page normalized", "0", "10", 1, 10},
		{"negative page normalized", "-2", "10", 1, 10},
		{"zero limit normalized", "2", "0", 2, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPageParams(tt.page, tt.limit, "")
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestPageParamsSearchTrimmed(t *testing.T) {
	p := NewPageParams("", "", "  shoes ")
	assert.Equal(t, "shoes", p.Search)
}

func TestPageParamsOffset(t *testing.T) {
	assert.Equal(t, 0, NewPageParams("1", "10", "").Offset())
	assert.Equal(t, 10, NewPageParams("2", "10", "").Offset())
	assert.Equal(t, 50, NewPageParams("3", "25", "").Offset())
}

func TestPageParamsTotalPages(t *testing.T) {
	p := NewPageParams("1", "10", "")

	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(1))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 2, p.TotalPages(11))
	assert.Equal(t, 3, p.TotalPages(25))
}
