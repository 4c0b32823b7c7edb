package services

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePaging(t *testing.T) {
	cases := []struct {
		name                               string
		page, limit                        int
		wantPage, wantLimit, wantOffset    int
	}{
		{"defaults", 0, 0, 1, 10, 0},
		{"negative page", -3, 5, 1, 5, 0},
		{"second page", 2, 10, 2, 10, 10},
		{"large page", 40, 25, 40, 25, 975},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit, offset := NormalizePaging(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestTotalPagesCoversAllRows(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("pages*limit covers total, pages minimal", prop.ForAll(
		func(totalRows, limit int) bool {
			pages := TotalPages(totalRows, limit)
			if pages*limit < totalRows {
				return false
			}
			return pages == 0 || (pages-1)*limit < totalRows
		},
		gen.IntRange(0, 100000),
		gen.IntRange(1, 500),
	))

	properties.TestingRun(t)
}
