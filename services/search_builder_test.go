package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/bluestock/ipo-platform/models"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchQueryNoFilters(t *testing.T) {
	query, values := BuildSearchQuery(models.SearchFilters{})

	assert.Contains(t, query, "WHERE 1=1")
	assert.Contains(t, query, "ORDER BY opening_date DESC")
	assert.NotContains(t, query, "$1")
	assert.Empty(t, values)
}

func TestBuildSearchQueryNameFilter(t *testing.T) {
	query, values := BuildSearchQuery(models.SearchFilters{Name: "Nova"})

	assert.Contains(t, query, "companies.name ILIKE $1")
	require.Len(t, values, 1)
	assert.Equal(t, "%Nova%", values[0])
}

func TestBuildSearchQueryClosedDateRange(t *testing.T) {
	query, values := BuildSearchQuery(models.SearchFilters{
		StartDate: "2024-01-01",
		EndDate:   "2024-06-30",
	})

	assert.Contains(t, query, "opening_date BETWEEN $1 AND $2")
	assert.Equal(t, []interface{}{"2024-01-01", "2024-06-30"}, values)
}

func TestBuildSearchQueryOneSidedRanges(t *testing.T) {
	min := decimal.NewFromInt(100)

	query, values := BuildSearchQuery(models.SearchFilters{
		EndDate:  "2024-06-30",
		MinPrice: &min,
	})

	assert.Contains(t, query, "opening_date <= $1")
	assert.Contains(t, query, "price_per_ipo >= $2")
	require.Len(t, values, 2)
	assert.Equal(t, "2024-06-30", values[0])
	assert.Equal(t, min, values[1])
}

func TestBuildSearchQueryAllFilters(t *testing.T) {
	min := decimal.NewFromInt(50)
	max := decimal.NewFromInt(500)

	query, values := BuildSearchQuery(models.SearchFilters{
		Name:      "Tech",
		StartDate: "2024-01-01",
		EndDate:   "2024-12-31",
		MinPrice:  &min,
		MaxPrice:  &max,
	})

	assert.Contains(t, query, "ILIKE $1")
	assert.Contains(t, query, "BETWEEN $2 AND $3")
	assert.Contains(t, query, "price_per_ipo BETWEEN $4 AND $5")
	assert.Len(t, values, 5)
}

var placeholderPattern = regexp.MustCompile(`\$(\d+)`)

// Placeholders must count 1..n with exactly one bound value each, for every
// combination of filters.
func TestBuildSearchQueryPlaceholderLockstep(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	genName := gen.OneConstOf("", "Nova", "o'reilly", "100%")
	genDate := gen.OneConstOf("", "2024-01-01", "2025-12-31")
	genPrice := gen.OneConstOf(-1.0, 0.0, 49.99, 1000.0)

	properties.Property("placeholders are sequential and match arg count", prop.ForAll(
		func(name, startDate, endDate string, minSet, maxSet bool, minPrice, maxPrice float64) bool {
			filters := models.SearchFilters{Name: name, StartDate: startDate, EndDate: endDate}
			if minSet {
				v := decimal.NewFromFloat(minPrice)
				filters.MinPrice = &v
			}
			if maxSet {
				v := decimal.NewFromFloat(maxPrice)
				filters.MaxPrice = &v
			}

			query, values := BuildSearchQuery(filters)

			matches := placeholderPattern.FindAllStringSubmatch(query, -1)
			if len(matches) != len(values) {
				return false
			}
			for i, m := range matches {
				n, err := strconv.Atoi(m[1])
				if err != nil || n != i+1 {
					return false
				}
			}
			// No user input may leak into the query text itself.
			return !strings.Contains(query, name) || name == ""
		},
		genName, genDate, genDate, gen.Bool(), gen.Bool(), genPrice, genPrice,
	))

	properties.TestingRun(t)
}

func TestParseIPODate(t *testing.T) {
	cases := []struct {
		input string
		ok    bool
	}{
		{"2024-01-15", true},
		{"2024-01-15 09:30:00", true},
		{"2024-01-15T09:30:00Z", true},
		{"15/01/2024", false},
		{"", false},
	}
	for _, tc := range cases {
		_, err := ParseIPODate(tc.input)
		if tc.ok {
			assert.NoError(t, err, fmt.Sprintf("input %q", tc.input))
		} else {
			assert.Error(t, err, fmt.Sprintf("input %q", tc.input))
		}
	}
}
