package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseIPOTerms validates that price_band and issue_size carry numeric values
// and returns them in canonical string form. Both columns are stored as text
// but the admin form only ever submits numbers.
func ParseIPOTerms(priceBand, issueSize string) (string, string, error) {
	band, err := decimal.NewFromString(priceBand)
	if err != nil {
		return "", "", fmt.Errorf("price_band: %w", err)
	}
	size, err := decimal.NewFromString(issueSize)
	if err != nil {
		return "", "", fmt.Errorf("issue_size: %w", err)
	}
	return band.String(), size.String(), nil
}
