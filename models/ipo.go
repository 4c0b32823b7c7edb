package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type IPO struct {
	ID             int             `json:"id"`
	CompanyID      int             `json:"company_id"`
	APISourceID    string          `json:"api_source_id"`
	PricePerIPO    decimal.Decimal `json:"price_per_ipo"`
	PriceBand      *string         `json:"price_band"`
	IssueSize      *string         `json:"issue_size"`
	IssueType      *string         `json:"issue_type"`
	TotalShares    *int64          `json:"total_shares"`
	OpeningDate    time.Time       `json:"opening_date"`
	ClosingDate    time.Time       `json:"closing_date"`
	CreatedAt      *time.Time      `json:"created_at"`
	Status         *string         `json:"status"`
	LastUpdated    time.Time       `json:"last_updated"`
	CompanyLogoURL *string         `json:"company_logo_url"`
}

// IPOWithCompany is an IPO row joined with company metadata.
type IPOWithCompany struct {
	IPO
	CompanyName string `json:"company_name"`
}

// IPODetails is the one-to-one descriptive extension of an IPO.
type IPODetails struct {
	ID            int                 `json:"id"`
	IPOID         int                 `json:"ipo_id"`
	ListingPrice  decimal.NullDecimal `json:"listing_price"`
	ListingGain   *string             `json:"listing_gain"`
	CMP           decimal.NullDecimal `json:"cmp"`
	CurrentReturn *string             `json:"current_return"`
	RHP           *string             `json:"rhp"`
	DRHP          *string             `json:"drhp"`
	IPOInfo       *string             `json:"ipo_info"`
}

// CreateIPORequest is the payload for the atomic two-table IPO insert.
type CreateIPORequest struct {
	CompanyID   int              `json:"company_id"`
	APISourceID string           `json:"api_source_id"`
	PricePerIPO *decimal.Decimal `json:"price_per_ipo"`
	PriceBand   *string          `json:"price_band"`
	IssueSize   *string          `json:"issue_size"`
	IssueType   *string          `json:"issue_type"`
	OpeningDate string           `json:"opening_date"`
	ClosingDate string           `json:"closing_date"`
	CreatedAt   *string          `json:"created_at"`
	Status      *string          `json:"status"`

	ListingPrice  *decimal.Decimal `json:"listing_price"`
	ListingGain   *string          `json:"listing_gain"`
	CMP           *decimal.Decimal `json:"cmp"`
	CurrentReturn *string          `json:"current_return"`
	RHP           *string          `json:"rhp"`
	DRHP          *string          `json:"drhp"`
}

// UpdateIPORequest is the payload for the authenticated general update.
type UpdateIPORequest struct {
	CompanyID   int              `json:"company_id"`
	APISourceID string           `json:"api_source_id"`
	PricePerIPO *decimal.Decimal `json:"price_per_ipo"`
	TotalShares *int64           `json:"total_shares"`
	OpeningDate string           `json:"opening_date"`
	ClosingDate string           `json:"closing_date"`
}

// UpdateIPOTermsRequest is the payload for the terms-only update route.
type UpdateIPOTermsRequest struct {
	PriceBand string `json:"price_band"`
	IssueSize string `json:"issue_size"`
	IssueType string `json:"issue_type"`
}

// SearchFilters holds the independently optional search predicates.
type SearchFilters struct {
	Name      string
	StartDate string
	EndDate   string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
}

// SyncIPO is one element of the external source's JSON array.
type SyncIPO struct {
	ID          string          `json:"id"`
	CompanyID   int             `json:"company_id"`
	PricePerIPO decimal.Decimal `json:"price_per_ipo"`
	TotalShares *int64          `json:"total_shares"`
	OpeningDate string          `json:"opening_date"`
	ClosingDate string          `json:"closing_date"`
	Status      *string         `json:"status"`
}

// ListedIPO is the joined projection served by the upcoming-IPOs listing,
// with a status label derived in SQL from the current instant.
type ListedIPO struct {
	ID             int        `json:"id"`
	CompanyLogoURL *string    `json:"company_logo_url"`
	CompanyName    string     `json:"company_name"`
	PriceBand      *string    `json:"price_band"`
	IssueSize      *string    `json:"issue_size"`
	ListingDate    *time.Time `json:"listing_date"`
	OpeningDate    time.Time  `json:"opening_date"`
	ClosingDate    time.Time  `json:"closing_date"`
	IssueType      *string    `json:"issue_type"`
	Status         string     `json:"status"`
}

// DashboardIPO is the joined projection the dashboard categorizer buckets.
type DashboardIPO struct {
	ID          int             `json:"id"`
	CompanyID   int             `json:"company_id"`
	APISourceID string          `json:"api_source_id"`
	PricePerIPO decimal.Decimal `json:"price_per_ipo"`
	TotalShares *int64          `json:"total_shares"`
	OpeningDate time.Time       `json:"opening_date"`
	ClosingDate time.Time       `json:"closing_date"`
	Status      string          `json:"status"`
	CompanyName string          `json:"company_name"`
	LogoURL     *string         `json:"logo_url"`
}
