package models

import "time"

// SubscriptionDemo is a static demo row for the subscriptions endpoint.
type SubscriptionDemo struct {
	ID           int     `json:"id"`
	Company      string  `json:"company"`
	Price        float64 `json:"price"`
	LotSize      int     `json:"lot_size"`
	Subscription int     `json:"subscription"`
	ClosingDate  string  `json:"closing_date"`
}

// AllotmentDemo is a static demo row for the allotments endpoint.
type AllotmentDemo struct {
	ApplicationID  string    `json:"application_id"`
	InvestorName   string    `json:"investor_name"`
	CompanyName    string    `json:"company_name"`
	AppliedShares  int       `json:"applied_shares"`
	AllottedShares int       `json:"allotted_shares"`
	Status         string    `json:"status"`
	AllottedOn     time.Time `json:"allotted_on"`
}

// DashboardSummary is the static aggregate served by the summary endpoint.
type DashboardSummary struct {
	TotalIPO  int `json:"totalIPO"`
	IPOInLoss int `json:"ipoInLoss"`
	IPOInGain int `json:"ipoInGain"`
}
