package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WatchlistEntry joins a watchlist row with IPO and company metadata.
type WatchlistEntry struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	IPOID       int       `json:"ipo_id"`
	CreatedAt   time.Time `json:"created_at"`
	CompanyID   int       `json:"company_id"`
	CompanyName string    `json:"company_name"`
}

// Transaction joins a transaction row with IPO and company metadata.
type Transaction struct {
	ID              int             `json:"id"`
	UserID          int             `json:"user_id"`
	IPOID           int             `json:"ipo_id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentStatus   string          `json:"payment_status"`
	TransactionDate time.Time       `json:"transaction_date"`
	CompanyID       int             `json:"company_id"`
	CompanyName     string          `json:"company_name"`
}

type Notification struct {
	ID        int       `json:"id"`
	UserID    *int      `json:"user_id"`
	Message   *string   `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
