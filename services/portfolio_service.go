package services

import (
	"context"
	"database/sql"

	"github.com/bluestock/ipo-platform/models"
	"github.com/bluestock/ipo-platform/shared"
)

// PortfolioService serves per-user reads: watchlists, transactions and
// notifications.
type PortfolioService struct {
	DB *sql.DB
}

func NewPortfolioService(db *sql.DB) *PortfolioService {
	return &PortfolioService{DB: db}
}

func (s *PortfolioService) ListWatchlist(ctx context.Context, userID int) ([]models.WatchlistEntry, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT watchlists.id, watchlists.user_id, watchlists.ipo_id, watchlists.created_at,
		       ipos.company_id, companies.name AS company_name
		FROM watchlists
		JOIN ipos ON watchlists.ipo_id = ipos.id
		JOIN companies ON ipos.company_id = companies.id
		WHERE watchlists.user_id = $1
		ORDER BY watchlists.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, shared.NewPersistenceError("list_watchlist", err)
	}
	defer rows.Close()

	entries := make([]models.WatchlistEntry, 0)
	for rows.Next() {
		var e models.WatchlistEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.IPOID, &e.CreatedAt, &e.CompanyID, &e.CompanyName)
		if err != nil {
			return nil, shared.NewPersistenceError("list_watchlist", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, shared.NewPersistenceError("list_watchlist", err)
	}
	return entries, nil
}

func (s *PortfolioService) ListTransactions(ctx context.Context, userID int) ([]models.Transaction, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT transactions.id, transactions.user_id, transactions.ipo_id, transactions.amount,
		       transactions.payment_status, transactions.transaction_date,
		       ipos.company_id, companies.name AS company_name
		FROM transactions
		JOIN ipos ON transactions.ipo_id = ipos.id
		JOIN companies ON ipos.company_id = companies.id
		WHERE transactions.user_id = $1
		ORDER BY transactions.transaction_date DESC`,
		userID,
	)
	if err != nil {
		return nil, shared.NewPersistenceError("list_transactions", err)
	}
	defer rows.Close()

	txs := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.IPOID, &t.Amount,
			&t.PaymentStatus, &t.TransactionDate, &t.CompanyID, &t.CompanyName)
		if err != nil {
			return nil, shared.NewPersistenceError("list_transactions", err)
		}
		txs = append(txs, t)
	}
	if err = rows.Err(); err != nil {
		return nil, shared.NewPersistenceError("list_transactions", err)
	}
	return txs, nil
}

// ListNotifications returns every notification row, newest first.
func (s *PortfolioService) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, user_id, message, created_at
		FROM notifications
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, shared.NewPersistenceError("list_notifications", err)
	}
	defer rows.Close()

	notes := make([]models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.CreatedAt); err != nil {
			return nil, shared.NewPersistenceError("list_notifications", err)
		}
		notes = append(notes, n)
	}
	if err = rows.Err(); err != nil {
		return nil, shared.NewPersistenceError("list_notifications", err)
	}
	return notes, nil
}
