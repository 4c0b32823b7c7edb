package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bluestock/ipo-platform/models"
	"github.com/bluestock/ipo-platform/shared"
	"github.com/sirupsen/logrus"
)

// pgDateLayout is the timestamp format handed to Postgres on writes.
const pgDateLayout = "2006-01-02 15:04:05"

const ipoColumns = `id, company_id, api_source_id, price_per_ipo, price_band, issue_size,
	issue_type, total_shares, opening_date, closing_date, created_at, status,
	last_updated, company_logo_url`

type IPOService struct {
	DB *sql.DB
}

func NewIPOService(db *sql.DB) *IPOService {
	return &IPOService{DB: db}
}

// ParseIPODate accepts the date formats clients actually send: RFC 3339,
// bare dates and the Postgres timestamp layout.
func ParseIPODate(value string) (time.Time, error) {
	layouts := []string{time.RFC3339, pgDateLayout, "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
}

// CreateIPO inserts the core IPO row and its details extension as a single
// transaction on a dedicated connection. Either both rows become visible or
// neither does.
func (s *IPOService) CreateIPO(ctx context.Context, req *models.CreateIPORequest) (int, error) {
	if req.CompanyID == 0 || req.APISourceID == "" || req.PricePerIPO == nil ||
		req.IssueSize == nil || req.OpeningDate == "" || req.ClosingDate == "" {
		return 0, shared.NewValidationError("Missing required fields", "create_ipo")
	}

	openingDate, err := ParseIPODate(req.OpeningDate)
	if err != nil {
		return 0, shared.NewValidationError("Invalid opening_date format", "create_ipo")
	}
	closingDate, err := ParseIPODate(req.ClosingDate)
	if err != nil {
		return 0, shared.NewValidationError("Invalid closing_date format", "create_ipo")
	}

	var createdAt *string
	if req.CreatedAt != nil {
		t, err := ParseIPODate(*req.CreatedAt)
		if err != nil {
			return 0, shared.NewValidationError("Invalid created_at format", "create_ipo")
		}
		formatted := t.Format(pgDateLayout)
		createdAt = &formatted
	}

	conn, err := s.DB.Conn(ctx)
	if err != nil {
		return 0, shared.NewPersistenceError("create_ipo", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, shared.NewPersistenceError("create_ipo", err)
	}

	insertIPO := `
		INSERT INTO ipos (
			company_id, api_source_id, price_per_ipo, price_band, issue_size,
			issue_type, opening_date, closing_date, created_at, status, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9::timestamp, CURRENT_TIMESTAMP), $10, CURRENT_TIMESTAMP)
		RETURNING id`

	var ipoID int
	err = tx.QueryRowContext(ctx, insertIPO,
		req.CompanyID, req.APISourceID, req.PricePerIPO, req.PriceBand, req.IssueSize,
		req.IssueType, openingDate.Format(pgDateLayout), closingDate.Format(pgDateLayout),
		createdAt, req.Status,
	).Scan(&ipoID)
	if err != nil {
		tx.Rollback()
		return 0, shared.NewPersistenceError("create_ipo", err)
	}

	insertDetails := `
		INSERT INTO ipo_details (
			ipo_id, listing_price, listing_gain, cmp, current_return, rhp, drhp
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = tx.ExecContext(ctx, insertDetails,
		ipoID, req.ListingPrice, req.ListingGain, req.CMP, req.CurrentReturn, req.RHP, req.DRHP,
	)
	if err != nil {
		tx.Rollback()
		return 0, shared.NewPersistenceError("create_ipo", err)
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return 0, shared.NewPersistenceError("create_ipo", err)
	}

	logrus.WithFields(logrus.Fields{
		"ipo_id":        ipoID,
		"company_id":    req.CompanyID,
		"api_source_id": req.APISourceID,
	}).Info("IPO created")

	return ipoID, nil
}

// IPOPage is one page of the IPO listing plus pagination totals.
type IPOPage struct {
	Page         int          `json:"page"`
	TotalPages   int          `json:"totalPages"`
	TotalRecords int          `json:"totalRecords"`
	IPOs         []models.IPO `json:"ipos"`
}

// NormalizePaging clamps page and limit to their defaults and derives the
// row offset: offset = (page-1)*limit.
func NormalizePaging(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}

// TotalPages computes ceil(totalRows/limit).
func TotalPages(totalRows, limit int) int {
	if limit < 1 {
		return 0
	}
	return (totalRows + limit - 1) / limit
}

func (s *IPOService) ListIPOs(ctx context.Context, page, limit int) (*IPOPage, error) {
	page, limit, offset := NormalizePaging(page, limit)

	query := `SELECT ` + ipoColumns + ` FROM ipos ORDER BY opening_date DESC LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, shared.NewPersistenceError("list_ipos", err)
	}
	defer rows.Close()

	ipos := make([]models.IPO, 0)
	for rows.Next() {
		ipo, err := scanIPO(rows)
		if err != nil {
			return nil, shared.NewPersistenceError("list_ipos", err)
		}
		ipos = append(ipos, *ipo)
	}
	if err = rows.Err(); err != nil {
		return nil, shared.NewPersistenceError("list_ipos", err)
	}

	var totalRows int
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM ipos").Scan(&totalRows); err != nil {
		return nil, shared.NewPersistenceError("list_ipos", err)
	}

	return &IPOPage{
		Page:         page,
		TotalPages:   TotalPages(totalRows, limit),
		TotalRecords: totalRows,
		IPOs:         ipos,
	}, nil
}

// GetIPOByID returns the IPO joined with company metadata, or nil when the
// row does not exist.
func (s *IPOService) GetIPOByID(ctx context.Context, id int) (*models.IPOWithCompany, error) {
	query := `
		SELECT ipos.id, ipos.company_id, ipos.api_source_id, ipos.price_per_ipo,
		       ipos.price_band, ipos.issue_size, ipos.issue_type, ipos.total_shares,
		       ipos.opening_date, ipos.closing_date, ipos.created_at, ipos.status,
		       ipos.last_updated, ipos.company_logo_url,
		       companies.name AS company_name
		FROM ipos
		JOIN companies ON ipos.company_id = companies.id
		WHERE ipos.id = $1`

	row := s.DB.QueryRowContext(ctx, query, id)

	var ipo models.IPOWithCompany
	err := row.Scan(
		&ipo.ID, &ipo.CompanyID, &ipo.APISourceID, &ipo.PricePerIPO,
		&ipo.PriceBand, &ipo.IssueSize, &ipo.IssueType, &ipo.TotalShares,
		&ipo.OpeningDate, &ipo.ClosingDate, &ipo.CreatedAt, &ipo.Status,
		&ipo.LastUpdated, &ipo.CompanyLogoURL,
		&ipo.CompanyName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, shared.NewPersistenceError("get_ipo", err)
	}
	return &ipo, nil
}

// GetIPODetailsHTML fetches the Markdown info field for a details record and
// renders it to sanitized HTML. Returns "", false when the record is absent.
func (s *IPOService) GetIPODetailsHTML(ctx context.Context, id int) (string, bool, error) {
	var info sql.NullString
	err := s.DB.QueryRowContext(ctx, "SELECT ipo_info FROM ipo_details WHERE id = $1", id).Scan(&info)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, shared.NewPersistenceError("get_ipo_details", err)
	}

	if !info.Valid {
		return "", true, nil
	}

	html, err := RenderMarkdown(info.String)
	if err != nil {
		return "", true, shared.NewPersistenceError("get_ipo_details", err)
	}
	return html, true, nil
}

// BuildSearchQuery assembles the dynamic search statement, appending predicate
// fragments and positional parameters in lockstep. Every user-supplied value is
// bound as a placeholder; nothing is interpolated into the query text.
func BuildSearchQuery(filters models.SearchFilters) (string, []interface{}) {
	query := `SELECT ` + ipoColumns + ` FROM ipos WHERE 1=1`
	var values []interface{}
	index := 1

	if name := strings.TrimSpace(filters.Name); name != "" {
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM companies
			WHERE companies.id = ipos.company_id
			AND companies.name ILIKE $%d
		)`, index)
		values = append(values, "%"+name+"%")
		index++
	}

	switch {
	case filters.StartDate != "" && filters.EndDate != "":
		query += fmt.Sprintf(" AND opening_date BETWEEN $%d AND $%d", index, index+1)
		values = append(values, filters.StartDate, filters.EndDate)
		index += 2
	case filters.StartDate != "":
		query += fmt.Sprintf(" AND opening_date >= $%d", index)
		values = append(values, filters.StartDate)
		index++
	case filters.EndDate != "":
		query += fmt.Sprintf(" AND opening_date <= $%d", index)
		values = append(values, filters.EndDate)
		index++
	}

	switch {
	case filters.MinPrice != nil && filters.MaxPrice != nil:
		query += fmt.Sprintf(" AND price_per_ipo BETWEEN $%d AND $%d", index, index+1)
		values = append(values, *filters.MinPrice, *filters.MaxPrice)
		index += 2
	case filters.MinPrice != nil:
		query += fmt.Sprintf(" AND price_per_ipo >= $%d", index)
		values = append(values, *filters.MinPrice)
		index++
	case filters.MaxPrice != nil:
		query += fmt.Sprintf(" AND price_per_ipo <= $%d", index)
		values = append(values, *filters.MaxPrice)
		index++
	}

	query += " ORDER BY opening_date DESC"
	return query, values
}

func (s *IPOService) SearchIPOs(ctx context.Context, filters models.SearchFilters) ([]models.IPO, error) {
	query, values := BuildSearchQuery(filters)

	rows, err := s.DB.QueryContext(ctx, query, values...)
	if err != nil {
		return nil, shared.NewPersistenceError("search_ipos", err)
	}
	defer rows.Close()

	ipos := make([]models.IPO, 0)
	for rows.Next() {
		ipo, err := scanIPO(rows)
		if err != nil {
			return nil, shared.NewPersistenceError("search_ipos", err)
		}
		ipos = append(ipos, *ipo)
	}
	if err = rows.Err(); err != nil {
		return nil, shared.NewPersistenceError("search_ipos", err)
	}
	return ipos, nil
}

// UpdateIPO applies the authenticated general-field update and returns the
// updated row, or nil when the IPO does not exist.
func (s *IPOService) UpdateIPO(ctx context.Context, id int, req *models.UpdateIPORequest) (*models.IPO, error) {
	openingDate, err := ParseIPODate(req.OpeningDate)
	if err != nil {
		return nil, shared.NewValidationError("Invalid opening_date format", "update_ipo")
	}
	closingDate, err := ParseIPODate(req.ClosingDate)
	if err != nil {
		return nil, shared.NewValidationError("Invalid closing_date format", "update_ipo")
	}

	query := `
		UPDATE ipos
		SET company_id = $1, api_source_id = $2, price_per_ipo = $3, total_shares = $4,
		    opening_date = $5, closing_date = $6, last_updated = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING ` + ipoColumns

	row := s.DB.QueryRowContext(ctx, query,
		req.CompanyID, req.APISourceID, req.PricePerIPO, req.TotalShares,
		openingDate.Format(pgDateLayout), closingDate.Format(pgDateLayout), id,
	)

	ipo, err := scanIPO(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, shared.NewPersistenceError("update_ipo", err)
	}
	return ipo, nil
}

// UpdateIPOTerms applies the terms-only update (price band, issue size and
// type). All three fields are required and the numeric ones must parse.
func (s *IPOService) UpdateIPOTerms(ctx context.Context, id int, req *models.UpdateIPOTermsRequest) (bool, error) {
	if req.PriceBand == "" || req.IssueSize == "" || req.IssueType == "" {
		return false, shared.NewValidationError("All fields are required", "update_ipo_terms")
	}

	priceBand, issueSize, err := ParseIPOTerms(req.PriceBand, req.IssueSize)
	if err != nil {
		return false, shared.NewValidationError("Invalid data format for price_band or issue_size", "update_ipo_terms")
	}

	var exists int
	err = s.DB.QueryRowContext(ctx, "SELECT id FROM ipos WHERE id = $1", id).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, shared.NewPersistenceError("update_ipo_terms", err)
	}

	_, err = s.DB.ExecContext(ctx, `
		UPDATE ipos
		SET price_band = $1, issue_size = $2, issue_type = $3, last_updated = CURRENT_TIMESTAMP
		WHERE id = $4`,
		priceBand, issueSize, req.IssueType, id,
	)
	if err != nil {
		return false, shared.NewPersistenceError("update_ipo_terms", err)
	}
	return true, nil
}

// DeleteIPO removes an IPO row and reports whether it existed.
func (s *IPOService) DeleteIPO(ctx context.Context, id int) (bool, error) {
	var deletedID int
	err := s.DB.QueryRowContext(ctx, "DELETE FROM ipos WHERE id = $1 RETURNING id", id).Scan(&deletedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, shared.NewPersistenceError("delete_ipo", err)
	}

	logrus.WithField("ipo_id", id).Info("IPO deleted")
	return true, nil
}

// DeleteIPOCheckFirst is the legacy delete path: it verifies existence with a
// read before deleting, instead of relying on DELETE RETURNING.
func (s *IPOService) DeleteIPOCheckFirst(ctx context.Context, id int) (bool, error) {
	var exists int
	err := s.DB.QueryRowContext(ctx, "SELECT id FROM ipos WHERE id = $1", id).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, shared.NewPersistenceError("delete_ipo_legacy", err)
	}

	if _, err := s.DB.ExecContext(ctx, "DELETE FROM ipos WHERE id = $1", id); err != nil {
		return false, shared.NewPersistenceError("delete_ipo_legacy", err)
	}

	logrus.WithField("ipo_id", id).Info("IPO deleted")
	return true, nil
}

// ListUpcomingIPOs returns the joined listing with a status label derived in
// SQL from the current instant.
func (s *IPOService) ListUpcomingIPOs(ctx context.Context) ([]models.ListedIPO, error) {
	query := `
		SELECT
			ipos.id,
			ipos.company_logo_url,
			companies.name AS company_name,
			ipos.price_band,
			ipos.issue_size,
			ipos.created_at AS listing_date,
			ipos.opening_date,
			ipos.closing_date,
			ipos.issue_type,
			CASE
				WHEN NOW() BETWEEN ipos.opening_date AND ipos.closing_date THEN 'Ongoing'
				WHEN NOW() < ipos.opening_date THEN 'Upcoming'
				ELSE 'New Listed'
			END AS status
		FROM ipos
		JOIN companies ON ipos.company_id = companies.id`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, shared.NewPersistenceError("list_upcoming_ipos", err)
	}
	defer rows.Close()

	ipos := make([]models.ListedIPO, 0)
	for rows.Next() {
		var ipo models.ListedIPO
		err := rows.Scan(
			&ipo.ID, &ipo.CompanyLogoURL, &ipo.CompanyName, &ipo.PriceBand,
			&ipo.IssueSize, &ipo.ListingDate, &ipo.OpeningDate, &ipo.ClosingDate,
			&ipo.IssueType, &ipo.Status,
		)
		if err != nil {
			return nil, shared.NewPersistenceError("list_upcoming_ipos", err)
		}
		ipos = append(ipos, ipo)
	}
	if err = rows.Err(); err != nil {
		return nil, shared.NewPersistenceError("list_upcoming_ipos", err)
	}
	return ipos, nil
}

// FetchDashboardIPOs returns every IPO joined with company name and logo,
// ordered by opening date ascending, ready for bucketing.
func (s *IPOService) FetchDashboardIPOs(ctx context.Context) ([]models.DashboardIPO, error) {
	query := `
		SELECT ipos.id, ipos.company_id, ipos.api_source_id, ipos.price_per_ipo,
		       ipos.total_shares, ipos.opening_date, ipos.closing_date,
		       COALESCE(ipos.status, ''), companies.name AS company_name, companies.logo_url
		FROM ipos
		JOIN companies ON ipos.company_id = companies.id
		ORDER BY ipos.opening_date ASC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, shared.NewPersistenceError("fetch_dashboard", err)
	}
	defer rows.Close()

	ipos := make([]models.DashboardIPO, 0)
	for rows.Next() {
		var ipo models.DashboardIPO
		err := rows.Scan(
			&ipo.ID, &ipo.CompanyID, &ipo.APISourceID, &ipo.PricePerIPO,
			&ipo.TotalShares, &ipo.OpeningDate, &ipo.ClosingDate,
			&ipo.Status, &ipo.CompanyName, &ipo.LogoURL,
		)
		if err != nil {
			return nil, shared.NewPersistenceError("fetch_dashboard", err)
		}
		ipos = append(ipos, ipo)
	}
	if err = rows.Err(); err != nil {
		return nil, shared.NewPersistenceError("fetch_dashboard", err)
	}
	return ipos, nil
}

// UpsertSyncedIPO inserts or refreshes one externally sourced IPO keyed on
// api_source_id. Idempotency comes from the conflict clause, not application
// logic.
func (s *IPOService) UpsertSyncedIPO(ctx context.Context, item models.SyncIPO) error {
	openingDate, err := ParseIPODate(item.OpeningDate)
	if err != nil {
		return fmt.Errorf("ipo %s: %w", item.ID, err)
	}
	closingDate, err := ParseIPODate(item.ClosingDate)
	if err != nil {
		return fmt.Errorf("ipo %s: %w", item.ID, err)
	}

	query := `
		INSERT INTO ipos (company_id, price_per_ipo, total_shares, opening_date, closing_date, status, api_source_id, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (api_source_id)
		DO UPDATE SET price_per_ipo = EXCLUDED.price_per_ipo,
		              total_shares = EXCLUDED.total_shares,
		              opening_date = EXCLUDED.opening_date,
		              closing_date = EXCLUDED.closing_date,
		              status = EXCLUDED.status,
		              last_updated = NOW()`

	_, err = s.DB.ExecContext(ctx, query,
		item.CompanyID, item.PricePerIPO, item.TotalShares,
		openingDate.Format(pgDateLayout), closingDate.Format(pgDateLayout),
		item.Status, item.ID,
	)
	return err
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanIPO(row rowScanner) (*models.IPO, error) {
	var ipo models.IPO
	err := row.Scan(
		&ipo.ID, &ipo.CompanyID, &ipo.APISourceID, &ipo.PricePerIPO,
		&ipo.PriceBand, &ipo.IssueSize, &ipo.IssueType, &ipo.TotalShares,
		&ipo.OpeningDate, &ipo.ClosingDate, &ipo.CreatedAt, &ipo.Status,
		&ipo.LastUpdated, &ipo.CompanyLogoURL,
	)
	if err != nil {
		return nil, err
	}
	return &ipo, nil
}
