package services

import (
	"context"
	"database/sql"

	"github.com/bluestock/ipo-platform/models"
	"github.com/bluestock/ipo-platform/shared"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type UserService struct {
	DB *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{DB: db}
}

// Register creates a user with a bcrypt-hashed password. Email and phone
// number are checked together so neither path reveals which one collided.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return nil, shared.NewValidationError("Missing required fields", "register_user")
	}

	var existingID int
	err := s.DB.QueryRowContext(ctx,
		"SELECT id FROM users WHERE email = $1 OR phone_number = $2",
		req.Email, req.PhoneNumber,
	).Scan(&existingID)
	if err == nil {
		return nil, shared.NewConflictError("Email or Phone Number already exists", "register_user")
	}
	if err != sql.ErrNoRows {
		return nil, shared.NewPersistenceError("register_user", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, shared.NewPersistenceError("register_user", err)
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	var user models.User
	err = s.DB.QueryRowContext(ctx, `
		INSERT INTO users (full_name, email, password, phone_number, profile_image, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, full_name, email, phone_number, profile_image, role, created_at`,
		req.FullName, req.Email, string(hashed), req.PhoneNumber, req.ProfileImage, role,
	).Scan(&user.ID, &user.FullName, &user.Email, &user.PhoneNumber, &user.ProfileImage, &user.Role, &user.CreatedAt)
	if err != nil {
		// The pre-check races with concurrent registrations; the unique
		// constraints are the real guard.
		if shared.IsUniqueViolation(err) {
			return nil, shared.NewConflictError("Email or Phone Number already exists", "register_user")
		}
		return nil, shared.NewPersistenceError("register_user", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("user registered")

	return &user, nil
}

// Login verifies credentials and returns the user on success. Unknown email
// and wrong password both produce the same error so callers cannot probe for
// registered addresses.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	var user models.User
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, full_name, email, password, phone_number, profile_image, role, created_at
		FROM users WHERE email = $1`,
		req.Email,
	).Scan(&user.ID, &user.FullName, &user.Email, &user.Password, &user.PhoneNumber,
		&user.ProfileImage, &user.Role, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.NewUnauthenticatedError("Invalid email or password", "login_user")
		}
		return nil, shared.NewPersistenceError("login_user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, shared.NewUnauthenticatedError("Invalid email or password", "login_user")
	}

	user.Password = ""
	return &user, nil
}

// UserPage is one page of the user listing plus pagination totals.
type UserPage struct {
	Page         int                  `json:"page"`
	TotalPages   int                  `json:"totalPages"`
	TotalRecords int                  `json:"totalRecords"`
	Users        []models.UserSummary `json:"users"`
}

func (s *UserService) ListUsers(ctx context.Context, page, limit int) (*UserPage, error) {
	page, limit, offset := NormalizePaging(page, limit)

	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, full_name, email FROM users ORDER BY id ASC LIMIT $1 OFFSET $2",
		limit, offset,
	)
	if err != nil {
		return nil, shared.NewPersistenceError("list_users", err)
	}
	defer rows.Close()

	users := make([]models.UserSummary, 0)
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email); err != nil {
			return nil, shared.NewPersistenceError("list_users", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, shared.NewPersistenceError("list_users", err)
	}

	var totalRows int
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&totalRows); err != nil {
		return nil, shared.NewPersistenceError("list_users", err)
	}

	return &UserPage{
		Page:         page,
		TotalPages:   TotalPages(totalRows, limit),
		TotalRecords: totalRows,
		Users:        users,
	}, nil
}

// GetUser returns a single user without the password column, or nil when the
// id does not exist.
func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, full_name, email, phone_number, profile_image, role, created_at
		FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.FullName, &user.Email, &user.PhoneNumber,
		&user.ProfileImage, &user.Role, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, shared.NewPersistenceError("get_user", err)
	}
	return &user, nil
}

// UpdateUser overwrites the editable profile fields and returns the updated
// row, or nil when the id does not exist.
func (s *UserService) UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest) (*models.User, error) {
	if req.FullName == "" || req.Email == "" {
		return nil, shared.NewValidationError("Missing required fields", "update_user")
	}

	var user models.User
	err := s.DB.QueryRowContext(ctx, `
		UPDATE users
		SET full_name = $1, email = $2, phone_number = $3, profile_image = $4, role = COALESCE(NULLIF($5, ''), role)
		WHERE id = $6
		RETURNING id, full_name, email, phone_number, profile_image, role, created_at`,
		req.FullName, req.Email, req.PhoneNumber, req.ProfileImage, req.Role, id,
	).Scan(&user.ID, &user.FullName, &user.Email, &user.PhoneNumber,
		&user.ProfileImage, &user.Role, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if shared.IsUniqueViolation(err) {
			return nil, shared.NewConflictError("Email or Phone Number already exists", "update_user")
		}
		return nil, shared.NewPersistenceError("update_user", err)
	}
	return &user, nil
}
