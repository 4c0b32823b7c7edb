package models

import "time"

type User struct {
	ID           int       `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	PhoneNumber  *string   `json:"phone_number,omitempty"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSummary is the projection returned by the paginated user listing.
type UserSummary struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type RegisterRequest struct {
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	PhoneNumber  *string `json:"phone_number"`
	ProfileImage *string `json:"profile_image"`
	Role         string  `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	PhoneNumber  *string `json:"phone_number"`
	ProfileImage *string `json:"profile_image"`
	Role         string  `json:"role"`
}
