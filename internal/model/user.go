package model

import "time"

// User represents a user in the database.
type User struct {
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest represents a profile update. Only the name is editable.
type UpdateProfileRequest struct {
	Name *string `json:"name"`
}

// AuthResponse represents an authentication response with a bearer token and user info.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// UserResponse represents user data safe for API responses (no password digest).
type UserResponse struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse strips the sensitive fields from u.
func (u User) ToResponse() UserResponse {
	return UserResponse{
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
