package service

import (
	"context"

	"github.com/taskdeck/taskdeck-go/internal/model"
)

const tokenType = "bearer"

// TokenIssuer signs session tokens for a subject.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// AuthService handles the registration, login and profile flows on top of
// UserService.
type AuthService struct {
	users  *UserService
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *UserService, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Register creates a new user account and returns an auth token.
func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) (model.AuthResponse, error) {
	user, err := s.users.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return s.respond(user)
}

// Login authenticates a user and returns an auth token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return s.respond(user)
}

// UpdateProfile applies a profile edit for the user identified by email.
func (s *AuthService) UpdateProfile(ctx context.Context, email string, req model.UpdateProfileRequest) (model.UserResponse, error) {
	var name string
	if req.Name != nil {
		name = *req.Name
	}

	user, err := s.users.UpdateName(ctx, email, name)
	if err != nil {
		return model.UserResponse{}, err
	}

	return user.ToResponse(), nil
}

func (s *AuthService) respond(user model.User) (model.AuthResponse, error) {
	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		AccessToken: token,
		TokenType:   tokenType,
		User:        user.ToResponse(),
	}, nil
}
