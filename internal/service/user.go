package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/taskdeck/taskdeck-go/internal/model"
	"github.com/taskdeck/taskdeck-go/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrEmailTaken         = errors.New("email already taken")
	ErrUserNotFound       = errors.New("user not found")
)

// UserRepository is the storage behind UserService.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateName(ctx context.Context, email, name string) error
}

// PasswordHasher produces and checks password digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// UserService owns user records: registration, lookup, credential checks and
// profile edits.
type UserService struct {
	repo   UserRepository
	hasher PasswordHasher
	now    func() time.Time

	// dummyDigest is verified against when the email is unknown, so both
	// failure paths of Authenticate pay for one comparison.
	dummyDigest func() string
}

// NewUserService creates a new UserService.
func NewUserService(repo UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		now:    time.Now,
		dummyDigest: sync.OnceValue(func() string {
			d, _ := hasher.Hash("taskdeck-dummy-password")
			return d
		}),
	}
}

// Register stores a new user with a hashed password.
func (s *UserService) Register(ctx context.Context, name, email, password string) (model.User, error) {
	if strings.TrimSpace(name) == "" {
		return model.User{}, ErrNameRequired
	}
	if email == "" {
		return model.User{}, ErrEmailRequired
	}
	if password == "" {
		return model.User{}, ErrPasswordRequired
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return model.User{}, err
	}

	user := model.User{
		Email:        email,
		Name:         name,
		PasswordHash: digest,
		CreatedAt:    s.timestamp(),
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, err
	}

	return user, nil
}

// FindByEmail looks a user up by exact email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (model.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return *user, nil
}

// Authenticate checks email and password. Unknown email and wrong password
// both yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyDigest())
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return model.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// UpdateName changes the display name. An empty name leaves the record as is.
func (s *UserService) UpdateName(ctx context.Context, email, name string) (model.User, error) {
	if name != "" {
		if err := s.repo.UpdateName(ctx, email, name); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return model.User{}, ErrUserNotFound
			}
			return model.User{}, err
		}
	}

	return s.FindByEmail(ctx, email)
}

// timestamp returns the current time at the precision MySQL DATETIME(6) keeps.
func (s *UserService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}
