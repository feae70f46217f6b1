package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck-go/internal/crypto"
	"github.com/taskdeck/taskdeck-go/internal/model"
	"github.com/taskdeck/taskdeck-go/internal/repository"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestUserService() *UserService {
	svc := NewUserService(repository.NewMemoryUserRepository(), crypto.NewHasher(bcrypt.MinCost))
	svc.now = func() time.Time { return testNow }
	return svc
}

// failingUserRepo returns err from every call.
type failingUserRepo struct{ err error }

func (r failingUserRepo) Create(context.Context, *model.User) error { return r.err }
func (r failingUserRepo) GetByEmail(context.Context, string) (*model.User, error) {
	return nil, r.err
}
func (r failingUserRepo) UpdateName(context.Context, string, string) error { return r.err }

func TestRegister(t *testing.T) {
	svc := newTestUserService()

	user, err := svc.Register(context.Background(), "Alice", "a@x.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, testNow, user.CreatedAt)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$2a$"))
}

func TestRegister_Duplicate(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "a@x.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "a@x.com", "different")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_EmailIsCaseSensitive(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "a@x.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Alice", "A@x.com", "password123")
	assert.NoError(t, err)
}

func TestRegister_MissingFields(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{"empty name", "", "a@x.com", "pw", ErrNameRequired},
		{"blank name", "   ", "a@x.com", "pw", ErrNameRequired},
		{"empty email", "Alice", "", "pw", ErrEmailRequired},
		{"empty password", "Alice", "a@x.com", "", ErrPasswordRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestUserService().Register(context.Background(), tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegister_StoreError(t *testing.T) {
	storeErr := errors.New("db down")
	svc := NewUserService(failingUserRepo{err: storeErr}, crypto.NewHasher(bcrypt.MinCost))

	_, err := svc.Register(context.Background(), "Alice", "a@x.com", "pw")
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrEmailTaken)
}

func TestFindByEmail(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "a@x.com", "password123")
	require.NoError(t, err)

	user, err := svc.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	_, err = svc.FindByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthenticate(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "a@x.com", "password123")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "a@x.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	_, errWrong := svc.Authenticate(ctx, "a@x.com", "wrong")
	_, errUnknown := svc.Authenticate(ctx, "ghost@x.com", "password123")

	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errWrong, errUnknown)
}

func TestAuthenticate_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("db down")
	svc := NewUserService(failingUserRepo{err: storeErr}, crypto.NewHasher(bcrypt.MinCost))

	_, err := svc.Authenticate(context.Background(), "a@x.com", "pw")
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_LongPassword(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()
	long := strings.Repeat("p", 100)

	_, err := svc.Register(ctx, "Alice", "a@x.com", long)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "a@x.com", long)
	assert.NoError(t, err)
}

func TestUpdateName(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "a@x.com", "password123")
	require.NoError(t, err)

	user, err := svc.UpdateName(ctx, "a@x.com", "Alicia")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", user.Name)
	assert.Equal(t, testNow, user.CreatedAt)

	user, err = svc.UpdateName(ctx, "a@x.com", "")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", user.Name)

	_, err = svc.UpdateName(ctx, "ghost@x.com", "Bob")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
