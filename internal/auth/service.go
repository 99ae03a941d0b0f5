package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/tasklist/internal/auth/user"
	"github.com/louisbranch/tasklist/internal/platform/id"
	"github.com/louisbranch/tasklist/internal/storage"
)

// ErrInvalidCredentials indicates an unknown username or a mismatched
// password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service implements registration and login checks.
type Service struct {
	users       storage.UserStore
	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewService creates a Service with default clock and ID generation.
func NewService(users storage.UserStore) *Service {
	return &Service{
		users:       users,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// Register creates a new account with a hashed credential.
//
// A duplicate username surfaces as storage.ErrDuplicateUsername and leaves
// no record behind; likewise for duplicate emails.
func (s *Service) Register(ctx context.Context, input user.CreateUserInput) (user.User, error) {
	if s == nil || s.users == nil {
		return user.User{}, fmt.Errorf("user store is not configured")
	}

	created, err := user.CreateUser(input, s.clock, s.idGenerator)
	if err != nil {
		return user.User{}, err
	}

	if err := s.users.PutUser(ctx, created); err != nil {
		return user.User{}, err
	}
	return created, nil
}

// Authenticate verifies a username/password pair against the stored hash.
//
// Unknown usernames and wrong passwords both return ErrInvalidCredentials so
// responses never reveal which factor failed.
func (s *Service) Authenticate(ctx context.Context, username, password string) (user.User, error) {
	if s == nil || s.users == nil {
		return user.User{}, fmt.Errorf("user store is not configured")
	}

	found, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, fmt.Errorf("load user: %w", err)
	}

	if !found.VerifyPassword(password) {
		return user.User{}, ErrInvalidCredentials
	}
	return found, nil
}
