// Package user provides the account entity and credential handling.
package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/louisbranch/tasklist/internal/platform/id"
)

var (
	// ErrEmptyUsername indicates a missing username.
	ErrEmptyUsername = errors.New("username is required")
	// ErrEmptyEmail indicates a missing or malformed email address.
	ErrEmptyEmail = errors.New("a valid email is required")
	// ErrEmptyPassword indicates a missing password.
	ErrEmptyPassword = errors.New("password is required")
)

// User represents a registered account record.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionID returns the identity bound into a login session.
func (u User) SessionID() string {
	return u.ID
}

// VerifyPassword reports whether the candidate password matches the stored hash.
func (u User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CreateUserInput describes the metadata needed to register a user.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
}

// CreateUser creates a new user with a generated ID, a bcrypt password hash,
// and creation timestamps. The plaintext password is never retained.
func CreateUser(input CreateUserInput, now func() time.Time, idGenerator func() (string, error)) (User, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateUserInput(input)
	if err != nil {
		return User{}, err
	}

	userID, err := idGenerator()
	if err != nil {
		return User{}, fmt.Errorf("generate user id: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(normalized.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	createdAt := now().UTC()
	return User{
		ID:           userID,
		Username:     normalized.Username,
		Email:        normalized.Email,
		PasswordHash: string(hash),
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}, nil
}

// NormalizeCreateUserInput trims and validates registration metadata.
func NormalizeCreateUserInput(input CreateUserInput) (CreateUserInput, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" {
		return CreateUserInput{}, ErrEmptyUsername
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return CreateUserInput{}, ErrEmptyEmail
	}
	if input.Password == "" {
		return CreateUserInput{}, ErrEmptyPassword
	}
	return input, nil
}
