// Package session issues and verifies signed web session tokens.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "tasklist-web"

// ErrInvalidSession reports a missing, malformed, or expired session token.
var ErrInvalidSession = errors.New("session is invalid")

// Authenticatable exposes the identity a session token is issued for.
type Authenticatable interface {
	SessionID() string
}

// sessionClaims is the internal claims type used for JWT parsing.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// Manager signs and verifies session tokens with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager builds a session manager. The secret must not be empty.
func NewManager(secret string, ttl time.Duration, now func() time.Time) (*Manager, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	if now == nil {
		now = time.Now
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: now}, nil
}

// Issue creates a signed session token for the given identity.
func (m *Manager) Issue(identity Authenticatable) (string, error) {
	if m == nil {
		return "", errors.New("session manager is not configured")
	}
	if identity == nil {
		return "", errors.New("identity is required")
	}
	subject := strings.TrimSpace(identity.SessionID())
	if subject == "" {
		return "", errors.New("identity id is required")
	}
	issuedAt := m.now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks a session token and returns the user ID it was issued for.
func (m *Manager) Verify(token string) (string, error) {
	if m == nil {
		return "", errors.New("session manager is not configured")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidSession
	}

	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", ErrInvalidSession
	}

	if parsed.Issuer != issuer {
		return "", ErrInvalidSession
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return "", ErrInvalidSession
	}
	if parsed.ExpiresAt == nil {
		return "", ErrInvalidSession
	}
	if !parsed.ExpiresAt.Time.UTC().After(m.now().UTC()) {
		return "", ErrInvalidSession
	}
	return parsed.Subject, nil
}
