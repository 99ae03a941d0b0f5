// Package authpages serves the public registration, login, and logout routes.
package authpages

import (
	"errors"
	"net/http"

	"github.com/louisbranch/tasklist/internal/auth"
	module "github.com/louisbranch/tasklist/internal/web/module"
	"github.com/louisbranch/tasklist/internal/web/routepath"
	"github.com/louisbranch/tasklist/internal/web/session"
)

// Module provides the public authentication routes.
type Module struct {
	auth     *auth.Service
	sessions *session.Manager
}

// New returns an authentication pages module.
func New(authService *auth.Service, sessions *session.Manager) (*Module, error) {
	if authService == nil {
		return nil, errors.New("auth service is required")
	}
	if sessions == nil {
		return nil, errors.New("session manager is required")
	}
	return &Module{auth: authService, sessions: sessions}, nil
}

// ID returns a stable module identifier.
func (*Module) ID() string { return "authpages" }

// Mount wires the authentication route handlers.
func (m *Module) Mount() (module.Mount, error) {
	if m == nil || m.auth == nil || m.sessions == nil {
		return module.Mount{}, errors.New("authpages module is not configured")
	}
	mux := http.NewServeMux()
	h := handlers{auth: m.auth, sessions: m.sessions}
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.AuthPrefix, Handler: mux}, nil
}
