// Package todos serves the authenticated to-do list routes.
package todos

import (
	"errors"
	"net/http"
	"time"

	"github.com/louisbranch/tasklist/internal/platform/id"
	"github.com/louisbranch/tasklist/internal/storage"
	module "github.com/louisbranch/tasklist/internal/web/module"
	"github.com/louisbranch/tasklist/internal/web/routepath"
)

// Module provides the to-do list routes.
type Module struct {
	store         storage.TodoStore
	users         storage.UserStore
	resolveUserID module.ResolveUserID
	clock         func() time.Time
	idGenerator   func() (string, error)
}

// New returns a to-do list module backed by the given stores.
func New(store storage.TodoStore, users storage.UserStore, resolveUserID module.ResolveUserID) (*Module, error) {
	if store == nil {
		return nil, errors.New("todo store is required")
	}
	if users == nil {
		return nil, errors.New("user store is required")
	}
	if resolveUserID == nil {
		return nil, errors.New("user resolver is required")
	}
	return &Module{
		store:         store,
		users:         users,
		resolveUserID: resolveUserID,
		clock:         time.Now,
		idGenerator:   id.NewID,
	}, nil
}

// ID returns a stable module identifier.
func (*Module) ID() string { return "todos" }

// Mount wires the to-do route handlers.
func (m *Module) Mount() (module.Mount, error) {
	if m == nil || m.store == nil || m.resolveUserID == nil {
		return module.Mount{}, errors.New("todos module is not configured")
	}
	mux := http.NewServeMux()
	h := handlers{
		store:         m.store,
		users:         m.users,
		resolveUserID: m.resolveUserID,
		clock:         m.clock,
		idGenerator:   m.idGenerator,
	}
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
