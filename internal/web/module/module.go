// Package module defines the feature contract used by web composition.
package module

import "net/http"

// ResolveUserID resolves the authenticated user id for a request.
type ResolveUserID func(*http.Request) string

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}
