// Package app composes web modules into the root HTTP handler.
package app

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	module "github.com/louisbranch/tasklist/internal/web/module"
	"github.com/louisbranch/tasklist/internal/web/platform/httpx"
	"github.com/louisbranch/tasklist/internal/web/routepath"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	ResolveUserID    module.ResolveUserID
	PublicModules    []module.Module
	ProtectedModules []module.Module
}

// Compose builds a root HTTP handler from module groups. Public modules
// mount under /auth/; protected modules are wrapped with a login redirect
// for anonymous requests.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	if input.ResolveUserID == nil {
		input.ResolveUserID = func(*http.Request) string { return "" }
	}
	seen := make(map[string]string)

	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		mount, prefix, err := resolveMount(feature)
		if err != nil {
			return nil, err
		}
		if !isPublicPrefix(prefix) {
			return nil, fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.AuthPrefix, prefix)
		}
		if err := mountModule(root, feature, mount, prefix, seen, nil); err != nil {
			return nil, err
		}
	}

	wrap := requireAuth(input.ResolveUserID)
	for _, feature := range input.ProtectedModules {
		if feature == nil {
			return nil, fmt.Errorf("protected module is nil")
		}
		mount, prefix, err := resolveMount(feature)
		if err != nil {
			return nil, err
		}
		if isPublicPrefix(prefix) {
			return nil, fmt.Errorf("module %q has public prefix %q in protected group", feature.ID(), prefix)
		}
		if err := mountModule(root, feature, mount, prefix, seen, wrap); err != nil {
			return nil, err
		}
	}

	return root, nil
}

func mountModule(
	root *http.ServeMux,
	feature module.Module,
	mount module.Mount,
	prefix string,
	seen map[string]string,
	wrap func(http.Handler) http.Handler,
) error {
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()

	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	root.Handle(prefix, handler)
	return nil
}

func isPublicPrefix(prefix string) bool {
	return strings.HasPrefix(prefix, routepath.AuthPrefix)
}

func resolveMount(feature module.Module) (module.Mount, string, error) {
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := strings.TrimSpace(mount.Prefix)
	if err := validatePrefix(prefix); err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, prefix, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

// requireAuth redirects anonymous requests to the login page, carrying the
// original destination so login can resume it.
func requireAuth(resolveUserID module.ResolveUserID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			return http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if resolveUserID(r) == "" {
				httpx.WriteRedirect(w, r, loginRedirectTarget(r))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func loginRedirectTarget(r *http.Request) string {
	if r == nil || r.URL == nil {
		return routepath.Login
	}
	next := r.URL.Path
	if next == "" || next == routepath.Root || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return routepath.Login
	}
	return routepath.Login + "?next=" + url.QueryEscape(next)
}
