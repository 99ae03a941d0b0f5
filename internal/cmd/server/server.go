// Package server wires configuration and dependencies for the web process.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/louisbranch/tasklist/internal/auth"
	"github.com/louisbranch/tasklist/internal/platform/config"
	"github.com/louisbranch/tasklist/internal/platform/otel"
	"github.com/louisbranch/tasklist/internal/storage/sqlite"
	"github.com/louisbranch/tasklist/internal/web"
	webapp "github.com/louisbranch/tasklist/internal/web/app"
	module "github.com/louisbranch/tasklist/internal/web/module"
	"github.com/louisbranch/tasklist/internal/web/modules/authpages"
	"github.com/louisbranch/tasklist/internal/web/modules/todos"
	"github.com/louisbranch/tasklist/internal/web/platform/sessioncookie"
	"github.com/louisbranch/tasklist/internal/web/session"
)

const serviceName = "tasklist"

// Config holds the server command configuration.
type Config struct {
	HTTPAddr   string        `env:"TASKLIST_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath     string        `env:"TASKLIST_DB_PATH" envDefault:"tasklist.db"`
	SecretKey  string        `env:"TASKLIST_SECRET_KEY"`
	SessionTTL time.Duration `env:"TASKLIST_SESSION_TTL" envDefault:"720h"`
}

// ParseConfig reads configuration from the environment and applies flag
// overrides.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "session lifetime")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.SecretKey == "" {
		return Config{}, fmt.Errorf("TASKLIST_SECRET_KEY is required")
	}
	return cfg, nil
}

// Run starts the web server and blocks until the context ends.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close storage: %v", err)
		}
	}()

	handler, err := BuildHandler(cfg, store)
	if err != nil {
		return err
	}

	server, err := web.NewServer(cfg.HTTPAddr, handler)
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

// BuildHandler assembles the root handler from a Config and an open store.
func BuildHandler(cfg Config, store *sqlite.Store) (http.Handler, error) {
	sessions, err := session.NewManager(cfg.SecretKey, cfg.SessionTTL, nil)
	if err != nil {
		return nil, fmt.Errorf("init session manager: %w", err)
	}

	authService := auth.NewService(store)
	authModule, err := authpages.New(authService, sessions)
	if err != nil {
		return nil, fmt.Errorf("init auth module: %w", err)
	}

	resolveUserID := ResolveUserID(sessions)
	todosModule, err := todos.New(store, store, resolveUserID)
	if err != nil {
		return nil, fmt.Errorf("init todos module: %w", err)
	}

	handler, err := webapp.Compose(webapp.ComposeInput{
		ResolveUserID:    resolveUserID,
		PublicModules:    []module.Module{authModule},
		ProtectedModules: []module.Module{todosModule},
	})
	if err != nil {
		return nil, fmt.Errorf("compose handler: %w", err)
	}
	return handler, nil
}

// ResolveUserID builds the request resolver that maps the session cookie to
// a verified user id. Invalid or expired tokens resolve to anonymous.
func ResolveUserID(sessions *session.Manager) module.ResolveUserID {
	return func(r *http.Request) string {
		token, ok := sessioncookie.Read(r)
		if !ok {
			return ""
		}
		userID, err := sessions.Verify(token)
		if err != nil {
			return ""
		}
		return userID
	}
}
