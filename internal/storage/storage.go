package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/tasklist/internal/auth/user"
	"github.com/louisbranch/tasklist/internal/todo"
)

// ErrNotFound indicates a requested record is missing or not owned by the caller.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateUsername indicates the username is already registered.
var ErrDuplicateUsername = errors.New("username already registered")

// ErrDuplicateEmail indicates the email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// UserStore persists account records.
type UserStore interface {
	PutUser(ctx context.Context, u user.User) error
	GetUser(ctx context.Context, userID string) (user.User, error)
	GetUserByUsername(ctx context.Context, username string) (user.User, error)
}

// TodoStore persists to-do records. Every read and mutation is scoped to an
// owner, so an item owned by another user behaves exactly like a missing one.
type TodoStore interface {
	PutTodo(ctx context.Context, item todo.Todo) error
	GetTodo(ctx context.Context, todoID, ownerID string) (todo.Todo, error)
	ListTodosByOwner(ctx context.Context, ownerID string) ([]todo.Todo, error)
	ToggleTodo(ctx context.Context, todoID, ownerID string, updatedAt time.Time) error
	DeleteTodo(ctx context.Context, todoID, ownerID string) error
}
