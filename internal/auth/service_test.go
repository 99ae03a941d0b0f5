package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/louisbranch/tasklist/internal/auth/user"
	"github.com/louisbranch/tasklist/internal/storage"
)

// fakeUserStore keeps users in memory with the same uniqueness rules as the
// SQLite store.
type fakeUserStore struct {
	users map[string]user.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]user.User)}
}

func (f *fakeUserStore) PutUser(_ context.Context, u user.User) error {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return storage.ErrDuplicateUsername
		}
		if existing.Email == u.Email {
			return storage.ErrDuplicateEmail
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserStore) GetUser(_ context.Context, userID string) (user.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, storage.ErrNotFound
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(newFakeUserStore())
	ctx := context.Background()

	created, err := svc.Register(ctx, user.CreateUserInput{Username: "alice", Email: "alice@x.com", Password: "pw123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated user id")
	}

	found, err := svc.Authenticate(ctx, "alice", "pw123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected user %q, got %q", created.ID, found.ID)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, user.CreateUserInput{Username: "alice", Email: "alice@x.com", Password: "pw123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Register(ctx, user.CreateUserInput{Username: "alice", Email: "other@x.com", Password: "pw456"})
	if !errors.Is(err, storage.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected no record created on conflict, got %d users", len(store.users))
	}
}

func TestAuthenticateFailsUniformly(t *testing.T) {
	svc := NewService(newFakeUserStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, user.CreateUserInput{Username: "alice", Email: "alice@x.com", Password: "pw123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, unknownErr := svc.Authenticate(ctx, "bob", "pw123")
	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("unknown username: expected ErrInvalidCredentials, got %v", unknownErr)
	}

	_, mismatchErr := svc.Authenticate(ctx, "alice", "wrong")
	if !errors.Is(mismatchErr, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", mismatchErr)
	}

	if unknownErr.Error() != mismatchErr.Error() {
		t.Fatal("expected identical failures for unknown username and wrong password")
	}
}
