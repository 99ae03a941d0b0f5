package todos

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/tasklist/internal/auth/user"
	"github.com/louisbranch/tasklist/internal/storage"
	"github.com/louisbranch/tasklist/internal/todo"
	"github.com/louisbranch/tasklist/internal/web/platform/flash"
)

type memoryStore struct {
	todos map[string]todo.Todo
	users map[string]user.User
}

func newMemoryStore() *memoryStore {
	return &memoryStore{todos: make(map[string]todo.Todo), users: make(map[string]user.User)}
}

func (s *memoryStore) PutTodo(_ context.Context, item todo.Todo) error {
	s.todos[item.ID] = item
	return nil
}

func (s *memoryStore) GetTodo(_ context.Context, todoID, ownerID string) (todo.Todo, error) {
	item, ok := s.todos[todoID]
	if !ok || item.OwnerID != ownerID {
		return todo.Todo{}, storage.ErrNotFound
	}
	return item, nil
}

func (s *memoryStore) ListTodosByOwner(_ context.Context, ownerID string) ([]todo.Todo, error) {
	var items []todo.Todo
	for _, item := range s.todos {
		if item.OwnerID == ownerID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	return items, nil
}

func (s *memoryStore) ToggleTodo(_ context.Context, todoID, ownerID string, updatedAt time.Time) error {
	item, ok := s.todos[todoID]
	if !ok || item.OwnerID != ownerID {
		return storage.ErrNotFound
	}
	item.Done = !item.Done
	item.UpdatedAt = updatedAt
	s.todos[todoID] = item
	return nil
}

func (s *memoryStore) DeleteTodo(_ context.Context, todoID, ownerID string) error {
	item, ok := s.todos[todoID]
	if !ok || item.OwnerID != ownerID {
		return storage.ErrNotFound
	}
	delete(s.todos, todoID)
	return nil
}

func (s *memoryStore) PutUser(_ context.Context, u user.User) error {
	s.users[u.ID] = u
	return nil
}

func (s *memoryStore) GetUser(_ context.Context, id string) (user.User, error) {
	found, ok := s.users[id]
	if !ok {
		return user.User{}, storage.ErrNotFound
	}
	return found, nil
}

func (s *memoryStore) GetUserByUsername(_ context.Context, username string) (user.User, error) {
	for _, found := range s.users {
		if found.Username == username {
			return found, nil
		}
	}
	return user.User{}, storage.ErrNotFound
}

func newTestHandler(t *testing.T, store *memoryStore, userID string) http.Handler {
	t.Helper()
	m, err := New(store, store, func(*http.Request) string { return userID })
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/" {
		t.Fatalf("prefix = %q, want %q", mount.Prefix, "/")
	}
	return mount.Handler
}

func seedTodo(store *memoryStore, id, ownerID, title string, createdAt time.Time, done bool) {
	store.todos[id] = todo.Todo{
		ID:        id,
		OwnerID:   ownerID,
		Title:     title,
		Done:      done,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestIndexListsOwnItemsNewestFirst(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.users["user-1"] = user.User{ID: "user-1", Username: "alice"}
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedTodo(store, "todo-1", "user-1", "Write report", base, false)
	seedTodo(store, "todo-2", "user-1", "Buy milk", base.Add(time.Minute), true)
	seedTodo(store, "todo-3", "user-2", "Not yours", base, false)

	handler := newTestHandler(t, store, "user-1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if strings.Contains(body, "Not yours") {
		t.Fatalf("expected only own items, got %q", body)
	}
	first := strings.Index(body, "Buy milk")
	second := strings.Index(body, "Write report")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("expected newest-first order, got %q", body)
	}
	if !strings.Contains(body, "alice") {
		t.Fatalf("expected username header, got %q", body)
	}
}

func TestAddCreatesItemAndRedirects(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	handler := newTestHandler(t, store, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader("title=Buy+milk"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != "/" {
		t.Fatalf("Location = %q, want %q", got, "/")
	}
	if len(store.todos) != 1 {
		t.Fatalf("expected 1 stored item, got %d", len(store.todos))
	}
	for _, item := range store.todos {
		if item.Title != "Buy milk" || item.OwnerID != "user-1" || item.Done {
			t.Fatalf("unexpected stored item: %+v", item)
		}
	}
}

func TestAddRejectsBlankTitle(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	handler := newTestHandler(t, store, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader("title=+++"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if len(store.todos) != 0 {
		t.Fatalf("expected no stored items, got %d", len(store.todos))
	}
	if !wroteFlash(rr) {
		t.Fatalf("expected flash notice on blank title")
	}
}

func TestToggleFlipsDoneState(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	seedTodo(store, "todo-1", "user-1", "Write report", time.Now().UTC(), false)
	handler := newTestHandler(t, store, "user-1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/update/todo-1", nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if !store.todos["todo-1"].Done {
		t.Fatalf("expected item marked done")
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/update/todo-1", nil))
	if store.todos["todo-1"].Done {
		t.Fatalf("expected second toggle to reopen the item")
	}
}

func TestToggleForeignItemLeavesItUntouched(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	seedTodo(store, "todo-1", "user-2", "Not yours", time.Now().UTC(), false)
	handler := newTestHandler(t, store, "user-1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/update/todo-1", nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if store.todos["todo-1"].Done {
		t.Fatalf("expected foreign item untouched")
	}
	if !wroteFlash(rr) {
		t.Fatalf("expected missing-item notice")
	}
}

func TestDeleteRemovesOwnItemOnly(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	seedTodo(store, "todo-1", "user-1", "Mine", time.Now().UTC(), false)
	seedTodo(store, "todo-2", "user-2", "Not yours", time.Now().UTC(), false)
	handler := newTestHandler(t, store, "user-1")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/delete/todo-1", nil))
	if _, ok := store.todos["todo-1"]; ok {
		t.Fatalf("expected own item deleted")
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/delete/todo-2", nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if _, ok := store.todos["todo-2"]; !ok {
		t.Fatalf("expected foreign item to survive")
	}
}

func TestAnonymousRequestsRedirectToLogin(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	handler := newTestHandler(t, store, "")

	for _, path := range []string{"/", "/update/todo-1", "/delete/todo-1"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusFound {
			t.Fatalf("%s: status = %d, want %d", path, rr.Code, http.StatusFound)
		}
		if got := rr.Header().Get("Location"); got != "/auth/login" {
			t.Fatalf("%s: Location = %q, want %q", path, got, "/auth/login")
		}
	}
}

func wroteFlash(rr *httptest.ResponseRecorder) bool {
	for _, raw := range rr.Header().Values("Set-Cookie") {
		cookie, err := http.ParseSetCookie(raw)
		if err == nil && cookie.Name == flash.CookieName && cookie.MaxAge >= 0 && cookie.Value != "" {
			return true
		}
	}
	return false
}

type failingListStore struct {
	*memoryStore
}

func (failingListStore) ListTodosByOwner(context.Context, string) ([]todo.Todo, error) {
	return nil, errors.New("disk offline")
}

func TestIndexReportsUnavailableWhenListFails(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.users["user-1"] = user.User{ID: "user-1", Username: "alice"}
	m, err := New(failingListStore{store}, store, func(*http.Request) string { return "user-1" })
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if !strings.Contains(rr.Body.String(), "The list could not be loaded.") {
		t.Fatalf("expected failure message, got %q", rr.Body.String())
	}
}
