package todo

import (
	"errors"
	"testing"
	"time"
)

func TestCreateTodoNormalizesInput(t *testing.T) {
	fixedTime := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	created, err := CreateTodo(CreateTodoInput{
		OwnerID:     "user-1",
		Title:       "  Buy milk  ",
		Description: " 2% if they have it ",
	}, func() time.Time { return fixedTime }, func() (string, error) {
		return "todo-1", nil
	})
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}

	if created.ID != "todo-1" {
		t.Fatalf("expected id todo-1, got %q", created.ID)
	}
	if created.Title != "Buy milk" {
		t.Fatalf("expected trimmed title, got %q", created.Title)
	}
	if created.Description != "2% if they have it" {
		t.Fatalf("expected trimmed description, got %q", created.Description)
	}
	if created.Done {
		t.Fatal("expected new item to start open")
	}
	if !created.CreatedAt.Equal(fixedTime) || !created.UpdatedAt.Equal(fixedTime) {
		t.Fatal("expected timestamps to match fixed time")
	}
}

func TestCreateTodoRejectsBlankTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := CreateTodo(CreateTodoInput{OwnerID: "user-1", Title: title}, nil, nil)
		if !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("title %q: expected ErrEmptyTitle, got %v", title, err)
		}
	}
}

func TestCreateTodoRequiresOwner(t *testing.T) {
	_, err := CreateTodo(CreateTodoInput{Title: "Buy milk"}, nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
}
