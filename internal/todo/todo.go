// Package todo provides the to-do item entity and creation rules.
package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/tasklist/internal/platform/id"
)

// ErrEmptyTitle indicates a blank or whitespace-only title.
var ErrEmptyTitle = errors.New("title is required")

// Todo represents a single to-do item owned by one user.
type Todo struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Done        bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTodoInput describes the metadata needed to create a to-do item.
type CreateTodoInput struct {
	OwnerID     string
	Title       string
	Description string
}

// CreateTodo creates a new open item with a generated ID and timestamps.
func CreateTodo(input CreateTodoInput, now func() time.Time, idGenerator func() (string, error)) (Todo, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateTodoInput(input)
	if err != nil {
		return Todo{}, err
	}

	todoID, err := idGenerator()
	if err != nil {
		return Todo{}, fmt.Errorf("generate todo id: %w", err)
	}

	createdAt := now().UTC()
	return Todo{
		ID:          todoID,
		OwnerID:     normalized.OwnerID,
		Title:       normalized.Title,
		Description: normalized.Description,
		Done:        false,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

// NormalizeCreateTodoInput trims and validates item metadata.
func NormalizeCreateTodoInput(input CreateTodoInput) (CreateTodoInput, error) {
	input.OwnerID = strings.TrimSpace(input.OwnerID)
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.OwnerID == "" {
		return CreateTodoInput{}, fmt.Errorf("owner id is required")
	}
	if input.Title == "" {
		return CreateTodoInput{}, ErrEmptyTitle
	}
	return input, nil
}
