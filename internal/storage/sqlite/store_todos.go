package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/tasklist/internal/storage"
	"github.com/louisbranch/tasklist/internal/todo"
)

// PutTodo persists a to-do record.
func (s *Store) PutTodo(ctx context.Context, item todo.Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(item.ID) == "" {
		return fmt.Errorf("todo id is required")
	}
	if strings.TrimSpace(item.OwnerID) == "" {
		return fmt.Errorf("owner id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO todos (id, owner_id, title, description, done, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    title = excluded.title,
    description = excluded.description,
    done = excluded.done,
    updated_at = excluded.updated_at`,
		item.ID,
		item.OwnerID,
		item.Title,
		item.Description,
		boolToInt(item.Done),
		toMillis(item.CreatedAt),
		toMillis(item.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put todo: %w", err)
	}
	return nil
}

// GetTodo fetches one owned to-do record. A record owned by another user is
// reported as storage.ErrNotFound.
func (s *Store) GetTodo(ctx context.Context, todoID, ownerID string) (todo.Todo, error) {
	if err := ctx.Err(); err != nil {
		return todo.Todo{}, err
	}
	if s == nil || s.sqlDB == nil {
		return todo.Todo{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(todoID) == "" || strings.TrimSpace(ownerID) == "" {
		return todo.Todo{}, fmt.Errorf("todo id and owner id are required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, owner_id, title, description, done, created_at, updated_at
FROM todos
WHERE id = ? AND owner_id = ?`, todoID, ownerID)

	item, err := scanTodo(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return todo.Todo{}, storage.ErrNotFound
		}
		return todo.Todo{}, fmt.Errorf("get todo: %w", err)
	}
	return item, nil
}

// ListTodosByOwner returns all items owned by ownerID, most recent first.
func (s *Store) ListTodosByOwner(ctx context.Context, ownerID string) ([]todo.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, owner_id, title, description, done, created_at, updated_at
FROM todos
WHERE owner_id = ?
ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var items []todo.Todo
	for rows.Next() {
		item, err := scanTodo(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return items, nil
}

// ToggleTodo flips the completion flag of one owned item in a single
// statement, leaving conflict handling to SQLite.
func (s *Store) ToggleTodo(ctx context.Context, todoID, ownerID string, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(todoID) == "" || strings.TrimSpace(ownerID) == "" {
		return fmt.Errorf("todo id and owner id are required")
	}
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE todos
SET done = 1 - done, updated_at = ?
WHERE id = ? AND owner_id = ?`,
		toMillis(updatedAt), todoID, ownerID)
	if err != nil {
		return fmt.Errorf("toggle todo: %w", err)
	}
	return requireRowChanged(result)
}

// DeleteTodo permanently removes one owned item.
func (s *Store) DeleteTodo(ctx context.Context, todoID, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(todoID) == "" || strings.TrimSpace(ownerID) == "" {
		return fmt.Errorf("todo id and owner id are required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `
DELETE FROM todos
WHERE id = ? AND owner_id = ?`, todoID, ownerID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return requireRowChanged(result)
}

func requireRowChanged(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanTodo(scan func(dest ...any) error) (todo.Todo, error) {
	var item todo.Todo
	var done int64
	var createdAt int64
	var updatedAt int64
	if err := scan(&item.ID, &item.OwnerID, &item.Title, &item.Description, &done, &createdAt, &updatedAt); err != nil {
		return todo.Todo{}, err
	}
	item.Done = done != 0
	item.CreatedAt = fromMillis(createdAt)
	item.UpdatedAt = fromMillis(updatedAt)
	return item, nil
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}
