// Package storage defines the persistence interfaces for the application.
//
// It provides a high-level abstraction for storing users and their to-do
// items. Implementations of these interfaces (e.g., using SQLite) can be
// found in subpackages.
//
// # Error Types
//
// The package defines common error types used across storage implementations:
//   - ErrNotFound: Indicates a requested record is missing or not owned.
//   - ErrDuplicateUsername, ErrDuplicateEmail: Indicate registration conflicts.
package storage
