// Package sqlite provides the public API for the SQLite sero store.
// This package exposes the factory function and typed accessor surface
// while keeping implementation details internal.
package sqlite

import (
	"github.com/RamonOpazo/sero-sub005/internal/sqlite"
	"github.com/RamonOpazo/sero-sub005/pkg/redact"
	"github.com/RamonOpazo/sero-sub005/pkg/types"
)

// Store is the public handle on the SQLite backend.
//
// Example:
//
//	store := sqlite.NewStore()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".sero",
//	})
//	defer store.Detach()
type Store struct {
	inner *sqlite.Store
}

// NewStore creates a new SQLite store instance.
// The store is not attached; call Attach with a Config to initialize.
func NewStore() *Store {
	return &Store{inner: sqlite.NewStore()}
}

// Attach connects the store to the database described by config.
func (s *Store) Attach(config types.Config) error { return s.inner.Attach(config) }

// Detach releases store resources. Idempotent.
func (s *Store) Detach() error { return s.inner.Detach() }

// Projects returns the project repository.
func (s *Store) Projects() types.ProjectsRepo { return s.inner.Projects() }

// Documents returns the document repository.
func (s *Store) Documents() types.DocumentsRepo { return s.inner.Documents() }

// Selections returns the staging adapter for selections.
func (s *Store) Selections() redact.SelectionAdapter { return s.inner.Selections() }

// Prompts returns the staging adapter for prompts.
func (s *Store) Prompts() redact.PromptAdapter { return s.inner.Prompts() }
