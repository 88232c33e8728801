package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/RamonOpazo/sero-sub005/pkg/types"
)

// dbFileName is the SQLite database file created inside DataDir.
const dbFileName = "sero.db"

// Compile-time interface check: Store must implement types.Store.
var _ types.Store = (*Store)(nil)

// Store implements the sero durable store on SQLite.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB

	projects   *ProjectsRepo
	documents  *DocumentsRepo
	selections *SelectionsRepo
	prompts    *PromptsRepo
}

// NewStore creates a new SQLite store instance.
// The store is not attached; call Attach with a Config to initialize.
func NewStore() *Store {
	s := &Store{}
	s.projects = &ProjectsRepo{store: s}
	s.documents = &DocumentsRepo{store: s}
	s.selections = &SelectionsRepo{store: s}
	s.prompts = &PromptsRepo{store: s}
	return s
}

// Attach initializes the store with the given configuration. Creates
// DataDir if it does not exist, opens the database, and applies the
// schema. Returns ErrAlreadyAttached if already attached.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	// Foreign keys must be enabled per connection for the cascades to
	// fire, and writers must wait out the database lock instead of
	// failing with SQLITE_BUSY when a commit dispatches calls in
	// parallel; the DSN pragmas apply to every pooled connection.
	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return err
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return err
		}
	}

	s.db = db
	s.config = config
	s.attached = true
	return nil
}

// Detach releases the database connection. Idempotent: multiple calls
// succeed. After Detach, repository operations return ErrStoreDetached.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}
	s.attached = false
	return nil
}

// Projects returns the project repository.
func (s *Store) Projects() types.ProjectsRepo { return s.projects }

// Documents returns the document repository.
func (s *Store) Documents() types.DocumentsRepo { return s.documents }

// Selections returns the staging adapter for selections.
func (s *Store) Selections() *SelectionsRepo { return s.selections }

// Prompts returns the staging adapter for prompts.
func (s *Store) Prompts() *PromptsRepo { return s.prompts }

// conn returns the live database handle, or ErrStoreDetached.
func (s *Store) conn() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	return s.db, nil
}

// generateUUID generates a new UUID v7 for entity IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// scanner is the common surface of *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
