// Package sqlite implements the durable stores for entries, variants,
// layouts, and the profile singleton on a single SQLite database.
//
// Layout writes replace the whole per-variant payload inside one
// transaction, so two overlapping saves for the same variant serialize to
// last-writer-wins; a mixed interleaving of two payloads cannot be
// observed.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/seewee/seewee/pkg/types"
)

// dbFileName is the database file created inside the data directory.
const dbFileName = "seewee.db"

// Lifecycle errors.
var (
	ErrDetached        = fmt.Errorf("store is detached")
	ErrAlreadyAttached = fmt.Errorf("store is already attached")
)

// Store holds the SQLite connection and exposes the typed store surfaces.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewStore creates a detached Store; call Attach with a Config to open
// the database.
func NewStore() *Store {
	return &Store{}
}

// Attach validates the config, creates the data directory if needed,
// opens the database, and ensures the schema is present. Returns
// ErrAlreadyAttached when called twice.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return ErrAlreadyAttached
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

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return err
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return fmt.Errorf("ensure schema: %w", err)
	}
	if err := seedDefaultVariant(db); err != nil {
		db.Close()
		return fmt.Errorf("seed defaults: %w", err)
	}

	s.db = db
	s.config = config
	s.attached = true
	return nil
}

// Detach closes the database. Idempotent; after Detach all operations
// return ErrDetached.
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

// conn returns the open database handle, or ErrDetached.
func (s *Store) conn() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return nil, ErrDetached
	}
	return s.db, nil
}

// newID generates a UUID v7 for record IDs, falling back to v4 if v7
// generation fails.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
