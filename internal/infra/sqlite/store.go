package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/SantiagoCMS/Jogo-do-Milhao/internal/domain"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultPath is the question database used by the desktop game.
const DefaultPath = "quiz_banco.db"

// Store reads and seeds the questions table of a SQLite file. The file is
// opened on first use so a missing database degrades at query time.
type Store struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

func NewStore(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// conn opens the database. Without create, a missing file is reported as
// domain.ErrStoreUnavailable instead of letting the driver create it.
func (s *Store) conn(ctx context.Context, create bool) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}

	if _, err := os.Stat(s.path); err != nil {
		if !errors.Is(err, os.ErrNotExist) || !create {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, s.path, err)
		}
		if dir := filepath.Dir(s.path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if create {
		if err := initSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init schema: %w", err)
		}
	}
	s.db = db
	return db, nil
}
