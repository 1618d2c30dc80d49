// Package sqlstore implements the storage contract over SQLite. Uniqueness
// lives in UNIQUE constraints and cascading deletes in ON DELETE CASCADE
// foreign keys, so the database enforces natively what csvstore re-implements
// by hand. Each logical write group runs inside a transaction.
package sqlstore

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avolkova/shelves/internal/entities"
	"github.com/avolkova/shelves/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store is the relational backend, backed by a single SQLite database file.
type Store struct {
	path string
	db   *gorm.DB
}

// New returns a store backed by the database file at path. The connection is
// opened lazily on first use.
func New(path string) *Store {
	return &Store{path: path}
}

// Initialize creates the database file and schema. If the file already
// exists and force is false it fails with ErrAlreadyInitialized; with force
// it removes the file and recreates the schema from scratch.
func (s *Store) Initialize(force bool) error {
	if _, err := os.Stat(s.path); err == nil {
		if !force {
			return fmt.Errorf("%w: %s", storage.ErrAlreadyInitialized, s.path)
		}
		if s.db != nil {
			if err := s.Close(); err != nil {
				return err
			}
			s.db = nil
		}
		if err := os.Remove(s.path); err != nil {
			return fmt.Errorf("%w: removing %s: %v", storage.ErrStorageIO, s.path, err)
		}
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func (s *Store) open() (*gorm.DB, error) {
	dsn := s.path + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", storage.ErrStorageIO, s.path, err)
	}
	err = db.AutoMigrate(
		&entities.Book{},
		&entities.Author{},
		&entities.Genre{},
		&entities.Series{},
		&entities.ReadingSession{},
		&entities.BookAuthor{},
		&entities.BookGenre{},
		&entities.BookSeries{},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: migrating schema: %v", storage.ErrStorageIO, err)
	}
	return db, nil
}

// conn returns the open connection, connecting on first use. The database
// file must already exist; run init first.
func (s *Store) conn() (*gorm.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("%w: database %s does not exist, run init first", storage.ErrStorageIO, s.path)
	}
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	s.db = db
	return s.db, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate maps driver and gorm errors onto the shared error taxonomy.
func translate(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, what)
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %s", storage.ErrDuplicate, what)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %s", storage.ErrNotFound, what)
		}
	}
	return fmt.Errorf("%w: %s: %v", storage.ErrStorageIO, what, err)
}
