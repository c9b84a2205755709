package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/markgregr/taskflow_REST_server/internal/models"
)

// ErrNotFound is returned by lookups when no visible row matches.
var ErrNotFound = errors.New("record not found")

type Storage struct {
	db *gorm.DB
}

// New opens the sqlite database at path and runs migrations. The directory
// is created if missing.
func New(path string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// NewInMemory opens a throwaway in-memory database, used by tests.
func NewInMemory() (*Storage, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) migrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Comment{},
	)
}

// Transaction runs fn against a transactional view of the storage. Every
// read-modify-write sequence on a contended row goes through here so the
// idempotence checks compare a consistent snapshot.
func (s *Storage) Transaction(fn func(tx *Storage) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Storage{db: tx})
	})
}

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
