package store

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store wraps the gorm handle and implements the persistence interfaces
// the engine packages define.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database at path (":memory:" for tests)
// and runs migrations.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.AutoMigrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// New wraps an existing gorm handle without migrating.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates all tables.
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(
		&ActivityRecordRow{},
		&FrameworkInstanceRow{},
		&ScoreSnapshotRow{},
		&EmissionTotalRow{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
