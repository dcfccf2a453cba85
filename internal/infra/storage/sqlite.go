package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"micro_go/internal/domain"
)

// Storage persists derived metric samples for the analysis tools
type Storage struct {
	db *gorm.DB
}

// NewStorage creates a SQLite storage instance at the default OS path
func NewStorage() (*Storage, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve DB path: %w", err)
	}
	return NewStorageAt(dbPath)
}

// NewStorageAt creates a SQLite storage instance at an explicit path
func NewStorageAt(dbPath string) (*Storage, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&domain.MetricSample{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// getDBPath resolves the database file path based on OS
func getDBPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "MicroGo", "data", "microgo.db"), nil
}

// SaveSample appends one metric sample row
func (s *Storage) SaveSample(sample *domain.MetricSample) error {
	return s.db.Create(sample).Error
}

// RecentSamples retrieves the newest samples for a symbol, newest first
func (s *Storage) RecentSamples(symbol string, limit int) ([]domain.MetricSample, error) {
	var samples []domain.MetricSample
	err := s.db.Where("symbol = ?", symbol).
		Order("sampled_at DESC").
		Limit(limit).
		Find(&samples).Error
	return samples, err
}

// PruneBefore deletes samples older than the cutoff, keeping the file bounded
func (s *Storage) PruneBefore(cutoff time.Time) error {
	return s.db.Where("sampled_at < ?", cutoff).Delete(&domain.MetricSample{}).Error
}
