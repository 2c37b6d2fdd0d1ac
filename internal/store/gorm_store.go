package store

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/geobook/geobook/internal/models"
)

// GormRecordStore implements RecordStore on a GORM SQLite database.
type GormRecordStore struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewGormRecordStore opens (or creates) the SQLite database at path and
// migrates the record schema. Use ":memory:" for an ephemeral store.
func NewGormRecordStore(path string, log zerolog.Logger) (*GormRecordStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	if err := db.AutoMigrate(&models.LocationRecord{}); err != nil {
		return nil, &StorageError{Op: "migrate", Err: err}
	}

	log.Info().Str("path", path).Msg("Record store opened")
	return &GormRecordStore{db: db, logger: log}, nil
}

// Create persists a new record and returns its id.
func (s *GormRecordStore) Create(title, subtitle string, latitude, longitude float64) (uuid.UUID, error) {
	record := models.LocationRecord{
		ID:        uuid.New(),
		Title:     title,
		Subtitle:  subtitle,
		Latitude:  latitude,
		Longitude: longitude,
	}

	if err := s.db.Create(&record).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist location record")
		return uuid.Nil, &StorageError{Op: "create", Err: err}
	}

	s.logger.Info().
		Str("id", record.ID.String()).
		Str("title", record.Title).
		Msg("Location record saved")
	return record.ID, nil
}

// FetchAll returns the list projection of every persisted record.
func (s *GormRecordStore) FetchAll() ([]Entry, error) {
	var records []models.LocationRecord
	if err := s.db.Select("id", "title").Find(&records).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch location records")
		return nil, &StorageError{Op: "fetch all", Err: err}
	}

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Entry{ID: r.ID, Title: r.Title})
	}
	return entries, nil
}

// FetchByID returns the record for id, or nil when absent. Ids are
// unique, so the lookup stops at the first match.
func (s *GormRecordStore) FetchByID(id uuid.UUID) (*models.LocationRecord, error) {
	var record models.LocationRecord
	err := s.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error().Err(err).Str("id", id.String()).Msg("Failed to fetch location record")
		return nil, &StorageError{Op: "fetch by id", Err: err}
	}
	return &record, nil
}

// DeleteByID removes the record for id if it is still present.
func (s *GormRecordStore) DeleteByID(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&models.LocationRecord{})
	if result.Error != nil {
		s.logger.Error().Err(result.Error).Str("id", id.String()).Msg("Failed to delete location record")
		return &StorageError{Op: "delete", Err: result.Error}
	}

	if result.RowsAffected == 0 {
		s.logger.Debug().Str("id", id.String()).Msg("Delete of absent record ignored")
	}
	return nil
}

// Close releases the underlying SQLite handle.
func (s *GormRecordStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return &StorageError{Op: "close", Err: err}
	}
	return sqlDB.Close()
}
