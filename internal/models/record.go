package models

import (
	"github.com/google/uuid"
)

// LocationRecord represents a single saved named location.
// Records are immutable once persisted; there is no update path,
// only creation and deletion.
type LocationRecord struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey" json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}

// TableName maps the record to the "geo_records" table.
func (LocationRecord) TableName() string {
	return "geo_records"
}
