package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Spot is a user-submitted location record. Images, tags, best times and the
// GeoJSON location are stored as JSONB so the persisted shape matches what the
// submission pipeline assembles.
type Spot struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	Accessibility string         `gorm:"type:text;not null" json:"accessibility"`
	BestTimes     datatypes.JSON `gorm:"type:jsonb;not null" json:"best_times"`
	Tags          datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"tags"`
	Images        datatypes.JSON `gorm:"type:jsonb;not null" json:"images"`
	Address       string         `gorm:"size:500;not null" json:"address"`
	Location      datatypes.JSON `gorm:"type:jsonb;not null" json:"location"`
	Geometry      datatypes.JSON `gorm:"type:jsonb" json:"geometry,omitempty"`
	AvgRating     float64        `gorm:"default:0" json:"avg_rating"`
	RatingCount   int            `gorm:"default:0" json:"rating_count"`
	PosterID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"poster_id"`
	CreatedAt     time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Poster        User           `gorm:"foreignKey:PosterID" json:"-"`
}

// GeoPoint is the GeoJSON shape stored in Spot.Location.
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}
