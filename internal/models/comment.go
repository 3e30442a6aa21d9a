package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is posted on a spot and may carry a 1-10 rating that feeds the
// spot's average.
type Comment struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SpotID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"spot_id"`
	PosterID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"poster_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Rating    *int           `json:"rating,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Spot      Spot           `gorm:"foreignKey:SpotID" json:"-"`
	Poster    User           `gorm:"foreignKey:PosterID" json:"-"`
}
