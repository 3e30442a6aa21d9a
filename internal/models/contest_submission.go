package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContestSubmission is a single-image entry into the monthly photo contest.
type ContestSubmission struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SpotID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"spot_id"`
	PosterID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"poster_id"`
	Caption   string         `gorm:"size:500;not null" json:"caption"`
	Image     datatypes.JSON `gorm:"type:jsonb;not null" json:"image"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Spot      Spot           `gorm:"foreignKey:SpotID" json:"-"`
	Poster    User           `gorm:"foreignKey:PosterID" json:"-"`
}
