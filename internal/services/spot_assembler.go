package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shutterspot/shutterspot-backend/internal/models"
	"github.com/shutterspot/shutterspot-backend/internal/validation"
	"gorm.io/datatypes"
)

// assembleSpot maps a zero-error validation result into the canonical
// persisted shape, stamping poster and creation time. It must never be called
// with a result that carries field errors.
func assembleSpot(sub validation.Submission, posterID uuid.UUID, createdAt time.Time) *models.Spot {
	spot := assembleSpotFields(sub)
	spot.PosterID = posterID
	spot.CreatedAt = createdAt
	return spot
}

// assembleSpotFields builds the updatable portion of the record: the
// normalized flat fields plus the structured GeoJSON location.
func assembleSpotFields(sub validation.Submission) *models.Spot {
	spot := &models.Spot{
		Name:          sub.Name,
		Description:   sub.Description,
		Accessibility: sub.Accessibility,
		Address:       sub.Address,
		BestTimes:     toJSON(sub.BestTimes),
		Tags:          toJSON(sub.Tags),
		Images:        toJSON(sub.Images),
		Location: toJSON(models.GeoPoint{
			Type:        "Point",
			Coordinates: []float64{sub.Longitude, sub.Latitude},
		}),
	}
	if sub.Geometry != "" {
		spot.Geometry = datatypes.JSON(sub.Geometry)
	}
	return spot
}

func toJSON(v interface{}) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}
