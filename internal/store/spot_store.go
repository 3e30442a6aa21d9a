package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shutterspot/shutterspot-backend/internal/models"
	"github.com/shutterspot/shutterspot-backend/internal/services"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SpotStore is the GORM-backed implementation of services.SpotStore.
type SpotStore struct {
	db *gorm.DB
}

func NewSpotStore(db *gorm.DB) *SpotStore {
	return &SpotStore{db: db}
}

func (s *SpotStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Spot, error) {
	var spot models.Spot
	if err := s.db.WithContext(ctx).First(&spot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrSpotNotFound
		}
		return nil, fmt.Errorf("failed to fetch spot: %w", err)
	}
	return &spot, nil
}

func (s *SpotStore) Create(ctx context.Context, spot *models.Spot) error {
	return s.db.WithContext(ctx).Create(spot).Error
}

// Update is scoped to the owner; last writer wins. The column list is
// explicit so cleared optional fields (geometry) are written too.
func (s *SpotStore) Update(ctx context.Context, id, ownerID uuid.UUID, fields *models.Spot) error {
	result := s.db.WithContext(ctx).Model(&models.Spot{}).
		Where("id = ? AND poster_id = ?", id, ownerID).
		Select("name", "description", "accessibility", "address",
			"best_times", "tags", "images", "location", "geometry").
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update spot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var existing models.Spot
		if err := s.db.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
			return services.ErrSpotNotFound
		}
		return services.ErrNotOwner
	}
	return nil
}

func (s *SpotStore) Search(ctx context.Context, q services.SpotSearch) ([]models.Spot, error) {
	query := s.db.WithContext(ctx).Model(&models.Spot{})

	if q.Keyword != "" {
		kw := "%" + q.Keyword + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ? OR address ILIKE ?", kw, kw, kw)
	}
	if len(q.Tags) > 0 {
		// Match spots carrying any of the requested tags via JSONB
		// containment, one OR branch per tag.
		tagQuery := s.db
		for _, tag := range q.Tags {
			b, err := json.Marshal([]string{tag})
			if err != nil {
				continue
			}
			tagQuery = tagQuery.Or("tags @> ?", datatypes.JSON(b))
		}
		query = query.Where(tagQuery)
	}
	if q.MinRating != nil {
		query = query.Where("avg_rating >= ?", *q.MinRating)
	}
	if q.MaxRating != nil {
		query = query.Where("avg_rating <= ?", *q.MaxRating)
	}
	if q.Start != nil && q.End != nil {
		query = query.Where("created_at BETWEEN ? AND ?", *q.Start, *q.End)
	}

	var spots []models.Spot
	if err := query.Order("created_at DESC").Find(&spots).Error; err != nil {
		return nil, fmt.Errorf("failed to search spots: %w", err)
	}
	return spots, nil
}
