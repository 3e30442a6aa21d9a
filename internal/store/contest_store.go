package store

import (
	"context"
	"fmt"

	"github.com/shutterspot/shutterspot-backend/internal/models"
	"gorm.io/gorm"
)

// ContestStore is the GORM-backed implementation of services.ContestStore.
type ContestStore struct {
	db *gorm.DB
}

func NewContestStore(db *gorm.DB) *ContestStore {
	return &ContestStore{db: db}
}

func (c *ContestStore) Create(ctx context.Context, sub *models.ContestSubmission) error {
	return c.db.WithContext(ctx).Create(sub).Error
}

func (c *ContestStore) Recent(ctx context.Context, limit int) ([]models.ContestSubmission, error) {
	var subs []models.ContestSubmission
	err := c.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contest submissions: %w", err)
	}
	return subs, nil
}
