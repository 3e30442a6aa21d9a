package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shutterspot/shutterspot-backend/internal/models"
	"gorm.io/gorm"
)

// CommentStore is the GORM-backed implementation of services.CommentStore.
type CommentStore struct {
	db *gorm.DB
}

func NewCommentStore(db *gorm.DB) *CommentStore {
	return &CommentStore{db: db}
}

// Create inserts the comment and, when it carries a rating, folds it into the
// spot's running average in the same transaction.
func (c *CommentStore) Create(ctx context.Context, comment *models.Comment) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if comment.Rating == nil {
			return nil
		}
		return tx.Model(&models.Spot{}).
			Where("id = ?", comment.SpotID).
			Updates(map[string]interface{}{
				"avg_rating": gorm.Expr(
					"(avg_rating * rating_count + ?) / (rating_count + 1)", *comment.Rating),
				"rating_count": gorm.Expr("rating_count + 1"),
			}).Error
	})
}

func (c *CommentStore) BySpot(ctx context.Context, spotID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.db.WithContext(ctx).
		Where("spot_id = ?", spotID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
