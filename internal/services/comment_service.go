package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shutterspot/shutterspot-backend/internal/authz"
	"github.com/shutterspot/shutterspot-backend/internal/models"
)

var (
	ErrEmptyComment = errors.New("comment must not be blank or just spaces")
	ErrBadRating    = errors.New("rating must be between 1 and 10")
)

// CommentStore persists comments and folds ratings into the spot's average.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	BySpot(ctx context.Context, spotID uuid.UUID) ([]models.Comment, error)
}

type CommentService struct {
	spots SpotStore
	store CommentStore
}

func NewCommentService(spots SpotStore, store CommentStore) *CommentService {
	return &CommentService{spots: spots, store: store}
}

// Add posts a comment on a spot, optionally rating it on the 1-10 scale.
func (s *CommentService) Add(ctx context.Context, actor authz.Actor, spotID uuid.UUID, content string, rating *int) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}
	if rating != nil && (*rating < 1 || *rating > 10) {
		return nil, ErrBadRating
	}

	if _, err := s.spots.GetByID(ctx, spotID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		SpotID:   spotID,
		PosterID: actor.ID,
		Content:  content,
		Rating:   rating,
	}
	if err := s.store.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) BySpot(ctx context.Context, spotID uuid.UUID) ([]models.Comment, error) {
	if _, err := s.spots.GetByID(ctx, spotID); err != nil {
		return nil, err
	}
	return s.store.BySpot(ctx, spotID)
}
