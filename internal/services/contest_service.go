package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shutterspot/shutterspot-backend/internal/assets"
	"github.com/shutterspot/shutterspot-backend/internal/authz"
	"github.com/shutterspot/shutterspot-backend/internal/models"
	"github.com/shutterspot/shutterspot-backend/internal/validation"
)

// ContestStore persists contest submissions.
type ContestStore interface {
	Create(ctx context.Context, sub *models.ContestSubmission) error
	Recent(ctx context.Context, limit int) ([]models.ContestSubmission, error)
}

// ContestService accepts single-image contest entries for a spot. It reuses
// the submission validator with the image bounds narrowed to exactly one,
// and the same orphan reconciliation as spot submissions.
type ContestService struct {
	spots      SpotStore
	store      ContestStore
	validator  *validation.Validator
	reconciler *assets.Reconciler
}

func NewContestService(spots SpotStore, store ContestStore, reconciler *assets.Reconciler) *ContestService {
	v := validation.New()
	v.MinImages = 1
	v.MaxImages = 1
	return &ContestService{spots: spots, store: store, validator: v, reconciler: reconciler}
}

// Submit validates caption and image together, accumulating both errors in
// one pass, and releases the upload if the entry is rejected.
func (s *ContestService) Submit(ctx context.Context, actor authz.Actor, spotID uuid.UUID, caption, rawImage string) (*SubmissionOutcome, error) {
	if _, err := s.spots.GetByID(ctx, spotID); err != nil {
		return nil, err
	}

	errs := make(map[string][]string)

	trimmed, err := validation.ValidateString(caption)
	if err != nil {
		errs["caption"] = []string{"Caption must not be blank or just spaces!"}
	}

	refs, imgErrs := s.validator.ValidateImages(rawImage)
	if len(imgErrs) > 0 {
		errs[validation.FieldImages] = imgErrs
	}

	if len(errs) > 0 {
		if len(imgErrs) == 0 {
			ids := make([]string, 0, len(refs))
			for _, ref := range refs {
				ids = append(ids, ref.PublicID)
			}
			s.reconciler.Release("contest entry rejected", ids)
			errs[validation.FieldImages] = []string{"Please re-upload your images."}
		}
		return &SubmissionOutcome{Accepted: false, Errors: errs}, nil
	}

	sub := &models.ContestSubmission{
		SpotID:   spotID,
		PosterID: actor.ID,
		Caption:  trimmed,
		Image:    toJSON(refs[0]),
	}
	if err := s.store.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create contest submission: %w", err)
	}

	slog.Info("contest submission created", "submission_id", sub.ID, "spot_id", spotID, "user_id", actor.ID.String())
	return &SubmissionOutcome{Accepted: true}, nil
}

func (s *ContestService) Recent(ctx context.Context, limit int) ([]models.ContestSubmission, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.store.Recent(ctx, limit)
}
