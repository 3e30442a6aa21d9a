package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shutterspot/shutterspot-backend/internal/assets"
	"github.com/shutterspot/shutterspot-backend/internal/authz"
	"github.com/shutterspot/shutterspot-backend/internal/models"
	"github.com/shutterspot/shutterspot-backend/internal/validation"
)

var (
	ErrSpotNotFound   = errors.New("spot not found")
	ErrNotOwner       = errors.New("you tried to modify a spot that doesn't belong to you")
	ErrEmptyTagFilter = errors.New("tags filter is empty")
	ErrBadDateRange   = errors.New("start date must be earlier than end date")
)

// The rating search exposes only a minimum; the upper bound is pinned to the
// rating scale's ceiling.
const ratingCeiling = 10.0

// SpotSearch is the criteria accepted by the persistence collaborator. Nil
// pointer fields are not filtered on.
type SpotSearch struct {
	Keyword   string
	Tags      []string
	MinRating *float64
	MaxRating *float64
	Start     *time.Time
	End       *time.Time
}

// SpotStore is the persistence contract consumed by the submission pipeline.
type SpotStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Spot, error)
	Create(ctx context.Context, spot *models.Spot) error
	// Update applies fields to the spot only if ownerID matches; it returns
	// ErrSpotNotFound or ErrNotOwner otherwise.
	Update(ctx context.Context, id, ownerID uuid.UUID, fields *models.Spot) error
	Search(ctx context.Context, q SpotSearch) ([]models.Spot, error)
}

// SubmissionOutcome is what the presentation layer renders: either the
// persisted spot, or the accumulated per-field errors.
type SubmissionOutcome struct {
	Accepted bool
	Spot     *models.Spot
	Errors   map[string][]string
}

// SpotService runs the submission pipeline: validate all fields, reconcile
// orphaned image uploads, assemble the canonical record, persist.
type SpotService struct {
	store      SpotStore
	validator  *validation.Validator
	reconciler *assets.Reconciler
}

func NewSpotService(store SpotStore, validator *validation.Validator, reconciler *assets.Reconciler) *SpotService {
	return &SpotService{store: store, validator: validator, reconciler: reconciler}
}

// Create validates a new submission and persists it under the poster's
// identity. A rejected submission is reported through the outcome, not the
// error; a non-nil error means persistence failed and the submitted values
// should be offered back for retry.
func (s *SpotService) Create(ctx context.Context, actor authz.Actor, raw validation.RawSubmission) (*SubmissionOutcome, error) {
	res := s.validator.ValidateSubmission(raw)
	if !res.OK() {
		s.releaseRejected(res)
		return &SubmissionOutcome{Accepted: false, Errors: res.Errors}, nil
	}

	s.reconciler.Release("discarded by submitter", validation.ParseDiscarded(raw.DiscardedImages))

	spot := assembleSpot(res.Values, actor.ID, time.Now().UTC())
	if err := s.store.Create(ctx, spot); err != nil {
		return nil, fmt.Errorf("failed to create spot: %w", err)
	}

	slog.Info("spot created", "spot_id", spot.ID, "user_id", actor.ID.String())
	return &SubmissionOutcome{Accepted: true, Spot: spot}, nil
}

// Update re-validates a full submission against an existing spot. Only the
// owner may update; admins get no override on edits.
func (s *SpotService) Update(ctx context.Context, actor authz.Actor, spotID uuid.UUID, raw validation.RawSubmission) (*SubmissionOutcome, error) {
	spot, err := s.store.GetByID(ctx, spotID)
	if err != nil {
		return nil, err
	}

	if d := authz.OwnerOnly(actor, spot.PosterID); !d.Allowed {
		slog.Warn("unauthorized spot edit attempt",
			"user_id", actor.ID.String(), "spot_id", spotID, "reason", d.Reason)
		return nil, fmt.Errorf("%w: %s", ErrNotOwner, d.Reason)
	}

	res := s.validator.ValidateSubmission(raw)
	if !res.OK() {
		s.releaseRejected(res)
		return &SubmissionOutcome{Accepted: false, Errors: res.Errors}, nil
	}

	s.reconciler.Release("discarded by submitter", validation.ParseDiscarded(raw.DiscardedImages))

	// Poster and creation time are stamped on creation only.
	fields := assembleSpotFields(res.Values)
	if err := s.store.Update(ctx, spotID, actor.ID, fields); err != nil {
		if errors.Is(err, ErrSpotNotFound) || errors.Is(err, ErrNotOwner) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update spot: %w", err)
	}

	updated, err := s.store.GetByID(ctx, spotID)
	if err != nil {
		return nil, err
	}
	slog.Info("spot updated", "spot_id", spotID, "user_id", actor.ID.String())
	return &SubmissionOutcome{Accepted: true, Spot: updated}, nil
}

// releaseRejected rolls back the uploads of a rejected submission. The images
// become orphans the moment the record is refused, but only if the images
// field itself parsed; otherwise there is nothing to release. Released
// uploads get an explicit re-upload prompt on the images field.
func (s *SpotService) releaseRejected(res validation.Result) {
	if !res.ImagesParsed() {
		return
	}
	ids := make([]string, 0, len(res.Values.Images))
	for _, img := range res.Values.Images {
		ids = append(ids, img.PublicID)
	}
	s.reconciler.Release("submission rejected", ids)
	res.Errors[validation.FieldImages] = []string{"Please re-upload your images."}
}

func (s *SpotService) Get(ctx context.Context, id uuid.UUID) (*models.Spot, error) {
	return s.store.GetByID(ctx, id)
}

func (s *SpotService) All(ctx context.Context) ([]models.Spot, error) {
	return s.store.Search(ctx, SpotSearch{})
}

func (s *SpotService) SearchByKeyword(ctx context.Context, keyword string) ([]models.Spot, error) {
	return s.store.Search(ctx, SpotSearch{Keyword: strings.TrimSpace(keyword)})
}

func (s *SpotService) SearchByTags(ctx context.Context, rawTags string) ([]models.Spot, error) {
	var tags []string
	for _, t := range strings.Split(rawTags, ",") {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	if len(tags) == 0 {
		return nil, ErrEmptyTagFilter
	}
	return s.store.Search(ctx, SpotSearch{Tags: tags})
}

func (s *SpotService) SearchByRating(ctx context.Context, minRating float64) ([]models.Spot, error) {
	ceiling := ratingCeiling
	return s.store.Search(ctx, SpotSearch{MinRating: &minRating, MaxRating: &ceiling})
}

func (s *SpotService) SearchByDateRange(ctx context.Context, start, end time.Time) ([]models.Spot, error) {
	if !start.Before(end) {
		return nil, ErrBadDateRange
	}
	return s.store.Search(ctx, SpotSearch{Start: &start, End: &end})
}
