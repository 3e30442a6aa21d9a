package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shutterspot/shutterspot-backend/internal/assets"
	"github.com/shutterspot/shutterspot-backend/internal/authz"
	"github.com/shutterspot/shutterspot-backend/internal/models"
	"github.com/shutterspot/shutterspot-backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContestStore struct {
	subs      []*models.ContestSubmission
	lastLimit int
}

func (f *fakeContestStore) Create(_ context.Context, sub *models.ContestSubmission) error {
	sub.ID = uuid.New()
	f.subs = append(f.subs, sub)
	return nil
}

func (f *fakeContestStore) Recent(_ context.Context, limit int) ([]models.ContestSubmission, error) {
	f.lastLimit = limit
	return nil, nil
}

func newTestContestService() (*ContestService, *fakeSpotStore, *fakeContestStore, *captureDestroyer, *assets.Reconciler) {
	spots := newFakeSpotStore()
	contest := &fakeContestStore{}
	destroyer := &captureDestroyer{}
	reconciler := assets.NewReconciler(destroyer, time.Second)
	return NewContestService(spots, contest, reconciler), spots, contest, destroyer, reconciler
}

func TestContestSubmit(t *testing.T) {
	svc, spots, contest, _, _ := newTestContestService()
	spotID := seedSpot(spots)
	actor := authz.Actor{ID: uuid.New()}

	out, err := svc.Submit(context.Background(), actor, spotID, "  Evening glow  ", `[{"public_id":"contest/a"}]`)

	require.NoError(t, err)
	assert.True(t, out.Accepted)
	require.Len(t, contest.subs, 1)
	assert.Equal(t, "Evening glow", contest.subs[0].Caption)
	assert.Equal(t, actor.ID, contest.subs[0].PosterID)
}

func TestContestSubmitRequiresExactlyOneImage(t *testing.T) {
	svc, spots, contest, _, _ := newTestContestService()
	spotID := seedSpot(spots)
	actor := authz.Actor{ID: uuid.New()}

	out, err := svc.Submit(context.Background(), actor, spotID, "Caption", `[{"public_id":"a"},{"public_id":"b"}]`)
	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Equal(t, []string{"Please upload a maximum of 1 images!"}, out.Errors[validation.FieldImages])

	out, err = svc.Submit(context.Background(), actor, spotID, "Caption", `[]`)
	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Empty(t, contest.subs)
}

func TestContestSubmitAccumulatesCaptionAndImageErrors(t *testing.T) {
	svc, spots, _, destroyer, rec := newTestContestService()
	spotID := seedSpot(spots)

	out, err := svc.Submit(context.Background(), authz.Actor{ID: uuid.New()}, spotID, "  ", "not json")
	rec.Wait()

	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Contains(t, out.Errors, "caption")
	assert.Contains(t, out.Errors, validation.FieldImages)
	// The image never parsed, so there is nothing to release.
	assert.Empty(t, destroyer.sorted())
}

func TestContestSubmitReleasesUploadOnCaptionRejection(t *testing.T) {
	svc, spots, _, destroyer, rec := newTestContestService()
	spotID := seedSpot(spots)

	out, err := svc.Submit(context.Background(), authz.Actor{ID: uuid.New()}, spotID, "  ", `[{"public_id":"contest/a"}]`)
	rec.Wait()

	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Equal(t, []string{"contest/a"}, destroyer.sorted())
	assert.Equal(t, []string{"Please re-upload your images."}, out.Errors[validation.FieldImages])
}

func TestContestSubmitMissingSpot(t *testing.T) {
	svc, _, _, _, _ := newTestContestService()

	_, err := svc.Submit(context.Background(), authz.Actor{ID: uuid.New()}, uuid.New(), "Caption", `[{"public_id":"a"}]`)
	assert.ErrorIs(t, err, ErrSpotNotFound)
}

func TestContestRecentClampsLimit(t *testing.T) {
	svc, _, contest, _, _ := newTestContestService()

	_, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 20, contest.lastLimit)

	_, err = svc.Recent(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, 20, contest.lastLimit)

	_, err = svc.Recent(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, 50, contest.lastLimit)
}
