package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
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

type fakeSpotStore struct {
	spots      map[uuid.UUID]*models.Spot
	createErr  error
	updateErr  error
	lastSearch SpotSearch
	searchHits []models.Spot
}

func newFakeSpotStore() *fakeSpotStore {
	return &fakeSpotStore{spots: make(map[uuid.UUID]*models.Spot)}
}

func (f *fakeSpotStore) GetByID(_ context.Context, id uuid.UUID) (*models.Spot, error) {
	spot, ok := f.spots[id]
	if !ok {
		return nil, ErrSpotNotFound
	}
	return spot, nil
}

func (f *fakeSpotStore) Create(_ context.Context, spot *models.Spot) error {
	if f.createErr != nil {
		return f.createErr
	}
	spot.ID = uuid.New()
	f.spots[spot.ID] = spot
	return nil
}

func (f *fakeSpotStore) Update(_ context.Context, id, ownerID uuid.UUID, fields *models.Spot) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	spot, ok := f.spots[id]
	if !ok {
		return ErrSpotNotFound
	}
	if spot.PosterID != ownerID {
		return ErrNotOwner
	}
	fields.ID = spot.ID
	fields.PosterID = spot.PosterID
	fields.CreatedAt = spot.CreatedAt
	f.spots[id] = fields
	return nil
}

func (f *fakeSpotStore) Search(_ context.Context, q SpotSearch) ([]models.Spot, error) {
	f.lastSearch = q
	return f.searchHits, nil
}

type captureDestroyer struct {
	mu  sync.Mutex
	ids []string
}

func (c *captureDestroyer) Destroy(_ context.Context, publicID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = append(c.ids, publicID)
	return nil
}

func (c *captureDestroyer) sorted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := append([]string(nil), c.ids...)
	sort.Strings(out)
	return out
}

func newTestSpotService() (*SpotService, *fakeSpotStore, *captureDestroyer, *assets.Reconciler) {
	store := newFakeSpotStore()
	destroyer := &captureDestroyer{}
	reconciler := assets.NewReconciler(destroyer, time.Second)
	return NewSpotService(store, validation.New(), reconciler), store, destroyer, reconciler
}

func validSpotSubmission() validation.RawSubmission {
	return validation.RawSubmission{
		Name:          "Old Harbor Pier",
		Description:   "Weathered planks and fishing boats at golden hour.",
		Accessibility: "Free public access.",
		Address:       "12 Harbor Rd",
		BestTimes:     "sunrise,golden hour",
		Tags:          "pier,boats",
		Images:        `[{"public_id":"spots/abc","url":"https://img.example/abc.jpg"}]`,
		Longitude:     "-70.95",
		Latitude:      "42.52",
	}
}

func TestCreateStampsPosterAndCreationTime(t *testing.T) {
	svc, store, _, rec := newTestSpotService()
	actor := authz.Actor{ID: uuid.New()}

	before := time.Now().UTC()
	out, err := svc.Create(context.Background(), actor, validSpotSubmission())
	rec.Wait()

	require.NoError(t, err)
	require.True(t, out.Accepted)
	require.NotNil(t, out.Spot)
	assert.Equal(t, actor.ID, out.Spot.PosterID)
	assert.False(t, out.Spot.CreatedAt.Before(before))
	assert.Len(t, store.spots, 1)

	var loc models.GeoPoint
	require.NoError(t, json.Unmarshal(out.Spot.Location, &loc))
	assert.Equal(t, "Point", loc.Type)
	assert.Equal(t, []float64{-70.95, 42.52}, loc.Coordinates)
}

func TestCreateRejectionReleasesUploads(t *testing.T) {
	svc, store, destroyer, rec := newTestSpotService()

	raw := validSpotSubmission()
	raw.Name = "   "
	raw.Images = `[{"public_id":"spots/abc"},{"public_id":"spots/def"}]`

	out, err := svc.Create(context.Background(), authz.Actor{ID: uuid.New()}, raw)
	rec.Wait()

	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Empty(t, store.spots)
	assert.Equal(t, []string{"spots/abc", "spots/def"}, destroyer.sorted())
	assert.Equal(t, []string{"Please re-upload your images."}, out.Errors[validation.FieldImages])
}

func TestCreateRejectionWithBadImagesReleasesNothing(t *testing.T) {
	svc, _, destroyer, rec := newTestSpotService()

	raw := validSpotSubmission()
	raw.Name = "   "
	raw.Images = "not json"

	out, err := svc.Create(context.Background(), authz.Actor{ID: uuid.New()}, raw)
	rec.Wait()

	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Empty(t, destroyer.sorted())
	assert.Equal(t, []string{"Please upload at least one image!"}, out.Errors[validation.FieldImages])
}

func TestCreateReleasesDiscardedImagesOnSuccess(t *testing.T) {
	svc, _, destroyer, rec := newTestSpotService()

	raw := validSpotSubmission()
	raw.DiscardedImages = `["spots/old1","spots/old2"]`

	out, err := svc.Create(context.Background(), authz.Actor{ID: uuid.New()}, raw)
	rec.Wait()

	require.NoError(t, err)
	require.True(t, out.Accepted)
	assert.Equal(t, []string{"spots/old1", "spots/old2"}, destroyer.sorted())
}

func TestCreatePersistenceFailure(t *testing.T) {
	svc, store, destroyer, rec := newTestSpotService()
	store.createErr = errors.New("connection reset")

	out, err := svc.Create(context.Background(), authz.Actor{ID: uuid.New()}, validSpotSubmission())
	rec.Wait()

	require.Error(t, err)
	assert.Nil(t, out)
	// A valid submission's own uploads are never released, even on failure.
	assert.Empty(t, destroyer.sorted())
}

func TestUpdateByOwner(t *testing.T) {
	svc, store, _, rec := newTestSpotService()
	actor := authz.Actor{ID: uuid.New()}

	created, err := svc.Create(context.Background(), actor, validSpotSubmission())
	require.NoError(t, err)

	raw := validSpotSubmission()
	raw.Name = "New Harbor Pier"
	out, err := svc.Update(context.Background(), actor, created.Spot.ID, raw)
	rec.Wait()

	require.NoError(t, err)
	require.True(t, out.Accepted)
	assert.Equal(t, "New Harbor Pier", out.Spot.Name)
	// Poster and creation time survive edits untouched.
	assert.Equal(t, actor.ID, out.Spot.PosterID)
	assert.Equal(t, created.Spot.CreatedAt, out.Spot.CreatedAt)
	assert.Len(t, store.spots, 1)
}

func TestUpdateByStrangerDenied(t *testing.T) {
	svc, store, _, rec := newTestSpotService()
	owner := authz.Actor{ID: uuid.New()}

	created, err := svc.Create(context.Background(), owner, validSpotSubmission())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), authz.Actor{ID: uuid.New()}, created.Spot.ID, validSpotSubmission())
	rec.Wait()

	require.ErrorIs(t, err, ErrNotOwner)
	assert.Equal(t, "Old Harbor Pier", store.spots[created.Spot.ID].Name)
}

func TestUpdateByAdminStillDenied(t *testing.T) {
	svc, _, _, _ := newTestSpotService()
	owner := authz.Actor{ID: uuid.New()}

	created, err := svc.Create(context.Background(), owner, validSpotSubmission())
	require.NoError(t, err)

	admin := authz.Actor{ID: uuid.New(), Admin: true}
	_, err = svc.Update(context.Background(), admin, created.Spot.ID, validSpotSubmission())

	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestUpdateMissingSpot(t *testing.T) {
	svc, _, _, _ := newTestSpotService()

	_, err := svc.Update(context.Background(), authz.Actor{ID: uuid.New()}, uuid.New(), validSpotSubmission())

	assert.ErrorIs(t, err, ErrSpotNotFound)
}

func TestUpdateRejectionReleasesUploads(t *testing.T) {
	svc, _, destroyer, rec := newTestSpotService()
	owner := authz.Actor{ID: uuid.New()}

	created, err := svc.Create(context.Background(), owner, validSpotSubmission())
	require.NoError(t, err)
	rec.Wait()
	destroyer.ids = nil

	raw := validSpotSubmission()
	raw.Description = " "
	raw.Images = `[{"public_id":"spots/new"}]`

	out, err := svc.Update(context.Background(), owner, created.Spot.ID, raw)
	rec.Wait()

	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Equal(t, []string{"spots/new"}, destroyer.sorted())
}

func TestSearchByTagsParsesFilter(t *testing.T) {
	svc, store, _, _ := newTestSpotService()

	_, err := svc.SearchByTags(context.Background(), " pier , boats ,")
	require.NoError(t, err)
	assert.Equal(t, []string{"pier", "boats"}, store.lastSearch.Tags)

	_, err = svc.SearchByTags(context.Background(), " , ,")
	assert.ErrorIs(t, err, ErrEmptyTagFilter)
}

func TestSearchByRatingPinsCeiling(t *testing.T) {
	svc, store, _, _ := newTestSpotService()

	_, err := svc.SearchByRating(context.Background(), 7.5)
	require.NoError(t, err)
	require.NotNil(t, store.lastSearch.MinRating)
	require.NotNil(t, store.lastSearch.MaxRating)
	assert.Equal(t, 7.5, *store.lastSearch.MinRating)
	assert.Equal(t, 10.0, *store.lastSearch.MaxRating)
}

func TestSearchByDateRangeOrdering(t *testing.T) {
	svc, store, _, _ := newTestSpotService()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.SearchByDateRange(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, start, *store.lastSearch.Start)
	assert.Equal(t, end, *store.lastSearch.End)

	_, err = svc.SearchByDateRange(context.Background(), end, start)
	assert.ErrorIs(t, err, ErrBadDateRange)

	_, err = svc.SearchByDateRange(context.Background(), start, start)
	assert.ErrorIs(t, err, ErrBadDateRange)
}
