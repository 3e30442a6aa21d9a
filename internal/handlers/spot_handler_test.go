package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shutterspot/shutterspot-backend/internal/assets"
	"github.com/shutterspot/shutterspot-backend/internal/models"
	"github.com/shutterspot/shutterspot-backend/internal/services"
	"github.com/shutterspot/shutterspot-backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySpotStore struct {
	spots map[uuid.UUID]*models.Spot
}

func (m *memorySpotStore) GetByID(_ context.Context, id uuid.UUID) (*models.Spot, error) {
	spot, ok := m.spots[id]
	if !ok {
		return nil, services.ErrSpotNotFound
	}
	return spot, nil
}

func (m *memorySpotStore) Create(_ context.Context, spot *models.Spot) error {
	spot.ID = uuid.New()
	m.spots[spot.ID] = spot
	return nil
}

func (m *memorySpotStore) Update(_ context.Context, id, ownerID uuid.UUID, fields *models.Spot) error {
	spot, ok := m.spots[id]
	if !ok {
		return services.ErrSpotNotFound
	}
	if spot.PosterID != ownerID {
		return services.ErrNotOwner
	}
	fields.ID = spot.ID
	fields.PosterID = spot.PosterID
	fields.CreatedAt = spot.CreatedAt
	m.spots[id] = fields
	return nil
}

func (m *memorySpotStore) Search(_ context.Context, _ services.SpotSearch) ([]models.Spot, error) {
	var out []models.Spot
	for _, s := range m.spots {
		out = append(out, *s)
	}
	return out, nil
}

type memoryCommentStore struct{ comments []*models.Comment }

func (m *memoryCommentStore) Create(_ context.Context, comment *models.Comment) error {
	comment.ID = uuid.New()
	m.comments = append(m.comments, comment)
	return nil
}

func (m *memoryCommentStore) BySpot(_ context.Context, spotID uuid.UUID) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range m.comments {
		if c.SpotID == spotID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type nopDestroyer struct{}

func (nopDestroyer) Destroy(context.Context, string) error { return nil }

// asUser mimics the JWT middleware by planting a parsed token in locals.
func asUser(userID uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  userID.String(),
			"role": "user",
		})
		c.Locals("user", token)
		return c.Next()
	}
}

func newSpotTestApp(userID uuid.UUID) (*fiber.App, *memorySpotStore) {
	store := &memorySpotStore{spots: make(map[uuid.UUID]*models.Spot)}
	reconciler := assets.NewReconciler(nopDestroyer{}, time.Second)
	spotService := services.NewSpotService(store, validation.New(), reconciler)
	commentService := services.NewCommentService(store, &memoryCommentStore{})
	h := NewSpotHandler(spotService, commentService)

	app := fiber.New()
	app.Get("/spots/searchbyrating", h.SearchByRating)
	app.Get("/spots/searchbydaterange", h.SearchByDateRange)
	app.Get("/spots/:id", h.Get)
	app.Post("/spots", asUser(userID), h.Create)
	app.Put("/spots/:id", asUser(userID), h.Update)
	app.Post("/spots/:id/comments", asUser(userID), h.AddComment)
	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func spotForm() map[string]string {
	return map[string]string{
		"spot_name":          "Old Harbor Pier",
		"spot_description":   "Weathered planks at golden hour.",
		"spot_accessibility": "Free public access.",
		"spot_address":       "12 Harbor Rd",
		"spot_best_times":    "sunrise,golden hour",
		"spot_tags":          "pier,boats",
		"spot_images":        `[{"public_id":"spots/abc"}]`,
		"spot_longitude":     "-70.95",
		"spot_latitude":      "42.52",
	}
}

func TestCreateSpotEndpoint(t *testing.T) {
	userID := uuid.New()
	app, store := newSpotTestApp(userID)

	resp := postJSON(t, app, "/spots", spotForm())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Accepted bool         `json:"accepted"`
		Spot     *models.Spot `json:"spot"`
	}
	decodeBody(t, resp, &body)
	require.True(t, body.Accepted)
	require.NotNil(t, body.Spot)
	assert.Equal(t, userID, body.Spot.PosterID)
	assert.Len(t, store.spots, 1)
}

func TestCreateSpotEndpointRejectionEchoesSubmission(t *testing.T) {
	app, store := newSpotTestApp(uuid.New())

	form := spotForm()
	form["spot_name"] = "   "
	form["spot_longitude"] = "999"

	resp := postJSON(t, app, "/spots", form)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Accepted  bool                      `json:"accepted"`
		Errors    map[string][]string       `json:"errors"`
		Submitted *validation.RawSubmission `json:"submitted"`
	}
	decodeBody(t, resp, &body)
	assert.False(t, body.Accepted)
	assert.Contains(t, body.Errors, validation.FieldName)
	assert.Contains(t, body.Errors, validation.FieldLocation)
	require.NotNil(t, body.Submitted)
	assert.Equal(t, "   ", body.Submitted.Name)
	assert.Empty(t, store.spots)
}

func TestUpdateSpotEndpointByStranger(t *testing.T) {
	app, store := newSpotTestApp(uuid.New())

	spotID := uuid.New()
	store.spots[spotID] = &models.Spot{ID: spotID, PosterID: uuid.New(), Name: "Someone else's"}

	b, _ := json.Marshal(spotForm())
	req := httptest.NewRequest(http.MethodPut, "/spots/"+spotID.String(), bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, "You tried to modify a spot that doesn't belong to you!", body["message"])
}

func TestGetSpotEndpoint(t *testing.T) {
	app, store := newSpotTestApp(uuid.New())
	spotID := uuid.New()
	store.spots[spotID] = &models.Spot{ID: spotID, PosterID: uuid.New(), Name: "Old Harbor Pier"}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/spots/"+spotID.String(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/spots/"+uuid.New().String(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/spots/not-a-uuid", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchByRatingEndpointValidatesParam(t *testing.T) {
	app, _ := newSpotTestApp(uuid.New())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/spots/searchbyrating?minRating=abc", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/spots/searchbyrating?minRating=7.5", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSearchByDateRangeEndpointValidatesDates(t *testing.T) {
	app, _ := newSpotTestApp(uuid.New())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/spots/searchbydaterange?start_date=tomorrow&end_date=2025-02-01", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/spots/searchbydaterange?start_date=2025-02-01&end_date=2025-01-01", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/spots/searchbydaterange?start_date=2025-01-01&end_date=2025-02-01", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAddCommentEndpoint(t *testing.T) {
	userID := uuid.New()
	app, store := newSpotTestApp(userID)
	spotID := uuid.New()
	store.spots[spotID] = &models.Spot{ID: spotID, PosterID: uuid.New(), Name: "Old Harbor Pier"}

	resp := postJSON(t, app, "/spots/"+spotID.String()+"/comments", map[string]interface{}{
		"content": "Great light here.",
		"rating":  9,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/spots/"+spotID.String()+"/comments", map[string]interface{}{
		"content": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, app, "/spots/"+uuid.New().String()+"/comments", map[string]interface{}{
		"content": "orphan",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
