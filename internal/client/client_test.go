package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/restaurant-stars/backend/internal/handler"
	"github.com/zhouzirui/restaurant-stars/backend/internal/model/catalog"
	model "github.com/zhouzirui/restaurant-stars/backend/internal/model/starred"
	starredService "github.com/zhouzirui/restaurant-stars/backend/internal/service/starred"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	restaurants := catalog.NewMemoryStore(catalog.Seed())
	svc := starredService.NewService(restaurants, model.Seed())
	srv := httptest.NewServer(handler.NewRouter(restaurants, svc, nil))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func TestClient_RoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	views, err := c.ListStarred(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	added, err := c.Star(ctx, "f1a2b3c4-5d6e-4f70-8a9b-0c1d2e3f4a5b")
	require.NoError(t, err)
	assert.Equal(t, "Taqueria del Sol", added.Name)
	assert.Nil(t, added.Comment)

	comment := "al pastor"
	require.NoError(t, c.UpdateComment(ctx, added.ID, &comment))

	got, err := c.GetStarred(ctx, added.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Comment)
	assert.Equal(t, "al pastor", *got.Comment)

	require.NoError(t, c.Unstar(ctx, added.ID))
	_, err = c.GetStarred(ctx, added.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_NotFoundCarriesMessage(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Star(context.Background(), "869c848c-7a58-4ed6-ab88-72ee2e8e677c")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "restaurant already starred", apiErr.Message)
}

func TestClient_ListRestaurants(t *testing.T) {
	c := newTestClient(t)

	items, err := c.ListRestaurants(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, len(catalog.Seed()))
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New("localhost")
	assert.Error(t, err)
}
