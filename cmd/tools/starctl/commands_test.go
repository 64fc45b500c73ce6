package main

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/restaurant-stars/backend/internal/handler"
	"github.com/zhouzirui/restaurant-stars/backend/internal/model/catalog"
	model "github.com/zhouzirui/restaurant-stars/backend/internal/model/starred"
	starredService "github.com/zhouzirui/restaurant-stars/backend/internal/service/starred"
)

func runCommand(t *testing.T, serverURL string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(append([]string{"--server", serverURL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func newServer(t *testing.T) (*httptest.Server, *starredService.Service) {
	t.Helper()
	restaurants := catalog.NewMemoryStore(catalog.Seed())
	svc := starredService.NewService(restaurants, model.Seed())
	srv := httptest.NewServer(handler.NewRouter(restaurants, svc, nil))
	t.Cleanup(srv.Close)
	return srv, svc
}

func TestListCommand(t *testing.T) {
	srv, _ := newServer(t)

	out, err := runCommand(t, srv.URL, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Best pho in NYC")
	assert.Contains(t, out, "Golden Lotus Kitchen")
}

func TestAddCommentDeleteCommands(t *testing.T) {
	srv, svc := newServer(t)

	out, err := runCommand(t, srv.URL, "add", "8e9d2a1c-6f0b-4c3e-9a57-2b1f4d6c8e03")
	require.NoError(t, err)
	assert.Contains(t, out, "starred Trattoria Lucia")
	require.Equal(t, 3, svc.Count())

	_, err = runCommand(t, srv.URL, "comment", "a7272cd9-26fb-44b5-8d53-9781f55175a1", "still the best")
	require.NoError(t, err)

	out, err = runCommand(t, srv.URL, "get", "a7272cd9-26fb-44b5-8d53-9781f55175a1")
	require.NoError(t, err)
	assert.Contains(t, out, "still the best")

	_, err = runCommand(t, srv.URL, "comment", "--clear", "a7272cd9-26fb-44b5-8d53-9781f55175a1")
	require.NoError(t, err)

	_, err = runCommand(t, srv.URL, "rm", "a7272cd9-26fb-44b5-8d53-9781f55175a1")
	require.NoError(t, err)
	assert.Equal(t, 2, svc.Count())
}

func TestCommentCommandValidatesArgs(t *testing.T) {
	srv, _ := newServer(t)

	_, err := runCommand(t, srv.URL, "comment", "a7272cd9-26fb-44b5-8d53-9781f55175a1")
	assert.Error(t, err)

	_, err = runCommand(t, srv.URL, "comment", "--clear", "a7272cd9-26fb-44b5-8d53-9781f55175a1", "text")
	assert.Error(t, err)
}

func TestDeleteCommandNotFound(t *testing.T) {
	srv, _ := newServer(t)

	_, err := runCommand(t, srv.URL, "delete", "missing")
	assert.Error(t, err)
}

func TestRestaurantsCommandJSON(t *testing.T) {
	srv, _ := newServer(t)

	out, err := runCommand(t, srv.URL, "--json", "restaurants")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Masala Junction"`)
}
