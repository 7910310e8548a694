package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nocturne/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	t.Parallel()

	s, db := newTestServer(t)
	createHandlerTestUser(t, db, 7, "Iris")

	app := newTestApp(7)
	app.Get("/api/users/me", s.GetMyProfile)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/me", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "Iris", user.Name)
}

func TestGetMyProfile_NotSyncedYet(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)
	app := newTestApp(9)
	app.Get("/api/users/me", s.GetMyProfile)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/me", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateMyProfile_UpsertsProfile(t *testing.T) {
	t.Parallel()

	s, db := newTestServer(t)
	app := newTestApp(7)
	app.Put("/api/users/me", s.UpdateMyProfile)

	put := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPut, "/api/users/me", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	resp := put(`{"name":"Iris","avatar_url":"https://i.pravatar.cc/150?u=iris"}`)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// A second sync refreshes the same row.
	resp = put(`{"name":"Iris W."}`)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, db.First(&user, 7).Error)
	assert.Equal(t, "Iris W.", user.Name)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Missing name is rejected.
	resp = put(`{"name":"  "}`)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
