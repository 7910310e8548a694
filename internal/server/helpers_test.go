package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"nocturne/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthorized", models.NewUnauthorizedError("nope"), http.StatusUnauthorized},
		{"budget exceeded", models.NewBudgetExceededError("spent"), http.StatusConflict},
		{"not found", models.NewNotFoundError("Post", "x"), http.StatusNotFound},
		{"validation", models.NewValidationError("bad"), http.StatusBadRequest},
		{"internal", models.NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, appErrorStatus(tt.err))
		})
	}
}

func TestOriginAddress(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	var got string
	app.Get("/probe", func(c *fiber.Ctx) error {
		got = originAddress(c)
		return c.SendStatus(fiber.StatusOK)
	})

	probe := func(forwardedFor string) string {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		if forwardedFor != "" {
			req.Header.Set("X-Forwarded-For", forwardedFor)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		return got
	}

	// First hop of the forwarded chain wins.
	assert.Equal(t, "203.0.113.7", probe("203.0.113.7"))
	assert.Equal(t, "203.0.113.7", probe("203.0.113.7, 10.0.0.1, 10.0.0.2"))

	// Without the header, the socket peer is used.
	assert.NotEmpty(t, probe(""))
}

func TestSlugParam_RejectsBlankSegments(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)
	app := newTestApp(0)
	app.Get("/api/stats/:category?/:slug?", s.GetStats)

	for _, target := range []string{
		"/api/stats",
		"/api/stats/poetry",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
		_ = resp.Body.Close()
	}
}
