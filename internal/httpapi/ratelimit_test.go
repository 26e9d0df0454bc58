package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware_AllowsWithinBurst(t *testing.T) {
	app := fiber.New()
	app.Use(NewRateLimitMiddleware(RateLimitConfig{RPS: 1, Burst: 3}))
	app.Get("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i)
	}
}

func TestRateLimitMiddleware_BlocksOverBurst(t *testing.T) {
	app := fiber.New()
	app.Use(NewRateLimitMiddleware(RateLimitConfig{RPS: 1, Burst: 2}))
	app.Get("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })

	var last *http.Response
	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
		require.NoError(t, err)
		last = resp
	}
	assert.Equal(t, http.StatusTooManyRequests, last.StatusCode)
}

func TestRateLimitMiddleware_SkipsProbes(t *testing.T) {
	app := fiber.New()
	app.Use(NewRateLimitMiddleware(RateLimitConfig{RPS: 1, Burst: 1}))
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for i := 0; i < 10; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
