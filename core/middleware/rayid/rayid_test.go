package rayid_test

import (
	"net/http/httptest"
	"testing"

	"column-sync/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(seen *string) *fiber.App {
	app := fiber.New()
	app.Use(rayid.New())
	app.Get("/", func(c *fiber.Ctx) error {
		*seen = rayid.Get(c)
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestRayID_Generated(t *testing.T) {
	var seen string
	resp, err := setupApp(&seen).Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	header := resp.Header.Get(rayid.HeaderName)
	assert.Equal(t, seen, header)
	_, err = uuid.Parse(header)
	assert.NoError(t, err)
}

func TestRayID_Propagated(t *testing.T) {
	var seen string
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(rayid.HeaderName, "upstream-42")

	resp, err := setupApp(&seen).Test(req)
	require.NoError(t, err)
	assert.Equal(t, "upstream-42", seen)
	assert.Equal(t, "upstream-42", resp.Header.Get(rayid.HeaderName))
}
