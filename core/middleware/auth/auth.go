package auth

import (
	"github.com/gofiber/fiber/v2"
)

// HeaderName is the request header carrying the API key.
const HeaderName = "X-API-Key"

// Config holds the auth middleware settings.
type Config struct {
	// ApiKey is the expected key. Empty disables the check.
	ApiKey string
	// PublicPaths are served without a key.
	PublicPaths []string
}

// New returns a handler rejecting requests without a valid API key.
// The key is read from the X-API-Key header, then the api_key query value.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" || isPublic(c.Path(), cfg.PublicPaths) {
			return c.Next()
		}

		key := c.Get(HeaderName)
		if key == "" {
			key = c.Query("api_key")
		}
		if key != cfg.ApiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or missing API key",
			})
		}
		return c.Next()
	}
}

func isPublic(path string, public []string) bool {
	for _, p := range public {
		if p == path {
			return true
		}
	}
	return false
}
