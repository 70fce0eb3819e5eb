package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// LocalKey is the fiber.Ctx local holding the request's ray ID.
	LocalKey = "ray_id"
	// HeaderName is the response header echoing the ray ID.
	HeaderName = "X-Ray-ID"
)

// New returns a handler assigning every request a ray ID. An incoming
// X-Ray-ID header is kept so callers can correlate their own logs.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}

// Get returns the ray ID of the request, or "" outside the middleware.
func Get(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalKey).(string)
	return id
}
