package auth

import "github.com/gofiber/fiber/v2"

// Config holds the middleware configuration.
type Config struct {
	// ApiKey is the shared secret. Empty disables the check.
	ApiKey string
}

// New returns a middleware that rejects requests without the configured
// api key. The key is accepted either as the X-Api-Key header or as the
// "code" query parameter, so cron-style callers can put it in the URL.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}
		if c.Get("X-Api-Key") == cfg.ApiKey || c.Query("code") == cfg.ApiKey {
			return c.Next()
		}
		return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
	}
}
