package handlers

import "github.com/gofiber/fiber/v2"

// Every service answers the same envelope: {success, data?, error?,
// cacheVersion?}. Handled failures (validation, not found) keep HTTP 200 and
// carry the message in the envelope; callers only ever read the envelope.

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func okVersion(c *fiber.Ctx, version string) error {
	return c.JSON(fiber.Map{"success": true, "cacheVersion": version})
}

func fail(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"success": false, "error": msg})
}

// ping is the default action every service answers on its root path.
func Ping(service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "data": service})
	}
}
