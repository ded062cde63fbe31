package middleware

import (
	"github.com/gofiber/fiber/v2"

	"solar-projects-backend/config"
	ratelimit "solar-projects-backend/lib/rate-limit"
	apimodels "solar-projects-backend/models/api"
)

// RateLimit keys the limiter by user when authenticated and by client
// IP otherwise.
func RateLimit() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if config.Conf.RateLimit.Enabled == nil || !*config.Conf.RateLimit.Enabled {
			return ctx.Next()
		}
		if ratelimit.Instance == nil {
			return ctx.Next()
		}
		key := GetUserID(ctx)
		if key == "" {
			key = ctx.IP()
		}
		allowed, err := ratelimit.Instance.Allow(ctx.UserContext(), key)
		if err != nil {
			return ctx.Next()
		}
		if !allowed {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(apimodels.NewError("too many requests"))
		}
		return ctx.Next()
	}
}
