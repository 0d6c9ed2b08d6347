package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	allowMethods        = "POST, OPTIONS"
	defaultAllowHeaders = fiber.HeaderContentType
)

// CORS reflects the caller's origin and answers every OPTIONS request with 204.
// fiber's cors middleware only short-circuits real preflights and never sends
// Allow-Methods on simple requests, which browsers calling these endpoints rely on.
func CORS() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		origin := ctx.Get(fiber.HeaderOrigin)
		if origin == "" || origin == "null" {
			ctx.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		} else {
			ctx.Set(fiber.HeaderAccessControlAllowOrigin, origin)
			ctx.Vary(fiber.HeaderOrigin)
		}

		ctx.Set(fiber.HeaderAccessControlAllowMethods, allowMethods)

		if requested := ctx.Get(fiber.HeaderAccessControlRequestHeaders); requested != "" {
			ctx.Set(fiber.HeaderAccessControlAllowHeaders, requested)
		} else {
			ctx.Set(fiber.HeaderAccessControlAllowHeaders, defaultAllowHeaders)
		}

		if ctx.Method() == fiber.MethodOptions {
			return ctx.SendStatus(fiber.StatusNoContent)
		}

		return ctx.Next()
	}
}
