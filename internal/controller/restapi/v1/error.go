package v1

import (
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/controller/restapi/v1/response"
	"github.com/gofiber/fiber/v2"
)

func errorResponse(ctx *fiber.Ctx, code int, msg string) error {
	return ctx.Status(code).JSON(response.Error{Error: msg})
}

// @Summary 	Method not allowed
// @Description Only POST (and CORS OPTIONS) is accepted
// @Tags 		delete-requests
// @Produce 	json
// @Failure 	405 {object} response.Error
func (r *V1) methodNotAllowed(ctx *fiber.Ctx) error {
	ctx.Set(fiber.HeaderAllow, fiber.MethodPost)

	return errorResponse(ctx, fiber.StatusMethodNotAllowed, "Method not allowed")
}
