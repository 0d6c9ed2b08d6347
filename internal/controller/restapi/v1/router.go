package v1

import (
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/usecase"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func NewDeleteRequestRoutes(apiV1Group fiber.Router, dr usecase.DeleteRequestUseCase, mail usecase.MailUseCase, l logger.Interface) {
	r := newV1(dr, mail, l)

	{
		// API
		apiV1Group.Post("/send", r.send)
		apiV1Group.All("/send", r.methodNotAllowed)
		apiV1Group.Post("/reprocess", r.reprocess)
		apiV1Group.All("/reprocess", r.methodNotAllowed)
		apiV1Group.Post("/delete-requests", r.createDeleteRequest)
		apiV1Group.Get("/delete-requests/:id", r.getDeleteRequest)

		// UI
		apiV1Group.Get("/", r.showUI)
	}
}

// NewLegacyRoutes serves the endpoint names older clients still call.
func NewLegacyRoutes(router fiber.Router, dr usecase.DeleteRequestUseCase, mail usecase.MailUseCase, l logger.Interface) {
	r := newV1(dr, mail, l)

	router.Post("/sendDeleteRequest", r.send)
	router.All("/sendDeleteRequest", r.methodNotAllowed)
	router.Post("/reprocessDeleteRequest", r.reprocess)
	router.All("/reprocessDeleteRequest", r.methodNotAllowed)
}

func newV1(dr usecase.DeleteRequestUseCase, mail usecase.MailUseCase, l logger.Interface) *V1 {
	return &V1{
		dr:     dr,
		mail:   mail,
		v:      validator.New(validator.WithRequiredStructEnabled()),
		logger: l,
	}
}
