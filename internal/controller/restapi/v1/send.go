package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/controller/restapi/v1/request"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/types/errs"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const msgAttachmentNotBase64 = "attachment content must be base64"

// @Summary  	Send delete request mail
// @Description Validates the payload and emails it synchronously. Nothing is persisted.
// @Tags 		delete-requests
// @Accept 		json
// @Produce 	json
// @Param 		request body request.DeleteRequest true "Delete request"
// @Success 	200 {object} response.Send
// @Failure 	400 {object} response.Error "Validation failed"
// @Failure 	405 {object} response.Error "Method not allowed"
// @Failure 	500 {object} response.Error "Mail delivery not configured or failed"
// @Router 		/v1/send [post]
func (r *V1) send(ctx *fiber.Ctx) error {
	// 1. конфигурация проверяется до разбора тела
	err := r.mail.CheckConfigured()
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, errs.DeliveryReason(err))
	}

	// 2. разбор и проверка формата
	body, ok := r.decodeDeleteRequest(ctx, "send")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, msgAttachmentNotBase64)
	}

	// 3. отправка
	err = r.mail.SendPayload(ctx.UserContext(), body.Payload())
	if err != nil {
		var validationErr *errs.ValidationError
		if errors.As(err, &validationErr) {
			return errorResponse(ctx, http.StatusBadRequest, validationErr.Message)
		}

		var configErr *errs.ConfigurationError
		if errors.As(err, &configErr) {
			return errorResponse(ctx, http.StatusInternalServerError, configErr.Message)
		}

		r.logger.Error(err, "restapi - v1 - send")

		return errorResponse(ctx, http.StatusInternalServerError, errs.DeliveryReason(err))
	}

	return ctx.Status(http.StatusOK).JSON(response.Send{Success: true})
}

// decodeDeleteRequest tolerates a missing or malformed body (it then fails
// field validation downstream). ok is false only when the attachment is not base64.
func (r *V1) decodeDeleteRequest(ctx *fiber.Ctx, handler string) (request.DeleteRequest, bool) {
	var body request.DeleteRequest

	if raw := ctx.Body(); len(raw) > 0 {
		err := json.Unmarshal(raw, &body)

		var typeErr *json.UnmarshalTypeError
		switch {
		case err == nil:
		case errors.As(err, &typeErr):
			// поля правильного типа уже разобраны, вложение не объектом игнорируется
			r.logger.Warn("restapi - v1 - %s - ignoring field %q: %v", handler, typeErr.Field, err)

			if strings.HasPrefix(typeErr.Field, "attachment") {
				body.Attachment = nil
			}
		default:
			r.logger.Warn("restapi - v1 - %s - body is not JSON: %v", handler, err)

			body = request.DeleteRequest{}
		}
	}

	err := r.v.StructCtx(ctx.UserContext(), body)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return body, false
		}

		r.logger.Error(err, "restapi - v1 - %s - r.v.StructCtx", handler)
	}

	return body, true
}
