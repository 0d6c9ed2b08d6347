package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
)

// @Summary  	Create delete request
// @Description Stores the request (attachment goes to S3) and queues it for mailing
// @Tags 		delete-requests
// @Accept 		json
// @Produce 	json
// @Param 		request body request.DeleteRequest true "Delete request"
// @Success 	202 {object} response.Submitted
// @Failure 	400 {object} response.Error "Validation failed"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/delete-requests [post]
func (r *V1) createDeleteRequest(ctx *fiber.Ctx) error {
	body, ok := r.decodeDeleteRequest(ctx, "createDeleteRequest")
	if !ok {
		return errorResponse(ctx, http.StatusBadRequest, msgAttachmentNotBase64)
	}

	request, err := r.dr.Submit(ctx.UserContext(), body.Payload())
	if err != nil {
		var validationErr *errs.ValidationError
		if errors.As(err, &validationErr) {
			return errorResponse(ctx, http.StatusBadRequest, validationErr.Message)
		}
		r.logger.Error(err, "restapi - v1 - createDeleteRequest")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusAccepted).JSON(response.Submitted{
		ID:     request.ID,
		Status: string(request.Status),
	})
}

// @Summary 	Get delete request
// @Description Returns the stored request with its delivery status
// @Tags 		delete-requests
// @Produce 	json
// @Param 		id path string true "Delete request ID"
// @Success 	200 {object} entity.DeleteRequest
// @Failure 	404 {object} response.Error "Delete request not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/delete-requests/{id} [get]
func (r *V1) getDeleteRequest(ctx *fiber.Ctx) error {
	id := strings.TrimSpace(ctx.Params("id"))

	request, err := r.dr.Get(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "Delete request not found")
		}
		r.logger.Error(err, "restapi - v1 - getDeleteRequest")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusOK).JSON(request)
}
