package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/controller/restapi/v1/request"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
)

// @Summary  	Reprocess a delete request
// @Description Runs one processing attempt on a persisted request. Already sent requests are skipped unless force is true.
// @Description A request stuck in processing (or with an unknown stored status) is also skipped; pass force to resend it.
// @Tags 		delete-requests
// @Accept 		json
// @Produce 	json
// @Param 		request body request.Reprocess true "Target request"
// @Success 	200 {object} entity.ProcessResult
// @Failure 	400 {object} response.Error "Missing docId"
// @Failure 	404 {object} response.Error "Delete request not found"
// @Failure 	405 {object} response.Error "Method not allowed"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/reprocess [post]
func (r *V1) reprocess(ctx *fiber.Ctx) error {
	err := r.mail.CheckCredentials()
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, errs.DeliveryReason(err))
	}

	// тело разбирается как JSON независимо от Content-Type
	var body request.Reprocess
	if raw := ctx.Body(); len(raw) > 0 {
		if err = json.Unmarshal(raw, &body); err != nil {
			r.logger.Warn("restapi - v1 - reprocess - body is not JSON: %v", err)
		}
	}

	docID := body.ID()
	if docID == "" {
		return errorResponse(ctx, http.StatusBadRequest, "Missing docId")
	}

	result, err := r.dr.Process(ctx.UserContext(), docID, body.Forced())
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "Delete request not found")
		}
		r.logger.Error(err, "restapi - v1 - reprocess")

		return errorResponse(ctx, http.StatusInternalServerError, "failed to process delete request")
	}

	return ctx.Status(http.StatusOK).JSON(result)
}
