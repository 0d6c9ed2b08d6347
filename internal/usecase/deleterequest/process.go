package deleterequest

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/types/errs"
)

// Process loads the record and runs one processing attempt on it.
// errs.ErrRecordNotFound is returned untouched (wrapped) when id is unknown.
func (uc *DeleteRequestUseCase) Process(ctx context.Context, id string, force bool) (entity.ProcessResult, error) {
	request, err := uc.requests.GetByID(ctx, id)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("DeleteRequestUseCase - Process - uc.requests.GetByID: %w", err)
	}

	return uc.ProcessRecord(ctx, request, force)
}

// ProcessRecord drives the record through one attempt:
// annotate, configuration check, sent short-circuit, sanitize, processing, send.
// Outcomes are recorded on the record; an error is returned only when the
// record itself could not be updated.
func (uc *DeleteRequestUseCase) ProcessRecord(ctx context.Context, request *entity.DeleteRequest, force bool) (entity.ProcessResult, error) {
	// 1. учёт попытки, ошибка не критична
	err := uc.requests.Annotate(ctx, request.ID)
	if err != nil {
		uc.logger.Error(err, "DeleteRequestUseCase - ProcessRecord - uc.requests.Annotate")
	}

	// 2. конфигурация проверяется раньше статуса заявки
	err = uc.mailer.CheckConfigured()
	if err != nil {
		return uc.fail(ctx, request, errs.DeliveryReason(err))
	}

	// 3. уже отправлено
	if request.Status == entity.Sent && !force {
		processedTotal.WithLabelValues(resultSkipped).Inc()

		return entity.ProcessResult{Status: entity.Sent, Skipped: true}, nil
	}

	// 4. собираем и проверяем данные заявки
	payload, err := uc.loadPayload(ctx, request)
	if err != nil {
		uc.logger.Error(err, "DeleteRequestUseCase - ProcessRecord - uc.loadPayload")

		return uc.fail(ctx, request, errs.DeliveryReason(err))
	}

	req, err := payload.Sanitize()
	if err != nil {
		return uc.fail(ctx, request, errs.DeliveryReason(err))
	}

	// 5. processing, только из ожидаемого статуса
	if !request.Status.CanTransitionTo(entity.Processing, force) {
		uc.logger.Warn("delete request %s: unexpected transition %s -> %s, skipping", request.ID, request.Status, entity.Processing)
		processedTotal.WithLabelValues(resultSkipped).Inc()

		return entity.ProcessResult{Status: request.Status, Skipped: true}, nil
	}

	err = uc.requests.MarkProcessing(ctx, request.ID, request.Status)
	if err != nil {
		if errors.Is(err, errs.ErrStatusConflict) {
			uc.logger.Warn("delete request %s: status changed concurrently, skipping", request.ID)
			processedTotal.WithLabelValues(resultSkipped).Inc()

			return entity.ProcessResult{Status: entity.Processing, Skipped: true}, nil
		}

		uc.logger.Error(err, "DeleteRequestUseCase - ProcessRecord - uc.requests.MarkProcessing")

		return uc.fail(ctx, request, errs.DeliveryReason(err))
	}

	// 6. отправка
	err = uc.mailer.Send(ctx, req)
	if err != nil {
		uc.logger.Error(err, "DeleteRequestUseCase - ProcessRecord - uc.mailer.Send")

		return uc.fail(ctx, request, errs.DeliveryReason(err))
	}

	err = uc.requests.MarkSent(ctx, request.ID)
	if err != nil {
		uc.logger.Error(err, "DeleteRequestUseCase - ProcessRecord - uc.requests.MarkSent")

		return uc.fail(ctx, request, errs.DeliveryReason(err))
	}

	processedTotal.WithLabelValues(string(entity.Sent)).Inc()

	return entity.ProcessResult{Status: entity.Sent}, nil
}

// loadPayload rebuilds the payload, pulling the attachment blob from storage.
func (uc *DeleteRequestUseCase) loadPayload(ctx context.Context, request *entity.DeleteRequest) (entity.DeleteRequestPayload, error) {
	if !request.HasAttachment() {
		return request.Payload(""), nil
	}

	data, err := uc.attachments.Download(ctx, *request.AttachmentKey)
	if err != nil {
		return entity.DeleteRequestPayload{}, &errs.DeliveryError{
			Message: fmt.Sprintf("attachment %s is unavailable", *request.AttachmentKey),
			Err:     err,
		}
	}

	return request.Payload(base64.StdEncoding.EncodeToString(data)), nil
}

func (uc *DeleteRequestUseCase) fail(ctx context.Context, request *entity.DeleteRequest, reason string) (entity.ProcessResult, error) {
	err := uc.requests.MarkError(ctx, request.ID, reason)
	if err != nil {
		return entity.ProcessResult{}, fmt.Errorf("DeleteRequestUseCase - fail - uc.requests.MarkError: %w", err)
	}

	processedTotal.WithLabelValues(string(entity.Error)).Inc()

	return entity.ProcessResult{Status: entity.Error, Error: reason}, nil
}
