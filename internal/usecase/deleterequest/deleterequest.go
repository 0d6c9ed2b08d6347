package deleterequest

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/repo"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/usecase"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/logger"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/types/errs"
	"github.com/google/uuid"
)

const msgAttachmentNotBase64 = "attachment content must be base64"

type DeleteRequestUseCase struct {
	requests    repo.DeleteRequestRepo
	attachments repo.AttachmentRepo
	outbox      repo.OutboxDeleteRequestRepo
	transactor  repo.Transactor
	mailer      usecase.MailUseCase

	logger logger.Interface
}

func New(
	requests repo.DeleteRequestRepo,
	attachments repo.AttachmentRepo,
	outbox repo.OutboxDeleteRequestRepo,
	transactor repo.Transactor,
	mailer usecase.MailUseCase,
	l logger.Interface,
) *DeleteRequestUseCase {
	return &DeleteRequestUseCase{
		requests:    requests,
		attachments: attachments,
		outbox:      outbox,
		transactor:  transactor,
		mailer:      mailer,
		logger:      l,
	}
}

// Submit persists a new queued request together with its created event.
func (uc *DeleteRequestUseCase) Submit(ctx context.Context, payload entity.DeleteRequestPayload) (*entity.DeleteRequest, error) {
	req, err := payload.Sanitize()
	if err != nil {
		return nil, fmt.Errorf("DeleteRequestUseCase - Submit - payload.Sanitize: %w", err)
	}

	request := &entity.DeleteRequest{
		ID:         uuid.NewString(),
		Facility:   req.Facility,
		RecordID:   req.RecordID,
		RecordDate: req.RecordDate,
		Note:       req.Note,
		Status:     entity.Queued,
		CreatedAt:  time.Now(),
	}

	// 1. вложение кладём в S3 до транзакции
	if req.Attachment != nil {
		data, err := base64.StdEncoding.DecodeString(req.Attachment.Content)
		if err != nil {
			return nil, fmt.Errorf("DeleteRequestUseCase - Submit: %w", &errs.ValidationError{Message: msgAttachmentNotBase64})
		}

		key := fmt.Sprintf("attachments/%s", request.ID)
		err = uc.attachments.Upload(ctx, key, data, req.Attachment.MimeType)
		if err != nil {
			return nil, fmt.Errorf("DeleteRequestUseCase - Submit - uc.attachments.Upload: %w", err)
		}

		request.AttachmentKey = &key
		request.AttachmentFilename = &req.Attachment.Filename
		request.AttachmentMimeType = &req.Attachment.MimeType
	}

	// 2. в единой транзакции
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		// 2.1 сама заявка
		if err := uc.requests.Create(ctx, request); err != nil {
			return fmt.Errorf("DeleteRequestUseCase - Submit - uc.requests.Create: %w", err)
		}

		// 2.2 событие для триггера отправки
		event, err := newCreatedEvent(request.ID)
		if err != nil {
			return fmt.Errorf("DeleteRequestUseCase - Submit - newCreatedEvent: %w", err)
		}
		if err := uc.outbox.Create(ctx, event); err != nil {
			return fmt.Errorf("DeleteRequestUseCase - Submit - uc.outbox.Create: %w", err)
		}

		return nil
	})

	// если транзакция не прошла
	if err != nil {
		// удаляем загруженное вложение
		if request.HasAttachment() {
			deleteErr := uc.attachments.Delete(ctx, *request.AttachmentKey)
			if deleteErr != nil {
				uc.logger.Error(deleteErr, "DeleteRequestUseCase - Submit - uc.attachments.Delete")
			}
		}

		return nil, fmt.Errorf("DeleteRequestUseCase - Submit - uc.transactor.WithinTransaction: %w", err)
	}

	submittedTotal.Inc()

	return request, nil
}

func (uc *DeleteRequestUseCase) Get(ctx context.Context, id string) (*entity.DeleteRequest, error) {
	request, err := uc.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("DeleteRequestUseCase - Get - uc.requests.GetByID: %w", err)
	}

	return request, nil
}
