package usecase

import (
	"context"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
)

type (
	// MailUseCase builds and delivers deletion request emails.
	MailUseCase interface {
		CheckCredentials() error
		CheckConfigured() error
		Send(ctx context.Context, req entity.SanitizedRequest) error
		SendPayload(ctx context.Context, payload entity.DeleteRequestPayload) error
	}

	// DeleteRequestUseCase owns persisted delete requests and their delivery
	// status, plus the outbox that announces new requests.
	DeleteRequestUseCase interface {
		Submit(ctx context.Context, payload entity.DeleteRequestPayload) (*entity.DeleteRequest, error)
		Get(ctx context.Context, id string) (*entity.DeleteRequest, error)
		Process(ctx context.Context, id string, force bool) (entity.ProcessResult, error)
		ProcessRecord(ctx context.Context, record *entity.DeleteRequest, force bool) (entity.ProcessResult, error)

		ClaimPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error)
		MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error
		IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		CleanupOutbox(ctx context.Context) error
	}
)
