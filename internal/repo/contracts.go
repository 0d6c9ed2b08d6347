package repo

import (
	"context"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
	"github.com/google/uuid"
)

type (
	DeleteRequestRepo interface {
		Create(ctx context.Context, request *entity.DeleteRequest) error
		GetByID(ctx context.Context, id string) (*entity.DeleteRequest, error)
		Annotate(ctx context.Context, id string) error
		MarkProcessing(ctx context.Context, id string, prior entity.Status) error
		MarkSent(ctx context.Context, id string) error
		MarkError(ctx context.Context, id string, reason string) error
	}

	AttachmentRepo interface {
		Upload(ctx context.Context, key string, data []byte, contentType string) error
		Download(ctx context.Context, key string) ([]byte, error)
		Delete(ctx context.Context, key string) error
	}

	OutboxDeleteRequestRepo interface {
		Create(ctx context.Context, event *entity.OutboxEvent) error
		GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkAsProcessedBatch(ctx context.Context, IDs uuid.UUIDs) error
		IncrementRetryCountBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		DeleteOldProcessedAndFailed(ctx context.Context) (int64, error)
	}

	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}
)
