package deleterequest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
	"github.com/google/uuid"
)

func newCreatedEvent(requestID string) (*entity.OutboxEvent, error) {
	b, err := json.Marshal(entity.DeleteRequestCreatedPayload{ID: requestID})
	if err != nil {
		return nil, fmt.Errorf("newCreatedEvent - json.Marshal: %w", err)
	}

	return &entity.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: requestID,
		EventType:   entity.EventDeleteRequestCreated,
		Payload:     b,
		Status:      entity.OutboxPending,
		CreatedAt:   time.Now(),
		RetryCount:  0,
	}, nil
}

// ClaimPendingEvents selects pending events and marks them processing in one
// transaction, so concurrent relays never publish the same batch.
func (uc *DeleteRequestUseCase) ClaimPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error) {
	var events []*entity.OutboxEvent

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error

		events, err = uc.outbox.GetPendingEvents(ctx, maxRetries, limit)
		if err != nil {
			return fmt.Errorf("uc.outbox.GetPendingEvents: %w", err)
		}
		if len(events) == 0 {
			return nil
		}

		err = uc.outbox.MarkAsProcessingBatch(ctx, eventIDs(events))
		if err != nil {
			return fmt.Errorf("uc.outbox.MarkAsProcessingBatch: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("DeleteRequestUseCase - ClaimPendingEvents - %w", err)
	}

	return events, nil
}

func (uc *DeleteRequestUseCase) MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outbox.MarkAsProcessedBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("DeleteRequestUseCase - MarkAsProcessedBatch - uc.outbox.MarkAsProcessedBatch: %w", err)
	}

	return nil
}

func (uc *DeleteRequestUseCase) IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outbox.IncrementRetryCountBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("DeleteRequestUseCase - IncrementRetryCountBatch - uc.outbox.IncrementRetryCountBatch: %w", err)
	}

	return nil
}

func (uc *DeleteRequestUseCase) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	err := uc.outbox.MarkMaxRetriesAsFailed(ctx, maxRetries)
	if err != nil {
		return fmt.Errorf("DeleteRequestUseCase - MarkMaxRetriesAsFailed - uc.outbox.MarkMaxRetriesAsFailed: %w", err)
	}

	return nil
}

func (uc *DeleteRequestUseCase) CleanupOutbox(ctx context.Context) error {
	count, err := uc.outbox.DeleteOldProcessedAndFailed(ctx)
	if err != nil {
		return fmt.Errorf("DeleteRequestUseCase - CleanupOutbox - uc.outbox.DeleteOldProcessedAndFailed: %w", err)
	}

	if count > 0 {
		uc.logger.Info("deleted old outbox events, count = %d", count)
	}

	return nil
}

func eventIDs(events []*entity.OutboxEvent) uuid.UUIDs {
	IDs := make(uuid.UUIDs, 0, len(events))
	for _, event := range events {
		IDs = append(IDs, event.ID)
	}

	return IDs
}
