package entity

import (
	"time"

	"github.com/google/uuid"
)

const EventDeleteRequestCreated = "delete_request.created"

type OutboxEvent struct {
	ID          uuid.UUID    `json:"id"`
	AggregateID string       `json:"aggregate_id"` // id заявки
	EventType   string       `json:"event_type"`
	Payload     []byte       `json:"payload"`
	Status      OutboxStatus `json:"status"` // pending, processing, processed, failed
	CreatedAt   time.Time    `json:"created_at"`
	ProcessedAt *time.Time   `json:"processed_at,omitempty"`
	RetryCount  int          `json:"retry_count"`
}

// DeleteRequestCreatedPayload is the body of a delete_request.created event.
type DeleteRequestCreatedPayload struct {
	ID string `json:"id"`
}
