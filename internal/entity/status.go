package entity

import "strings"

// Status is the delivery status of a delete request.
type Status string

const (
	Queued     Status = "queued"
	Processing Status = "processing"
	Sent       Status = "sent"
	Error      Status = "error"
)

// ParseStatus normalizes a stored status. Records are created without a
// status, which means queued.
func ParseStatus(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return Queued
	}

	return Status(s)
}

func (s Status) Known() bool {
	switch s {
	case Queued, Processing, Sent, Error:
		return true
	}

	return false
}

// CanTransitionTo reports whether s -> next is an allowed transition.
//
//	queued     -> processing
//	error      -> processing
//	sent       -> processing  (forced only)
//	processing -> processing  (forced only)
//	processing -> sent
//	any        -> error
func (s Status) CanTransitionTo(next Status, force bool) bool {
	if next == Error {
		return true
	}

	switch s {
	case Queued, Error:
		return next == Processing
	case Processing:
		return next == Sent || (next == Processing && force)
	case Sent:
		return next == Processing && force
	default:
		return next == Processing && force
	}
}

// OutboxStatus is the relay status of an outbox event.
type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "pending"
	OutboxProcessing OutboxStatus = "processing"
	OutboxProcessed  OutboxStatus = "processed"
	OutboxFailed     OutboxStatus = "failed"
)
