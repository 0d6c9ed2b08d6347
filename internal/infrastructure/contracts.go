package infrastructure

import (
	"context"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
	"github.com/segmentio/kafka-go"
)

type (
	EventsSender interface {
		SendEvents(ctx context.Context, events []*entity.OutboxEvent) error
		Close() error
	}

	EventsReceiver interface {
		ReadEvent(ctx context.Context) (kafka.Message, error)
		CommitEvent(ctx context.Context, event kafka.Message) error
		Close() error
	}

	// MailSender delivers one message through an email provider. Failures
	// carry provider details as *errs.DeliveryError where available.
	MailSender interface {
		Send(ctx context.Context, msg *entity.OutboundMessage) error
		Name() string
	}
)
