package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andreyxaxa/Deletion-Request-Mailer/config"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/infrastructure"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/logger"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/types/errs"
)

const (
	MsgNoCredentials = "mail delivery API key is not configured"
	MsgNoAddresses   = "mail sender/recipient is not configured"
	MsgNoRecipients  = "no valid recipients"
)

type MailUseCase struct {
	sender infrastructure.MailSender
	cfg    config.Mail

	logger logger.Interface
}

// New -. sender may be nil when no provider credentials are configured;
// every send then fails with a configuration error.
func New(sender infrastructure.MailSender, cfg config.Mail, l logger.Interface) *MailUseCase {
	return &MailUseCase{
		sender: sender,
		cfg:    cfg,
		logger: l,
	}
}

// CheckCredentials reports a missing provider credential only.
func (uc *MailUseCase) CheckCredentials() error {
	if uc.sender == nil || !uc.cfg.HasCredentials() {
		return &errs.ConfigurationError{Message: MsgNoCredentials}
	}

	return nil
}

// CheckConfigured returns *errs.ConfigurationError when delivery is disabled.
func (uc *MailUseCase) CheckConfigured() error {
	if err := uc.CheckCredentials(); err != nil {
		return err
	}

	if !uc.cfg.HasAddresses() {
		return &errs.ConfigurationError{Message: MsgNoAddresses}
	}

	return nil
}

// SendPayload is the synchronous path: configuration, then validation, then delivery.
func (uc *MailUseCase) SendPayload(ctx context.Context, payload entity.DeleteRequestPayload) error {
	err := uc.CheckConfigured()
	if err != nil {
		return fmt.Errorf("MailUseCase - SendPayload - uc.CheckConfigured: %w", err)
	}

	req, err := payload.Sanitize()
	if err != nil {
		return fmt.Errorf("MailUseCase - SendPayload - payload.Sanitize: %w", err)
	}

	return uc.Send(ctx, req)
}

// Send delivers an already sanitized request to the configured recipients.
func (uc *MailUseCase) Send(ctx context.Context, req entity.SanitizedRequest) error {
	if uc.sender == nil {
		return fmt.Errorf("MailUseCase - Send: %w", &errs.ConfigurationError{Message: MsgNoCredentials})
	}

	// 1. получатели проверяются перед каждой отправкой
	to := ParseRecipients(uc.cfg.To)
	if len(to) == 0 {
		return fmt.Errorf("MailUseCase - Send: %w", &errs.DeliveryError{Message: MsgNoRecipients})
	}

	// 2. собираем письмо
	body := BuildBody(req)
	msg := &entity.OutboundMessage{
		To:      to,
		From:    uc.cfg.From,
		Subject: BuildSubject(req),
		Text:    body.Text,
		HTML:    body.HTML,
	}
	if req.Attachment != nil {
		msg.Attachments = []entity.Attachment{*req.Attachment}
	}

	// 3. отправляем
	provider := uc.sender.Name()
	start := time.Now()
	err := uc.sender.Send(ctx, msg)
	deliveryDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err != nil {
		deliveriesTotal.WithLabelValues(provider, resultError).Inc()

		var deliveryErr *errs.DeliveryError
		if !errors.As(err, &deliveryErr) {
			err = &errs.DeliveryError{Message: err.Error(), Err: err}
		}

		return fmt.Errorf("MailUseCase - Send - uc.sender.Send: %w", err)
	}

	deliveriesTotal.WithLabelValues(provider, resultSent).Inc()
	uc.logger.Debug("delete request mail sent, facility=%s, recipients=%d", req.Facility, len(to))

	return nil
}
