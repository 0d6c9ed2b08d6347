package mail

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/logger"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/types/errs"
	"gopkg.in/gomail.v2"
)

const smtpName = "smtp"

type SMTPSender struct {
	dialer *gomail.Dialer

	logger logger.Interface
}

func NewSMTPSender(host string, port int, user, password string, insecureSkipVerify bool, l logger.Interface) *SMTPSender {
	d := gomail.NewDialer(host, port, user, password)
	if insecureSkipVerify {
		l.Warn("InsecureSkipVerify is enabled for SMTP host %s", host)
		d.TLSConfig = &tls.Config{ServerName: host, InsecureSkipVerify: true} //nolint:gosec // opt-in via config
	}

	return &SMTPSender{
		dialer: d,
		logger: l,
	}
}

func (s *SMTPSender) Name() string {
	return smtpName
}

func (s *SMTPSender) Send(ctx context.Context, msg *entity.OutboundMessage) error {
	m, err := buildSMTPMessage(msg)
	if err != nil {
		return err
	}

	// gomail не принимает контекст, поэтому ждём либо отправку, либо отмену
	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		return &errs.DeliveryError{Message: ctx.Err().Error(), Err: ctx.Err()}
	case err = <-done:
	}

	if err != nil {
		s.logger.Warn("smtp send failed, host=%s, error=%v", s.dialer.Host, err)

		return &errs.DeliveryError{Message: err.Error(), Err: err}
	}

	return nil
}

func buildSMTPMessage(msg *entity.OutboundMessage) (*gomail.Message, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	for _, a := range msg.Attachments {
		data, err := base64.StdEncoding.DecodeString(a.Content)
		if err != nil {
			return nil, &errs.DeliveryError{
				Message: fmt.Sprintf("attachment %s is not valid base64", a.Filename),
				Err:     err,
			}
		}

		m.Attach(a.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, werr := w.Write(data)

				return werr
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {a.MimeType}}),
		)
	}

	return m, nil
}
