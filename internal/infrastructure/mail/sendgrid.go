package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/logger"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/types/errs"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendGridName     = "sendgrid"
	sendGridEndpoint = "/v3/mail/send"
)

type SendGridSender struct {
	apiKey string
	host   string

	logger logger.Interface
}

func NewSendGridSender(apiKey, host string, l logger.Interface) *SendGridSender {
	return &SendGridSender{
		apiKey: apiKey,
		host:   strings.TrimRight(host, "/"),
		logger: l,
	}
}

func (s *SendGridSender) Name() string {
	return sendGridName
}

func (s *SendGridSender) Send(ctx context.Context, msg *entity.OutboundMessage) error {
	request := sendgrid.GetRequest(s.apiKey, sendGridEndpoint, s.host)
	request.Method = http.MethodPost
	client := &sendgrid.Client{Request: request}

	resp, err := client.SendWithContext(ctx, buildSendGridMail(msg))
	if err != nil {
		return &errs.DeliveryError{Message: err.Error(), Err: err}
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		deliveryErr := &errs.DeliveryError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Details:    parseSendGridErrors(resp.Body),
		}
		s.logger.Warn("sendgrid rejected message, status=%d, reason=%s", resp.StatusCode, deliveryErr.Reason())

		return deliveryErr
	}

	return nil
}

func buildSendGridMail(msg *entity.OutboundMessage) *sgmail.SGMailV3 {
	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail("", msg.From))
	m.Subject = msg.Subject

	p := sgmail.NewPersonalization()
	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail("", to))
	}
	m.AddPersonalizations(p)

	// text/plain обязан идти первым
	m.AddContent(
		sgmail.NewContent("text/plain", msg.Text),
		sgmail.NewContent("text/html", msg.HTML),
	)

	for _, a := range msg.Attachments {
		att := sgmail.NewAttachment()
		att.SetContent(a.Content)
		att.SetType(a.MimeType)
		att.SetFilename(a.Filename)
		att.SetDisposition("attachment")
		m.AddAttachment(att)
	}

	return m
}

type sendGridErrorBody struct {
	Errors []struct {
		Message string `json:"message"`
		Field   string `json:"field,omitempty"`
	} `json:"errors"`
}

func parseSendGridErrors(body string) []string {
	var parsed sendGridErrorBody
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil
	}

	details := make([]string, 0, len(parsed.Errors))
	for _, e := range parsed.Errors {
		details = append(details, e.Message)
	}

	return details
}
