package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	MailProviderSendGrid = "sendgrid"
	MailProviderSMTP     = "smtp"
)

type (
	Config struct {
		HTTP            HTTP
		Log             Log
		PG              PG
		S3              S3
		OutboxRelay     OutboxRelay
		Kafka           Kafka
		KafkaController KafkaController
		Mail            Mail
		Metrics         Metrics
		Swagger         Swagger
	}

	HTTP struct {
		Port           string `env:"HTTP_PORT,required"`
		UsePreforkMode bool   `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
		BodyLimit      int    `env:"HTTP_BODY_LIMIT" envDefault:"16777216"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required"`
	}

	PG struct {
		PoolMax int    `env:"PG_POOL_MAX,required"`
		URL     string `env:"PG_URL,required"`
	}

	S3 struct {
		Endpoint       string        `env:"S3_ENDPOINT,required"`
		AccessKey      string        `env:"S3_ACCESS_KEY,required"`
		SecretKey      string        `env:"S3_SECRET_KEY,required"`
		Bucket         string        `env:"S3_BUCKET,required"`
		CfgLoadTimeout time.Duration `env:"S3_LOAD_CFG_TIMEOUT" envDefault:"10s"`
	}

	Kafka struct {
		Brokers []string `env:"KAFKA_BROKERS,required"`
		GroupID string   `env:"KAFKA_GROUP_ID,required"`
		Topic   string   `env:"KAFKA_TOPIC,required"`
	}

	OutboxRelay struct {
		PollInterval        time.Duration `env:"OUTBOX_RELAY_POLL_INTERVAL" envDefault:"2s"`
		MarkFailedInterval  time.Duration `env:"OUTBOX_RELAY_MARK_FAILED_INTERVAL" envDefault:"2m"`
		CleanupInterval     time.Duration `env:"OUTBOX_RELAY_CLEANUP_INTERVAL" envDefault:"24h"`
		ProcessBatchTimeout time.Duration `env:"OUTBOX_RELAY_PROCESS_BATCH_TIMEOUT" envDefault:"15s"`
		ShutdownTimeout     time.Duration `env:"OUTBOX_RELAY_SHUTDOWN_TIMEOUT" envDefault:"5s"`
		BatchSize           int           `env:"OUTBOX_RELAY_BATCH_SIZE" envDefault:"100"`
		MaxRetries          int           `env:"OUTBOX_RELAY_MAX_RETRIES" envDefault:"3"`
	}

	KafkaController struct {
		CommitTimeout   time.Duration `env:"KAFKA_CONTROLLER_COMMIT_TIMEOUT" envDefault:"2s"`
		ProcessTimeout  time.Duration `env:"KAFKA_CONTROLLER_PROCESS_TIMEOUT" envDefault:"30s"` // чтение заявки, вложение из S3, отправка письма, запись статуса
		Workers         int           `env:"KAFKA_CONTROLLER_WORKERS" envDefault:"4"`
		ShutdownTimeout time.Duration `env:"KAFKA_CONTROLLER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	}

	// Mail is read once at startup. A missing provider credential is not a
	// startup error: delivery is disabled and every send fails with a
	// configuration message instead.
	Mail struct {
		Provider string `env:"MAIL_PROVIDER" envDefault:"sendgrid"`
		From     string `env:"MAIL_FROM"`
		To       string `env:"MAIL_TO"` // comma-separated

		SendGrid SendGrid
		SMTP     SMTP
	}

	SendGrid struct {
		APIKey string `env:"SENDGRID_API_KEY"`
		Host   string `env:"SENDGRID_HOST" envDefault:"https://api.sendgrid.com"`
	}

	SMTP struct {
		Host               string `env:"SMTP_HOST"`
		Port               int    `env:"SMTP_PORT" envDefault:"587"`
		User               string `env:"SMTP_USER"`
		Password           string `env:"SMTP_PASSWORD"`
		InsecureSkipVerify bool   `env:"SMTP_INSECURE_SKIP_VERIFY" envDefault:"false"`
	}

	Metrics struct {
		Enabled bool `env:"METRICS_ENABLED" envDefault:"true"`
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	cfg.Mail.Provider = strings.ToLower(strings.TrimSpace(cfg.Mail.Provider))
	switch cfg.Mail.Provider {
	case MailProviderSendGrid, MailProviderSMTP:
	default:
		return nil, fmt.Errorf("config error: unknown MAIL_PROVIDER %q", cfg.Mail.Provider)
	}

	return cfg, nil
}

// HasCredentials reports whether the selected provider can authenticate.
func (m Mail) HasCredentials() bool {
	switch m.Provider {
	case MailProviderSMTP:
		return strings.TrimSpace(m.SMTP.Host) != ""
	default:
		return strings.TrimSpace(m.SendGrid.APIKey) != ""
	}
}

// HasAddresses reports whether sender and recipient settings are present.
// The recipient string may still parse to an empty list.
func (m Mail) HasAddresses() bool {
	return strings.TrimSpace(m.From) != "" && strings.TrimSpace(m.To) != ""
}
