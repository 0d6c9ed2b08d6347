package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/andreyxaxa/Deletion-Request-Mailer/config"
	kafkactrl "github.com/andreyxaxa/Deletion-Request-Mailer/internal/controller/kafka"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/controller/restapi"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/controller/worker/outbox"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/infrastructure"
	infrakafka "github.com/andreyxaxa/Deletion-Request-Mailer/internal/infrastructure/kafka"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/infrastructure/mail"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/repo/persistent"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/usecase/deleterequest"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/usecase/mailer"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/httpserver"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/kafka/consumer"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/kafka/producer"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/logger"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/postgres"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/s3client"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)
	defer func() {
		_ = l.Sync()
	}()

	// Repository

	// s3
	s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
	defer s3Cancel()
	s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey,
		s3client.Bucket(cfg.S3.Bucket),
		s3client.Logger(l),
	)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
	}

	// postgres
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax), postgres.Logger(l))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pg.Close()

	// Use-Case

	// mail use-case
	mailUseCase := mailer.New(newMailSender(cfg.Mail, l), cfg.Mail, l)
	if err = mailUseCase.CheckConfigured(); err != nil {
		l.Warn("app - Run - mail delivery disabled: %v", err)
	}

	// delete request use-case
	deleteRequestUseCase := deleterequest.New(
		persistent.NewDeleteRequestRepo(pg),
		persistent.NewAttachmentRepo(s3c, cfg.S3.Bucket),
		persistent.NewOutboxDeleteRequestRepo(pg),
		pg,
		mailUseCase,
		l,
	)

	// Kafka Producer
	kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers, producer.Logger(l))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
	}

	// Outbox Relay Worker
	outboxRelayWorker := outbox.New(
		deleteRequestUseCase,
		infrakafka.NewEventProducer(kafkaProducer, cfg.Kafka.Topic),
		l,
		cfg.OutboxRelay.PollInterval,
		cfg.OutboxRelay.CleanupInterval,
		cfg.OutboxRelay.MarkFailedInterval,
		cfg.OutboxRelay.ProcessBatchTimeout,
		cfg.OutboxRelay.BatchSize,
		cfg.OutboxRelay.MaxRetries,
	)

	// Kafka Consumer
	kafkaConsumer, err := consumer.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, consumer.Logger(l))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - consumer.New: %w", err))
	}

	// Kafka as Controller
	kafkaController := kafkactrl.New(
		deleteRequestUseCase,
		infrakafka.NewEventConsumer(kafkaConsumer),
		l,
		cfg.KafkaController.CommitTimeout,
		cfg.KafkaController.ProcessTimeout,
		cfg.KafkaController.Workers,
	)

	// HTTP Server
	httpServer := httpserver.New(l,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.Prefork(cfg.HTTP.UsePreforkMode),
		httpserver.BodyLimit(cfg.HTTP.BodyLimit),
	)
	restapi.NewRouter(httpServer.App, cfg, deleteRequestUseCase, mailUseCase, l)

	// Start Components
	err = outboxRelayWorker.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - outboxRelayWorker.Start: %w", err))
	}
	err = kafkaController.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - kafkaController.Start: %w", err))
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	orlShutdownCtx, orlShutdownCancel := context.WithTimeout(ctx, cfg.OutboxRelay.ShutdownTimeout)
	defer orlShutdownCancel()
	err = outboxRelayWorker.Shutdown(orlShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - outboxRelayWorker.Shutdown: %w", err))
	}

	kcShutdownCtx, kcShutdownCancel := context.WithTimeout(ctx, cfg.KafkaController.ShutdownTimeout)
	defer kcShutdownCancel()
	err = kafkaController.Shutdown(kcShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - kafkaController.Shutdown: %w", err))
	}
}

// newMailSender picks the delivery provider. Without credentials there is no
// sender and every send reports a configuration error.
func newMailSender(cfg config.Mail, l logger.Interface) infrastructure.MailSender {
	if !cfg.HasCredentials() {
		return nil
	}

	switch cfg.Provider {
	case config.MailProviderSMTP:
		return mail.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.InsecureSkipVerify, l)
	default:
		return mail.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.Host, l)
	}
}
