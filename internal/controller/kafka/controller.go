package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/infrastructure"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/usecase"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/logger"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/types/errs"
	"github.com/segmentio/kafka-go"
)

const headerEventType = "event_type"

// errPoison marks messages that can never be processed; they are committed
// so the partition is not blocked by them.
var errPoison = errors.New("unprocessable message")

// KafkaController consumes delete_request.created events and runs one
// processing attempt for each.
type KafkaController struct {
	dr     usecase.DeleteRequestUseCase
	er     infrastructure.EventsReceiver
	logger logger.Interface

	commitTimeout  time.Duration
	processTimeout time.Duration

	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	started atomic.Bool
}

func New(
	dr usecase.DeleteRequestUseCase,
	er infrastructure.EventsReceiver,
	l logger.Interface,
	commitTimeout time.Duration,
	processTimeout time.Duration,
	workers int,
) *KafkaController {
	if workers < 1 {
		workers = 1
	}

	return &KafkaController{
		dr:             dr,
		er:             er,
		logger:         l,
		commitTimeout:  commitTimeout,
		processTimeout: processTimeout,
		workers:        workers,
	}
}

func (c *KafkaController) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return fmt.Errorf("KafkaController - Start - controller already started")
	}

	c.ctx, c.cancel = context.WithCancel(ctx)

	// канал для задач
	tasks := make(chan kafka.Message, c.workers*2)

	// запускаем воркеры
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker(tasks)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(tasks)

		for {
			// 1. читаем из кафки
			event, err := c.er.ReadEvent(c.ctx)
			if err != nil {
				if c.ctx.Err() != nil {
					return
				}
				c.logger.Error(err, "KafkaController - Start - c.er.ReadEvent")

				continue
			}

			// 2. отправляем в канал для воркеров
			select {
			case tasks <- event:
			case <-c.ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (c *KafkaController) processEvent(ctx context.Context, event kafka.Message) error {
	if t := eventType(event); t != "" && t != entity.EventDeleteRequestCreated {
		return fmt.Errorf("KafkaController - processEvent - event type %q: %w", t, errPoison)
	}

	var payload entity.DeleteRequestCreatedPayload
	err := json.Unmarshal(event.Value, &payload)
	if err != nil {
		return fmt.Errorf("KafkaController - processEvent - json.Unmarshal: %v: %w", err, errPoison)
	}

	id := strings.TrimSpace(payload.ID)
	if id == "" {
		return fmt.Errorf("KafkaController - processEvent - empty id: %w", errPoison)
	}

	result, err := c.dr.Process(ctx, id, false)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return fmt.Errorf("KafkaController - processEvent - %s: %w", id, errPoison)
		}

		return fmt.Errorf("KafkaController - processEvent - c.dr.Process: %w", err)
	}

	if result.Skipped {
		c.logger.Info("delete request %s skipped (status %s)", id, result.Status)
	} else {
		c.logger.Info("delete request %s processed (status %s)", id, result.Status)
	}

	return nil
}

func (c *KafkaController) worker(tasks <-chan kafka.Message) {
	defer c.wg.Done()

	// читаем канал, пока не закроется
	for event := range tasks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error(fmt.Errorf("panic %v", r), "KafkaController - worker - panic")
				}
			}()

			// выполняем обработку
			processCtx, processCancel := context.WithTimeout(c.ctx, c.processTimeout)
			err := c.processEvent(processCtx, event)
			processCancel()
			if err != nil {
				if !errors.Is(err, errPoison) {
					// без коммита офсет остаётся для повторного чтения только после ребаланса или рестарта
					c.logger.Error(err, "KafkaController - worker - c.processEvent")

					return
				}
				c.logger.Warn("KafkaController - worker - dropping message at offset %d: %v", event.Offset, err)
			}

			// коммитим после обработки
			commitCtx, commitCancel := context.WithTimeout(c.ctx, c.commitTimeout)
			err = c.er.CommitEvent(commitCtx, event)
			commitCancel()
			if err != nil {
				c.logger.Error(err, "KafkaController - worker - c.er.CommitEvent")
			}
		}()
	}
}

func (c *KafkaController) Shutdown(ctx context.Context) error {
	if !c.started.Load() {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})

	go func() {
		c.wg.Wait()
		if err := c.er.Close(); err != nil {
			c.logger.Error(err, "KafkaController - Shutdown - c.er.Close")
		}
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("KafkaController - Shutdown: %w", ctx.Err())
	}
}

func eventType(event kafka.Message) string {
	for _, h := range event.Headers {
		if h.Key == headerEventType {
			return string(h.Value)
		}
	}

	return ""
}
