package consumer

import (
	"time"

	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/logger"
)

type Option func(*Consumer)

func ConnAttempts(attempts int) Option {
	return func(c *Consumer) {
		c.connAttempts = attempts
	}
}

func ConnTimeout(timeout time.Duration) Option {
	return func(c *Consumer) {
		c.connTimeout = timeout
	}
}

func MaxWait(wait time.Duration) Option {
	return func(c *Consumer) {
		c.maxWait = wait
	}
}

// StartOffset applies only when the group has no committed offset yet.
func StartOffset(offset int64) Option {
	return func(c *Consumer) {
		c.startOffset = offset
	}
}

func Logger(l logger.Interface) Option {
	return func(c *Consumer) {
		c.logger = l
	}
}
