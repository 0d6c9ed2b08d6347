package postgres

import (
	"time"

	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/logger"
)

type Option func(*Postgres)

func MaxPoolSize(size int) Option {
	return func(p *Postgres) {
		p.maxPoolSize = size
	}
}

func ConnAttempts(attempts int) Option {
	return func(p *Postgres) {
		p.connAttempts = attempts
	}
}

func ConnTimeout(timeout time.Duration) Option {
	return func(p *Postgres) {
		p.connTimeout = timeout
	}
}

func Logger(l logger.Interface) Option {
	return func(p *Postgres) {
		p.logger = l
	}
}
