package mailer

import (
	"context"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
	"github.com/stretchr/testify/mock"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, msg *entity.OutboundMessage) error {
	args := m.Called(ctx, msg)

	return args.Error(0)
}

func (m *mockSender) Name() string {
	return "mock"
}
