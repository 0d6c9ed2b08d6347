package v1

import (
	"context"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
	"github.com/stretchr/testify/mock"
)

type mockDeleteRequests struct {
	mock.Mock
}

func (m *mockDeleteRequests) Submit(ctx context.Context, payload entity.DeleteRequestPayload) (*entity.DeleteRequest, error) {
	args := m.Called(ctx, payload)
	r, _ := args.Get(0).(*entity.DeleteRequest)

	return r, args.Error(1)
}

func (m *mockDeleteRequests) Get(ctx context.Context, id string) (*entity.DeleteRequest, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.DeleteRequest)

	return r, args.Error(1)
}

func (m *mockDeleteRequests) Process(ctx context.Context, id string, force bool) (entity.ProcessResult, error) {
	args := m.Called(ctx, id, force)

	return args.Get(0).(entity.ProcessResult), args.Error(1)
}

func (m *mockDeleteRequests) ProcessRecord(ctx context.Context, record *entity.DeleteRequest, force bool) (entity.ProcessResult, error) {
	args := m.Called(ctx, record, force)

	return args.Get(0).(entity.ProcessResult), args.Error(1)
}

func (m *mockDeleteRequests) ClaimPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error) {
	args := m.Called(ctx, maxRetries, limit)
	events, _ := args.Get(0).([]*entity.OutboxEvent)

	return events, args.Error(1)
}

func (m *mockDeleteRequests) MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	return m.Called(ctx, events).Error(0)
}

func (m *mockDeleteRequests) IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	return m.Called(ctx, events).Error(0)
}

func (m *mockDeleteRequests) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	return m.Called(ctx, maxRetries).Error(0)
}

func (m *mockDeleteRequests) CleanupOutbox(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockMail struct {
	mock.Mock
}

func (m *mockMail) CheckCredentials() error {
	return m.Called().Error(0)
}

func (m *mockMail) CheckConfigured() error {
	return m.Called().Error(0)
}

func (m *mockMail) Send(ctx context.Context, req entity.SanitizedRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockMail) SendPayload(ctx context.Context, payload entity.DeleteRequestPayload) error {
	return m.Called(ctx, payload).Error(0)
}
