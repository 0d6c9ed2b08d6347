package deleterequest

import (
	"context"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockRequests struct {
	mock.Mock
}

func (m *mockRequests) Create(ctx context.Context, request *entity.DeleteRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *mockRequests) GetByID(ctx context.Context, id string) (*entity.DeleteRequest, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*entity.DeleteRequest); ok {
		return r, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockRequests) Annotate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRequests) MarkProcessing(ctx context.Context, id string, prior entity.Status) error {
	return m.Called(ctx, id, prior).Error(0)
}

func (m *mockRequests) MarkSent(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRequests) MarkError(ctx context.Context, id string, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

type mockAttachments struct {
	mock.Mock
}

func (m *mockAttachments) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *mockAttachments) Download(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).([]byte)

	return b, args.Error(1)
}

func (m *mockAttachments) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockOutbox struct {
	mock.Mock
}

func (m *mockOutbox) Create(ctx context.Context, event *entity.OutboxEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockOutbox) GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error) {
	args := m.Called(ctx, maxRetries, limit)
	events, _ := args.Get(0).([]*entity.OutboxEvent)

	return events, args.Error(1)
}

func (m *mockOutbox) MarkAsProcessingBatch(ctx context.Context, IDs uuid.UUIDs) error {
	return m.Called(ctx, IDs).Error(0)
}

func (m *mockOutbox) MarkAsProcessedBatch(ctx context.Context, IDs uuid.UUIDs) error {
	return m.Called(ctx, IDs).Error(0)
}

func (m *mockOutbox) IncrementRetryCountBatch(ctx context.Context, IDs uuid.UUIDs) error {
	return m.Called(ctx, IDs).Error(0)
}

func (m *mockOutbox) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	return m.Called(ctx, maxRetries).Error(0)
}

func (m *mockOutbox) DeleteOldProcessedAndFailed(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

// passTransactor runs f inline, failing the "commit" when err is set.
type passTransactor struct {
	err error
}

func (tr *passTransactor) WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error {
	if err := f(ctx); err != nil {
		return err
	}

	return tr.err
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) CheckCredentials() error {
	return m.Called().Error(0)
}

func (m *mockMailer) CheckConfigured() error {
	return m.Called().Error(0)
}

func (m *mockMailer) Send(ctx context.Context, req entity.SanitizedRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockMailer) SendPayload(ctx context.Context, payload entity.DeleteRequestPayload) error {
	return m.Called(ctx, payload).Error(0)
}
