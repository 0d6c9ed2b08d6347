package deleterequest

import (
	"context"
	"errors"
	"testing"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/logger"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/types/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type processFixture struct {
	requests    *mockRequests
	attachments *mockAttachments
	outbox      *mockOutbox
	mailer      *mockMailer
	uc          *DeleteRequestUseCase
}

func newProcessFixture() *processFixture {
	f := &processFixture{
		requests:    &mockRequests{},
		attachments: &mockAttachments{},
		outbox:      &mockOutbox{},
		mailer:      &mockMailer{},
	}
	f.uc = New(f.requests, f.attachments, f.outbox, &passTransactor{}, f.mailer, logger.NewNop())

	return f
}

func (f *processFixture) assertExpectations(t *testing.T) {
	f.requests.AssertExpectations(t)
	f.attachments.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
}

func queuedRecord() *entity.DeleteRequest {
	return &entity.DeleteRequest{
		ID:       "req-1",
		Facility: "Clinic A",
		RecordID: "123",
		Status:   entity.Queued,
	}
}

var clinicA = entity.SanitizedRequest{Facility: "Clinic A", RecordID: "123"}

func TestProcessRecord_Sends(t *testing.T) {
	f := newProcessFixture()
	ctx := context.Background()

	f.requests.On("Annotate", ctx, "req-1").Return(nil).Once()
	f.mailer.On("CheckConfigured").Return(nil).Once()
	f.requests.On("MarkProcessing", ctx, "req-1", entity.Queued).Return(nil).Once()
	f.mailer.On("Send", ctx, clinicA).Return(nil).Once()
	f.requests.On("MarkSent", ctx, "req-1").Return(nil).Once()

	result, err := f.uc.ProcessRecord(ctx, queuedRecord(), false)
	require.NoError(t, err)
	assert.Equal(t, entity.ProcessResult{Status: entity.Sent}, result)
	f.assertExpectations(t)
}

func TestProcessRecord_SecondRunIsSkipped(t *testing.T) {
	f := newProcessFixture()
	ctx := context.Background()
	record := queuedRecord()

	f.requests.On("Annotate", ctx, "req-1").Return(nil).Twice()
	f.mailer.On("CheckConfigured").Return(nil).Twice()
	f.requests.On("MarkProcessing", ctx, "req-1", entity.Queued).Return(nil).Once()
	f.mailer.On("Send", ctx, clinicA).Return(nil).Once()
	f.requests.On("MarkSent", ctx, "req-1").Return(nil).Once()

	first, err := f.uc.ProcessRecord(ctx, record, false)
	require.NoError(t, err)
	assert.Equal(t, entity.Sent, first.Status)

	// перечитанная запись
	record.Status = entity.Sent

	second, err := f.uc.ProcessRecord(ctx, record, false)
	require.NoError(t, err)
	assert.Equal(t, entity.ProcessResult{Status: entity.Sent, Skipped: true}, second)

	f.assertExpectations(t)
	f.requests.AssertNumberOfCalls(t, "MarkProcessing", 1)
	f.requests.AssertNumberOfCalls(t, "MarkSent", 1)
	f.requests.AssertNotCalled(t, "MarkError", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessRecord_ForceResendsSentRecord(t *testing.T) {
	f := newProcessFixture()
	ctx := context.Background()
	record := queuedRecord()
	record.Status = entity.Sent

	f.requests.On("Annotate", ctx, "req-1").Return(nil).Once()
	f.mailer.On("CheckConfigured").Return(nil).Once()
	f.requests.On("MarkProcessing", ctx, "req-1", entity.Sent).Return(nil).Once()
	f.mailer.On("Send", ctx, clinicA).Return(nil).Once()
	f.requests.On("MarkSent", ctx, "req-1").Return(nil).Once()

	result, err := f.uc.ProcessRecord(ctx, record, true)
	require.NoError(t, err)
	assert.Equal(t, entity.ProcessResult{Status: entity.Sent}, result)
	f.assertExpectations(t)
}

func TestProcessRecord_UnconfiguredBeforeStatus(t *testing.T) {
	f := newProcessFixture()
	ctx := context.Background()
	record := queuedRecord()
	record.Status = entity.Sent

	f.requests.On("Annotate", ctx, "req-1").Return(nil).Once()
	f.mailer.On("CheckConfigured").Return(&errs.ConfigurationError{Message: "mail delivery API key is not configured"}).Once()
	f.requests.On("MarkError", ctx, "req-1", "mail delivery API key is not configured").Return(nil).Once()

	result, err := f.uc.ProcessRecord(ctx, record, false)
	require.NoError(t, err)
	assert.Equal(t, entity.ProcessResult{Status: entity.Error, Error: "mail delivery API key is not configured"}, result)
	f.assertExpectations(t)
	f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestProcessRecord_ValidationError(t *testing.T) {
	f := newProcessFixture()
	ctx := context.Background()
	record := queuedRecord()
	record.Facility = "   "

	f.requests.On("Annotate", ctx, "req-1").Return(nil).Once()
	f.mailer.On("CheckConfigured").Return(nil).Once()
	f.requests.On("MarkError", ctx, "req-1", "facility required").Return(nil).Once()

	result, err := f.uc.ProcessRecord(ctx, record, false)
	require.NoError(t, err)
	assert.Equal(t, entity.ProcessResult{Status: entity.Error, Error: "facility required"}, result)
	f.assertExpectations(t)
	f.requests.AssertNotCalled(t, "MarkProcessing", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessRecord_DeliveryError(t *testing.T) {
	f := newProcessFixture()
	ctx := context.Background()

	sendErr := &errs.DeliveryError{StatusCode: 403, Message: "Forbidden", Details: []string{"The from address does not match a verified Sender Identity."}}

	f.requests.On("Annotate", ctx, "req-1").Return(nil).Once()
	f.mailer.On("CheckConfigured").Return(nil).Once()
	f.requests.On("MarkProcessing", ctx, "req-1", entity.Queued).Return(nil).Once()
	f.mailer.On("Send", ctx, clinicA).Return(sendErr).Once()
	f.requests.On("MarkError", ctx, "req-1", "The from address does not match a verified Sender Identity.").Return(nil).Once()

	result, err := f.uc.ProcessRecord(ctx, queuedRecord(), false)
	require.NoError(t, err)
	assert.Equal(t, entity.Error, result.Status)
	assert.Equal(t, "The from address does not match a verified Sender Identity.", result.Error)
	f.assertExpectations(t)
	f.requests.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything)
}

func TestProcessRecord_AnnotateFailureIsNotFatal(t *testing.T) {
	f := newProcessFixture()
	ctx := context.Background()

	f.requests.On("Annotate", ctx, "req-1").Return(errors.New("deadlock detected")).Once()
	f.mailer.On("CheckConfigured").Return(nil).Once()
	f.requests.On("MarkProcessing", ctx, "req-1", entity.Queued).Return(nil).Once()
	f.mailer.On("Send", ctx, clinicA).Return(nil).Once()
	f.requests.On("MarkSent", ctx, "req-1").Return(nil).Once()

	result, err := f.uc.ProcessRecord(ctx, queuedRecord(), false)
	require.NoError(t, err)
	assert.Equal(t, entity.Sent, result.Status)
	f.assertExpectations(t)
}

func TestProcessRecord_ConcurrentClaimIsSkipped(t *testing.T) {
	f := newProcessFixture()
	ctx := context.Background()

	f.requests.On("Annotate", ctx, "req-1").Return(nil).Once()
	f.mailer.On("CheckConfigured").Return(nil).Once()
	f.requests.On("MarkProcessing", ctx, "req-1", entity.Queued).
		Return(errs.ErrStatusConflict).Once()

	result, err := f.uc.ProcessRecord(ctx, queuedRecord(), false)
	require.NoError(t, err)
	assert.Equal(t, entity.ProcessResult{Status: entity.Processing, Skipped: true}, result)
	f.assertExpectations(t)
	f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestProcessRecord_InFlightNeedsForce(t *testing.T) {
	f := newProcessFixture()
	ctx := context.Background()
	record := queuedRecord()
	record.Status = entity.Processing

	f.requests.On("Annotate", ctx, "req-1").Return(nil).Once()
	f.mailer.On("CheckConfigured").Return(nil).Once()

	result, err := f.uc.ProcessRecord(ctx, record, false)
	require.NoError(t, err)
	assert.Equal(t, entity.ProcessResult{Status: entity.Processing, Skipped: true}, result)
	f.assertExpectations(t)
	f.requests.AssertNotCalled(t, "MarkProcessing", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessRecord_ReprocessAfterError(t *testing.T) {
	f := newProcessFixture()
	ctx := context.Background()
	record := queuedRecord()
	record.Status = entity.Error

	f.requests.On("Annotate", ctx, "req-1").Return(nil).Once()
	f.mailer.On("CheckConfigured").Return(nil).Once()
	f.requests.On("MarkProcessing", ctx, "req-1", entity.Error).Return(nil).Once()
	f.mailer.On("Send", ctx, clinicA).Return(nil).Once()
	f.requests.On("MarkSent", ctx, "req-1").Return(nil).Once()

	result, err := f.uc.ProcessRecord(ctx, record, false)
	require.NoError(t, err)
	assert.Equal(t, entity.Sent, result.Status)
	f.assertExpectations(t)
}

func TestProcessRecord_Attachment(t *testing.T) {
	f := newProcessFixture()
	ctx := context.Background()

	key, filename, mimeType := "attachments/req-1", "a.txt", "text/plain"
	record := queuedRecord()
	record.AttachmentKey = &key
	record.AttachmentFilename = &filename
	record.AttachmentMimeType = &mimeType

	want := clinicA
	want.Attachment = &entity.Attachment{Content: "aGVsbG8=", Filename: "a.txt", MimeType: "text/plain"}

	f.requests.On("Annotate", ctx, "req-1").Return(nil).Once()
	f.mailer.On("CheckConfigured").Return(nil).Once()
	f.attachments.On("Download", ctx, key).Return([]byte("hello"), nil).Once()
	f.requests.On("MarkProcessing", ctx, "req-1", entity.Queued).Return(nil).Once()
	f.mailer.On("Send", ctx, want).Return(nil).Once()
	f.requests.On("MarkSent", ctx, "req-1").Return(nil).Once()

	result, err := f.uc.ProcessRecord(ctx, record, false)
	require.NoError(t, err)
	assert.Equal(t, entity.Sent, result.Status)
	f.assertExpectations(t)
}

func TestProcessRecord_AttachmentUnavailable(t *testing.T) {
	f := newProcessFixture()
	ctx := context.Background()

	key := "attachments/req-1"
	record := queuedRecord()
	record.AttachmentKey = &key

	f.requests.On("Annotate", ctx, "req-1").Return(nil).Once()
	f.mailer.On("CheckConfigured").Return(nil).Once()
	f.attachments.On("Download", ctx, key).Return(nil, errors.New("NoSuchKey")).Once()
	f.requests.On("MarkError", ctx, "req-1", "attachment attachments/req-1 is unavailable").Return(nil).Once()

	result, err := f.uc.ProcessRecord(ctx, record, false)
	require.NoError(t, err)
	assert.Equal(t, entity.Error, result.Status)
	f.assertExpectations(t)
}

func TestProcessRecord_MarkErrorFails(t *testing.T) {
	f := newProcessFixture()
	ctx := context.Background()

	f.requests.On("Annotate", ctx, "req-1").Return(nil).Once()
	f.mailer.On("CheckConfigured").Return(nil).Once()
	f.requests.On("MarkProcessing", ctx, "req-1", entity.Queued).Return(nil).Once()
	f.mailer.On("Send", ctx, clinicA).Return(errors.New("timeout")).Once()
	f.requests.On("MarkError", ctx, "req-1", "timeout").Return(errors.New("connection lost")).Once()

	_, err := f.uc.ProcessRecord(ctx, queuedRecord(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection lost")
	f.assertExpectations(t)
}

func TestProcessRecord_MarkProcessingFailureIsRecorded(t *testing.T) {
	f := newProcessFixture()
	ctx := context.Background()

	f.requests.On("Annotate", ctx, "req-1").Return(nil).Once()
	f.mailer.On("CheckConfigured").Return(nil).Once()
	f.requests.On("MarkProcessing", ctx, "req-1", entity.Queued).Return(errors.New("write timeout")).Once()
	f.requests.On("MarkError", ctx, "req-1", "write timeout").Return(nil).Once()

	result, err := f.uc.ProcessRecord(ctx, queuedRecord(), false)
	require.NoError(t, err)
	assert.Equal(t, entity.ProcessResult{Status: entity.Error, Error: "write timeout"}, result)
	f.assertExpectations(t)
	f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestProcess_NotFound(t *testing.T) {
	f := newProcessFixture()
	ctx := context.Background()

	f.requests.On("GetByID", ctx, "absent").Return(nil, errs.ErrRecordNotFound).Once()

	_, err := f.uc.Process(ctx, "absent", false)
	require.ErrorIs(t, err, errs.ErrRecordNotFound)
	f.assertExpectations(t)
	f.requests.AssertNotCalled(t, "Annotate", mock.Anything, mock.Anything)
	f.requests.AssertNotCalled(t, "MarkError", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcess_LoadsRecord(t *testing.T) {
	f := newProcessFixture()
	ctx := context.Background()

	f.requests.On("GetByID", ctx, "req-1").Return(queuedRecord(), nil).Once()
	f.requests.On("Annotate", ctx, "req-1").Return(nil).Once()
	f.mailer.On("CheckConfigured").Return(nil).Once()
	f.requests.On("MarkProcessing", ctx, "req-1", entity.Queued).Return(nil).Once()
	f.mailer.On("Send", ctx, clinicA).Return(nil).Once()
	f.requests.On("MarkSent", ctx, "req-1").Return(nil).Once()

	result, err := f.uc.Process(ctx, "req-1", false)
	require.NoError(t, err)
	assert.Equal(t, entity.Sent, result.Status)
	f.assertExpectations(t)
}
