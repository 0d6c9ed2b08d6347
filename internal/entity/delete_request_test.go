package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestDeleteRequest_Payload(t *testing.T) {
	r := &DeleteRequest{
		ID:                 "req-1",
		Facility:           "Clinic A",
		RecordID:           "123",
		Note:               "see attached",
		AttachmentKey:      strPtr("attachments/req-1"),
		AttachmentFilename: strPtr("list.csv"),
	}

	p := r.Payload("aGVsbG8=")
	req, err := p.Sanitize()
	require.NoError(t, err)

	assert.True(t, r.HasAttachment())
	assert.Equal(t, "Clinic A", req.Facility)
	require.NotNil(t, req.Attachment)
	assert.Equal(t, "list.csv", req.Attachment.Filename)
	assert.Equal(t, DefaultAttachmentMimeType, req.Attachment.MimeType)
}

func TestDeleteRequest_PayloadWithoutAttachment(t *testing.T) {
	r := &DeleteRequest{Facility: "Clinic A", RecordDate: "2024-05-01"}

	assert.False(t, r.HasAttachment())
	assert.Nil(t, r.Payload("").Attachment)
}

func TestProcessResult_JSON(t *testing.T) {
	b, err := json.Marshal(ProcessResult{Status: Sent, Skipped: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"sent","skipped":true}`, string(b))

	b, err = json.Marshal(ProcessResult{Status: Error, Error: "facility required"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"error","error":"facility required"}`, string(b))
}
