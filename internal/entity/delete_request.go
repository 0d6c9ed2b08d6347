package entity

import "time"

// DeleteRequest is one persisted deletion request and its delivery status.
type DeleteRequest struct {
	ID string `json:"id"`

	Facility   string `json:"facility"`
	RecordID   string `json:"record_id"`
	RecordDate string `json:"record_date"`
	Note       string `json:"note"`

	AttachmentKey      *string `json:"attachment_key,omitempty"`
	AttachmentFilename *string `json:"attachment_filename,omitempty"`
	AttachmentMimeType *string `json:"attachment_mime_type,omitempty"`

	Status       Status  `json:"status"`        // queued, processing, sent, error
	ErrorMessage *string `json:"error_message"` // only while status = error
	LastError    *string `json:"last_error"`    // cleared on successful send

	FirstQueuedAt       *time.Time `json:"first_queued_at,omitempty"`
	LastAttemptAt       *time.Time `json:"last_attempt_at,omitempty"`
	AttemptCount        int        `json:"attempt_count"`
	ProcessingStartedAt *time.Time `json:"processing_started_at,omitempty"`
	ProcessedAt         *time.Time `json:"processed_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

func (r *DeleteRequest) HasAttachment() bool {
	return r.AttachmentKey != nil && *r.AttachmentKey != ""
}

// Payload rebuilds the raw request payload from the stored fields.
// attachmentContent is the base64 blob loaded from storage, "" if none.
func (r *DeleteRequest) Payload(attachmentContent string) DeleteRequestPayload {
	p := DeleteRequestPayload{
		Facility:   LooseString(r.Facility),
		RecordID:   LooseString(r.RecordID),
		RecordDate: LooseString(r.RecordDate),
		Note:       LooseString(r.Note),
	}

	if attachmentContent != "" {
		a := &AttachmentPayload{Content: LooseString(attachmentContent)}
		if r.AttachmentFilename != nil {
			a.Filename = LooseString(*r.AttachmentFilename)
		}
		if r.AttachmentMimeType != nil {
			a.MimeType = LooseString(*r.AttachmentMimeType)
		}
		p.Attachment = a
	}

	return p
}

// ProcessResult is the outcome of one processing attempt.
type ProcessResult struct {
	Status  Status `json:"status"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}
