package entity

import (
	"strings"

	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/types/errs"
)

const (
	DefaultAttachmentFilename = "attachment"
	DefaultAttachmentMimeType = "application/octet-stream"

	msgFacilityRequired = "facility required"
	msgRecordIDOrDate   = "recordId or recordDate required"
)

// SanitizedRequest holds the canonical request fields.
type SanitizedRequest struct {
	Facility   string
	RecordID   string
	RecordDate string
	Note       string
	Attachment *Attachment
}

type Attachment struct {
	Content  string // base64
	Filename string
	MimeType string
}

// Sanitize validates and normalizes the payload. It performs no I/O.
func (p DeleteRequestPayload) Sanitize() (SanitizedRequest, error) {
	req := SanitizedRequest{
		Facility:   strings.TrimSpace(string(p.Facility)),
		RecordID:   strings.TrimSpace(string(p.RecordID)),
		RecordDate: strings.TrimSpace(string(p.RecordDate)),
		Note:       string(p.Note),
	}

	if req.Facility == "" {
		return SanitizedRequest{}, &errs.ValidationError{Message: msgFacilityRequired}
	}

	if req.RecordID == "" && req.RecordDate == "" {
		return SanitizedRequest{}, &errs.ValidationError{Message: msgRecordIDOrDate}
	}

	if p.Attachment != nil && p.Attachment.Content != "" {
		a := &Attachment{
			Content:  string(p.Attachment.Content),
			Filename: string(p.Attachment.Filename),
			MimeType: p.Attachment.mimeType(),
		}
		if a.Filename == "" {
			a.Filename = DefaultAttachmentFilename
		}
		if a.MimeType == "" {
			a.MimeType = DefaultAttachmentMimeType
		}
		req.Attachment = a
	}

	return req, nil
}
