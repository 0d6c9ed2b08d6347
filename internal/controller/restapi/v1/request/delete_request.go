package request

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
)

// DeleteRequest is the body of the send and intake endpoints. Scalars of any
// JSON type are accepted and coerced to strings.
type DeleteRequest struct {
	Facility   entity.LooseString `json:"facility" example:"Clinic A"`
	RecordID   entity.LooseString `json:"recordId" example:"123"`
	RecordDate entity.LooseString `json:"recordDate" example:"2024-05-01"`
	Note       entity.LooseString `json:"note" example:"please remove"`
	Attachment *Attachment        `json:"attachment,omitempty"`
}

type Attachment struct {
	Content  entity.LooseString `json:"content" validate:"omitempty,base64"`
	Filename entity.LooseString `json:"filename" example:"scan.pdf"`
	MimeType entity.LooseString `json:"mimeType" example:"application/pdf"`
	Type     entity.LooseString `json:"type"`
}

func (r DeleteRequest) Payload() entity.DeleteRequestPayload {
	p := entity.DeleteRequestPayload{
		Facility:   r.Facility,
		RecordID:   r.RecordID,
		RecordDate: r.RecordDate,
		Note:       r.Note,
	}

	if r.Attachment != nil {
		p.Attachment = &entity.AttachmentPayload{
			Content:  r.Attachment.Content,
			Filename: r.Attachment.Filename,
			MimeType: r.Attachment.MimeType,
			Type:     r.Attachment.Type,
		}
	}

	return p
}

// Reprocess keeps docId and force raw: only a JSON string counts as docId
// and only the literal true counts as force.
type Reprocess struct {
	DocID json.RawMessage `json:"docId" swaggertype:"string" example:"6c1e0d6e-5f0e-4a57-9b4e-2c1f3f0f8a11"`
	Force json.RawMessage `json:"force,omitempty" swaggertype:"boolean"`
}

func (r Reprocess) ID() string {
	var id string
	if err := json.Unmarshal(r.DocID, &id); err != nil {
		return ""
	}

	return strings.TrimSpace(id)
}

func (r Reprocess) Forced() bool {
	return bytes.Equal(r.Force, []byte("true"))
}
