package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LooseString accepts any JSON scalar and keeps its string form.
// null decodes to "", numbers and booleans keep their literal text.
type LooseString string

func (s *LooseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""

		return nil
	}

	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return fmt.Errorf("LooseString - UnmarshalJSON: %w", err)
		}
		*s = LooseString(v)

		return nil
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, b); err != nil {
		return fmt.Errorf("LooseString - UnmarshalJSON - json.Compact: %w", err)
	}
	*s = LooseString(compact.String())

	return nil
}

func (s LooseString) String() string {
	return string(s)
}

// DeleteRequestPayload is the raw, untrusted request body.
type DeleteRequestPayload struct {
	Facility   LooseString        `json:"facility"`
	RecordID   LooseString        `json:"recordId"`
	RecordDate LooseString        `json:"recordDate"`
	Note       LooseString        `json:"note"`
	Attachment *AttachmentPayload `json:"attachment,omitempty"`
}

type AttachmentPayload struct {
	Content  LooseString `json:"content"` // base64
	Filename LooseString `json:"filename"`
	MimeType LooseString `json:"mimeType"`
	Type     LooseString `json:"type"` // older clients send the mime type here
}

func (a *AttachmentPayload) mimeType() string {
	if a.MimeType != "" {
		return string(a.MimeType)
	}

	return string(a.Type)
}
