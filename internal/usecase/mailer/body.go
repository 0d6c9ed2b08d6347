package mailer

import (
	"strings"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
)

const (
	subjectPrefix = "【削除依頼】"
	noteHeader    = "--- 自由記載 ---"
	placeholder   = "(未入力)"

	emptyParagraph = "<p>&nbsp;</p>"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

type Body struct {
	Text string
	HTML string
}

// BuildBody renders the request as plain text and as HTML paragraphs.
func BuildBody(req entity.SanitizedRequest) Body {
	lines := []string{
		"施設名: " + req.Facility,
		"削除依頼ID: " + orPlaceholder(req.RecordID),
		"入力日付: " + orPlaceholder(req.RecordDate),
		"",
		noteHeader,
		orPlaceholder(req.Note),
	}

	text := strings.Join(lines, "\n")

	// заметка может быть многострочной, поэтому делим уже готовый текст
	var html strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			html.WriteString(emptyParagraph)

			continue
		}
		html.WriteString("<p>")
		html.WriteString(htmlEscaper.Replace(line))
		html.WriteString("</p>")
	}

	return Body{Text: text, HTML: html.String()}
}

// BuildSubject returns the subject line. The facility is plain text, not escaped.
func BuildSubject(req entity.SanitizedRequest) string {
	return subjectPrefix + req.Facility
}

func orPlaceholder(v string) string {
	if v == "" {
		return placeholder
	}

	return v
}
